package provider

import (
	"context"
	"net/http"
	"strings"

	apperrors "go-alttext-generator/internal/errors"
)

// EnterpriseInvoker calls an OpenAI-compatible enterprise LLM gateway. The
// bearer token comes from the external OAuth2 collaborator already
// validated; this adapter never refreshes it.
type EnterpriseInvoker struct {
	baseURL     string
	accessToken string
	httpc       *http.Client
}

func NewEnterpriseInvoker(baseURL, accessToken string) *EnterpriseInvoker {
	return &EnterpriseInvoker{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpc:       newLLMClient(),
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g., for tests)
func (e *EnterpriseInvoker) WithHTTPClient(c *http.Client) *EnterpriseInvoker {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *EnterpriseInvoker) Kind() Kind { return KindEnterprise }

func (e *EnterpriseInvoker) Invoke(ctx context.Context, req InvokeRequest) (string, error) {
	if e.baseURL == "" {
		return "", apperrors.NewConfigurationError("ENTERPRISE_LLM_BASE_URL is empty", nil)
	}
	if e.accessToken == "" {
		return "", apperrors.NewConfigurationError("ENTERPRISE_LLM_ACCESS_TOKEN is empty", nil)
	}
	return invokeChatCompletions(ctx, e.httpc, KindEnterprise,
		e.baseURL+"/v1/chat/completions",
		map[string]string{"Authorization": "Bearer " + e.accessToken},
		req)
}
