package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperrors "go-alttext-generator/internal/errors"
)

// OllamaInvoker calls a local or remote Ollama server. No API key; the
// server is trusted infrastructure.
type OllamaInvoker struct {
	baseURL string
	httpc   *http.Client
}

func NewOllamaInvoker(baseURL string) *OllamaInvoker {
	return &OllamaInvoker{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   newLLMClient(),
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g., for tests)
func (o *OllamaInvoker) WithHTTPClient(c *http.Client) *OllamaInvoker {
	if c != nil {
		o.httpc = c
	}
	return o
}

func (o *OllamaInvoker) Kind() Kind { return KindOllama }

type ollamaRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images,omitempty"`
	Stream bool     `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *OllamaInvoker) Invoke(ctx context.Context, req InvokeRequest) (string, error) {
	body := ollamaRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
	}
	if req.Stage == StageVision {
		if req.Image == nil {
			return "", apperrors.NewConfigurationError("vision stage requires an image", nil)
		}
		body.Images = []string{base64.StdEncoding.EncodeToString(req.Image.Bytes)}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.NewInternalError("failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", apperrors.NewInternalError("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpc.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(KindOllama, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(KindOllama, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPStatus(KindOllama, resp.StatusCode, respBody)
	}

	var out ollamaResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", apperrors.NewMalformedOutputError("ollama response is not valid JSON", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", apperrors.NewMalformedOutputError("ollama response is empty", nil)
	}
	return out.Response, nil
}
