package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "go-alttext-generator/internal/errors"
)

// OpenAIInvoker calls the OpenAI chat completions API
type OpenAIInvoker struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewOpenAIInvoker(apiKey, baseURL string) *OpenAIInvoker {
	return &OpenAIInvoker{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   newLLMClient(),
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g., for tests)
func (o *OpenAIInvoker) WithHTTPClient(c *http.Client) *OpenAIInvoker {
	if c != nil {
		o.httpc = c
	}
	return o
}

func (o *OpenAIInvoker) Kind() Kind { return KindOpenAI }

func (o *OpenAIInvoker) Invoke(ctx context.Context, req InvokeRequest) (string, error) {
	if o.apiKey == "" {
		return "", apperrors.NewConfigurationError("OPENAI_API_KEY is empty", nil)
	}
	return invokeChatCompletions(ctx, o.httpc, KindOpenAI,
		o.baseURL+"/v1/chat/completions",
		map[string]string{"Authorization": "Bearer " + o.apiKey},
		req)
}

// Chat-completions payload shapes, shared with the enterprise gateway which
// speaks the same dialect.
type chatMessage struct {
	Role    string            `json:"role"`
	Content []chatContentItem `json:"content"`
}

type chatContentItem struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func invokeChatCompletions(ctx context.Context, httpc *http.Client, kind Kind, endpoint string, headers map[string]string, req InvokeRequest) (string, error) {
	content := []chatContentItem{{Type: "text", Text: req.Prompt}}
	if req.Stage == StageVision {
		if req.Image == nil {
			return "", apperrors.NewConfigurationError("vision stage requires an image", nil)
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s",
			req.Image.MIME, base64.StdEncoding.EncodeToString(req.Image.Bytes))
		content = append(content, chatContentItem{Type: "image_url", ImageURL: &chatImageURL{URL: dataURL}})
	}

	body := chatRequest{
		Model:    req.Model,
		Messages: []chatMessage{{Role: "user", Content: content}},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.NewInternalError("failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", apperrors.NewInternalError("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := httpc.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(kind, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(kind, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPStatus(kind, resp.StatusCode, respBody)
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", apperrors.NewMalformedOutputError(
			fmt.Sprintf("%s response is not valid JSON", kind), err)
	}
	if len(out.Choices) == 0 {
		return "", apperrors.NewMalformedOutputError(
			fmt.Sprintf("%s response has no choices", kind), nil)
	}
	return out.Choices[0].Message.Content, nil
}
