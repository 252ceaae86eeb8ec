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

const anthropicVersion = "2023-06-01"

// claudeMaxTokens bounds responses; alt text plus reasoning fits easily.
const claudeMaxTokens = 1024

// ClaudeInvoker calls the Anthropic messages API
type ClaudeInvoker struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewClaudeInvoker(apiKey, baseURL string) *ClaudeInvoker {
	return &ClaudeInvoker{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   newLLMClient(),
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g., for tests)
func (c *ClaudeInvoker) WithHTTPClient(hc *http.Client) *ClaudeInvoker {
	if hc != nil {
		c.httpc = hc
	}
	return c
}

func (c *ClaudeInvoker) Kind() Kind { return KindClaude }

type claudeContentBlock struct {
	Type   string             `json:"type"`
	Text   string             `json:"text,omitempty"`
	Source *claudeImageSource `json:"source,omitempty"`
}

type claudeImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type claudeMessage struct {
	Role    string               `json:"role"`
	Content []claudeContentBlock `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *ClaudeInvoker) Invoke(ctx context.Context, req InvokeRequest) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewConfigurationError("ANTHROPIC_API_KEY is empty", nil)
	}

	var content []claudeContentBlock
	if req.Stage == StageVision {
		if req.Image == nil {
			return "", apperrors.NewConfigurationError("vision stage requires an image", nil)
		}
		content = append(content, claudeContentBlock{
			Type: "image",
			Source: &claudeImageSource{
				Type:      "base64",
				MediaType: req.Image.MIME,
				Data:      base64.StdEncoding.EncodeToString(req.Image.Bytes),
			},
		})
	}
	content = append(content, claudeContentBlock{Type: "text", Text: req.Prompt})

	body := claudeRequest{
		Model:     req.Model,
		MaxTokens: claudeMaxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: content}},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.NewInternalError("failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/messages", bytes.NewReader(jsonData))
	if err != nil {
		return "", apperrors.NewInternalError("failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(KindClaude, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(KindClaude, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPStatus(KindClaude, resp.StatusCode, respBody)
	}

	var out claudeResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", apperrors.NewMalformedOutputError("claude response is not valid JSON", err)
	}

	var b strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" && block.Text != "" {
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", apperrors.NewMalformedOutputError("claude response has no text content", nil)
	}
	return b.String(), nil
}
