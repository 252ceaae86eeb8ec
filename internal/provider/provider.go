package provider

import (
	"context"

	"go-alttext-generator/internal/storage"
)

// Stage identifies which step of the generation pipeline a call serves.
// Vision calls carry an image; processing and translation calls are
// text-only.
type Stage string

const (
	StageVision      Stage = "vision"
	StageProcessing  Stage = "processing"
	StageTranslation Stage = "translation"
)

// Kind is the closed set of supported model providers. Adding a provider
// means adding a Kind plus an Invoker implementation, never string-matching
// in the orchestrator.
type Kind string

const (
	KindOpenAI     Kind = "openai"
	KindClaude     Kind = "claude"
	KindEnterprise Kind = "enterprise"
	KindOllama     Kind = "ollama"
)

// KnownKinds lists every supported provider kind.
var KnownKinds = []Kind{KindOpenAI, KindClaude, KindEnterprise, KindOllama}

// InvokeRequest describes one model call. Image must be set for vision
// calls and nil otherwise.
type InvokeRequest struct {
	Stage  Stage
	Model  string
	Prompt string
	Image  *storage.ImageData
}

// Invoker is the uniform capability every provider adapter implements.
// Invoke returns the raw model output text; errors are classified as
// transient or permanent AppErrors by the adapter.
type Invoker interface {
	Kind() Kind
	Invoke(ctx context.Context, req InvokeRequest) (string, error)
}
