package provider

import (
	"fmt"

	apperrors "go-alttext-generator/internal/errors"
)

// Capabilities maps (kind, stage) to the models allowed to serve that
// stage. Read-only after construction.
type Capabilities map[Kind]map[Stage][]string

// DefaultCapabilities returns the built-in capability table. Vision stages
// require multimodal models; translation stages accept cheaper text-only
// models.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		KindOpenAI: {
			StageVision:      {"gpt-4o", "gpt-4o-mini", "gpt-4.1", "gpt-4.1-mini"},
			StageProcessing:  {"gpt-4o", "gpt-4o-mini", "gpt-4.1", "gpt-4.1-mini"},
			StageTranslation: {"gpt-4o-mini", "gpt-4.1-mini", "gpt-3.5-turbo"},
		},
		KindClaude: {
			StageVision:      {"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022", "claude-3-opus-20240229"},
			StageProcessing:  {"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
			StageTranslation: {"claude-3-5-haiku-20241022"},
		},
		KindEnterprise: {
			StageVision:      {"default"},
			StageProcessing:  {"default"},
			StageTranslation: {"default"},
		},
		KindOllama: {
			StageVision:      {"llava", "llama3.2-vision", "bakllava"},
			StageProcessing:  {"llama3.1", "llama3.2", "mistral"},
			StageTranslation: {"llama3.1", "llama3.2", "mistral"},
		},
	}
}

// MergeOverrides layers a configured provider->stage->models table over the
// defaults. Overridden stage lists replace the built-in ones wholesale.
func (c Capabilities) MergeOverrides(overrides map[string]map[string][]string) Capabilities {
	if len(overrides) == 0 {
		return c
	}
	merged := make(Capabilities, len(c))
	for kind, stages := range c {
		copied := make(map[Stage][]string, len(stages))
		for stage, models := range stages {
			copied[stage] = append([]string(nil), models...)
		}
		merged[kind] = copied
	}
	for kindName, stages := range overrides {
		kind := Kind(kindName)
		if _, ok := merged[kind]; !ok {
			merged[kind] = make(map[Stage][]string, len(stages))
		}
		for stageName, models := range stages {
			merged[kind][Stage(stageName)] = append([]string(nil), models...)
		}
	}
	return merged
}

// Validate checks that the provider exists and the model may serve the
// stage. Violations are configuration errors: fail fast, no retry.
func (c Capabilities) Validate(kind Kind, stage Stage, model string) error {
	stages, ok := c[kind]
	if !ok {
		return apperrors.NewConfigurationError(
			fmt.Sprintf("unknown provider %q", kind), nil)
	}
	models, ok := stages[stage]
	if !ok {
		return apperrors.NewConfigurationError(
			fmt.Sprintf("provider %q has no models for stage %q", kind, stage), nil)
	}
	for _, m := range models {
		if m == model {
			return nil
		}
	}
	return apperrors.NewConfigurationError(
		fmt.Sprintf("model %q not allowed for provider %q stage %q", model, kind, stage), nil)
}
