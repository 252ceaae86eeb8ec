package provider

import (
	"fmt"

	"go-alttext-generator/internal/config"
	apperrors "go-alttext-generator/internal/errors"
)

// Registry holds one Invoker per provider kind. Read-only after
// construction; safe for concurrent use across requests.
type Registry struct {
	invokers map[Kind]Invoker
}

// NewRegistry builds adapters for every supported kind from configuration.
// Adapters for unconfigured providers are still registered; they fail with
// a configuration error only when actually invoked.
func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		invokers: map[Kind]Invoker{
			KindOpenAI:     NewOpenAIInvoker(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL),
			KindClaude:     NewClaudeInvoker(cfg.ClaudeAPIKey, cfg.ClaudeBaseURL),
			KindEnterprise: NewEnterpriseInvoker(cfg.EnterpriseBaseURL, cfg.EnterpriseAccessToken),
			KindOllama:     NewOllamaInvoker(cfg.OllamaBaseURL),
		},
	}
}

// NewRegistryWithInvokers builds a registry from explicit invokers, used in
// tests with fakes.
func NewRegistryWithInvokers(invokers ...Invoker) *Registry {
	m := make(map[Kind]Invoker, len(invokers))
	for _, inv := range invokers {
		m[inv.Kind()] = inv
	}
	return &Registry{invokers: m}
}

// Get returns the adapter for a provider kind
func (r *Registry) Get(kind Kind) (Invoker, error) {
	inv, ok := r.invokers[kind]
	if !ok {
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("no adapter registered for provider %q", kind), nil)
	}
	return inv, nil
}
