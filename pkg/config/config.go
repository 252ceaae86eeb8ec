package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultPromptDir      = "./prompts"
	defaultMergeSeparator = "\n\n"
	defaultPrimaryRetries = 2
)

// defaultPromptFiles is the fragment list used when the pipeline file names
// none. default_prompt.txt is mandatory; the rest are optional extras.
var defaultPromptFiles = []string{"default_prompt.txt"}

// StageDefaults names the provider and model serving a stage when the
// request carries no override.
type StageDefaults struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// PromptsConfig describes where prompt fragments come from and how they are
// merged into a single prompt.
type PromptsConfig struct {
	Dir            string   `yaml:"dir"`
	Files          []string `yaml:"files"`
	MergeSeparator string   `yaml:"merge_separator"`
}

// Defaults holds the per-stage fallback selections.
type Defaults struct {
	Vision      StageDefaults `yaml:"vision"`
	Processing  StageDefaults `yaml:"processing"`
	Translation StageDefaults `yaml:"translation"`
}

// Pipeline is the generation pipeline configuration loaded once at startup.
// It is immutable after Load returns.
type Pipeline struct {
	Prompts PromptsConfig `yaml:"prompts"`
	Default Defaults      `yaml:"defaults"`
	// Capabilities maps provider -> stage -> allowed models. Empty means
	// the built-in capability table applies.
	Capabilities map[string]map[string][]string `yaml:"capabilities"`
	// PrimaryRetries bounds transient-error retries on the first-language
	// generation. Secondary languages are never retried. A pointer so an
	// explicit zero in the file disables retries instead of falling back
	// to the default.
	PrimaryRetries *int `yaml:"primary_retries"`
}

// RetryBudget returns the configured primary retry count.
func (p *Pipeline) RetryBudget() int {
	if p.PrimaryRetries == nil {
		return defaultPrimaryRetries
	}
	return *p.PrimaryRetries
}

// DefaultPipeline returns the pipeline configuration used when no file is
// provided.
func DefaultPipeline() *Pipeline {
	p := &Pipeline{}
	applyDefaults(p)
	return p
}

// LoadPipeline reads and validates a pipeline YAML file. A missing path
// yields the defaults.
func LoadPipeline(path string) (*Pipeline, error) {
	if path == "" {
		return DefaultPipeline(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline config: %w", err)
	}

	p := &Pipeline{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline config: %w", err)
	}

	applyDefaults(p)
	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func applyDefaults(p *Pipeline) {
	if p.Prompts.Dir == "" {
		p.Prompts.Dir = defaultPromptDir
	}
	if len(p.Prompts.Files) == 0 {
		p.Prompts.Files = append([]string(nil), defaultPromptFiles...)
	}
	if p.Prompts.MergeSeparator == "" {
		p.Prompts.MergeSeparator = defaultMergeSeparator
	}
	if p.PrimaryRetries == nil {
		n := defaultPrimaryRetries
		p.PrimaryRetries = &n
	}
	if p.Default.Vision.Provider == "" {
		p.Default.Vision = StageDefaults{Provider: "openai", Model: "gpt-4o"}
	}
	if p.Default.Processing.Provider == "" {
		p.Default.Processing = StageDefaults{Provider: "openai", Model: "gpt-4o"}
	}
	if p.Default.Translation.Provider == "" {
		p.Default.Translation = StageDefaults{Provider: "openai", Model: "gpt-4o-mini"}
	}
}

func validate(p *Pipeline) error {
	if p.PrimaryRetries != nil && *p.PrimaryRetries < 0 {
		return fmt.Errorf("primary_retries must be >= 0 (got %d)", *p.PrimaryRetries)
	}
	for _, f := range p.Prompts.Files {
		if f == "" {
			return fmt.Errorf("prompt file names must be non-empty")
		}
	}
	return nil
}
