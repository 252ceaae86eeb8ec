package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPipeline(t *testing.T) {
	p := DefaultPipeline()

	if p.Prompts.Dir != "./prompts" {
		t.Errorf("Expected default prompt dir ./prompts, got %s", p.Prompts.Dir)
	}
	if len(p.Prompts.Files) != 1 || p.Prompts.Files[0] != "default_prompt.txt" {
		t.Errorf("Unexpected default prompt files %v", p.Prompts.Files)
	}
	if p.Prompts.MergeSeparator != "\n\n" {
		t.Errorf("Unexpected merge separator %q", p.Prompts.MergeSeparator)
	}
	if p.RetryBudget() != 2 {
		t.Errorf("Expected 2 primary retries, got %d", p.RetryBudget())
	}
	if p.Default.Vision.Provider != "openai" || p.Default.Vision.Model != "gpt-4o" {
		t.Errorf("Unexpected vision default %+v", p.Default.Vision)
	}
	if p.Default.Translation.Model != "gpt-4o-mini" {
		t.Errorf("Unexpected translation default %+v", p.Default.Translation)
	}
}

func TestLoadPipeline(t *testing.T) {
	t.Run("Empty path yields defaults", func(t *testing.T) {
		p, err := LoadPipeline("")
		if err != nil {
			t.Fatalf("LoadPipeline failed: %v", err)
		}
		if p.Default.Vision.Provider != "openai" {
			t.Errorf("Expected defaults, got %+v", p.Default.Vision)
		}
	})

	t.Run("YAML file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.yaml")
		content := `
prompts:
  dir: ./custom-prompts
  files: [default_prompt.txt, ecommerce.txt]
defaults:
  vision:
    provider: claude
    model: claude-3-5-sonnet-20241022
primary_retries: 1
capabilities:
  ollama:
    vision: [llava:13b]
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		p, err := LoadPipeline(path)
		if err != nil {
			t.Fatalf("LoadPipeline failed: %v", err)
		}
		if p.Prompts.Dir != "./custom-prompts" {
			t.Errorf("Expected custom prompt dir, got %s", p.Prompts.Dir)
		}
		if len(p.Prompts.Files) != 2 {
			t.Errorf("Expected 2 prompt files, got %v", p.Prompts.Files)
		}
		if p.Default.Vision.Provider != "claude" {
			t.Errorf("Expected claude vision default, got %+v", p.Default.Vision)
		}
		// Unset sections still get defaults
		if p.Default.Processing.Provider != "openai" {
			t.Errorf("Expected processing default to survive, got %+v", p.Default.Processing)
		}
		if p.RetryBudget() != 1 {
			t.Errorf("Expected 1 retry, got %d", p.RetryBudget())
		}
		if models := p.Capabilities["ollama"]["vision"]; len(models) != 1 || models[0] != "llava:13b" {
			t.Errorf("Unexpected capability override %v", p.Capabilities)
		}
	})

	t.Run("Explicit zero retries is honored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.yaml")
		if err := os.WriteFile(path, []byte("primary_retries: 0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		p, err := LoadPipeline(path)
		if err != nil {
			t.Fatalf("LoadPipeline failed: %v", err)
		}
		if p.RetryBudget() != 0 {
			t.Errorf("Explicit zero must not be replaced by the default, got %d", p.RetryBudget())
		}
	})

	t.Run("Missing file fails", func(t *testing.T) {
		if _, err := LoadPipeline(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatal("Expected error for missing file")
		}
	})

	t.Run("Negative retries fail validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pipeline.yaml")
		if err := os.WriteFile(path, []byte("primary_retries: -1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadPipeline(path); err == nil {
			t.Fatal("Expected validation error")
		}
	})
}
