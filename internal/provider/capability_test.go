package provider

import (
	"testing"

	apperrors "go-alttext-generator/internal/errors"
)

func TestDefaultCapabilities_CoverAllKindsAndStages(t *testing.T) {
	caps := DefaultCapabilities()
	for _, kind := range KnownKinds {
		stages, ok := caps[kind]
		if !ok {
			t.Errorf("No capabilities for provider %s", kind)
			continue
		}
		for _, stage := range []Stage{StageVision, StageProcessing, StageTranslation} {
			if len(stages[stage]) == 0 {
				t.Errorf("Provider %s has no models for stage %s", kind, stage)
			}
		}
	}
}

func TestCapabilities_Validate(t *testing.T) {
	caps := DefaultCapabilities()

	tests := []struct {
		name        string
		kind        Kind
		stage       Stage
		model       string
		expectError bool
	}{
		{"Allowed pairing", KindOpenAI, StageVision, "gpt-4o", false},
		{"Model not in stage list", KindOpenAI, StageVision, "gpt-3.5-turbo", true},
		{"Unknown provider", Kind("palm"), StageVision, "gpt-4o", true},
		{"Unknown model", KindClaude, StageTranslation, "claude-9", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := caps.Validate(tt.kind, tt.stage, tt.model)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected validation to fail")
				}
				if !apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
					t.Errorf("Expected configuration error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCapabilities_MergeOverrides(t *testing.T) {
	caps := DefaultCapabilities().MergeOverrides(map[string]map[string][]string{
		"openai": {"vision": {"gpt-5"}},
		"custom": {"translation": {"custom-mt"}},
	})

	// Overridden stage list replaces the built-in one wholesale
	if err := caps.Validate(KindOpenAI, StageVision, "gpt-5"); err != nil {
		t.Errorf("Override model rejected: %v", err)
	}
	if err := caps.Validate(KindOpenAI, StageVision, "gpt-4o"); err == nil {
		t.Error("Replaced model still accepted")
	}

	// Untouched stages keep their defaults
	if err := caps.Validate(KindOpenAI, StageTranslation, "gpt-4o-mini"); err != nil {
		t.Errorf("Default translation model rejected: %v", err)
	}

	// New providers can be introduced by configuration
	if err := caps.Validate(Kind("custom"), StageTranslation, "custom-mt"); err != nil {
		t.Errorf("Configured provider rejected: %v", err)
	}

	// The original table is not mutated
	if err := DefaultCapabilities().Validate(KindOpenAI, StageVision, "gpt-4o"); err != nil {
		t.Errorf("Defaults mutated by merge: %v", err)
	}
}
