package cli

import (
	"testing"
)

func TestParseStageSpec(t *testing.T) {
	tests := []struct {
		name         string
		spec         string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{"Provider and model", "openai/gpt-4o", "openai", "gpt-4o", false},
		{"Model containing slashes", "ollama/llava:13b", "ollama", "llava:13b", false},
		{"Missing separator", "openai", "", "", true},
		{"Empty provider", "/gpt-4o", "", "", true},
		{"Empty model", "openai/", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := parseStageSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %+v", tt.spec, sel)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseStageSpec failed: %v", err)
			}
			if sel.Provider != tt.wantProvider || sel.Model != tt.wantModel {
				t.Errorf("Expected %s/%s, got %s/%s", tt.wantProvider, tt.wantModel, sel.Provider, sel.Model)
			}
		})
	}
}

func TestGenerateCommand_StageOverrideFlags(t *testing.T) {
	// Every pipeline stage must be overridable from the command line.
	for _, flag := range []string{"vision", "processing", "translation"} {
		if generateCmd.Flags().Lookup(flag) == nil {
			t.Errorf("generate command is missing the --%s flag", flag)
		}
	}
}
