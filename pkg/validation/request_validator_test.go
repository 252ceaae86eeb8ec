package validation

import (
	"reflect"
	"strings"
	"testing"

	"go-alttext-generator/pkg/models"
)

func TestValidateGenerationRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         models.GenerationRequest
		expectError bool
		wantLangs   []string
	}{
		{
			name: "Valid HTTP request",
			req: models.GenerationRequest{
				ImageReference:  "https://example.com/photo.jpg",
				TargetLanguages: []string{"en", "de"},
			},
			wantLangs: []string{"en", "de"},
		},
		{
			name: "Local path is accepted",
			req: models.GenerationRequest{
				ImageReference:  "./testdata/photo.png",
				TargetLanguages: []string{"en"},
			},
			wantLangs: []string{"en"},
		},
		{
			name: "Languages are lowercased and deduplicated",
			req: models.GenerationRequest{
				ImageReference:  "https://example.com/photo.jpg",
				TargetLanguages: []string{"EN", " de ", "en", "FR"},
			},
			wantLangs: []string{"en", "de", "fr"},
		},
		{
			name: "Empty image reference",
			req: models.GenerationRequest{
				ImageReference:  "  ",
				TargetLanguages: []string{"en"},
			},
			expectError: true,
		},
		{
			name: "No target languages",
			req: models.GenerationRequest{
				ImageReference: "https://example.com/photo.jpg",
			},
			expectError: true,
		},
		{
			name: "Unsupported language code",
			req: models.GenerationRequest{
				ImageReference:  "https://example.com/photo.jpg",
				TargetLanguages: []string{"en", "zz"},
			},
			expectError: true,
		},
		{
			name: "Disallowed URL scheme",
			req: models.GenerationRequest{
				ImageReference:  "ftp://example.com/photo.jpg",
				TargetLanguages: []string{"en"},
			},
			expectError: true,
		},
		{
			name: "URL without host",
			req: models.GenerationRequest{
				ImageReference:  "https:///photo.jpg",
				TargetLanguages: []string{"en"},
			},
			expectError: true,
		},
		{
			name: "Unknown translation mode",
			req: models.GenerationRequest{
				ImageReference:  "https://example.com/photo.jpg",
				TargetLanguages: []string{"en"},
				TranslationMode: "turbo",
			},
			expectError: true,
		},
		{
			name: "Empty mode is allowed",
			req: models.GenerationRequest{
				ImageReference:  "https://example.com/photo.jpg",
				TargetLanguages: []string{"en"},
			},
			wantLangs: []string{"en"},
		},
	}

	v := NewRequestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := v.ValidateGenerationRequest(&req)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(req.TargetLanguages, tt.wantLangs) {
				t.Errorf("Expected languages %v, got %v", tt.wantLangs, req.TargetLanguages)
			}
		})
	}
}

func TestContextTextIsTrimmedAndCapped(t *testing.T) {
	v := NewRequestValidator()

	req := models.GenerationRequest{
		ImageReference:  "https://example.com/photo.jpg",
		TargetLanguages: []string{"en"},
		ContextText:     "  surrounding text  ",
	}
	if err := v.ValidateGenerationRequest(&req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.ContextText != "surrounding text" {
		t.Errorf("Expected trimmed context, got %q", req.ContextText)
	}

	req.ContextText = strings.Repeat("x", maxContextChars+100)
	if err := v.ValidateGenerationRequest(&req); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(req.ContextText) != maxContextChars {
		t.Errorf("Expected context capped at %d characters, got %d", maxContextChars, len(req.ContextText))
	}
}

func TestMaxLanguagesCap(t *testing.T) {
	v := NewRequestValidatorWithOptions([]string{"http", "https"}, 2)
	req := models.GenerationRequest{
		ImageReference:  "https://example.com/photo.jpg",
		TargetLanguages: []string{"en", "de", "fr"},
	}
	if err := v.ValidateGenerationRequest(&req); err == nil {
		t.Fatal("Expected error over the language cap")
	}
}
