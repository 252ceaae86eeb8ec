package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	apperrors "go-alttext-generator/internal/errors"
	"go-alttext-generator/internal/languages"
	"go-alttext-generator/pkg/models"
)

// maxContextChars caps the surrounding page context carried into prompts;
// anything longer is cut, not rejected.
const maxContextChars = 4000

// RequestValidator handles generation request validation logic
type RequestValidator struct {
	allowedSchemes []string
	maxLanguages   int
}

// NewRequestValidator creates a new request validator with default settings
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		allowedSchemes: []string{"http", "https"},
		maxLanguages:   0, // zero means no cap
	}
}

// NewRequestValidatorWithOptions creates a request validator with custom options
func NewRequestValidatorWithOptions(schemes []string, maxLanguages int) *RequestValidator {
	return &RequestValidator{
		allowedSchemes: schemes,
		maxLanguages:   maxLanguages,
	}
}

// ValidateGenerationRequest checks a request and normalizes it in place:
// language codes are lowercased, trimmed and deduplicated (first occurrence
// wins, order preserved) and the translation mode is resolved.
func (v *RequestValidator) ValidateGenerationRequest(req *models.GenerationRequest) error {
	if err := v.ValidateImageReference(req.ImageReference); err != nil {
		return err
	}

	normalized, err := v.NormalizeLanguages(req.TargetLanguages)
	if err != nil {
		return err
	}
	req.TargetLanguages = normalized

	if err := v.validateMode(req.TranslationMode); err != nil {
		return err
	}

	req.ContextText = capContext(req.ContextText)

	return nil
}

// capContext trims the context text and bounds its length in characters
func capContext(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxContextChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxContextChars])
}

// ValidateImageReference validates that the image reference is usable: a
// non-empty local path, or a well-formed URL on an allowed scheme.
func (v *RequestValidator) ValidateImageReference(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return apperrors.NewValidationError("image reference cannot be empty", nil)
	}

	// Only URL-shaped references get URL validation; everything else is a
	// local path and resolved later.
	if !strings.Contains(ref, "://") {
		return nil
	}

	parsedURL, err := url.Parse(ref)
	if err != nil {
		return apperrors.NewValidationError("invalid image URL format", err)
	}
	if !v.isSchemeAllowed(parsedURL.Scheme) {
		return apperrors.NewValidationError(
			fmt.Sprintf("URL scheme %q not allowed", parsedURL.Scheme), nil)
	}
	if parsedURL.Host == "" {
		return apperrors.NewValidationError("image URL must have a valid host", nil)
	}

	return nil
}

// NormalizeLanguages lowercases, trims and deduplicates language codes while
// preserving request order. Unknown codes fail the whole request.
func (v *RequestValidator) NormalizeLanguages(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, apperrors.NewValidationError("at least one target language is required", nil)
	}

	seen := make(map[string]bool, len(codes))
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		c := strings.ToLower(strings.TrimSpace(code))
		if c == "" {
			return nil, apperrors.NewValidationError("language codes must be non-empty", nil)
		}
		if !languages.IsSupported(c) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("unsupported language code %q", code), nil)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		normalized = append(normalized, c)
	}

	if v.maxLanguages > 0 && len(normalized) > v.maxLanguages {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("too many target languages: %d (max %d)", len(normalized), v.maxLanguages), nil)
	}

	return normalized, nil
}

// validateMode accepts the empty string (defaulted later) and the two known
// modes; anything else is rejected rather than silently defaulted.
func (v *RequestValidator) validateMode(mode models.TranslationMode) error {
	switch mode {
	case "", models.TranslationModeFast, models.TranslationModeAccurate:
		return nil
	}
	return apperrors.NewValidationError(
		fmt.Sprintf("unknown translation mode %q", mode), nil)
}

// isSchemeAllowed checks if the URL scheme is in the allowed list
func (v *RequestValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}
