package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arbovm/levenshtein"

	apperrors "go-alttext-generator/internal/errors"
	"go-alttext-generator/pkg/models"
)

// echoSimilarityThreshold flags a "translation" that is nearly identical to
// its source text: the model echoed the input instead of translating.
const echoSimilarityThreshold = 0.9

// Normalizer turns raw model output into canonical results. Stateless and
// safe for concurrent use.
type Normalizer struct{}

func New() *Normalizer {
	return &Normalizer{}
}

// structuredResult mirrors the JSON shape the processing prompt asks for
type structuredResult struct {
	ImageType           string `json:"image_type"`
	AltText             string `json:"alt_text"`
	Reasoning           string `json:"reasoning"`
	ExtendedDescription string `json:"extended_description"`
}

// Normalize parses raw model output into an AnalysisResult, preferring the
// structured JSON path and falling back to plain-text extraction. Decorative
// results are forced to empty alt text; unknown classifications are coerced
// to informative.
func (n *Normalizer) Normalize(raw string) (models.AnalysisResult, error) {
	result, err := ParseStructured(raw)
	if err != nil {
		result, err = ParsePlainTextFallback(raw)
		if err != nil {
			return models.AnalysisResult{}, err
		}
	}

	result = coerceImageType(result)

	if result.ImageType == models.ImageTypeDecorative {
		// Decorative images must carry empty alt text per WCAG, whatever
		// the model returned.
		result.AltText = ""
		return result, nil
	}

	if strings.TrimSpace(result.AltText) == "" {
		// Structured output claiming non-decorative with no alt text. The
		// plain-text fallback would only echo the JSON blob back as alt
		// text, so this is unusable output.
		return models.AnalysisResult{}, apperrors.NewMalformedOutputError(
			"model returned no usable alt text", nil)
	}

	result.AltText = strings.TrimSpace(result.AltText)
	return result, nil
}

// ParseStructured extracts and decodes the JSON object in raw model output.
// Handles fenced code blocks and surrounding prose.
func ParseStructured(raw string) (models.AnalysisResult, error) {
	payload, ok := extractJSONObject(raw)
	if !ok {
		return models.AnalysisResult{}, apperrors.NewMalformedOutputError(
			"no JSON object in model output", nil)
	}

	var sr structuredResult
	if err := json.Unmarshal([]byte(payload), &sr); err != nil {
		return models.AnalysisResult{}, apperrors.NewMalformedOutputError(
			"model output JSON does not decode", err)
	}

	return models.AnalysisResult{
		ImageType:           models.ImageType(strings.ToLower(strings.TrimSpace(sr.ImageType))),
		AltText:             sr.AltText,
		Reasoning:           strings.TrimSpace(sr.Reasoning),
		ExtendedDescription: strings.TrimSpace(sr.ExtendedDescription),
	}, nil
}

// ParsePlainTextFallback treats the entire output as alt text. Some
// providers return unstructured prose despite JSON instructions; this lossy
// path keeps those responses usable. Classification defaults to informative.
func ParsePlainTextFallback(raw string) (models.AnalysisResult, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return models.AnalysisResult{}, apperrors.NewMalformedOutputError(
			"model returned an empty response", nil)
	}
	return models.AnalysisResult{
		ImageType: models.ImageTypeInformative,
		AltText:   text,
		Reasoning: "",
	}, nil
}

// TranslationResult is the normalized output of one translation-stage call
type TranslationResult struct {
	AltText   string
	Reasoning string
	// Echoed flags output nearly identical to the source text, i.e. the
	// model returned the input untranslated.
	Echoed bool
}

// translationPayload mirrors the JSON shape the translation prompt asks for
type translationPayload struct {
	AltText   string `json:"alt_text"`
	Reasoning string `json:"reasoning"`
}

// NormalizeTranslation parses a translation-stage response, falling back to
// treating the whole text as the translated alt text.
func (n *Normalizer) NormalizeTranslation(raw, sourceAltText string) (TranslationResult, error) {
	var result TranslationResult

	if payload, ok := extractJSONObject(raw); ok {
		var tp translationPayload
		if err := json.Unmarshal([]byte(payload), &tp); err == nil && strings.TrimSpace(tp.AltText) != "" {
			result.AltText = strings.TrimSpace(tp.AltText)
			result.Reasoning = strings.TrimSpace(tp.Reasoning)
		}
	}

	if result.AltText == "" {
		text := strings.TrimSpace(raw)
		if text == "" {
			return TranslationResult{}, apperrors.NewMalformedOutputError(
				"translation response is empty", nil)
		}
		result.AltText = text
	}

	result.Echoed = isEcho(sourceAltText, result.AltText)
	if result.Echoed {
		note := "Translation appears identical to the source text."
		if result.Reasoning == "" {
			result.Reasoning = note
		} else {
			result.Reasoning = result.Reasoning + " " + note
		}
	}

	return result, nil
}

// ExceedsCharacterLimit reports whether alt text runs over the soft limit.
// Counted in characters, not bytes.
func ExceedsCharacterLimit(altText string) bool {
	return utf8.RuneCountInString(altText) > models.AltTextCharacterLimit
}

// coerceImageType maps unknown classifications to informative with a
// reasoning note. Classification errors are soft; they never fail
// validation.
func coerceImageType(result models.AnalysisResult) models.AnalysisResult {
	switch result.ImageType {
	case models.ImageTypeDecorative, models.ImageTypeInformative, models.ImageTypeFunctional:
		return result
	}
	note := fmt.Sprintf("Unrecognized image type %q; defaulting to informative.", result.ImageType)
	if result.Reasoning == "" {
		result.Reasoning = note
	} else {
		result.Reasoning = result.Reasoning + " " + note
	}
	result.ImageType = models.ImageTypeInformative
	return result
}

// extractJSONObject locates the outermost JSON object in text, tolerating
// markdown code fences and surrounding prose.
func extractJSONObject(raw string) (string, bool) {
	text := strings.TrimSpace(raw)

	// Strip a markdown fence if the whole payload is fenced
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// isEcho reports whether candidate is nearly identical to source by
// normalized Levenshtein similarity.
func isEcho(source, candidate string) bool {
	src := strings.ToLower(strings.TrimSpace(source))
	cand := strings.ToLower(strings.TrimSpace(candidate))
	if src == "" || cand == "" {
		return false
	}
	longest := len(src)
	if len(cand) > longest {
		longest = len(cand)
	}
	distance := levenshtein.Distance(src, cand)
	similarity := 1.0 - float64(distance)/float64(longest)
	return similarity >= echoSimilarityThreshold
}
