package prompt

import (
	"fmt"
	"strings"

	apperrors "go-alttext-generator/internal/errors"
	"go-alttext-generator/internal/languages"
)

// languagePlaceholder is replaced with the display name of the target
// language in every fragment that carries it.
const languagePlaceholder = "{LANGUAGE}"

// geoBoostInstruction is appended when the caller requests AI-search
// optimized phrasing. It is a fixed block, not a template file.
const geoBoostInstruction = `Additionally, optimize the alt text for generative-search consumption: ` +
	`maximize semantic density, name the concrete subject and action, prefer ` +
	`specific nouns over generic ones, and avoid filler phrases such as ` +
	`"image of" or "picture showing".`

// processingInstruction finalizes a draft analysis into the canonical JSON
// shape consumed by the normalizer.
const processingInstruction = `Review the draft image analysis below and produce the final result as a single JSON object with exactly these fields:
{"image_type": "decorative" | "informative" | "functional", "alt_text": "...", "reasoning": "...", "extended_description": "..."}

Rules:
- "alt_text" must be concise, under 125 characters, and must not start with "image of" or "picture of".
- If the image is decorative, "alt_text" must be an empty string.
- "reasoning" explains the classification in one or two sentences.
- "extended_description" is only for complex images (charts, diagrams); otherwise leave it empty.
- Respond with the JSON object only, no surrounding prose.`

// translationInstruction translates a finished alt text + reasoning pair
// without re-analyzing the image.
const translationInstruction = `Translate the alt text and reasoning below into %s. Keep the alt text concise (under 125 characters) and natural for native speakers; do not add or remove information. Respond with a single JSON object only:
{"alt_text": "...", "reasoning": "..."}`

// Assembler builds stage prompts from the configured fragments. Immutable
// after construction.
type Assembler struct {
	fragments []Fragment
	separator string
}

// NewAssembler creates an assembler over loaded fragments
func NewAssembler(fragments []Fragment, mergeSeparator string) (*Assembler, error) {
	if len(fragments) == 0 {
		return nil, apperrors.NewConfigurationError("prompt assembler needs at least one fragment", nil)
	}
	if mergeSeparator == "" {
		mergeSeparator = "\n\n"
	}
	return &Assembler{fragments: fragments, separator: mergeSeparator}, nil
}

// Vision builds the base generation prompt for a language: merged fragments
// with {LANGUAGE} substituted, optional page context, optional GEO boost.
func (a *Assembler) Vision(langCode string, geoBoost bool, contextText string) (string, error) {
	name, ok := languages.DisplayName(langCode)
	if !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported language code %q", langCode), nil)
	}

	parts := make([]string, 0, len(a.fragments))
	for _, f := range a.fragments {
		parts = append(parts, f.Text)
	}
	merged := strings.Join(parts, a.separator)

	if strings.Contains(merged, languagePlaceholder) {
		merged = strings.ReplaceAll(merged, languagePlaceholder, name)
	} else {
		// No fragment declares the placeholder; the language instruction
		// still has to reach the model.
		merged += a.separator + fmt.Sprintf("Write the alt text and reasoning in %s.", name)
	}

	if strings.TrimSpace(contextText) != "" {
		merged += a.separator + "Surrounding page context:\n" + strings.TrimSpace(contextText)
	}

	if geoBoost {
		merged += a.separator + geoBoostInstruction
	}

	return merged, nil
}

// Processing builds the text-only prompt that turns a draft vision analysis
// into the final structured result for a language.
func (a *Assembler) Processing(visionOutput, langCode string) (string, error) {
	name, ok := languages.DisplayName(langCode)
	if !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported language code %q", langCode), nil)
	}
	var b strings.Builder
	b.WriteString(processingInstruction)
	b.WriteString(a.separator)
	b.WriteString(fmt.Sprintf("The alt text and reasoning must be written in %s.", name))
	b.WriteString(a.separator)
	b.WriteString("Draft analysis:\n")
	b.WriteString(visionOutput)
	return b.String(), nil
}

// Translation builds the text-only prompt that carries a finished alt text
// and reasoning into another language.
func (a *Assembler) Translation(altText, reasoning, langCode string) (string, error) {
	name, ok := languages.DisplayName(langCode)
	if !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("unsupported language code %q", langCode), nil)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf(translationInstruction, name))
	b.WriteString(a.separator)
	b.WriteString("Alt text:\n")
	b.WriteString(altText)
	b.WriteString("\n\nReasoning:\n")
	b.WriteString(reasoning)
	return b.String(), nil
}
