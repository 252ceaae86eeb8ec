package models

import "time"

// TranslationMode selects how multilingual output is produced
type TranslationMode string

const (
	// TranslationModeFast generates once and translates text-only for the
	// remaining languages
	TranslationModeFast TranslationMode = "fast"
	// TranslationModeAccurate regenerates the full vision analysis
	// independently per language
	TranslationModeAccurate TranslationMode = "accurate"
)

// ImageType classifies an image per the WCAG decision tree
type ImageType string

const (
	ImageTypeDecorative  ImageType = "decorative"
	ImageTypeInformative ImageType = "informative"
	ImageTypeFunctional  ImageType = "functional"
)

// AltTextCharacterLimit is the soft length limit for generated alt text.
// Outputs over the limit are flagged, never truncated.
const AltTextCharacterLimit = 125

// StageSelection names the provider and model serving one pipeline stage
type StageSelection struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// ProviderOverrides carries optional per-stage provider/model selections.
// A nil stage falls back to the configured default for that stage.
type ProviderOverrides struct {
	Vision      *StageSelection `json:"vision,omitempty"`
	Processing  *StageSelection `json:"processing,omitempty"`
	Translation *StageSelection `json:"translation,omitempty"`
}

// SourceMetadata describes where a scraped image came from. All fields are
// optional; they are supplied by the scraping collaborator and passed
// through to the record untouched.
type SourceMetadata struct {
	PageURL       string `json:"page_url,omitempty"`
	PageTitle     string `json:"page_title,omitempty"`
	ImageID       string `json:"image_id,omitempty"`
	HTMLTag       string `json:"html_tag,omitempty"`
	HTMLAttribute string `json:"html_attribute,omitempty"`
}

// GenerationRequest is the input to a single generation call
type GenerationRequest struct {
	ImageReference  string            `json:"image_reference"`
	ContextText     string            `json:"context_text,omitempty"`
	TargetLanguages []string          `json:"target_languages"`
	TranslationMode TranslationMode   `json:"translation_mode,omitempty"`
	// FullTranslationMode is the legacy boolean form of TranslationMode;
	// true is equivalent to TranslationModeAccurate. Normalized at the
	// request boundary before dispatch.
	FullTranslationMode bool              `json:"full_translation_mode,omitempty"`
	GeoBoost            bool              `json:"geo_boost,omitempty"`
	Overrides           ProviderOverrides `json:"provider_overrides,omitempty"`
	Source              SourceMetadata    `json:"source,omitempty"`
}

// EffectiveMode resolves the legacy boolean flag and the string mode into a
// single enum. The legacy flag only forces accurate mode; it never downgrades
// an explicit mode.
func (r *GenerationRequest) EffectiveMode() TranslationMode {
	if r.FullTranslationMode {
		return TranslationModeAccurate
	}
	if r.TranslationMode == TranslationModeAccurate {
		return TranslationModeAccurate
	}
	return TranslationModeFast
}

// AnalysisResult is the single-language judgment produced by one full
// vision+processing pass
type AnalysisResult struct {
	ImageType           ImageType `json:"image_type"`
	AltText             string    `json:"alt_text"`
	Reasoning           string    `json:"reasoning"`
	ExtendedDescription string    `json:"extended_description,omitempty"`
}

// LocalizedOutput is the per-language projection of an analysis result.
// CharacterCount counts characters (runes), not bytes.
type LocalizedOutput struct {
	LanguageCode   string    `json:"language_code"`
	AltText        string    `json:"alt_text"`
	Reasoning      string    `json:"reasoning"`
	ImageType      ImageType `json:"image_type"`
	CharacterCount int       `json:"character_count"`
	Succeeded      bool      `json:"succeeded"`
	// OverLengthLimit flags alt text exceeding AltTextCharacterLimit.
	// The text itself is preserved untruncated.
	OverLengthLimit bool `json:"over_length_limit,omitempty"`
}

// ModelSelection records the provider+model used for each stage of a run
type ModelSelection struct {
	Vision      StageSelection `json:"vision"`
	Processing  StageSelection `json:"processing"`
	Translation StageSelection `json:"translation,omitempty"`
}

// GenerationRecord is the final artifact of one generation call. It is
// constructed once and never mutated afterwards; persistence is the
// caller's job.
type GenerationRecord struct {
	ID                    string            `json:"id"`
	ImageReference        string            `json:"image_reference"`
	Source                SourceMetadata    `json:"source,omitempty"`
	ImageContext          string            `json:"image_context,omitempty"`
	Languages             []string          `json:"languages"`
	LocalizedOutputs      []LocalizedOutput `json:"localized_outputs"`
	AIModel               ModelSelection    `json:"ai_model"`
	TranslationMethod     TranslationMode   `json:"translation_method"`
	ProcessingTimeSeconds float64           `json:"processing_time_seconds"`
	GeoBoostApplied       bool              `json:"geo_boost_applied"`
	// FullySucceeded is false when any secondary language carries a
	// captured per-language failure.
	FullySucceeded bool      `json:"fully_succeeded"`
	Timestamp      time.Time `json:"timestamp"`
}
