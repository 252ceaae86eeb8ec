package models

// GenerateRequest is the HTTP request body for POST /generate
type GenerateRequest struct {
	ImageURL            string            `json:"image_url" binding:"required"`
	Context             string            `json:"context,omitempty"`
	Languages           []string          `json:"languages" binding:"required"`
	TranslationMode     string            `json:"translation_mode,omitempty"`
	FullTranslationMode bool              `json:"full_translation_mode,omitempty"`
	GeoBoost            bool              `json:"geo_boost,omitempty"`
	Overrides           ProviderOverrides `json:"provider_overrides,omitempty"`
	Source              SourceMetadata    `json:"source,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LanguagesResponse lists the supported language allowlist
type LanguagesResponse struct {
	Languages map[string]string `json:"languages"`
}
