package models

import "testing"

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name   string
		mode   TranslationMode
		legacy bool
		want   TranslationMode
	}{
		{"Default is fast", "", false, TranslationModeFast},
		{"Explicit fast", TranslationModeFast, false, TranslationModeFast},
		{"Explicit accurate", TranslationModeAccurate, false, TranslationModeAccurate},
		{"Legacy flag forces accurate", "", true, TranslationModeAccurate},
		{"Legacy flag never downgrades explicit accurate", TranslationModeAccurate, true, TranslationModeAccurate},
		{"Legacy flag wins over explicit fast", TranslationModeFast, true, TranslationModeAccurate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := GenerationRequest{TranslationMode: tt.mode, FullTranslationMode: tt.legacy}
			if got := req.EffectiveMode(); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
