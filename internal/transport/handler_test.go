package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-alttext-generator/internal/config"
	apperrors "go-alttext-generator/internal/errors"
	"go-alttext-generator/pkg/models"
)

type fakeService struct {
	record *models.GenerationRecord
	err    error
	got    *models.GenerationRequest
}

func (f *fakeService) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationRecord, error) {
	f.got = &req
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func testConfig() *config.Config {
	return &config.Config{
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 1 << 20,
	}
}

func TestGenerateEndpoint_Success(t *testing.T) {
	svc := &fakeService{record: &models.GenerationRecord{
		ID:                "rec-1",
		ImageReference:    "https://example.com/cat.jpg",
		Languages:         []string{"en"},
		TranslationMethod: models.TranslationModeFast,
		FullySucceeded:    true,
	}}
	handler := NewHandler(svc, testConfig())

	body := `{"image_url":"https://example.com/cat.jpg","languages":["en"],"geo_boost":true}`
	req := httptest.NewRequest("POST", "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var out models.GenerationRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Response is not a record: %v", err)
	}
	if out.ID != "rec-1" {
		t.Errorf("Unexpected record ID %s", out.ID)
	}

	if svc.got == nil {
		t.Fatal("Service was not called")
	}
	if svc.got.ImageReference != "https://example.com/cat.jpg" {
		t.Errorf("Unexpected image reference %s", svc.got.ImageReference)
	}
	if !svc.got.GeoBoost {
		t.Error("GeoBoost flag was dropped")
	}
}

func TestGenerateEndpoint_InvalidBody(t *testing.T) {
	handler := NewHandler(&fakeService{}, testConfig())

	req := httptest.NewRequest("POST", "/generate", strings.NewReader(`{"image_url":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestGenerateEndpoint_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Validation error", apperrors.NewValidationError("bad language", nil), http.StatusBadRequest},
		{"Transient provider error", apperrors.NewTransientProviderError("overloaded", nil), http.StatusBadGateway},
		{"Malformed output", apperrors.NewMalformedOutputError("no usable text", nil), http.StatusUnprocessableEntity},
		{"Timeout", apperrors.NewTimeoutError("provider too slow", nil), http.StatusGatewayTimeout},
		{"Configuration error", apperrors.NewConfigurationError("bad model", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&fakeService{err: tt.err}, testConfig())
			body := `{"image_url":"https://example.com/cat.jpg","languages":["en"]}`
			req := httptest.NewRequest("POST", "/generate", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var resp models.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Error response is not JSON: %v", err)
			}
			if resp.Error == "" {
				t.Error("Error response must carry an error field")
			}
		})
	}
}

func TestLanguagesEndpoint(t *testing.T) {
	handler := NewHandler(&fakeService{}, testConfig())

	req := httptest.NewRequest("GET", "/languages", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.LanguagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Response is not JSON: %v", err)
	}
	if len(resp.Languages) != 24 {
		t.Errorf("Expected 24 languages, got %d", len(resp.Languages))
	}
	if resp.Languages["de"] != "German" {
		t.Errorf("Expected German for de, got %q", resp.Languages["de"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := NewHandler(&fakeService{}, testConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
