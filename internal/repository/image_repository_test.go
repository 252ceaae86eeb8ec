package repository

import (
	"context"
	"errors"
	"testing"

	"go-alttext-generator/internal/storage"
)

type fakeFetcher struct {
	name  string
	calls []string
}

func (f *fakeFetcher) FetchImage(ctx context.Context, imageURL string) (*storage.ImageData, error) {
	f.calls = append(f.calls, imageURL)
	return &storage.ImageData{Bytes: []byte{0x01}, MIME: "image/png"}, nil
}

func TestResolveImage_SchemeDispatch(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		wantFetcher string
	}{
		{"HTTPS URL", "https://example.com/cat.jpg", "http"},
		{"HTTP URL", "http://example.com/cat.jpg", "http"},
		{"Azure blob URL", "https://acct.blob.core.windows.net/images?blob=cat.jpg", "azure"},
		{"Local path", "./testdata/cat.jpg", "local"},
		{"Bare filename", "cat.jpg", "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpF := &fakeFetcher{name: "http"}
			azureF := &fakeFetcher{name: "azure"}
			localF := &fakeFetcher{name: "local"}
			repo := NewImageRepository(httpF, azureF, localF)

			if _, err := repo.ResolveImage(context.Background(), tt.ref); err != nil {
				t.Fatalf("ResolveImage failed: %v", err)
			}

			byName := map[string]*fakeFetcher{"http": httpF, "azure": azureF, "local": localF}
			for name, f := range byName {
				want := 0
				if name == tt.wantFetcher {
					want = 1
				}
				if len(f.calls) != want {
					t.Errorf("Fetcher %s: expected %d calls, got %d", name, want, len(f.calls))
				}
			}
		})
	}
}

func TestResolveImage_BlobWithoutAzureFetcher(t *testing.T) {
	repo := NewImageRepository(&fakeFetcher{name: "http"}, nil, &fakeFetcher{name: "local"})
	_, err := repo.ResolveImage(context.Background(), "https://acct.blob.core.windows.net/images?blob=cat.jpg")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("Expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestResolveImage_LocalPathsDisabled(t *testing.T) {
	repo := NewImageRepository(&fakeFetcher{name: "http"}, nil, nil)
	_, err := repo.ResolveImage(context.Background(), "photo.png")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("Expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestValidateImageReference(t *testing.T) {
	repo := NewImageRepository(&fakeFetcher{}, nil, &fakeFetcher{})

	tests := []struct {
		name        string
		ref         string
		expectError bool
	}{
		{"Valid URL", "https://example.com/cat.jpg", false},
		{"Local path", "cat.jpg", false},
		{"Empty reference", "   ", true},
		{"URL without host", "https:///cat.jpg", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.ValidateImageReference(tt.ref)
			if tt.expectError && !errors.Is(err, ErrInvalidImageReference) {
				t.Errorf("Expected ErrInvalidImageReference, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
