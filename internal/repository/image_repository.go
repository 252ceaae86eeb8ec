package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go-alttext-generator/internal/storage"
)

// imageRepository dispatches to a fetcher by reference scheme
type imageRepository struct {
	httpFetcher  storage.ImageFetcher
	azureFetcher storage.ImageFetcher
	localFetcher storage.ImageFetcher
}

// NewImageRepository creates an image repository over the given fetchers.
// azureFetcher may be nil when blob storage is not configured.
func NewImageRepository(httpFetcher, azureFetcher, localFetcher storage.ImageFetcher) ImageRepository {
	return &imageRepository{
		httpFetcher:  httpFetcher,
		azureFetcher: azureFetcher,
		localFetcher: localFetcher,
	}
}

// ResolveImage fetches the image behind a reference
func (r *imageRepository) ResolveImage(ctx context.Context, imageRef string) (*storage.ImageData, error) {
	if err := r.ValidateImageReference(imageRef); err != nil {
		return nil, err
	}

	switch {
	case isBlobReference(imageRef):
		if r.azureFetcher == nil {
			return nil, fmt.Errorf("%w: blob storage not configured", ErrUnsupportedScheme)
		}
		return r.azureFetcher.FetchImage(ctx, imageRef)
	case strings.HasPrefix(imageRef, "http://"), strings.HasPrefix(imageRef, "https://"):
		return r.httpFetcher.FetchImage(ctx, imageRef)
	default:
		if r.localFetcher == nil {
			return nil, fmt.Errorf("%w: local paths not allowed", ErrUnsupportedScheme)
		}
		return r.localFetcher.FetchImage(ctx, imageRef)
	}
}

// ValidateImageReference validates if the provided reference is acceptable
func (r *imageRepository) ValidateImageReference(imageRef string) error {
	if strings.TrimSpace(imageRef) == "" {
		return ErrInvalidImageReference
	}
	if strings.HasPrefix(imageRef, "http://") || strings.HasPrefix(imageRef, "https://") {
		parsed, err := url.Parse(imageRef)
		if err != nil || parsed.Host == "" {
			return ErrInvalidImageReference
		}
	}
	return nil
}

// isBlobReference reports whether the reference targets Azure blob storage
func isBlobReference(ref string) bool {
	return strings.Contains(ref, ".blob.core.windows.net/") && strings.Contains(ref, "blob=")
}
