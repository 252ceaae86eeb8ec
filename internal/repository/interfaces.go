package repository

import (
	"context"

	"go-alttext-generator/internal/storage"
)

// ImageRepository resolves opaque image references into provider-ready
// image data. References may be HTTP(S) URLs, Azure blob URLs or local
// file paths.
type ImageRepository interface {
	// ResolveImage fetches the image behind a reference
	ResolveImage(ctx context.Context, imageRef string) (*storage.ImageData, error)

	// ValidateImageReference validates if the provided reference is acceptable
	ValidateImageReference(imageRef string) error
}
