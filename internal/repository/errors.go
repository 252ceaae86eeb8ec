package repository

import "errors"

var (
	// ErrInvalidImageReference indicates an invalid image reference
	ErrInvalidImageReference = errors.New("invalid image reference")

	// ErrImageNotFound indicates the image was not found
	ErrImageNotFound = errors.New("image not found")

	// ErrUnsupportedScheme indicates a reference scheme with no fetcher
	ErrUnsupportedScheme = errors.New("unsupported image reference scheme")
)
