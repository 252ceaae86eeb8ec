package storage

import (
	"context"
	"fmt"
	"os"
)

// LocalImageFetcher reads images from the local filesystem. Used by the CLI
// where image references are plain paths.
type LocalImageFetcher struct{}

func NewLocalImageFetcher() ImageFetcher {
	return &LocalImageFetcher{}
}

func (l *LocalImageFetcher) FetchImage(ctx context.Context, path string) (*ImageData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat image file: %w", err)
	}
	if info.Size() > maxImageBytes {
		return nil, fmt.Errorf("image file exceeds %d byte limit", maxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read image file: %w", err)
	}

	mime := SniffImageMIME(data)
	if mime == "" {
		return nil, fmt.Errorf("%s is not a recognized image format", path)
	}
	return &ImageData{Bytes: data, MIME: mime}, nil
}
