package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureImageFetcher fetches images from Azure blob storage. The reference
// format is a blob URL whose path names the container and whose "blob" query
// parameter names the blob.
type AzureImageFetcher struct {
	client  *azblob.Client
	timeout time.Duration
}

// NewAzureImageFetcher creates a blob fetcher authenticated with a shared
// key. timeout bounds each download; zero means no extra deadline beyond
// the caller's context.
func NewAzureImageFetcher(accountName string, accountKey string, timeout time.Duration) (ImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureImageFetcher{client: client, timeout: timeout}, nil
}

func (s *AzureImageFetcher) FetchImage(ctx context.Context, blobURL string) (*ImageData, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blob URL: %w", err)
	}
	if len(parsedURL.Path) < 2 {
		return nil, fmt.Errorf("blob URL missing container: %s", blobURL)
	}

	containerName := parsedURL.Path[1:] // Remove leading slash
	blobName := parsedURL.Query().Get("blob")
	if blobName == "" {
		return nil, fmt.Errorf("blob URL missing blob parameter: %s", blobURL)
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	data, err := io.ReadAll(io.LimitReader(retryReader, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("blob exceeds %d byte limit", maxImageBytes)
	}

	mime := SniffImageMIME(data)
	if mime == "" {
		return nil, fmt.Errorf("blob %s is not a recognized image format", blobName)
	}
	return &ImageData{Bytes: data, MIME: mime}, nil
}
