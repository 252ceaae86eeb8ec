package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageData is a fetched image ready for provider submission: raw bytes plus
// the MIME type detected from the content.
type ImageData struct {
	Bytes []byte
	MIME  string
}

type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) (*ImageData, error)
}

// maxImageBytes caps downloads; vision APIs reject anything near this size
// anyway.
const maxImageBytes = 20 * 1024 * 1024

// defaultFetchTimeout bounds a single download attempt when the caller
// provides no timeout.
const defaultFetchTimeout = 30 * time.Second

// HTTPImageFetcher implements ImageFetcher over plain HTTP(S)
type HTTPImageFetcher struct {
	client *http.Client
}

// NewHTTPImageFetcher creates an HTTP image fetcher. timeout bounds each
// download attempt; zero falls back to the default.
func NewHTTPImageFetcher(timeout time.Duration) ImageFetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	// Connection pooling sized for single-image downloads
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DisableCompression:     false,
		MaxResponseHeaderBytes: 4096,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,

			// Prevent redirect chains to arbitrary hosts
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) (*ImageData, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, */*")
	req.Header.Set("User-Agent", "Go-AltText-Generator/1.0")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	// Retry logic (3 attempts) - only retry on transient errors
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		resp, err = h.client.Do(req)

		if err != nil {
			lastErr = err
		}

		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			break
		}

		if err == nil && resp != nil {
			func() {
				defer resp.Body.Close()

				// 4xx client errors are non-retryable
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					lastErr = fmt.Errorf("client error: status code %d", resp.StatusCode)
					return
				}

				// 5xx server errors are retryable
				if resp.StatusCode >= 500 {
					lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
				}
			}()

			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				resp = nil
				break
			}
		}

		if attempt < 2 && (err != nil || (resp != nil && resp.StatusCode >= 500)) {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}

	if resp == nil || resp.StatusCode != http.StatusOK {
		if lastErr != nil {
			return nil, fmt.Errorf("failed to fetch image: %w", lastErr)
		}
		return nil, fmt.Errorf("failed to fetch image from %s", imageURL)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", maxImageBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image response from %s", imageURL)
	}

	mime := SniffImageMIME(data)
	if mime == "" {
		// Fall back to the server's claim for formats without a sniffer
		mime = resp.Header.Get("Content-Type")
	}
	if mime == "" {
		return nil, fmt.Errorf("unable to determine image type for %s", imageURL)
	}

	return &ImageData{Bytes: data, MIME: mime}, nil
}
