package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	apperrors "go-alttext-generator/internal/errors"
)

// newLLMClient builds an HTTP client tuned for model API calls: generous
// header timeout to survive slow time-to-first-byte, no overall client
// timeout so long generations are bounded by the request context instead.
func newLLMClient() *http.Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 120 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}

	return &http.Client{
		Timeout:   0,
		Transport: tr,
	}
}

// classifyHTTPStatus maps a provider response status to the error taxonomy.
// Rate limits, request timeouts and 5xx are transient; everything else in
// the 4xx range (auth, quota, malformed request) is permanent.
func classifyHTTPStatus(kind Kind, status int, body []byte) error {
	msg := fmt.Sprintf("%s returned status %d: %s", kind, status, truncateBytes(body, 512))
	switch {
	case status == http.StatusTooManyRequests || status == http.StatusRequestTimeout:
		return apperrors.NewTransientProviderError(msg, nil)
	case status >= 500:
		return apperrors.NewTransientProviderError(msg, nil)
	default:
		return apperrors.NewPermanentProviderError(msg, nil)
	}
}

// classifyTransportError maps a failed round trip to the error taxonomy.
// Context deadlines and network timeouts are transient; a caller-cancelled
// context is passed through untouched so cancellation stays observable.
func classifyTransportError(kind Kind, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(fmt.Sprintf("%s call timed out", kind), err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.NewTimeoutError(fmt.Sprintf("%s call timed out", kind), err)
	}
	return apperrors.NewTransientProviderError(fmt.Sprintf("%s call failed", kind), err)
}

func truncateBytes(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
