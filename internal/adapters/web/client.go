package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySize bodies beyond this are truncated before parsing.
const maxBodySize = 1 << 20

const defaultTimeout = 10 * time.Second

// NewHTTPClient کلاینت مشترک برای درخواست‌های خروجی
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func newRequest(ctx context.Context, method, target, userAgent string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, target, err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return req, nil
}

// drain lets the transport reuse the connection.
func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	resp.Body.Close()
}
