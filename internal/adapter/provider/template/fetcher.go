// Package template downloads externally hosted template PDFs.
package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/signroom-backend/internal/domain"
)

const retryDelay = 500 * time.Millisecond

// ErrTooLarge is returned when a template exceeds the configured size cap.
var ErrTooLarge = errors.New("template too large")

// Fetcher downloads template PDFs over HTTP(S).
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	log        *slog.Logger
}

// NewFetcher creates a Fetcher. timeout bounds each attempt; maxBytes caps
// the response body.
func NewFetcher(logger *slog.Logger, timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		log:        logger.With("adapter", "template_fetcher"),
	}
}

// Fetch downloads the template at rawURL. A 404 or 410 yields
// domain.ErrNotFound.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("template: unsupported url: %w", domain.ErrValidation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("template: create request: %w", err)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := f.doWithRetry(ctx, req)
	if err != nil {
		f.log.ErrorContext(ctx, "template request failed", slog.String("host", u.Host), slog.String("error", err.Error()))
		return nil, fmt.Errorf("template: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("template: %w", domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("template: unexpected status %d", resp.StatusCode)
	case resp.ContentLength > f.maxBytes:
		return nil, fmt.Errorf("template: %d bytes: %w", resp.ContentLength, ErrTooLarge)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("template: read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("template: %w", ErrTooLarge)
	}

	f.log.DebugContext(ctx, "template fetched", slog.String("host", u.Host), slog.Int("bytes", len(body)))
	return body, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (f *Fetcher) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := f.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	f.log.WarnContext(ctx, "template retry", slog.String("host", req.URL.Host), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	timer := time.NewTimer(retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return f.httpClient.Do(req)
}
