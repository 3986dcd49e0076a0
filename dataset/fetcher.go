package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

// maxBody caps every remote download.
const maxBody = 32 << 20

// FetcherConfig configures remote downloads.
type FetcherConfig struct {
	Timeout      time.Duration
	MaxAttempts  int
	InitialDelay time.Duration
}

func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{Timeout: 10 * time.Second, MaxAttempts: 3, InitialDelay: 200 * time.Millisecond}
}

// Fetcher downloads remote sources, retrying transport errors and server
// errors with exponential backoff.
type Fetcher struct {
	client  *http.Client
	retrier retry.Retry[[]byte]
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		retrier: retry.New[[]byte](retry.Config{
			MaxAttempts:        cfg.MaxAttempts,
			InitialDelay:       cfg.InitialDelay,
			BackoffPolicy:      retry.BackoffExponential,
			Multiplier:         2.0,
			NonRetryableErrors: []error{ErrPermission, ErrBadStatus},
		}),
	}
}

// Get downloads url. 401 and 403 map to ErrPermission, other 4xx answers to
// ErrBadStatus.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrEmptySource
	}
	return f.retrier.Do(ctx, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadStatus, err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, ErrPermission
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("server error %d", resp.StatusCode)
		case resp.StatusCode >= 300:
			return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxBody))
	})
}
