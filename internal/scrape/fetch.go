package scrape

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const DefaultTimeout = 10 * time.Second

// Fetcher downloads the raw SPP page. It makes exactly one attempt per call.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns the response body of url. Network failures come back as
// *TransportError and non-2xx responses as *HTTPError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("source returned error status")
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	logger.Debug().Str("url", url).Int("bytes", len(body)).Msg("source fetched")
	return body, nil
}
