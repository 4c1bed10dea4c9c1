package hips

import (
	"io"
	"net/http"
	"time"
)

// Fetcher performs the actual network I/O behind a Survey (§5's "separate
// pool"): Get blocks the calling goroutine and returns (body, httpStatus).
// Tile fetches run it on their own goroutine; Survey.EnsureProperties runs
// it on the caller's goroutine. A transport or read error maps to status
// 0; Survey treats any status other than 200 and 404 as a retryable
// network failure.
type Fetcher interface {
	Get(url string) (data []byte, status int)
}

// HTTPFetcher is the default Fetcher, a thin wrapper over net/http with a
// bounded client timeout so a stalled tile server can't leak goroutines.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a Fetcher with a 10s per-request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (f *HTTPFetcher) Get(url string) ([]byte, int) {
	resp, err := f.Client.Get(url)
	if err != nil {
		return nil, 0
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0
	}
	return body, resp.StatusCode
}
