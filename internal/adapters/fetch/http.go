// Package fetch implements the remote-fetch capability over HTTP.
package fetch

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher implements ports.Fetcher using net/http. The expiry stamp
// is derived from the response's Cache-Control max-age or, failing that,
// its Expires header.
type HTTPFetcher struct {
	client *http.Client
	clock  clockwork.Clock
}

// New creates an HTTPFetcher with a bounded request timeout.
func New(clock clockwork.Clock) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		clock:  clock,
	}
}

// Fetch downloads the source bytes and returns them with an epoch-ms
// expiry; 0 when the response carries no caching metadata.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, zerr.With(zerr.Wrap(err, "invalid source url"), "url", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, zerr.With(zerr.Wrap(err, "failed to fetch source"), "url", url)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(zerr.New("unexpected status fetching source"), "url", url)
		return nil, 0, zerr.With(statusErr, "status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, zerr.With(zerr.Wrap(err, "failed to read source body"), "url", url)
	}

	return data, f.expiryFrom(resp.Header), nil
}

// expiryFrom converts response caching metadata to an epoch-ms stamp.
// Cache-Control takes precedence over Expires; no-store and no-cache
// force an already-expired stamp even when Expires is present.
func (f *HTTPFetcher) expiryFrom(header http.Header) int64 {
	age, uncacheable := maxAge(header.Get("Cache-Control"))
	if uncacheable {
		return 0
	}
	if age > 0 {
		return f.clock.Now().Add(time.Duration(age) * time.Second).UnixMilli()
	}
	if expires := header.Get("Expires"); expires != "" {
		if t, err := http.ParseTime(expires); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// maxAge extracts the max-age directive from a Cache-Control value.
func maxAge(value string) (age int64, uncacheable bool) {
	for _, directive := range strings.Split(value, ",") {
		directive = strings.TrimSpace(strings.ToLower(directive))
		switch {
		case directive == "no-store" || directive == "no-cache":
			return 0, true
		case strings.HasPrefix(directive, "max-age="):
			if n, err := strconv.ParseInt(strings.TrimPrefix(directive, "max-age="), 10, 64); err == nil && n > 0 {
				age = n
			}
		}
	}
	return age, false
}
