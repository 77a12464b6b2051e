package ports

import "context"

// Fetcher retrieves a remote source's bytes together with an expiry
// derived from the remote response's caching metadata (epoch
// milliseconds; 0 when the response carries none).
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, expiresAt int64, err error)
}
