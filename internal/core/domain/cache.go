package domain

// CacheHit is a successful cache lookup: the decoded artifact bytes ready
// to be emitted at the output path.
type CacheHit struct {
	Data []byte
}

// RemoteEntry is the on-disk record for a remote-backed cache entry. The
// content is base64 so the record survives any text-safe transport; the
// expiry is epoch milliseconds taken from the original fetch.
type RemoteEntry struct {
	Content   string `json:"content"`
	ExpiresAt int64  `json:"expires_at"`
}
