package domain

// SourceKind distinguishes where a source image's bytes come from.
type SourceKind string

const (
	// SourceLocal is a source read from the project's source root.
	SourceLocal SourceKind = "local"
	// SourceRemote is a source fetched over the network.
	SourceRemote SourceKind = "remote"
)

// Source identifies the original image content referenced by one or more
// transforms. Its identity is the path (local) or URL (remote); two specs
// naming the same identity share a single load per build.
type Source struct {
	// ID is the path or URL as written in the manifest.
	ID   string
	Kind SourceKind
}

// SourceContent is the loaded form of a Source: the raw bytes plus a
// freshness stamp. ExpiresAt is epoch milliseconds; 0 means no explicit
// expiry (always the case for local sources).
type SourceContent struct {
	Data      []byte
	ExpiresAt int64
}
