package domain

import "path/filepath"

// Environment is the per-build record computed once by the preparer. It
// fixes the cache location, output roots, and image configuration for
// every job in the build.
type Environment struct {
	// CacheDir is the directory holding cache entries. Only meaningful
	// when CacheEnabled is true.
	CacheDir string
	// CacheEnabled is false when the cache directory could not be
	// created; the build then regenerates every asset.
	CacheEnabled bool

	// SourceRoot is the directory local source paths resolve against.
	SourceRoot string
	// ServerRoot and ClientRoot are the two output trees a build can
	// target; output identities are resolved against ClientRoot unless
	// the manifest says otherwise.
	ServerRoot string
	ClientRoot string
	// AssetsDir is the subfolder under the output roots that holds
	// generated assets.
	AssetsDir string

	Image ImageConfig

	// Parallelism bounds the number of concurrently executing jobs.
	Parallelism int
}

// OutputPath resolves an output identity to its location on disk.
func (e *Environment) OutputPath(output string) string {
	if e.ClientRoot == "" {
		return output
	}
	return filepath.Join(e.ClientRoot, output)
}
