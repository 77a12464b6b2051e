package domain

// Options is the configuration bag for a single transform. The core treats
// it as opaque: it is carried from the manifest to the transform capability
// unmodified. Fields are comparable so specs can be deduplicated.
type Options struct {
	Width   int
	Height  int
	Format  string
	Quality int
}

// TransformSpec is one requested derived artifact: a source, the final
// output path (the spec's identity, unique within a build), and the
// options handed to the transform capability.
type TransformSpec struct {
	Source  Source
	Output  string
	Options Options
}

// ImageConfig is global image configuration passed through to the
// transform capability for every job in a build.
type ImageConfig struct {
	// DefaultQuality applies when a spec's Options.Quality is zero.
	DefaultQuality int
	// DefaultFormat applies when a spec's Options.Format is empty.
	DefaultFormat string
}
