package domain

// TransformerKind selects which transform capability a build uses.
type TransformerKind string

const (
	// TransformerBuiltin is the in-process image transformer.
	TransformerBuiltin TransformerKind = "builtin"
	// TransformerCommand pipes source bytes through an external tool.
	TransformerCommand TransformerKind = "command"
)

// TransformerConfig names the transform capability and, for the command
// kind, the argv template to run.
type TransformerConfig struct {
	Kind    TransformerKind
	Command []string
}

// BuildConfig is the manifest's global section after parsing: everything
// the preparer needs to compute an Environment. Transform specs live in
// the Registry, not here.
type BuildConfig struct {
	CacheDir    string
	SourceRoot  string
	ServerRoot  string
	ClientRoot  string
	AssetsDir   string
	Parallelism int
	Image       ImageConfig
	Transformer TransformerConfig
}
