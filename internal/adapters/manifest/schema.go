package manifest

// Pictfile represents the structure of the pict.yaml manifest.
type Pictfile struct {
	Version     string         `yaml:"version"`
	CacheDir    string         `yaml:"cacheDir"`
	SourceRoot  string         `yaml:"sourceRoot"`
	Parallelism int            `yaml:"parallelism"`
	Output      OutputDTO      `yaml:"output"`
	Image       ImageDTO       `yaml:"image"`
	Transformer TransformerDTO `yaml:"transformer"`
	Assets      []AssetDTO     `yaml:"assets"`
}

// OutputDTO configures the output trees.
type OutputDTO struct {
	ServerRoot string `yaml:"serverRoot"`
	ClientRoot string `yaml:"clientRoot"`
	AssetsDir  string `yaml:"assetsDir"`
}

// ImageDTO is the global image configuration.
type ImageDTO struct {
	DefaultFormat  string `yaml:"defaultFormat"`
	DefaultQuality int    `yaml:"defaultQuality"`
}

// TransformerDTO selects the transform capability.
type TransformerDTO struct {
	Kind    string   `yaml:"kind"`
	Command []string `yaml:"command"`
}

// AssetDTO declares one source and its requested outputs.
type AssetDTO struct {
	Source  string            `yaml:"source"`
	Outputs []TransformOutDTO `yaml:"outputs"`
}

// TransformOutDTO declares one derived artifact of a source.
type TransformOutDTO struct {
	Path    string `yaml:"path"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Format  string `yaml:"format"`
	Quality int    `yaml:"quality"`
}
