// Package manifest provides the pict.yaml loader.
package manifest

import (
	"os"
	"strings"

	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestLoader = (*FileLoader)(nil)

// FileLoader implements ports.ManifestLoader using a YAML file.
type FileLoader struct{}

// NewLoader creates a FileLoader.
func NewLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads a manifest from the given path and returns the transform
// registry plus the global build configuration.
func (l *FileLoader) Load(path string) (*domain.Registry, *domain.BuildConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to read manifest")
	}

	var file Pictfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, zerr.Wrap(err, "failed to parse manifest")
	}

	cfg, err := buildConfig(&file)
	if err != nil {
		return nil, nil, err
	}

	registry, err := buildRegistry(&file)
	if err != nil {
		return nil, nil, err
	}
	return registry, cfg, nil
}

func buildConfig(file *Pictfile) (*domain.BuildConfig, error) {
	kind := domain.TransformerKind(file.Transformer.Kind)
	switch kind {
	case "":
		kind = domain.TransformerBuiltin
	case domain.TransformerBuiltin, domain.TransformerCommand:
	default:
		return nil, zerr.With(zerr.New("unknown transformer kind"), "kind", file.Transformer.Kind)
	}
	if kind == domain.TransformerCommand && len(file.Transformer.Command) == 0 {
		return nil, zerr.New("command transformer requires a command")
	}
	if file.Parallelism < 0 {
		return nil, zerr.With(zerr.New("parallelism must not be negative"), "parallelism", file.Parallelism)
	}

	return &domain.BuildConfig{
		CacheDir:    file.CacheDir,
		SourceRoot:  file.SourceRoot,
		ServerRoot:  file.Output.ServerRoot,
		ClientRoot:  file.Output.ClientRoot,
		AssetsDir:   file.Output.AssetsDir,
		Parallelism: file.Parallelism,
		Image: domain.ImageConfig{
			DefaultFormat:  file.Image.DefaultFormat,
			DefaultQuality: file.Image.DefaultQuality,
		},
		Transformer: domain.TransformerConfig{
			Kind:    kind,
			Command: file.Transformer.Command,
		},
	}, nil
}

func buildRegistry(file *Pictfile) (*domain.Registry, error) {
	registry := domain.NewRegistry()

	for _, asset := range file.Assets {
		if asset.Source == "" {
			return nil, zerr.New("asset has no source")
		}
		source := domain.Source{
			ID:   asset.Source,
			Kind: sourceKind(asset.Source),
		}
		if len(asset.Outputs) == 0 {
			return nil, zerr.With(zerr.New("asset has no outputs"), "source", asset.Source)
		}

		for _, out := range asset.Outputs {
			if out.Path == "" {
				return nil, zerr.With(zerr.New("output has no path"), "source", asset.Source)
			}
			spec := domain.TransformSpec{
				Source: source,
				Output: out.Path,
				Options: domain.Options{
					Width:   out.Width,
					Height:  out.Height,
					Format:  out.Format,
					Quality: out.Quality,
				},
			}
			if err := registry.Add(spec); err != nil {
				return nil, err
			}
		}
	}
	return registry, nil
}

// sourceKind classifies a manifest source reference: URLs are remote,
// everything else resolves against the source root.
func sourceKind(ref string) domain.SourceKind {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return domain.SourceRemote
	}
	return domain.SourceLocal
}
