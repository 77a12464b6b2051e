package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pict/internal/core/domain"
)

func TestRegistry_Add(t *testing.T) {
	r := domain.NewRegistry()

	spec := domain.TransformSpec{
		Source: domain.Source{ID: "images/hero.jpg", Kind: domain.SourceLocal},
		Output: "_assets/hero_100.webp",
		Options: domain.Options{
			Width:  100,
			Format: "webp",
		},
	}
	require.NoError(t, r.Add(spec))
	require.Equal(t, 1, r.Len())

	// Same source, different output is fine.
	spec2 := spec
	spec2.Output = "_assets/hero_200.webp"
	spec2.Options.Width = 200
	require.NoError(t, r.Add(spec2))

	// Duplicate output identity is rejected.
	err := r.Add(spec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateOutput))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_BySource(t *testing.T) {
	r := domain.NewRegistry()

	local := domain.Source{ID: "images/a.png", Kind: domain.SourceLocal}
	remote := domain.Source{ID: "https://example.com/b.png", Kind: domain.SourceRemote}

	require.NoError(t, r.Add(domain.TransformSpec{Source: local, Output: "a_100.png"}))
	require.NoError(t, r.Add(domain.TransformSpec{Source: remote, Output: "b_100.png"}))
	require.NoError(t, r.Add(domain.TransformSpec{Source: local, Output: "a_200.png"}))

	groups := r.BySource()
	require.Len(t, groups, 2)
	assert.Len(t, groups[local.ID], 2)
	assert.Len(t, groups[remote.ID], 1)

	// Insertion order is preserved within a group.
	assert.Equal(t, "a_100.png", groups[local.ID][0].Output)
	assert.Equal(t, "a_200.png", groups[local.ID][1].Output)
}

func TestGenerationResult_Sum(t *testing.T) {
	results := []domain.GenerationResult{
		domain.Reused{},
		domain.Generated{SizeBefore: 2048, SizeAfter: 512},
	}

	var reused, generated int
	for _, res := range results {
		switch v := res.(type) {
		case domain.Reused:
			reused++
		case domain.Generated:
			generated++
			assert.Equal(t, int64(2048), v.SizeBefore)
			assert.Equal(t, int64(512), v.SizeAfter)
		default:
			t.Fatalf("unexpected result type %T", res)
		}
	}
	assert.Equal(t, 1, reused)
	assert.Equal(t, 1, generated)
}

func TestEnvironment_OutputPath(t *testing.T) {
	env := domain.Environment{ClientRoot: "dist/client"}
	assert.Equal(t, "dist/client/_assets/x.webp", env.OutputPath("_assets/x.webp"))

	bare := domain.Environment{}
	assert.Equal(t, "_assets/x.webp", bare.OutputPath("_assets/x.webp"))
}
