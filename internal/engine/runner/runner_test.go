package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports/mocks"
	"go.trai.ch/pict/internal/engine/runner"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type captureLogger struct {
	warnings []string
}

func (l *captureLogger) Info(string) {}
func (l *captureLogger) Warn(msg string) { l.warnings = append(l.warnings, msg) }
func (l *captureLogger) Error(error) {}

func testEnv(t *testing.T) *domain.Environment {
	t.Helper()
	return &domain.Environment{
		ClientRoot:   t.TempDir(),
		CacheEnabled: true,
	}
}

func localSpec(output string) domain.TransformSpec {
	return domain.TransformSpec{
		Source:  domain.Source{ID: "images/a.png", Kind: domain.SourceLocal},
		Output:  output,
		Options: domain.Options{Width: 100, Format: "png"},
	}
}

func TestRunner_GenerateWritesArtifactAndCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnv(t)
	spec := localSpec("a_100.png")
	content := &domain.SourceContent{Data: []byte("source")}

	transformer := mocks.NewMockTransformer(ctrl)
	transformer.EXPECT().
		Transform(gomock.Any(), []byte("source"), spec.Options, env.Image).
		Return([]byte("artifact"), nil)

	store := mocks.NewMockCacheStore(ctrl)
	store.EXPECT().
		Write("a_100.png", domain.SourceLocal, []byte("artifact"), int64(0)).
		Return(nil)

	r := runner.New(transformer, store, &captureLogger{})
	artifact, err := r.Generate(context.Background(), spec, content, env)
	require.NoError(t, err)
	assert.Equal(t, []byte("artifact"), artifact)

	onDisk, readErr := os.ReadFile(env.OutputPath("a_100.png"))
	require.NoError(t, readErr)
	assert.Equal(t, []byte("artifact"), onDisk)
}

func TestRunner_CacheWriteFailureStillEmitsArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnv(t)
	spec := localSpec("a_100.png")

	transformer := mocks.NewMockTransformer(ctrl)
	transformer.EXPECT().
		Transform(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte("artifact"), nil)

	store := mocks.NewMockCacheStore(ctrl)
	store.EXPECT().
		Write(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(zerr.New("disk full"))

	log := &captureLogger{}
	r := runner.New(transformer, store, log)

	_, err := r.Generate(context.Background(), spec, &domain.SourceContent{Data: []byte("s")}, env)
	require.NoError(t, err)

	// The final artifact write is guaranteed despite the cache failure.
	onDisk, readErr := os.ReadFile(env.OutputPath("a_100.png"))
	require.NoError(t, readErr)
	assert.Equal(t, []byte("artifact"), onDisk)

	require.Len(t, log.warnings, 1)
	assert.True(t, strings.Contains(log.warnings[0], "cache write"))
}

func TestRunner_CachingDisabledSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnv(t)
	env.CacheEnabled = false
	spec := localSpec("a_100.png")

	transformer := mocks.NewMockTransformer(ctrl)
	transformer.EXPECT().
		Transform(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte("artifact"), nil)

	// No store expectations: Write must not be called.
	store := mocks.NewMockCacheStore(ctrl)

	r := runner.New(transformer, store, &captureLogger{})
	_, err := r.Generate(context.Background(), spec, &domain.SourceContent{Data: []byte("s")}, env)
	require.NoError(t, err)

	_, readErr := os.ReadFile(env.OutputPath("a_100.png"))
	assert.NoError(t, readErr)
}

func TestRunner_TransformFailureLeavesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnv(t)
	spec := localSpec("broken.png")

	transformer := mocks.NewMockTransformer(ctrl)
	transformer.EXPECT().
		Transform(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, zerr.New("unsupported format"))

	store := mocks.NewMockCacheStore(ctrl)

	r := runner.New(transformer, store, &captureLogger{})
	_, err := r.Generate(context.Background(), spec, &domain.SourceContent{Data: []byte("s")}, env)
	require.Error(t, err)

	// No artifact and no stray temp files.
	entries, readErr := os.ReadDir(env.ClientRoot)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRunner_EmitCachedBytes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnv(t)
	r := runner.New(mocks.NewMockTransformer(ctrl), mocks.NewMockCacheStore(ctrl), &captureLogger{})

	require.NoError(t, r.Emit("nested/dir/b.png", []byte("cached"), env))

	onDisk, err := os.ReadFile(filepath.Join(env.ClientRoot, "nested/dir/b.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), onDisk)
}

func TestRunner_RemoteExpiryFlowsIntoCacheWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := testEnv(t)
	spec := domain.TransformSpec{
		Source: domain.Source{ID: "https://example.com/a.png", Kind: domain.SourceRemote},
		Output: "a_100.png",
	}
	content := &domain.SourceContent{Data: []byte("s"), ExpiresAt: 1234567}

	transformer := mocks.NewMockTransformer(ctrl)
	transformer.EXPECT().
		Transform(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte("artifact"), nil)

	store := mocks.NewMockCacheStore(ctrl)
	store.EXPECT().
		Write("a_100.png", domain.SourceRemote, []byte("artifact"), int64(1234567)).
		Return(nil)

	r := runner.New(transformer, store, &captureLogger{})
	_, err := r.Generate(context.Background(), spec, content, env)
	require.NoError(t, err)
}
