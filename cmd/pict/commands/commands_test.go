package commands_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pict/cmd/pict/commands"
	"go.trai.ch/pict/internal/adapters/envprep"
	"go.trai.ch/pict/internal/adapters/fetch"
	"go.trai.ch/pict/internal/adapters/logger"
	"go.trai.ch/pict/internal/adapters/manifest"
	"go.trai.ch/pict/internal/adapters/telemetry"
	"go.trai.ch/pict/internal/app"
)

func newCLI() *commands.CLI {
	clock := clockwork.NewRealClock()
	log := logger.New()
	a := app.New(
		manifest.NewLoader(),
		envprep.New(log),
		fetch.New(clock),
		telemetry.Noop{},
		log,
		clock,
	)
	return commands.New(a)
}

// writeManifest declares a single asset generated through the cat command
// transformer, so tests run without real image fixtures.
func writeManifest(t *testing.T, base string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(base, "src", "a.png"), []byte("fake-image"), 0o644))

	path := filepath.Join(base, "pict.yaml")
	content := fmt.Sprintf(`
cacheDir: %s
sourceRoot: %s
output:
  clientRoot: %s
transformer:
  kind: command
  command: ["cat"]
assets:
  - source: a.png
    outputs:
      - path: a_100.png
        width: 100
`, filepath.Join(base, "cache"), filepath.Join(base, "src"), filepath.Join(base, "out"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCmd(t *testing.T) {
	cli := newCLI()
	cli.SetArgs([]string{"version"})
	assert.NoError(t, cli.Execute(context.Background()))
}

func TestRunCmd_GeneratesAssets(t *testing.T) {
	base := t.TempDir()
	path := writeManifest(t, base)

	cli := newCLI()
	cli.SetArgs([]string{"run", "-c", path})
	require.NoError(t, cli.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(base, "out", "a_100.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-image"), data)
}

func TestRunCmd_MissingManifest(t *testing.T) {
	cli := newCLI()
	cli.SetArgs([]string{"run", "-c", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, cli.Execute(context.Background()))
}

func TestCleanCmd(t *testing.T) {
	base := t.TempDir()
	path := writeManifest(t, base)

	cli := newCLI()
	cli.SetArgs([]string{"run", "-c", path})
	require.NoError(t, cli.Execute(context.Background()))

	cli = newCLI()
	cli.SetArgs([]string{"clean", "--outputs", "-c", path})
	require.NoError(t, cli.Execute(context.Background()))

	entries, err := os.ReadDir(filepath.Join(base, "cache"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, statErr := os.Stat(filepath.Join(base, "out", "a_100.png"))
	assert.True(t, os.IsNotExist(statErr))
}
