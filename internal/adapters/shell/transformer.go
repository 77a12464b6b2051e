// Package shell provides the command transform capability: source bytes
// are piped through an external image tool (vips, magick, cwebp, ...).
package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"go.trai.ch/pict/internal/core/domain"
	"go.trai.ch/pict/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Transformer = (*Transformer)(nil)

// Transformer implements ports.Transformer using os/exec. The argv
// template may reference {width}, {height}, {format} and {quality}; the
// source arrives on stdin and the artifact is read from stdout.
type Transformer struct {
	argv   []string
	logger ports.Logger
}

// New creates a command Transformer from an argv template.
func New(argv []string, logger ports.Logger) *Transformer {
	return &Transformer{
		argv:   argv,
		logger: logger,
	}
}

// Transform runs the configured tool for one spec.
func (t *Transformer) Transform(ctx context.Context, src []byte, opts domain.Options, cfg domain.ImageConfig) ([]byte, error) {
	if len(t.argv) == 0 {
		return nil, zerr.New("command transformer has no command configured")
	}

	argv := expandArgv(t.argv, opts, cfg)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // Command comes from the user's manifest
	cmd.Stdin = bytes.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			t.logger.Warn(msg)
		}
		wrapped := zerr.With(zerr.Wrap(err, "transform command failed"), "command", argv[0])
		return nil, zerr.With(wrapped, "exit_code", exitCode)
	}

	if stdout.Len() == 0 {
		return nil, zerr.With(zerr.New("transform command produced no output"), "command", argv[0])
	}
	return stdout.Bytes(), nil
}

// expandArgv substitutes the option placeholders in the argv template.
func expandArgv(template []string, opts domain.Options, cfg domain.ImageConfig) []string {
	format := opts.Format
	if format == "" {
		format = cfg.DefaultFormat
	}
	quality := opts.Quality
	if quality == 0 {
		quality = cfg.DefaultQuality
	}

	replacer := strings.NewReplacer(
		"{width}", strconv.Itoa(opts.Width),
		"{height}", strconv.Itoa(opts.Height),
		"{format}", format,
		"{quality}", strconv.Itoa(quality),
	)

	argv := make([]string, len(template))
	for i, arg := range template {
		argv[i] = replacer.Replace(arg)
	}
	return argv
}
