// Package main is the entry point for the pict CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/pict/cmd/pict/commands"
	"go.trai.ch/pict/internal/app"
	"go.trai.ch/pict/internal/core/domain"
	_ "go.trai.ch/pict/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Reporter.Close() }()

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrGenerationFailed) {
			// Per-job errors were already aggregated with context; the
			// zerr report carries them all.
			_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
