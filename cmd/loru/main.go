// Package main is the entry point for the loru workspace tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/cmd/loru/commands"
	"go.trai.ch/loru/internal/app"
	_ "go.trai.ch/loru/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	defer func() {
		// Spans still buffered are flushed even when the run was interrupted.
		_ = components.Shutdown(context.WithoutCancel(ctx))
	}()

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		// Aggregated run failures are printed here, once, with every failing task.
		components.Logger.Error(err)
		return 1
	}
	return 0
}
