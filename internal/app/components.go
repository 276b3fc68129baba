package app

import (
	"context"

	"go.trai.ch/loru/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	// Shutdown flushes telemetry. It is called once before the process exits.
	Shutdown func(context.Context) error
}
