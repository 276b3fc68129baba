// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/loru/internal/adapters/config"
	_ "go.trai.ch/loru/internal/adapters/detector"
	_ "go.trai.ch/loru/internal/adapters/environment"
	_ "go.trai.ch/loru/internal/adapters/github"
	_ "go.trai.ch/loru/internal/adapters/hooks"
	_ "go.trai.ch/loru/internal/adapters/logger"
	_ "go.trai.ch/loru/internal/adapters/release"
	_ "go.trai.ch/loru/internal/adapters/schema"
	_ "go.trai.ch/loru/internal/adapters/settings"
	_ "go.trai.ch/loru/internal/adapters/shell"
	_ "go.trai.ch/loru/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/loru/internal/app"
	_ "go.trai.ch/loru/internal/engine/planner"
	_ "go.trai.ch/loru/internal/engine/runner"
)
