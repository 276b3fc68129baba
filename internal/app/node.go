package app

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/loru/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/loru/internal/adapters/environment" //nolint:depguard // Wired in app layer
	"go.trai.ch/loru/internal/adapters/hooks"       //nolint:depguard // Wired in app layer
	"go.trai.ch/loru/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/loru/internal/adapters/release"     //nolint:depguard // Wired in app layer
	"go.trai.ch/loru/internal/adapters/schema"      //nolint:depguard // Wired in app layer
	"go.trai.ch/loru/internal/adapters/shell"       //nolint:depguard // Wired in app layer
	"go.trai.ch/loru/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"go.trai.ch/loru/internal/core/ports"
	"go.trai.ch/loru/internal/engine/planner"
	"go.trai.ch/loru/internal/engine/runner"
	"go.trai.ch/zerr"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			planner.NodeID,
			runner.NodeID,
			shell.NodeID,
			environment.NodeID,
			schema.NodeID,
			release.NodeID,
			hooks.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID, telemetry.ProviderNodeID},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tp, err := graft.Dep[*sdktrace.TracerProvider](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log, Shutdown: tp.Shutdown}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	plan, err := graft.Dep[*planner.Planner](ctx)
	if err != nil {
		return nil, err
	}

	run, err := graft.Dep[*runner.Runner](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	env, err := graft.Dep[ports.EnvironmentResolver](ctx)
	if err != nil {
		return nil, err
	}

	schemas, err := graft.Dep[ports.SchemaFetcher](ctx)
	if err != nil {
		return nil, err
	}

	releaser, err := graft.Dep[ports.Releaser](ctx)
	if err != nil {
		return nil, err
	}

	installer, err := graft.Dep[ports.HookInstaller](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	// The process environment and working directory are read here, once.
	wd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine working directory")
	}

	a := New(loader, plan, run, executor, env, schemas, releaser, installer, log)
	return a.WithEnvironment(os.Environ(), wd), nil
}
