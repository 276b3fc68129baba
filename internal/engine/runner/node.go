package runner

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loru/internal/adapters/settings"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loru/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loru/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			logger.NodeID,
			settings.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			s, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			opts := []Option{WithJobs(s.Jobs), WithTaskTimeout(s.TaskTimeout)}
			// JSON logs carry task output as log records instead of raw streams.
			if s.LogFormat != domain.LogFormatJSON {
				opts = append(opts, WithOutput(os.Stdout, os.Stderr))
			}

			return New(executor, log, tracer, opts...), nil
		},
	})
}
