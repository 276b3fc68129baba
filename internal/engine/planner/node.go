package planner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/adapters/detector"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loru/internal/adapters/environment" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loru/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "engine.planner"

func init() {
	graft.Register(graft.Node[*Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{detector.NodeID, environment.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Planner, error) {
			det, err := graft.Dep[ports.ProjectDetector](ctx)
			if err != nil {
				return nil, err
			}
			env, err := graft.Dep[ports.EnvironmentResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(det, env, log), nil
		},
	})
}
