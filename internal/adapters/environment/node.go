package environment

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the environment resolver Graft node.
const NodeID graft.ID = "adapter.environment"

func init() {
	graft.Register(graft.Node[ports.EnvironmentResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvironmentResolver, error) {
			return New(), nil
		},
	})
}
