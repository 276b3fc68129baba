package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the project detector Graft node.
const NodeID graft.ID = "adapter.detector"

func init() {
	graft.Register(graft.Node[ports.ProjectDetector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProjectDetector, error) {
			return New(), nil
		},
	})
}
