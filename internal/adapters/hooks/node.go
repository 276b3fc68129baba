package hooks

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the hook installer Graft node.
const NodeID graft.ID = "adapter.hook_installer"

func init() {
	graft.Register(graft.Node[ports.HookInstaller]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HookInstaller, error) {
			return NewInstaller(), nil
		},
	})
}
