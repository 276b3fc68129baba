package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/adapters/settings"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			s, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			l := New()
			l.SetJSON(s.LogFormat == domain.LogFormatJSON)
			return l, nil
		},
	})
}
