package github

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/adapters/logger"
	"go.trai.ch/loru/internal/adapters/settings"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the release publisher Graft node.
const NodeID graft.ID = "adapter.release_publisher"

func init() {
	graft.Register(graft.Node[ports.ReleasePublisher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ReleasePublisher, error) {
			s, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPublisher(context.Background(), s.GitHubToken, log), nil
		},
	})
}
