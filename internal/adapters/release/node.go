package release

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/adapters/github"
	"go.trai.ch/loru/internal/adapters/logger"
	"go.trai.ch/loru/internal/adapters/settings"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the releaser Graft node.
const NodeID graft.ID = "adapter.releaser"

func init() {
	graft.Register(graft.Node[ports.Releaser]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{github.NodeID, logger.NodeID, settings.NodeID},
		Run: func(ctx context.Context) (ports.Releaser, error) {
			publisher, err := graft.Dep[ports.ReleasePublisher](ctx)
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
			return NewReleaser(publisher, log).WithToken(s.GitHubToken), nil
		},
	})
}
