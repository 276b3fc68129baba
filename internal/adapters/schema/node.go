package schema

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/loru/internal/adapters/settings"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
)

// NodeID is the unique identifier for the schema fetcher Graft node.
const NodeID graft.ID = "adapter.schema_fetcher"

// GitHubRawHost serves the upstream schemas and accepts the GitHub token.
const GitHubRawHost = "raw.githubusercontent.com"

func init() {
	graft.Register(graft.Node[ports.SchemaFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.SchemaFetcher, error) {
			s, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(s.SchemaURL, s.CacheDir).WithAuth(GitHubRawHost, s.GitHubToken), nil
		},
	})
}
