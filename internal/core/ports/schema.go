package ports

import (
	"context"

	"go.trai.ch/loru/internal/core/domain"
)

// SchemaFetcher resolves schema documents to local files.
//
//go:generate go run go.uber.org/mock/mockgen -source=schema.go -destination=mocks/mock_schema.go -package=mocks
type SchemaFetcher interface {
	// Fetch returns the path of a local copy of the requested schema, downloading it into the cache if needed.
	Fetch(ctx context.Context, req domain.SchemaRequest) (string, error)
}
