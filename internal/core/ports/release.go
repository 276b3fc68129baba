package ports

import (
	"context"

	"go.trai.ch/loru/internal/core/domain"
)

// Releaser bumps a manifest version, commits it and tags the release.
//
//go:generate go run go.uber.org/mock/mockgen -source=release.go -destination=mocks/mock_release.go -package=mocks
type Releaser interface {
	BumpAndRelease(ctx context.Context, req domain.BumpRequest) (*domain.Release, error)
}

// ReleasePublisher creates hosted releases for pushed tags.
type ReleasePublisher interface {
	// EnsureRelease creates the release if it does not exist yet and reports whether it did.
	EnsureRelease(ctx context.Context, target domain.ReleaseTarget) (bool, error)
}
