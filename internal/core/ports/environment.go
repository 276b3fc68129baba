package ports

import "go.trai.ch/loru/internal/core/domain"

// EnvironmentResolver derives the environment of a single task.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentResolver interface {
	// Resolve overlays the base environment with member and target variables and the LORU_* exports.
	Resolve(req domain.EnvRequest) map[string]string
}
