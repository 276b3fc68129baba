// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/loru/internal/core/domain"

// ConfigLoader defines the interface for collecting the workspace configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Collect walks up from cwd to the nearest config file and loads it along with its workspace members.
	//
	// The first returned member is the workspace root, followed by the declared members in declaration
	// order. Glob patterns expand to their sorted matches.
	// An empty result with a nil error means no config file was found.
	Collect(cwd string) ([]domain.Member, error)
}
