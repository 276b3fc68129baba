package ports

import (
	"context"
	"io"

	"go.trai.ch/loru/internal/core/domain"
)

// Executor defines the interface for executing tasks.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the task's command in its working directory with exactly the task's environment.
	//
	// It returns an error if the command cannot be launched or exits with a non-zero status.
	Execute(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) error
}
