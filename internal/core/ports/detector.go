package ports

import "go.trai.ch/loru/internal/core/domain"

// ProjectDetector classifies a directory by the toolchain markers it contains.
//
//go:generate go run go.uber.org/mock/mockgen -source=detector.go -destination=mocks/mock_detector.go -package=mocks
type ProjectDetector interface {
	// Detect returns the kind of the project in dir. It never fails; unreadable directories are KindUnknown.
	Detect(dir string) domain.ProjectKind
}
