// Package detector classifies project directories by their toolchain marker files.
package detector

import (
	"os"
	"path/filepath"

	"go.trai.ch/loru/internal/core/domain"
)

// Detector implements ports.ProjectDetector by checking marker files on disk.
// Results are not cached; markers are re-read on every call.
type Detector struct{}

// New creates a new Detector.
func New() *Detector {
	return &Detector{}
}

// Detect returns the first kind, in domain.Kinds order, with a marker file directly inside dir.
func (d *Detector) Detect(dir string) domain.ProjectKind {
	for _, kind := range domain.Kinds {
		for _, marker := range kind.Markers() {
			if isFile(filepath.Join(dir, marker)) {
				return kind
			}
		}
	}
	return domain.KindUnknown
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
