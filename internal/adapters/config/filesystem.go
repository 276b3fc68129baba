package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only view of the disk the loader needs.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	// Glob returns the paths matching an absolute pattern.
	Glob(pattern string) ([]string, error)
}

// OSFS implements FileSystem on the host filesystem.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is a config candidate built by the loader
	return os.ReadFile(path)
}

// Glob returns matches for the given pattern.
func (o *OSFS) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// MapFSAdapter mounts an fs.FS (typically fstest.MapFS) at an absolute root.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// NewMapFSAdapter creates a new MapFSAdapter with the given root path and filesystem.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{FS: fsys, Root: root}
}

// Stat returns file info for the given path.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile reads the entire file at path.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// Glob returns the directories matching the pattern.
// Unlike filepath.Glob, regular files are never returned since members are always directories.
func (m *MapFSAdapter) Glob(pattern string) ([]string, error) {
	relPattern := m.toRelPath(pattern)

	var matches []string
	err := fs.WalkDir(m.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		matched, err := filepath.Match(relPattern, path)
		if err != nil {
			return err
		}
		if matched && d.IsDir() {
			matches = append(matches, filepath.Join(m.Root, path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// toRelPath strips the root from an absolute path.
// Paths outside the root are returned unchanged and fail in the underlying fs.FS.
func (m *MapFSAdapter) toRelPath(absPath string) string {
	if !filepath.IsAbs(absPath) {
		return absPath
	}
	if absPath == m.Root {
		return "."
	}
	if m.Root != "/" && !strings.HasPrefix(absPath, m.Root+string(filepath.Separator)) {
		return absPath
	}
	rel := strings.TrimPrefix(absPath, m.Root)
	return strings.TrimPrefix(rel, string(filepath.Separator))
}
