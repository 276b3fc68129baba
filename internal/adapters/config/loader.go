// Package config provides the workspace configuration collector for loru.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for loru.toml and loru.yaml files.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the host filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// Collect finds the nearest config at or above cwd and loads it with its declared members.
func (l *Loader) Collect(cwd string) ([]domain.Member, error) {
	start, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrFailedToResolvePath, err), "path", cwd)
	}

	configPath, found := l.findConfig(start)
	if !found {
		return nil, nil
	}

	root, err := l.loadMember(configPath)
	if err != nil {
		return nil, err
	}
	members := []domain.Member{*root}

	memberDirs, err := l.resolveMemberDirs(root.BaseDir, root.Config.Workspace.Members)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{root.BaseDir: {}}
	for _, dir := range memberDirs {
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}

		memberPath, ok := l.candidateIn(dir)
		if !ok {
			err := zerr.Wrap(domain.ErrMemberConfigInvalid, "no config file in member directory")
			return nil, zerr.With(err, "member", dir)
		}
		member, err := l.loadMember(memberPath)
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrMemberConfigInvalid, err), "member", dir)
		}
		members = append(members, *member)
	}

	return members, nil
}

// findConfig walks up from dir to the filesystem root and returns the first config candidate found.
func (l *Loader) findConfig(dir string) (string, bool) {
	current := dir
	for {
		if path, ok := l.candidateIn(current); ok {
			return path, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

func (l *Loader) candidateIn(dir string) (string, bool) {
	for _, name := range domain.ConfigCandidates {
		path := filepath.Join(dir, name)
		if info, err := l.FS.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func (l *Loader) loadMember(configPath string) (*domain.Member, error) {
	cfg, err := l.parse(configPath)
	if err != nil {
		return nil, err
	}
	return &domain.Member{
		BaseDir: baseDirOf(configPath),
		Config:  cfg,
		Path:    configPath,
	}, nil
}

func (l *Loader) parse(configPath string) (*domain.WorkspaceConfig, error) {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", configPath)
	}

	var file ConfigFile
	switch filepath.Ext(configPath) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &file)
		if err == nil {
			l.warnUndecoded(configPath, md.Undecoded())
		}
	}
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", configPath)
	}

	return file.toDomain(), nil
}

func (l *Loader) warnUndecoded(configPath string, keys []toml.Key) {
	if len(keys) == 0 || l.Logger == nil {
		return
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	l.Logger.Warn(fmt.Sprintf("unknown keys in %s: %s", configPath, strings.Join(names, ", ")))
}

// resolveMemberDirs expands member patterns relative to the root base dir.
// Patterns keep their declared order; matches of a single glob are sorted.
func (l *Loader) resolveMemberDirs(baseDir string, patterns []string) ([]string, error) {
	var dirs []string
	for _, pattern := range patterns {
		absPattern := filepath.Join(baseDir, pattern)

		if !hasGlobMeta(pattern) {
			info, err := l.FS.Stat(absPattern)
			if err != nil || !info.IsDir() {
				err = zerr.Wrap(domain.ErrMemberConfigInvalid, "member directory not found")
				return nil, zerr.With(err, "member", pattern)
			}
			dirs = append(dirs, absPattern)
			continue
		}

		matches, err := l.FS.Glob(absPattern)
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrMemberConfigInvalid, err), "member", pattern)
		}
		slices.Sort(matches)

		found := 0
		for _, match := range matches {
			if info, statErr := l.FS.Stat(match); statErr == nil && info.IsDir() {
				dirs = append(dirs, match)
				found++
			}
		}
		if found == 0 && l.Logger != nil {
			l.Logger.Warn(fmt.Sprintf("workspace member pattern %q matched no directories", pattern))
		}
	}
	return dirs, nil
}

// baseDirOf returns the directory a config's relative paths are resolved against.
// A config inside .loru/ belongs to the directory containing .loru.
func baseDirOf(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == domain.LoruDirName {
		return filepath.Dir(dir)
	}
	return dir
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[`)
}
