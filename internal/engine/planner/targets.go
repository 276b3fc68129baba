package planner

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResolveTargets expands the plugin, page, lib and bin declarations of cfg, in that order,
// into targets with absolute paths below baseDir. Targets are never de-duplicated.
func ResolveTargets(cfg *domain.WorkspaceConfig, baseDir string) ([]domain.Target, error) {
	if cfg == nil {
		return nil, nil
	}

	groups := []struct {
		kind    domain.TargetKind
		configs []domain.TargetConfig
	}{
		{domain.TargetPlugin, cfg.Plugins},
		{domain.TargetPage, cfg.Pages},
		{domain.TargetLib, cfg.Libs},
		{domain.TargetBin, cfg.Bins},
	}

	var targets []domain.Target
	for _, g := range groups {
		for i := range g.configs {
			tc := &g.configs[i]

			id, err := targetID(tc)
			if err != nil {
				err = zerr.Wrap(err, fmt.Sprintf("invalid %s declaration #%d", g.kind, i+1))
				return nil, zerr.With(zerr.With(err, "kind", g.kind), "index", i)
			}

			rel := tc.Path
			if rel == "" {
				rel = "."
			}
			path, err := filepath.Abs(filepath.Join(baseDir, rel))
			if err != nil {
				return nil, zerr.With(errors.Join(domain.ErrFailedToResolvePath, err), "path", rel)
			}

			targets = append(targets, domain.Target{ID: id, Path: path, Kind: g.kind, Config: tc})
		}
	}
	return targets, nil
}

// targetID falls back from the explicit id to the name and then to the declared path.
func targetID(tc *domain.TargetConfig) (string, error) {
	switch {
	case tc.ID != "":
		return tc.ID, nil
	case tc.Name != "":
		return tc.Name, nil
	case tc.Path != "":
		return filepath.ToSlash(filepath.Clean(tc.Path)), nil
	default:
		return "", domain.ErrTargetIDUnresolvable
	}
}
