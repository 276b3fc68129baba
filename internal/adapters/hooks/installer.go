// Package hooks installs the repository git hooks.
package hooks

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/zerr"
)

const commitMsgHook = `#!/bin/sh
# Installed by loru. Enforces Conventional Commits.
pattern='^(build|chore|ci|docs|feat|fix|perf|refactor|revert|style|test)(\([a-z0-9._/-]+\))?!?: .+'
first_line=$(head -n 1 "$1")
case "$first_line" in
  Merge*|Revert*|fixup!*|squash!*) exit 0 ;;
esac
if ! printf '%s\n' "$first_line" | grep -Eq "$pattern"; then
  echo "commit message must follow Conventional Commits: type(scope): subject" >&2
  echo "got: $first_line" >&2
  exit 1
fi
`

const prePushHook = `#!/bin/sh
# Installed by loru. Runs the workspace checks before pushing.
if [ "${SKIP_LORU_HOOKS:-}" = "1" ]; then
  exit 0
fi
token="${LORU_GITHUB_TOKEN:-${GITHUB_TOKEN:-}}"
if [ -n "$token" ]; then
  export DENO_AUTH_TOKENS="${token}@raw.githubusercontent.com"
fi
exec loru dev check
`

// Installer implements ports.HookInstaller.
type Installer struct{}

// NewInstaller creates a new Installer.
func NewInstaller() *Installer {
	return &Installer{}
}

// Install writes the hook scripts into baseDir/.githooks and sets core.hooksPath.
func (i *Installer) Install(baseDir string) error {
	repo, err := git.PlainOpenWithOptions(baseDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return zerr.With(errors.Join(domain.ErrRepositoryOpenFailed, err), "dir", baseDir)
	}

	hooksDir := filepath.Join(baseDir, domain.HooksDirName)
	if err := os.MkdirAll(hooksDir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrHookInstallFailed, err), "path", hooksDir)
	}

	scripts := []struct {
		name, body string
	}{
		{"commit-msg", commitMsgHook},
		{"pre-push", prePushHook},
	}
	for _, s := range scripts {
		path := filepath.Join(hooksDir, s.name)
		if err := os.WriteFile(path, []byte(s.body), domain.ExecPerm); err != nil {
			return zerr.With(errors.Join(domain.ErrHookInstallFailed, err), "path", path)
		}
		// WriteFile keeps the mode of an existing file.
		if err := os.Chmod(path, domain.ExecPerm); err != nil {
			return zerr.With(errors.Join(domain.ErrHookInstallFailed, err), "path", path)
		}
	}

	hooksPath, err := relativeToWorktree(repo, hooksDir)
	if err != nil {
		return err
	}

	cfg, err := repo.Config()
	if err != nil {
		return errors.Join(domain.ErrHookInstallFailed, err)
	}
	cfg.Raw.Section("core").SetOption("hooksPath", hooksPath)
	if err := repo.SetConfig(cfg); err != nil {
		return errors.Join(domain.ErrHookInstallFailed, err)
	}

	return nil
}

func relativeToWorktree(repo *git.Repository, dir string) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", errors.Join(domain.ErrHookInstallFailed, err)
	}
	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrHookInstallFailed, err), "path", dir)
	}
	return filepath.ToSlash(rel), nil
}
