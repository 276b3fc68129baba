package app_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/loru/internal/adapters/detector"
	"go.trai.ch/loru/internal/adapters/environment"
	"go.trai.ch/loru/internal/adapters/telemetry"
	"go.trai.ch/loru/internal/app"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports/mocks"
	"go.trai.ch/loru/internal/engine/planner"
	"go.trai.ch/loru/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	loader   *mocks.MockConfigLoader
	schemas  *mocks.MockSchemaFetcher
	releaser *mocks.MockReleaser
	hooks    *mocks.MockHookInstaller
	logger   *mocks.MockLogger
	exec     *scriptedExecutor
}

// scriptedExecutor records every command and fails those listed in fail.
type scriptedExecutor struct {
	mu       sync.Mutex
	commands []string
	fail     map[string]error
}

func (e *scriptedExecutor) Execute(_ context.Context, task *domain.Task, _, _ io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, task.Command)
	return e.fail[task.Command]
}

func newApp(t *testing.T, workDir string) (*app.App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &appMocks{
		loader:   mocks.NewMockConfigLoader(ctrl),
		schemas:  mocks.NewMockSchemaFetcher(ctrl),
		releaser: mocks.NewMockReleaser(ctrl),
		hooks:    mocks.NewMockHookInstaller(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		exec:     &scriptedExecutor{fail: make(map[string]error)},
	}

	env := environment.New()
	p := planner.New(detector.New(), env, m.logger)
	r := runner.New(m.exec, m.logger, telemetry.NewNoOpTracer())

	a := app.New(m.loader, p, r, m.exec, env, m.schemas, m.releaser, m.hooks, m.logger).
		WithEnvironment([]string{"PATH=/usr/bin"}, workDir)
	return a, m
}

func (m *appMocks) allowLogs() {
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
}

func workspace(t *testing.T, cfg *domain.WorkspaceConfig) []domain.Member {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "loru.toml")
	require.NoError(t, os.WriteFile(path, []byte("[meta]\n"), 0o600))
	return []domain.Member{{BaseDir: base, Config: cfg, Path: path}}
}

func TestCheck_NoConfigIsANoOp(t *testing.T) {
	a, m := newApp(t, "/work")
	m.loader.EXPECT().Collect("/work").Return(nil, nil)
	m.logger.EXPECT().Warn("No loru.toml found.")

	require.NoError(t, a.Check(context.Background(), domain.ParseSkip("")))
	assert.Empty(t, m.exec.commands)
}

func TestCheck_ConfigErrorAbortsBeforeAnyTask(t *testing.T) {
	a, m := newApp(t, "/work")
	m.loader.EXPECT().Collect("/work").Return(nil, domain.ErrMemberConfigInvalid)

	err := a.Check(context.Background(), domain.ParseSkip(""))
	require.ErrorIs(t, err, domain.ErrMemberConfigInvalid)
	assert.Empty(t, m.exec.commands)
}

func TestFmt_TargetConfigErrorAbortsBeforeAnyTask(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{Libs: []domain.TargetConfig{{}}})

	for name, run := range map[string]func(*app.App) error{
		"check": func(a *app.App) error { return a.Check(context.Background(), domain.ParseSkip("")) },
		"fmt":   func(a *app.App) error { return a.Fmt(context.Background(), domain.ParseSkip("")) },
	} {
		t.Run(name, func(t *testing.T) {
			a, m := newApp(t, members[0].BaseDir)
			m.allowLogs()
			m.loader.EXPECT().Collect(members[0].BaseDir).Return(members, nil)

			err := run(a)
			require.ErrorIs(t, err, domain.ErrTargetIDUnresolvable)
			assert.Empty(t, m.exec.commands)
		})
	}
}

func TestCheck_SkipAllRunsNothing(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{Check: domain.StageCommands{"check": {"make check"}}})
	require.NoError(t, os.WriteFile(filepath.Join(members[0].BaseDir, "deno.json"), []byte("{}"), 0o600))

	a, m := newApp(t, members[0].BaseDir)
	m.allowLogs()
	m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)

	require.NoError(t, a.Check(context.Background(), domain.ParseSkip("all")))
	assert.Empty(t, m.exec.commands)
}

func TestCheck_ValidatesConfigsThenAggregatesPipelineFailures(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{
		Meta:  domain.Meta{SchemaVersion: "2"},
		Check: domain.StageCommands{"precheck": {"make pre"}, "check": {"make check"}},
	})
	cfg := members[0].Path

	a, m := newApp(t, members[0].BaseDir)
	m.allowLogs()
	m.loader.EXPECT().Collect(members[0].BaseDir).Return(members, nil)
	m.schemas.EXPECT().Fetch(gomock.Any(), domain.SchemaRequest{
		Schema: domain.SchemaConfig, Version: "2", MetaFile: cfg,
	}).Return("/cache/loru-config.json", nil)

	fmtCmd := "taplo fmt --check '" + cfg + "'"
	lintCmd := "taplo lint --schema 'file:///cache/loru-config.json' '" + cfg + "'"
	m.exec.fail[fmtCmd] = errors.New("command failed: not formatted")
	m.exec.fail["make check"] = errors.New("command failed: make check (exit status 2)")

	err := a.Check(context.Background(), domain.ParseSkip(""))
	require.ErrorIs(t, err, domain.ErrRunFailed)

	assert.Equal(t, []string{"command -v taplo", fmtCmd, lintCmd, "make pre", "make check"}, m.exec.commands)

	runErr, ok := domain.AsRunError(err)
	require.True(t, ok)
	assert.Equal(t, "check", runErr.Label)
	assert.Equal(t, []domain.Failure{
		{WorkingDir: members[0].BaseDir, Message: "command failed: not formatted"},
		{WorkingDir: members[0].BaseDir, Message: "command failed: make check (exit status 2)"},
	}, runErr.Failures)
}

func TestCheck_MissingTaploIsFatal(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{Check: domain.StageCommands{"check": {"make check"}}})

	a, m := newApp(t, members[0].BaseDir)
	m.allowLogs()
	m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)
	m.schemas.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return("/cache/loru-config.json", nil)
	m.exec.fail["command -v taplo"] = errors.New("exit status 1")

	err := a.Check(context.Background(), domain.ParseSkip(""))
	require.ErrorIs(t, err, domain.ErrToolMissing)
	assert.Contains(t, err.Error(), "--skip=toml")
	assert.Equal(t, []string{"command -v taplo"}, m.exec.commands)
}

func TestFmt_UsesLocalSchemaAndMutatingCommands(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{})
	base := members[0].BaseDir
	local := domain.LocalSchemaPath(base, domain.SchemaConfig)
	require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o750))
	require.NoError(t, os.WriteFile(local, []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(base, "Cargo.toml"), []byte(""), 0o600))

	a, m := newApp(t, base)
	m.allowLogs()
	m.loader.EXPECT().Collect(base).Return(members, nil)

	require.NoError(t, a.Fmt(context.Background(), domain.ParseSkip("")))
	assert.Equal(t, []string{
		"command -v taplo",
		"taplo fmt '" + members[0].Path + "'",
		"taplo lint --schema 'file://" + local + "' '" + members[0].Path + "'",
		"cargo fmt",
		"cargo clippy",
	}, m.exec.commands)
}

func TestFmt_SkipTOMLStillRunsPipeline(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{})
	require.NoError(t, os.WriteFile(filepath.Join(members[0].BaseDir, "deno.json"), []byte("{}"), 0o600))

	a, m := newApp(t, members[0].BaseDir)
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn("Skipping TOML validation due to --skip flag (toml/all).")
	m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)

	require.NoError(t, a.Fmt(context.Background(), domain.ParseSkip("toml")))
	assert.Equal(t, []string{"deno fmt", "deno lint --fix"}, m.exec.commands)
}

func TestBuild_RunsBuildPipelineWithoutValidation(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{
		Build: domain.StageCommands{"postbuild": {"echo done"}},
	})
	require.NoError(t, os.WriteFile(filepath.Join(members[0].BaseDir, "deno.json"), []byte("{}"), 0o600))

	a, m := newApp(t, members[0].BaseDir)
	m.allowLogs()
	m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)

	require.NoError(t, a.Build(context.Background(), domain.ParseSkip("")))
	assert.Equal(t, []string{"deno check", "echo done"}, m.exec.commands)
}

func TestRunTask(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{Tasks: map[string]string{"gen": "deno task gen"}})

	t.Run("missing name", func(t *testing.T) {
		a, _ := newApp(t, members[0].BaseDir)
		require.ErrorIs(t, a.RunTask(context.Background(), ""), domain.ErrMissingTaskName)
	})

	t.Run("defined", func(t *testing.T) {
		a, m := newApp(t, members[0].BaseDir)
		m.allowLogs()
		m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)

		require.NoError(t, a.RunTask(context.Background(), "gen"))
		assert.Equal(t, []string{"deno task gen"}, m.exec.commands)
	})

	t.Run("not defined", func(t *testing.T) {
		a, m := newApp(t, members[0].BaseDir)
		m.allowLogs()
		m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)

		require.ErrorIs(t, a.RunTask(context.Background(), "deploy"), domain.ErrTaskNotDefined)
	})
}

func TestSchemas_FetchCachesEveryMember(t *testing.T) {
	members := append(
		workspace(t, &domain.WorkspaceConfig{Meta: domain.Meta{SchemaVersion: "1.2.0"}}),
		workspace(t, &domain.WorkspaceConfig{})...,
	)

	a, m := newApp(t, members[0].BaseDir)
	m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)
	m.schemas.EXPECT().Fetch(gomock.Any(), domain.SchemaRequest{
		Schema: domain.SchemaConfig, Version: "1.2.0", MetaFile: members[0].Path,
	}).Return("/cache/a.json", nil)
	m.schemas.EXPECT().Fetch(gomock.Any(), domain.SchemaRequest{
		Schema: domain.SchemaConfig, Version: domain.SchemaLatest, MetaFile: members[1].Path,
	}).Return("/cache/b.json", nil)
	m.logger.EXPECT().Info("schema cached: /cache/a.json for " + members[0].Path)
	m.logger.EXPECT().Info("schema cached: /cache/b.json for " + members[1].Path)

	require.NoError(t, a.Schemas(context.Background(), domain.SchemaFetch, domain.ParseSkip("")))
	assert.Empty(t, m.exec.commands)
}

func TestSchemas_FetchErrorIsFatal(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{})

	a, m := newApp(t, members[0].BaseDir)
	m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)
	m.schemas.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return("", domain.ErrSchemaSourceUnset)

	err := a.Schemas(context.Background(), domain.SchemaValidate, domain.ParseSkip(""))
	require.ErrorIs(t, err, domain.ErrSchemaSourceUnset)
}

func TestFetchBOM(t *testing.T) {
	members := workspace(t, &domain.WorkspaceConfig{Meta: domain.Meta{SchemaVersion: "3"}})

	a, m := newApp(t, members[0].BaseDir)
	m.loader.EXPECT().Collect(gomock.Any()).Return(members, nil)
	m.schemas.EXPECT().Fetch(gomock.Any(), domain.SchemaRequest{
		Schema: domain.SchemaBOM, Version: "3", MetaFile: members[0].Path,
	}).Return("/cache/bom.json", nil)
	m.logger.EXPECT().Info(gomock.Cond(func(msg string) bool {
		return strings.HasPrefix(msg, "bom cached: /cache/bom.json")
	}))

	require.NoError(t, a.FetchBOM(context.Background()))
}

func TestBump_DefaultsToWorkingDirectory(t *testing.T) {
	a, m := newApp(t, "/repo")
	m.releaser.EXPECT().BumpAndRelease(gomock.Any(), domain.BumpRequest{
		Dir: "/repo", Level: domain.BumpMinor, FixMissing: true,
	}).Return(&domain.Release{Version: "1.1.0", Tag: "v1.1.0", Commit: "0123456789abcdef"}, nil)
	m.logger.EXPECT().Info("Released v1.1.0 at 0123456")

	rel, err := a.Bump(context.Background(), domain.BumpRequest{Level: domain.BumpMinor, FixMissing: true})
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", rel.Version)
}

func TestBump_PropagatesErrors(t *testing.T) {
	a, m := newApp(t, "/repo")
	m.releaser.EXPECT().BumpAndRelease(gomock.Any(), gomock.Any()).Return(nil, domain.ErrTagExists)

	_, err := a.Bump(context.Background(), domain.BumpRequest{Level: domain.BumpPatch})
	require.ErrorIs(t, err, domain.ErrTagExists)
}

func TestInstallHooks(t *testing.T) {
	t.Run("every member, root last", func(t *testing.T) {
		a, m := newApp(t, "/repo/packages/app")
		m.loader.EXPECT().Collect("/repo/packages/app").Return([]domain.Member{
			{BaseDir: "/repo"},
			{BaseDir: "/repo/packages/app"},
			{BaseDir: "/repo/packages/lib"},
			{BaseDir: "/repo/packages/app"},
		}, nil)
		gomock.InOrder(
			m.hooks.EXPECT().Install("/repo/packages/app").Return(nil),
			m.hooks.EXPECT().Install("/repo/packages/lib").Return(nil),
			m.hooks.EXPECT().Install("/repo").Return(nil),
		)
		m.logger.EXPECT().Info(gomock.Cond(func(msg string) bool {
			return strings.HasPrefix(msg, "Installed git hooks in /repo")
		})).Times(3)

		require.NoError(t, a.InstallHooks(context.Background()))
	})

	t.Run("no config", func(t *testing.T) {
		a, m := newApp(t, "/repo")
		m.loader.EXPECT().Collect("/repo").Return(nil, nil)
		m.logger.EXPECT().Warn("No loru.toml found; skipping hooks.")

		require.NoError(t, a.InstallHooks(context.Background()))
	})

	t.Run("install error", func(t *testing.T) {
		a, m := newApp(t, "/repo")
		m.loader.EXPECT().Collect("/repo").Return([]domain.Member{{BaseDir: "/repo"}}, nil)
		m.hooks.EXPECT().Install("/repo").Return(domain.ErrRepositoryOpenFailed)

		require.ErrorIs(t, a.InstallHooks(context.Background()), domain.ErrRepositoryOpenFailed)
	})
}
