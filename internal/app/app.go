// Package app implements the application layer for loru.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
	"go.trai.ch/loru/internal/engine/planner"
	"go.trai.ch/loru/internal/engine/runner"
	"go.trai.ch/zerr"
)

// StageSchema is the stage config validation tasks run under.
const StageSchema domain.Stage = "schema"

const (
	noConfigWarning = "No loru.toml found."
	taplo           = "taplo"
	taploInstall    = "cargo install taplo-cli or brew install taplo"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	planner      *planner.Planner
	runner       *runner.Runner
	executor     ports.Executor
	env          ports.EnvironmentResolver
	schemas      ports.SchemaFetcher
	releaser     ports.Releaser
	hooks        ports.HookInstaller
	logger       ports.Logger

	environ []string
	workDir string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	plan *planner.Planner,
	run *runner.Runner,
	executor ports.Executor,
	env ports.EnvironmentResolver,
	schemas ports.SchemaFetcher,
	releaser ports.Releaser,
	hooks ports.HookInstaller,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		planner:      plan,
		runner:       run,
		executor:     executor,
		env:          env,
		schemas:      schemas,
		releaser:     releaser,
		hooks:        hooks,
		logger:       log,
	}
}

// WithEnvironment sets the inherited environment and working directory every
// operation runs against. They are captured once at startup.
func (a *App) WithEnvironment(environ []string, workDir string) *App {
	a.environ = append([]string(nil), environ...)
	a.workDir = workDir
	return a
}

// Check validates the workspace configs and runs the check pipeline.
func (a *App) Check(ctx context.Context, skip domain.SkipSet) error {
	return a.runPipeline(ctx, domain.CheckPipeline, skip, domain.SchemaValidate)
}

// Fmt formats the workspace configs and runs the fmt pipeline.
func (a *App) Fmt(ctx context.Context, skip domain.SkipSet) error {
	return a.runPipeline(ctx, domain.FmtPipeline, skip, domain.SchemaFormat)
}

// Build runs the build pipeline.
func (a *App) Build(ctx context.Context, skip domain.SkipSet) error {
	return a.runPipeline(ctx, domain.BuildPipeline, skip, "")
}

func (a *App) runPipeline(
	ctx context.Context,
	pipeline domain.Pipeline,
	skip domain.SkipSet,
	schemaAction domain.SchemaAction,
) error {
	members, err := a.collect()
	if err != nil || len(members) == 0 {
		return err
	}

	// Config errors surface here, before any task has run.
	plan, err := a.planner.Plan(members, pipeline, skip, a.environ)
	if err != nil {
		return zerr.Wrap(err, "failed to plan "+pipeline.Name)
	}

	var failures domain.Failures
	if schemaAction != "" {
		if err := a.validateConfigs(ctx, members, schemaAction, skip, &failures); err != nil {
			return err
		}
	}

	a.runner.RunInto(ctx, plan, pipeline.Name, &failures)
	return failures.Err(pipeline.Name)
}

// RunTask runs the named task of every member and target that defines it.
func (a *App) RunTask(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrMissingTaskName
	}

	members, err := a.collect()
	if err != nil || len(members) == 0 {
		return err
	}

	plan, err := a.planner.PlanNamed(members, name, a.environ)
	if err != nil {
		return err
	}
	return a.runner.Run(ctx, plan, name)
}

// Schemas caches the config schema of every member and, for validate and fmt,
// checks the configs against it.
func (a *App) Schemas(ctx context.Context, action domain.SchemaAction, skip domain.SkipSet) error {
	members, err := a.collect()
	if err != nil || len(members) == 0 {
		return err
	}

	var failures domain.Failures
	if action == domain.SchemaFetch {
		if _, err := a.resolveSchemas(ctx, members); err != nil {
			return err
		}
		return nil
	}

	if err := a.validateConfigs(ctx, members, action, skip, &failures); err != nil {
		return err
	}
	return failures.Err("schemas")
}

// FetchBOM caches the bill-of-materials schema pinned by every member.
func (a *App) FetchBOM(ctx context.Context) error {
	members, err := a.collect()
	if err != nil || len(members) == 0 {
		return err
	}

	for i := range members {
		m := &members[i]
		path, err := a.schemas.Fetch(ctx, domain.SchemaRequest{
			Schema:   domain.SchemaBOM,
			Version:  schemaVersion(m),
			MetaFile: m.Path,
		})
		if err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("bom cached: %s for %s", path, m.Path))
	}
	return nil
}

// Bump increments the manifest version and publishes the release.
func (a *App) Bump(ctx context.Context, req domain.BumpRequest) (*domain.Release, error) {
	if req.Dir == "" {
		req.Dir = a.workDir
	}

	rel, err := a.releaser.BumpAndRelease(ctx, req)
	if err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("Released %s at %s", rel.Tag, shortHash(rel.Commit)))
	return rel, nil
}

// InstallHooks installs the git hooks into every workspace member.
func (a *App) InstallHooks(_ context.Context) error {
	members, err := a.configLoader.Collect(a.workDir)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		a.logger.Warn("No loru.toml found; skipping hooks.")
		return nil
	}

	// Members sharing a repository share core.hooksPath. The workspace root goes
	// last so its hooks stay active.
	seen := make(map[string]bool, len(members))
	for i := len(members) - 1; i >= 0; i-- {
		dir := members[i].BaseDir
		if seen[dir] {
			continue
		}
		seen[dir] = true

		if err := a.hooks.Install(dir); err != nil {
			return err
		}
		a.logger.Info("Installed git hooks in " + dir)
	}
	return nil
}

// collect loads the workspace. An empty workspace is logged and yields no members.
func (a *App) collect() ([]domain.Member, error) {
	members, err := a.configLoader.Collect(a.workDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if len(members) == 0 {
		a.logger.Warn(noConfigWarning)
	}
	return members, nil
}

type memberSchema struct {
	member *domain.Member
	path   string
}

// resolveSchemas prefers a member's vendored schema over the cached download.
func (a *App) resolveSchemas(ctx context.Context, members []domain.Member) ([]memberSchema, error) {
	out := make([]memberSchema, 0, len(members))
	for i := range members {
		m := &members[i]

		path := domain.LocalSchemaPath(m.BaseDir, domain.SchemaConfig)
		if !fileExists(path) {
			var err error
			path, err = a.schemas.Fetch(ctx, domain.SchemaRequest{
				Schema:   domain.SchemaConfig,
				Version:  schemaVersion(m),
				MetaFile: m.Path,
			})
			if err != nil {
				return nil, err
			}
		}

		a.logger.Info(fmt.Sprintf("schema cached: %s for %s", path, m.Path))
		out = append(out, memberSchema{member: m, path: path})
	}
	return out, nil
}

// validateConfigs formats or checks every TOML config with taplo and lints it
// against its schema. Tool failures are recorded; a missing taplo is fatal.
func (a *App) validateConfigs(
	ctx context.Context,
	members []domain.Member,
	action domain.SchemaAction,
	skip domain.SkipSet,
	failures *domain.Failures,
) error {
	if skip.SkipsTOML() {
		a.logger.Warn("Skipping TOML validation due to --skip flag (toml/all).")
		return nil
	}

	schemas, err := a.resolveSchemas(ctx, members)
	if err != nil {
		return err
	}

	if err := a.ensureTool(ctx, members[0].BaseDir, taplo, taploInstall); err != nil {
		return err
	}

	fmtCmd := "taplo fmt --check"
	if action == domain.SchemaFormat {
		fmtCmd = "taplo fmt"
	}

	var tasks []domain.Task
	for _, s := range schemas {
		if !strings.HasSuffix(s.member.Path, ".toml") {
			a.logger.Warn("Skipping TOML validation of " + s.member.Path)
			continue
		}
		config := shellQuote(s.member.Path)
		tasks = append(tasks,
			a.toolTask(s.member, members[0].BaseDir, "taplo-fmt", fmtCmd+" "+config),
			a.toolTask(s.member, members[0].BaseDir, "taplo-lint",
				"taplo lint --schema "+shellQuote("file://"+s.path)+" "+config),
		)
	}

	*failures = append(*failures, a.runner.RunStage(ctx, "schema", StageSchema, tasks)...)
	return nil
}

// ensureTool probes for a command the way the task shell would resolve it.
func (a *App) ensureTool(ctx context.Context, dir, tool, install string) error {
	probe := domain.Task{
		Name:        domain.NewInternedString("probe-" + tool),
		Command:     "command -v " + tool,
		WorkingDir:  domain.NewInternedString(dir),
		Stage:       StageSchema,
		Environment: a.env.Resolve(domain.EnvRequest{Base: a.environ, WorkspaceRoot: dir, ProjectRoot: dir, Tool: tool}),
	}
	if err := a.executor.Execute(ctx, &probe, io.Discard, io.Discard); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrToolMissing,
			fmt.Sprintf("install %q with %s, or rerun with --skip=toml", tool, install)),
			"tool", tool), "dir", dir)
	}
	return nil
}

func (a *App) toolTask(m *domain.Member, workspaceRoot, name, command string) domain.Task {
	return domain.Task{
		Name:       domain.NewInternedString(name),
		Command:    command,
		WorkingDir: domain.NewInternedString(m.BaseDir),
		Stage:      StageSchema,
		Environment: a.env.Resolve(domain.EnvRequest{
			Base:          a.environ,
			Config:        m.Config,
			WorkspaceRoot: workspaceRoot,
			ProjectRoot:   m.BaseDir,
			Tool:          taplo,
		}),
	}
}

func schemaVersion(m *domain.Member) string {
	if m.Config != nil && m.Config.Meta.SchemaVersion != "" {
		return m.Config.Meta.SchemaVersion
	}
	return domain.SchemaLatest
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// shellQuote wraps s in single quotes for sh -c.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
