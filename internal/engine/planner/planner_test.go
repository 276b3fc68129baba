package planner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/loru/internal/adapters/detector"
	"go.trai.ch/loru/internal/adapters/environment"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports/mocks"
	"go.trai.ch/loru/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

func newPlanner(t *testing.T) (*planner.Planner, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return planner.New(detector.New(), environment.New(), log), log
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
}

func names(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Name.String()
	}
	return out
}

func TestResolveTargets_OrderAndFallbacks(t *testing.T) {
	base := t.TempDir()
	cfg := &domain.WorkspaceConfig{
		Bins:    []domain.TargetConfig{{ID: "cli", Path: "cmd/cli"}},
		Libs:    []domain.TargetConfig{{Name: "core", Path: "lib/core"}},
		Pages:   []domain.TargetConfig{{Path: "./pages/home/"}},
		Plugins: []domain.TargetConfig{{ID: "root-plugin"}},
	}

	targets, err := planner.ResolveTargets(cfg, base)
	require.NoError(t, err)
	require.Len(t, targets, 4)

	assert.Equal(t, domain.Target{ID: "root-plugin", Path: base, Kind: domain.TargetPlugin, Config: &cfg.Plugins[0]}, targets[0])
	assert.Equal(t, "pages/home", targets[1].ID)
	assert.Equal(t, filepath.Join(base, "pages", "home"), targets[1].Path)
	assert.Equal(t, domain.TargetPage, targets[1].Kind)
	assert.Equal(t, "core", targets[2].ID)
	assert.Equal(t, filepath.Join(base, "lib", "core"), targets[2].Path)
	assert.Equal(t, "cli", targets[3].ID)
	assert.Equal(t, domain.TargetBin, targets[3].Kind)
}

func TestResolveTargets_Unresolvable(t *testing.T) {
	cfg := &domain.WorkspaceConfig{Libs: []domain.TargetConfig{{Entrypoint: "mod.ts"}}}

	_, err := planner.ResolveTargets(cfg, t.TempDir())
	require.ErrorIs(t, err, domain.ErrTargetIDUnresolvable)
}

func TestPlan_NoMembers(t *testing.T) {
	p, _ := newPlanner(t)

	plan, err := p.Plan(nil, domain.CheckPipeline, domain.ParseSkip(""), nil)
	require.NoError(t, err)
	assert.Zero(t, plan.Len())
}

func TestPlan_LibraryDefaultTask(t *testing.T) {
	tests := []struct {
		name   string
		marker bool
		want   int
	}{
		{"with marker", true, 1},
		{"without marker", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(base, "lib", "core"), 0o750))
			if tt.marker {
				touch(t, filepath.Join(base, "lib", "core", "deno.json"))
			}

			members := []domain.Member{{
				BaseDir: base,
				Config:  &domain.WorkspaceConfig{Libs: []domain.TargetConfig{{Name: "core", Path: "lib/core"}}},
			}}

			p, _ := newPlanner(t)
			plan, err := p.Plan(members, domain.CheckPipeline, domain.ParseSkip(""), nil)
			require.NoError(t, err)

			tasks := plan.Tasks(domain.StageFmt)
			require.Len(t, tasks, tt.want)
			if tt.want == 1 {
				assert.Equal(t, filepath.Join(base, "lib", "core"), tasks[0].WorkingDir.String())
				assert.Equal(t, "deno fmt --check", tasks[0].Command)
				assert.Equal(t, "core:deno-fmt-check", tasks[0].Name.String())
				assert.Equal(t, "core", tasks[0].TargetID)
			}
		})
	}
}

func TestPlan_SkipStages(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "deno.json"))

	members := []domain.Member{{
		BaseDir: base,
		Config: &domain.WorkspaceConfig{Check: domain.StageCommands{
			"precheck":  {"echo pre"},
			"test":      {"echo custom test"},
			"postcheck": {"echo post"},
		}},
	}}

	p, log := newPlanner(t)
	log.EXPECT().Warn("Skipping stage lint due to --skip flag.")
	log.EXPECT().Warn("Skipping stage test due to --skip flag.")

	plan, err := p.Plan(members, domain.CheckPipeline, domain.ParseSkip("test, LINT"), nil)
	require.NoError(t, err)

	require.Len(t, plan.Stages, len(domain.CheckPipeline.Stages))
	for _, sp := range plan.Stages {
		switch sp.Stage {
		case domain.StageTest, domain.StageLint:
			assert.True(t, sp.Skipped, sp.Stage)
			assert.Empty(t, sp.Tasks, sp.Stage)
		default:
			assert.False(t, sp.Skipped, sp.Stage)
		}
	}
	assert.Equal(t, []string{"precheck"}, names(plan.Tasks(domain.StagePrecheck)))
	assert.Equal(t, []string{"deno-fmt-check"}, names(plan.Tasks(domain.StageFmt)))
	assert.Equal(t, []string{"postcheck"}, names(plan.Tasks(domain.StagePostcheck)))
}

func TestPlan_SkipAll(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "Cargo.toml"))

	members := []domain.Member{{
		BaseDir: base,
		Config:  &domain.WorkspaceConfig{Check: domain.StageCommands{"check": {"make check"}}},
	}}

	p, log := newPlanner(t)
	log.EXPECT().Warn(gomock.Any()).Times(1 + len(domain.CheckPipeline.Stages))

	plan, err := p.Plan(members, domain.CheckPipeline, domain.ParseSkip("all"), nil)
	require.NoError(t, err)
	assert.Zero(t, plan.Len())
	for _, sp := range plan.Stages {
		assert.True(t, sp.Skipped)
	}
}

func TestPlan_ToolchainSkipSelectivity(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "deno.json"))
	touch(t, filepath.Join(base, "crates", "engine", "Cargo.toml"))

	members := []domain.Member{{
		BaseDir: base,
		Config: &domain.WorkspaceConfig{
			Check: domain.StageCommands{"check": {"echo root"}},
			Libs: []domain.TargetConfig{{
				ID:    "engine",
				Path:  "crates/engine",
				Check: domain.StageCommands{"check": {"echo engine"}},
			}},
		},
	}}

	p, log := newPlanner(t)
	log.EXPECT().Warn("Skipping default check tasks for deno project at " + base + " due to --skip flag.")

	plan, err := p.Plan(members, domain.CheckPipeline, domain.ParseSkip("ts"), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"engine:cargo-fmt-check"}, names(plan.Tasks(domain.StageFmt)))
	assert.Equal(t, []string{"check", "engine:check", "engine:cargo-check"}, names(plan.Tasks(domain.StageCheck)))
	assert.Equal(t, []string{"engine:cargo-test"}, names(plan.Tasks(domain.StageTest)))
	assert.Empty(t, plan.Tasks(domain.StageLint))
}

func TestPlan_TargetIDCollision(t *testing.T) {
	base := t.TempDir()

	members := []domain.Member{{
		BaseDir: base,
		Config: &domain.WorkspaceConfig{Plugins: []domain.TargetConfig{
			{ID: "dup", Path: "a", Check: domain.StageCommands{"check": {"echo a"}}},
			{ID: "dup", Path: "a", Check: domain.StageCommands{"check": {"echo b"}}},
		}},
	}}

	p, _ := newPlanner(t)
	plan, err := p.Plan(members, domain.CheckPipeline, domain.ParseSkip(""), nil)
	require.NoError(t, err)

	tasks := plan.Tasks(domain.StageCheck)
	require.Len(t, tasks, 2)
	assert.Equal(t, "echo a", tasks[0].Command)
	assert.Equal(t, "echo b", tasks[1].Command)
	assert.Equal(t, tasks[0].WorkingDir, tasks[1].WorkingDir)
}

func TestPlan_SharedDirectoryDefaultsPlannedOnce(t *testing.T) {
	base := t.TempDir()
	touch(t, filepath.Join(base, "deno.json"))

	members := []domain.Member{{
		BaseDir: base,
		Config:  &domain.WorkspaceConfig{Plugins: []domain.TargetConfig{{ID: "here"}}},
	}}

	p, _ := newPlanner(t)
	plan, err := p.Plan(members, domain.FmtPipeline, domain.ParseSkip(""), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"deno-fmt"}, names(plan.Tasks(domain.StageFmt)))
	assert.Equal(t, []string{"deno-lint-fix"}, names(plan.Tasks(domain.StageLint)))
}

func TestPlan_MembersAndEnvironment(t *testing.T) {
	root := t.TempDir()
	member := filepath.Join(root, "packages", "web")
	touch(t, filepath.Join(member, "deno.json"))

	members := []domain.Member{
		{
			BaseDir: root,
			Config: &domain.WorkspaceConfig{
				Meta:  domain.Meta{SchemaVersion: "1"},
				Env:   map[string]string{"STAGE": "root"},
				Build: domain.StageCommands{"prebuild": {"echo prepare"}},
			},
		},
		{
			BaseDir: member,
			Config: &domain.WorkspaceConfig{
				Env: map[string]string{"STAGE": "web"},
				Pages: []domain.TargetConfig{{
					ID:    "site",
					Env:   map[string]string{"PAGE": "1"},
					Build: domain.StageCommands{"build": {"echo page"}},
				}},
			},
		},
	}

	p, _ := newPlanner(t)
	plan, err := p.Plan(members, domain.BuildPipeline, domain.ParseSkip(""), []string{"HOME=/home/dev", "STAGE=shell"})
	require.NoError(t, err)

	pre := plan.Tasks(domain.StagePrebuild)
	require.Len(t, pre, 1)
	assert.Equal(t, map[string]string{
		"HOME":                  "/home/dev",
		"STAGE":                 "root",
		domain.EnvWorkspaceRoot: root,
		domain.EnvProjectRoot:   root,
		domain.EnvTool:          domain.ToolGeneric,
		domain.EnvSchemaVersion: "1",
	}, pre[0].Environment)

	build := plan.Tasks(domain.StageBuild)
	assert.Equal(t, []string{"site:build", "deno-check"}, names(build))

	page := build[0].Environment
	assert.Equal(t, "web", page["STAGE"])
	assert.Equal(t, "1", page["PAGE"])
	assert.Equal(t, "site", page[domain.EnvTarget])
	assert.Equal(t, root, page[domain.EnvWorkspaceRoot])
	assert.Equal(t, member, page[domain.EnvProjectRoot])

	assert.Equal(t, "deno", build[1].Environment[domain.EnvTool])
	assert.NotContains(t, build[1].Environment, domain.EnvTarget)
}

func TestPlanNamed(t *testing.T) {
	base := t.TempDir()
	members := []domain.Member{{
		BaseDir: base,
		Config: &domain.WorkspaceConfig{
			Tasks: map[string]string{"dev": "deno task dev"},
			Bins: []domain.TargetConfig{
				{ID: "server", Path: "server", Tasks: map[string]string{"dev": "go run ."}},
				{ID: "worker", Path: "worker"},
			},
		},
	}}

	p, _ := newPlanner(t)

	plan, err := p.PlanNamed(members, "dev", nil)
	require.NoError(t, err)

	tasks := plan.Tasks(planner.StageRun)
	assert.Equal(t, []string{"dev", "server:dev"}, names(tasks))
	assert.Equal(t, filepath.Join(base, "server"), tasks[1].WorkingDir.String())
	assert.Equal(t, domain.ToolGeneric, tasks[1].Environment[domain.EnvTool])

	_, err = p.PlanNamed(members, "deploy", nil)
	require.ErrorIs(t, err, domain.ErrTaskNotDefined)
}
