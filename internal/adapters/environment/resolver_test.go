package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/loru/internal/adapters/environment"
	"go.trai.ch/loru/internal/core/domain"
)

func TestResolve_Overlay(t *testing.T) {
	r := environment.New()

	req := domain.EnvRequest{
		Base: []string{"PATH=/usr/bin", "MODE=base", "SHARED=base"},
		Config: &domain.WorkspaceConfig{
			Meta: domain.Meta{SchemaVersion: "1.0.0"},
			Env:  map[string]string{"MODE": "member", "MEMBER_ONLY": "1"},
		},
		Target: &domain.TargetConfig{
			Env: map[string]string{"SHARED": "target", domain.EnvTool: "spoofed"},
		},
		WorkspaceRoot: "/ws",
		ProjectRoot:   "/ws/lib/core",
		Tool:          "cargo",
		TargetID:      "core",
	}

	env := r.Resolve(req)

	assert.Equal(t, "/usr/bin", env["PATH"])
	assert.Equal(t, "member", env["MODE"])
	assert.Equal(t, "1", env["MEMBER_ONLY"])
	assert.Equal(t, "target", env["SHARED"])
	assert.Equal(t, "/ws", env[domain.EnvWorkspaceRoot])
	assert.Equal(t, "/ws/lib/core", env[domain.EnvProjectRoot])
	assert.Equal(t, "cargo", env[domain.EnvTool], "workspace variables take precedence over config env")
	assert.Equal(t, "core", env[domain.EnvTarget])
	assert.Equal(t, "1.0.0", env[domain.EnvSchemaVersion])
}

func TestResolve_WithoutTarget(t *testing.T) {
	r := environment.New()

	env := r.Resolve(domain.EnvRequest{
		Base:          []string{"LORU_TARGET=stale"},
		Config:        &domain.WorkspaceConfig{},
		WorkspaceRoot: "/ws",
		ProjectRoot:   "/ws",
		Tool:          domain.ToolGeneric,
	})

	assert.Equal(t, "stale", env[domain.EnvTarget], "inherited value is left untouched when no target is given")
	assert.NotContains(t, env, domain.EnvSchemaVersion)
	assert.Equal(t, domain.ToolGeneric, env[domain.EnvTool])
}

func TestResolve_Deterministic(t *testing.T) {
	r := environment.New()
	req := domain.EnvRequest{
		Base:          []string{"A=1"},
		WorkspaceRoot: "/ws",
		ProjectRoot:   "/ws/a",
		Tool:          "deno",
		TargetID:      "a",
	}

	first := r.Resolve(req)
	second := r.Resolve(req)
	assert.Equal(t, first, second)

	first["A"] = "mutated"
	assert.Equal(t, "1", r.Resolve(req)["A"], "results do not share state")
}

func TestResolve_TargetSchemaVersionWins(t *testing.T) {
	env := environment.New().Resolve(domain.EnvRequest{
		Config: &domain.WorkspaceConfig{Meta: domain.Meta{SchemaVersion: "1.0.0"}},
		Target: &domain.TargetConfig{SchemaVersion: "2.0.0"},
	})
	assert.Equal(t, "2.0.0", env[domain.EnvSchemaVersion])
}

func TestParseEnviron(t *testing.T) {
	env := environment.ParseEnviron([]string{"A=1", "B=x=y", "broken", "=skip", "A=2"})
	assert.Equal(t, map[string]string{"A": "2", "B": "x=y"}, env)
}
