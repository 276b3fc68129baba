// Package environment derives the environment a task runs under.
package environment

import (
	"maps"
	"strings"

	"go.trai.ch/loru/internal/core/domain"
)

// Resolver implements ports.EnvironmentResolver.
// It is a pure function of its request: the process environment is never read.
type Resolver struct{}

// New creates a new Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve overlays, in increasing precedence: the base environment, the member env,
// the target env, and the LORU_* workspace variables.
func (r *Resolver) Resolve(req domain.EnvRequest) map[string]string {
	env := ParseEnviron(req.Base)

	if req.Config != nil {
		maps.Copy(env, req.Config.Env)
	}
	if req.Target != nil {
		maps.Copy(env, req.Target.Env)
	}

	env[domain.EnvWorkspaceRoot] = req.WorkspaceRoot
	env[domain.EnvProjectRoot] = req.ProjectRoot
	env[domain.EnvTool] = req.Tool
	if req.TargetID != "" {
		env[domain.EnvTarget] = req.TargetID
	}
	if version := schemaVersion(req); version != "" {
		env[domain.EnvSchemaVersion] = version
	}

	return env
}

// schemaVersion prefers the target's own pin over the member's.
func schemaVersion(req domain.EnvRequest) string {
	if req.Target != nil && req.Target.SchemaVersion != "" {
		return req.Target.SchemaVersion
	}
	if req.Config != nil {
		return req.Config.Meta.SchemaVersion
	}
	return ""
}

// ParseEnviron converts "KEY=VALUE" entries into a map. Later entries win.
func ParseEnviron(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}
