package config

import "go.trai.ch/loru/internal/core/domain"

// ConfigFile represents the structure of a loru.toml or loru.yaml file.
type ConfigFile struct {
	Meta      MetaDTO             `toml:"meta" yaml:"meta"`
	Workspace WorkspaceDTO        `toml:"workspace" yaml:"workspace"`
	Plugin    []TargetDTO         `toml:"plugin" yaml:"plugin"`
	Page      []TargetDTO         `toml:"page" yaml:"page"`
	Lib       []TargetDTO         `toml:"lib" yaml:"lib"`
	Bin       []TargetDTO         `toml:"bin" yaml:"bin"`
	Env       map[string]string   `toml:"env" yaml:"env"`
	Check     map[string][]string `toml:"check" yaml:"check"`
	Build     map[string][]string `toml:"build" yaml:"build"`
	Tasks     map[string]string   `toml:"tasks" yaml:"tasks"`
}

// MetaDTO is the [meta] table.
type MetaDTO struct {
	SchemaVersion string `toml:"schema_version" yaml:"schema_version"`
}

// WorkspaceDTO is the [workspace] table.
type WorkspaceDTO struct {
	Members []string `toml:"members" yaml:"members"`
}

// TargetDTO is a single [[plugin]], [[page]], [[lib]] or [[bin]] entry.
type TargetDTO struct {
	ID            string              `toml:"id" yaml:"id"`
	Name          string              `toml:"name" yaml:"name"`
	Path          string              `toml:"path" yaml:"path"`
	Entrypoint    string              `toml:"entrypoint" yaml:"entrypoint"`
	SchemaVersion string              `toml:"schema_version" yaml:"schema_version"`
	Version       string              `toml:"version" yaml:"version"`
	Domains       []string            `toml:"domains" yaml:"domains"`
	Locales       []string            `toml:"locales" yaml:"locales"`
	Env           map[string]string   `toml:"env" yaml:"env"`
	Check         map[string][]string `toml:"check" yaml:"check"`
	Build         map[string][]string `toml:"build" yaml:"build"`
	Tasks         map[string]string   `toml:"tasks" yaml:"tasks"`
}

func (c *ConfigFile) toDomain() *domain.WorkspaceConfig {
	return &domain.WorkspaceConfig{
		Meta:      domain.Meta{SchemaVersion: c.Meta.SchemaVersion},
		Workspace: domain.WorkspaceSection{Members: c.Workspace.Members},
		Plugins:   targetsToDomain(c.Plugin),
		Pages:     targetsToDomain(c.Page),
		Libs:      targetsToDomain(c.Lib),
		Bins:      targetsToDomain(c.Bin),
		Env:       c.Env,
		Check:     domain.StageCommands(c.Check),
		Build:     domain.StageCommands(c.Build),
		Tasks:     c.Tasks,
	}
}

func targetsToDomain(dtos []TargetDTO) []domain.TargetConfig {
	if len(dtos) == 0 {
		return nil
	}
	targets := make([]domain.TargetConfig, len(dtos))
	for i := range dtos {
		dto := &dtos[i]
		targets[i] = domain.TargetConfig{
			ID:            dto.ID,
			Name:          dto.Name,
			Path:          dto.Path,
			Entrypoint:    dto.Entrypoint,
			SchemaVersion: dto.SchemaVersion,
			Version:       dto.Version,
			Domains:       dto.Domains,
			Locales:       dto.Locales,
			Env:           dto.Env,
			Check:         domain.StageCommands(dto.Check),
			Build:         domain.StageCommands(dto.Build),
			Tasks:         dto.Tasks,
		}
	}
	return targets
}
