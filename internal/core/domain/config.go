package domain

// StageCommands maps a stage name to the shell commands configured for it.
type StageCommands map[string][]string

// Commands returns the commands configured for the stage, or nil.
func (s StageCommands) Commands(stage Stage) []string {
	if s == nil {
		return nil
	}
	return s[string(stage)]
}

// Meta holds workspace config metadata.
type Meta struct {
	SchemaVersion string
}

// WorkspaceSection lists the members of a multi-package workspace.
type WorkspaceSection struct {
	Members []string
}

// TargetConfig is a single plugin, page, lib or bin declaration.
type TargetConfig struct {
	ID            string
	Name          string
	Path          string
	Entrypoint    string
	SchemaVersion string
	Version       string
	Domains       []string
	Locales       []string

	Env   map[string]string
	Check StageCommands
	Build StageCommands
	Tasks map[string]string
}

// WorkspaceConfig is the parsed form of a root or member config file.
type WorkspaceConfig struct {
	Meta      Meta
	Workspace WorkspaceSection

	Plugins []TargetConfig
	Pages   []TargetConfig
	Libs    []TargetConfig
	Bins    []TargetConfig

	Env   map[string]string
	Check StageCommands
	Build StageCommands
	Tasks map[string]string
}

// Section returns the stage commands for the given pipeline section.
func (c *WorkspaceConfig) Section(section string) StageCommands {
	switch section {
	case SectionBuild:
		return c.Build
	default:
		return c.Check
	}
}

// Section returns the stage commands for the given pipeline section.
func (t *TargetConfig) Section(section string) StageCommands {
	switch section {
	case SectionBuild:
		return t.Build
	default:
		return t.Check
	}
}

// Member is one loaded workspace package.
// The first member of a collection is the workspace root.
type Member struct {
	// BaseDir is the absolute directory the member's paths are relative to.
	BaseDir string
	// Config is the parsed configuration.
	Config *WorkspaceConfig
	// Path is the location of the config file.
	Path string
}
