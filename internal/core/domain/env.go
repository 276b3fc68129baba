package domain

// Environment variables exported to every task.
const (
	EnvWorkspaceRoot = "LORU_WORKSPACE_ROOT"
	EnvProjectRoot   = "LORU_PROJECT_ROOT"
	EnvTool          = "LORU_TOOL"
	EnvTarget        = "LORU_TARGET"
	EnvSchemaVersion = "LORU_SCHEMA_VERSION"
)

// EnvRequest holds every input of the environment derivation.
type EnvRequest struct {
	// Base is the inherited environment in "KEY=VALUE" form.
	Base          []string
	Config        *WorkspaceConfig
	Target        *TargetConfig
	WorkspaceRoot string
	ProjectRoot   string
	Tool          string
	TargetID      string
}
