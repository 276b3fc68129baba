package domain

import "time"

// Settings holds tool-level options that are not part of the workspace config.
type Settings struct {
	// Shell runs task commands; empty means $SHELL of the task environment, else sh.
	Shell string `koanf:"shell"`
	// Jobs is the number of working directories processed concurrently within a stage.
	Jobs int `koanf:"jobs"`
	// TaskTimeout bounds a single task; zero disables the limit.
	TaskTimeout time.Duration `koanf:"task_timeout"`
	// CacheDir holds fetched schemas.
	CacheDir string `koanf:"cache_dir"`
	// SchemaURL is the base URL schemas are fetched from.
	SchemaURL string `koanf:"schema_url"`
	// LogFormat is "pretty" or "json".
	LogFormat string `koanf:"log_format"`
	// Trace reports every span, not only stage spans.
	Trace bool `koanf:"trace"`
	// GitHubToken authenticates release publishing.
	GitHubToken string `koanf:"github_token"`
}

// Log formats.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Jobs:      1,
		CacheDir:  DefaultCachePath(),
		SchemaURL: DefaultSchemaURL,
		LogFormat: LogFormatPretty,
	}
}
