package domain

import (
	"os"
	"path/filepath"
)

const (
	// LoruDirName is the optional directory holding the workspace config.
	LoruDirName = ".loru"

	// DefinitionsDirName holds locally vendored schema documents.
	DefinitionsDirName = "definitions"

	// HooksDirName is the directory git hooks are installed to.
	HooksDirName = ".githooks"

	// SchemaCacheDirName is the schema cache directory below the cache dir.
	SchemaCacheDirName = "schemas"

	// SettingsFileName is the user settings file below the config dir.
	SettingsFileName = "settings.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for installed hook scripts (rwxr-xr-x).
	ExecPerm = 0o755
)

// ConfigCandidates are the config file locations checked in every directory, in order.
var ConfigCandidates = []string{
	"loru.toml",
	filepath.Join(LoruDirName, "loru.toml"),
	"loru.yaml",
	filepath.Join(LoruDirName, "loru.yaml"),
}

// LocalSchemaPath returns the vendored schema location inside a member.
func LocalSchemaPath(baseDir, schema string) string {
	return filepath.Join(baseDir, DefinitionsDirName, schema+".json")
}

// DefaultCachePath returns the user cache directory for loru.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(LoruDirName, "cache")
	}
	return filepath.Join(dir, "loru")
}

// DefaultSettingsPath returns the user settings file location.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "loru", SettingsFileName)
}
