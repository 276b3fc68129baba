package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when a workspace config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a workspace config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMemberConfigInvalid is returned when a declared workspace member cannot be resolved or loaded.
	ErrMemberConfigInvalid = zerr.New("workspace member config is missing or invalid")

	// ErrTargetIDUnresolvable is returned when a target declares neither id, name nor path.
	ErrTargetIDUnresolvable = zerr.New("target has no id, name or path")

	// ErrFailedToResolvePath is returned when a path cannot be made absolute.
	ErrFailedToResolvePath = zerr.New("failed to resolve absolute path")

	// ErrRunFailed is matched by every aggregated run error.
	ErrRunFailed = zerr.New("run completed with errors")

	// ErrTaskNotDefined is returned when no workspace member defines the requested named task.
	ErrTaskNotDefined = zerr.New("task not defined in any workspace member")

	// ErrMissingTaskName is returned when the run command is invoked without a task name.
	ErrMissingTaskName = zerr.New("missing task name")

	// ErrCommandFailed is returned when a task command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandLaunchFailed is returned when a task command cannot be started.
	ErrCommandLaunchFailed = zerr.New("failed to launch command")

	// ErrTaskTimedOut is returned when a task exceeds the configured task timeout.
	ErrTaskTimedOut = zerr.New("task timed out")

	// ErrToolMissing is returned when a required external tool is not on PATH.
	ErrToolMissing = zerr.New("required tool is missing")

	// ErrSchemaSourceUnset is returned when a schema must be fetched but no schema URL is configured.
	ErrSchemaSourceUnset = zerr.New("schema url is not configured")

	// ErrSchemaFetchFailed is returned when a schema document cannot be downloaded.
	ErrSchemaFetchFailed = zerr.New("failed to fetch schema")

	// ErrSchemaCacheFailed is returned when a schema document cannot be written to the cache.
	ErrSchemaCacheFailed = zerr.New("failed to cache schema")

	// ErrInvalidBumpLevel is returned when the bump level is not patch, minor or major.
	ErrInvalidBumpLevel = zerr.New("invalid bump level, expected 'patch', 'minor' or 'major'")

	// ErrInvalidVersion is returned when the current version cannot be parsed as semver.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrManifestReadFailed is returned when the version manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read version manifest")

	// ErrManifestWriteFailed is returned when the version manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write version manifest")

	// ErrRepositoryOpenFailed is returned when no git repository can be opened.
	ErrRepositoryOpenFailed = zerr.New("failed to open git repository")

	// ErrCommitFailed is returned when the release commit cannot be created.
	ErrCommitFailed = zerr.New("failed to commit release")

	// ErrTagExists is returned when the release tag already exists and backfilling was not requested.
	ErrTagExists = zerr.New("release tag already exists")

	// ErrTagCreateFailed is returned when the release tag cannot be created.
	ErrTagCreateFailed = zerr.New("failed to create release tag")

	// ErrPushFailed is returned when the release commit or tag cannot be pushed.
	ErrPushFailed = zerr.New("failed to push release")

	// ErrReleasePublishFailed is returned when the hosted release cannot be created.
	ErrReleasePublishFailed = zerr.New("failed to publish release")

	// ErrHookInstallFailed is returned when git hooks cannot be written or registered.
	ErrHookInstallFailed = zerr.New("failed to install git hooks")

	// ErrSettingsLoadFailed is returned when the tool settings cannot be loaded.
	ErrSettingsLoadFailed = zerr.New("failed to load settings")
)
