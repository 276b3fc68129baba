package domain

// BumpLevel is the semver component to increment.
type BumpLevel string

const (
	BumpPatch BumpLevel = "patch"
	BumpMinor BumpLevel = "minor"
	BumpMajor BumpLevel = "major"
)

// ParseBumpLevel validates a bump level.
func ParseBumpLevel(s string) (BumpLevel, error) {
	switch l := BumpLevel(s); l {
	case BumpPatch, BumpMinor, BumpMajor:
		return l, nil
	default:
		return "", ErrInvalidBumpLevel
	}
}

// DefaultManifestFile holds the version being bumped.
const DefaultManifestFile = "deno.json"

// BumpRequest describes one bump-and-release invocation.
type BumpRequest struct {
	Dir   string
	Level BumpLevel
	// File is the manifest holding the "version" field, relative to Dir.
	File string
	// FixMissing backfills a missing tag or release instead of failing on an existing one.
	FixMissing bool
	// Resume skips the bump and only completes the tag and release of the current version.
	Resume bool
}

// ReleaseTarget identifies a hosted release.
type ReleaseTarget struct {
	Owner string
	Repo  string
	Tag   string
	Name  string
	// Commit is the commit the tag points at. The hosted release targets it
	// so a tag missing on the host is never created on another commit.
	Commit string
}

// Release is the outcome of a bump-and-release invocation.
type Release struct {
	Version        string
	Tag            string
	Commit         string
	TagCreated     bool
	ReleaseCreated bool
}
