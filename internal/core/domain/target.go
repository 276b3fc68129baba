package domain

// TargetKind is the category a target was declared under.
type TargetKind string

const (
	// TargetPlugin is a [[plugin]] declaration.
	TargetPlugin TargetKind = "plugin"
	// TargetPage is a [[page]] declaration.
	TargetPage TargetKind = "page"
	// TargetLib is a [[lib]] declaration.
	TargetLib TargetKind = "lib"
	// TargetBin is a [[bin]] declaration.
	TargetBin TargetKind = "bin"
)

// Target is a resolved sub-unit of a member. It is recomputed on every run.
type Target struct {
	ID     string
	Path   string
	Kind   TargetKind
	Config *TargetConfig
}
