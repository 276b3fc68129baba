package domain

// ProjectKind is the toolchain detected for a directory.
type ProjectKind int

const (
	// KindUnknown matches no toolchain marker and receives no default tasks.
	KindUnknown ProjectKind = iota
	// KindDeno is a Deno/TypeScript project.
	KindDeno
	// KindRust is a Cargo project.
	KindRust
)

// ToolGeneric is the tool identifier used for configured tasks and unknown directories.
const ToolGeneric = "generic"

// Kinds lists the detectable kinds in detection priority order.
var Kinds = []ProjectKind{KindDeno, KindRust}

// String returns the kind name.
func (k ProjectKind) String() string {
	switch k {
	case KindDeno:
		return "deno"
	case KindRust:
		return "rust"
	default:
		return "unknown"
	}
}

// Markers returns the file names whose presence identifies the kind.
func (k ProjectKind) Markers() []string {
	switch k {
	case KindDeno:
		return []string{"deno.json", "deno.jsonc"}
	case KindRust:
		return []string{"Cargo.toml"}
	default:
		return nil
	}
}

// Tool returns the tool identifier exported to task environments.
func (k ProjectKind) Tool() string {
	switch k {
	case KindDeno:
		return "deno"
	case KindRust:
		return "cargo"
	default:
		return ToolGeneric
	}
}

// SkipTokens returns the --skip tokens that suppress this kind's default tasks.
func (k ProjectKind) SkipTokens() []string {
	switch k {
	case KindDeno:
		return []string{"deno", "ts"}
	case KindRust:
		return []string{"rust", "cargo"}
	default:
		return nil
	}
}

// DefaultTask is an entry of the per-kind default task table.
type DefaultTask struct {
	Name    string
	Stage   Stage
	Command string
}

// DefaultTasks returns the built-in tasks for the kind in the given mode, in fixed order.
func (k ProjectKind) DefaultTasks(mode Mode) []DefaultTask {
	return defaultTasks[k][mode]
}

var defaultTasks = map[ProjectKind]map[Mode][]DefaultTask{
	KindDeno: {
		ModeCheck: {
			{Name: "deno-fmt-check", Stage: StageFmt, Command: "deno fmt --check"},
			{Name: "deno-lint", Stage: StageLint, Command: "deno lint"},
			{Name: "deno-test", Stage: StageTest, Command: "deno test -A"},
		},
		ModeFmt: {
			{Name: "deno-fmt", Stage: StageFmt, Command: "deno fmt"},
			{Name: "deno-lint-fix", Stage: StageLint, Command: "deno lint --fix"},
		},
		ModeBuild: {
			{Name: "deno-check", Stage: StageBuild, Command: "deno check"},
		},
	},
	KindRust: {
		ModeCheck: {
			{Name: "cargo-fmt-check", Stage: StageFmt, Command: "cargo fmt -- --check"},
			{Name: "cargo-check", Stage: StageCheck, Command: "cargo check"},
			{Name: "cargo-test", Stage: StageTest, Command: "cargo test"},
		},
		ModeFmt: {
			{Name: "cargo-fmt", Stage: StageFmt, Command: "cargo fmt"},
			{Name: "cargo-clippy", Stage: StageLint, Command: "cargo clippy"},
		},
		ModeBuild: {
			{Name: "cargo-build", Stage: StageBuild, Command: "cargo build"},
		},
	},
}
