package domain

// Stage is a named phase of a pipeline.
type Stage string

// Check pipeline stages.
const (
	StagePrecheck  Stage = "precheck"
	StageFmt       Stage = "fmt"
	StageLint      Stage = "lint"
	StageCheck     Stage = "check"
	StageTest      Stage = "test"
	StagePostcheck Stage = "postcheck"
)

// Build pipeline stages.
const (
	StagePrebuild  Stage = "prebuild"
	StageBuild     Stage = "build"
	StagePostbuild Stage = "postbuild"
)

// Mode selects which default task table a pipeline uses.
type Mode string

const (
	// ModeCheck runs read-only verification defaults.
	ModeCheck Mode = "check"
	// ModeFmt runs mutating formatting defaults.
	ModeFmt Mode = "fmt"
	// ModeBuild runs build defaults.
	ModeBuild Mode = "build"
)

// Config sections holding configured stage commands.
const (
	SectionCheck = "check"
	SectionBuild = "build"
)

// Pipeline is a fixed, totally ordered list of stages.
type Pipeline struct {
	Name    string
	Mode    Mode
	Section string
	Stages  []Stage
}

// CheckPipeline verifies a workspace without modifying it.
var CheckPipeline = Pipeline{
	Name:    "check",
	Mode:    ModeCheck,
	Section: SectionCheck,
	Stages:  []Stage{StagePrecheck, StageFmt, StageLint, StageCheck, StageTest, StagePostcheck},
}

// FmtPipeline formats and auto-fixes a workspace.
var FmtPipeline = Pipeline{
	Name:    "fmt",
	Mode:    ModeFmt,
	Section: SectionCheck,
	Stages:  []Stage{StageFmt, StageLint},
}

// BuildPipeline builds every member and target.
var BuildPipeline = Pipeline{
	Name:    "build",
	Mode:    ModeBuild,
	Section: SectionBuild,
	Stages:  []Stage{StagePrebuild, StageBuild, StagePostbuild},
}

// Index returns the position of the stage in the pipeline, or -1.
func (p Pipeline) Index(stage Stage) int {
	for i, s := range p.Stages {
		if s == stage {
			return i
		}
	}
	return -1
}
