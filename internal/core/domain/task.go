package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Task is a single planned command invocation.
// It uses InternedString for the name and working directory, which repeat across stages and targets.
type Task struct {
	Name        InternedString
	Command     string
	WorkingDir  InternedString
	Stage       Stage
	Environment map[string]string
	// TargetID is empty for tasks scoped to a member's base directory.
	TargetID string
}

// Fingerprint returns a stable identifier for the task's stage, name, directory and command.
func (t *Task) Fingerprint() string {
	d := xxhash.New()
	for _, part := range []string{string(t.Stage), t.Name.String(), t.WorkingDir.String(), t.Command} {
		_, _ = d.WriteString(part)
		_, _ = d.Write([]byte{0})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// StagePlan holds the ordered tasks of one stage.
type StagePlan struct {
	Stage   Stage
	Skipped bool
	Tasks   []Task
}

// Plan is the per-stage task list of one pipeline invocation.
type Plan struct {
	Pipeline Pipeline
	Stages   []StagePlan
}

// Tasks returns the tasks planned for the stage.
func (p *Plan) Tasks(stage Stage) []Task {
	for _, sp := range p.Stages {
		if sp.Stage == stage {
			return sp.Tasks
		}
	}
	return nil
}

// Len returns the total number of planned tasks.
func (p *Plan) Len() int {
	n := 0
	for _, sp := range p.Stages {
		n += len(sp.Tasks)
	}
	return n
}
