// Package planner resolves the ordered per-stage task lists of a pipeline run.
package planner

import (
	"fmt"

	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
	"go.trai.ch/zerr"
)

// StageRun is the single stage of a named task invocation.
const StageRun domain.Stage = "run"

// Planner builds execution plans from the collected workspace members.
type Planner struct {
	detector ports.ProjectDetector
	env      ports.EnvironmentResolver
	logger   ports.Logger
}

// New creates a new Planner.
func New(detector ports.ProjectDetector, env ports.EnvironmentResolver, logger ports.Logger) *Planner {
	return &Planner{detector: detector, env: env, logger: logger}
}

// scope is one directory tasks run in: a member's base directory or a target path.
type scope struct {
	member *domain.Member
	target *domain.Target
	dir    string
}

func (s scope) targetID() string {
	if s.target == nil {
		return ""
	}
	return s.target.ID
}

func (s scope) targetConfig() *domain.TargetConfig {
	if s.target == nil {
		return nil
	}
	return s.target.Config
}

// defaultScope is a directory whose toolchain defaults are planned.
type defaultScope struct {
	scope
	kind domain.ProjectKind
}

// Plan resolves the tasks of every stage of the pipeline.
//
// A stage named in skip is dropped for the whole workspace. A toolchain skip token only
// drops the default tasks of directories of that kind; configured tasks are kept.
// Within a stage, tasks are ordered member by member: the member's configured tasks,
// then each target's configured tasks, then the toolchain defaults.
// environ is the inherited environment in "KEY=VALUE" form.
func (p *Planner) Plan(
	members []domain.Member,
	pipeline domain.Pipeline,
	skip domain.SkipSet,
	environ []string,
) (*domain.Plan, error) {
	plan := &domain.Plan{Pipeline: pipeline}
	if len(members) == 0 {
		return plan, nil
	}

	workspaceRoot := members[0].BaseDir

	scopes := make([][]scope, len(members))
	for i := range members {
		s, err := memberScopes(&members[i])
		if err != nil {
			return nil, err
		}
		scopes[i] = s
	}

	defaults := p.defaultScopes(scopes, pipeline, skip)

	for _, stage := range pipeline.Stages {
		sp := domain.StagePlan{Stage: stage}
		if skip.SkipsStage(stage) {
			p.logger.Warn(fmt.Sprintf("Skipping stage %s due to --skip flag.", stage))
			sp.Skipped = true
			plan.Stages = append(plan.Stages, sp)
			continue
		}

		for i := range members {
			for _, s := range scopes[i] {
				sp.Tasks = append(sp.Tasks, p.configuredTasks(s, pipeline, stage, workspaceRoot, environ)...)
			}
			for _, d := range defaults[i] {
				sp.Tasks = append(sp.Tasks, p.defaultTasks(d, pipeline, stage, workspaceRoot, environ)...)
			}
		}
		plan.Stages = append(plan.Stages, sp)
	}

	return plan, nil
}

// PlanNamed resolves the tasks of a named task invocation: for every member, the member's
// own definition followed by each target's definition.
func (p *Planner) PlanNamed(members []domain.Member, name string, environ []string) (*domain.Plan, error) {
	pipeline := domain.Pipeline{Name: name, Stages: []domain.Stage{StageRun}}
	plan := &domain.Plan{Pipeline: pipeline}
	if len(members) == 0 {
		return plan, nil
	}

	workspaceRoot := members[0].BaseDir
	sp := domain.StagePlan{Stage: StageRun}

	for i := range members {
		scopes, err := memberScopes(&members[i])
		if err != nil {
			return nil, err
		}
		for _, s := range scopes {
			command, ok := scopeTasks(s)[name]
			if !ok {
				continue
			}
			sp.Tasks = append(sp.Tasks, p.newTask(s, taskName(s, name), command, StageRun,
				domain.ToolGeneric, workspaceRoot, environ))
		}
	}

	if len(sp.Tasks) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrTaskNotDefined, fmt.Sprintf("no tasks.%s entry", name)), "task", name)
	}

	plan.Stages = []domain.StagePlan{sp}
	return plan, nil
}

// memberScopes returns the member's base directory followed by its targets.
func memberScopes(m *domain.Member) ([]scope, error) {
	targets, err := ResolveTargets(m.Config, m.BaseDir)
	if err != nil {
		return nil, zerr.With(err, "config", m.Path)
	}

	scopes := make([]scope, 0, len(targets)+1)
	scopes = append(scopes, scope{member: m, dir: m.BaseDir})
	for i := range targets {
		scopes = append(scopes, scope{member: m, target: &targets[i], dir: targets[i].Path})
	}
	return scopes, nil
}

// defaultScopes detects the toolchain of every distinct directory, once, and drops the
// directories whose toolchain is skipped.
func (p *Planner) defaultScopes(scopes [][]scope, pipeline domain.Pipeline, skip domain.SkipSet) [][]defaultScope {
	seen := make(map[string]bool)
	out := make([][]defaultScope, len(scopes))

	for i, ms := range scopes {
		for _, s := range ms {
			if seen[s.dir] {
				continue
			}
			seen[s.dir] = true

			kind := p.detector.Detect(s.dir)
			if kind == domain.KindUnknown {
				continue
			}
			if skip.SkipsKind(kind) {
				p.logger.Warn(fmt.Sprintf("Skipping default %s tasks for %s project at %s due to --skip flag.",
					pipeline.Name, kind, s.dir))
				continue
			}
			out[i] = append(out[i], defaultScope{scope: s, kind: kind})
		}
	}
	return out
}

func (p *Planner) configuredTasks(
	s scope,
	pipeline domain.Pipeline,
	stage domain.Stage,
	workspaceRoot string,
	environ []string,
) []domain.Task {
	var commands []string
	if s.target == nil {
		commands = s.member.Config.Section(pipeline.Section).Commands(stage)
	} else {
		commands = s.target.Config.Section(pipeline.Section).Commands(stage)
	}

	tasks := make([]domain.Task, 0, len(commands))
	for _, command := range commands {
		tasks = append(tasks, p.newTask(s, taskName(s, string(stage)), command, stage,
			domain.ToolGeneric, workspaceRoot, environ))
	}
	return tasks
}

func (p *Planner) defaultTasks(
	d defaultScope,
	pipeline domain.Pipeline,
	stage domain.Stage,
	workspaceRoot string,
	environ []string,
) []domain.Task {
	var tasks []domain.Task
	for _, dt := range d.kind.DefaultTasks(pipeline.Mode) {
		if dt.Stage != stage {
			continue
		}
		tasks = append(tasks, p.newTask(d.scope, taskName(d.scope, dt.Name), dt.Command, stage,
			d.kind.Tool(), workspaceRoot, environ))
	}
	return tasks
}

func (p *Planner) newTask(
	s scope,
	name, command string,
	stage domain.Stage,
	tool, workspaceRoot string,
	environ []string,
) domain.Task {
	env := p.env.Resolve(domain.EnvRequest{
		Base:          environ,
		Config:        s.member.Config,
		Target:        s.targetConfig(),
		WorkspaceRoot: workspaceRoot,
		ProjectRoot:   s.dir,
		Tool:          tool,
		TargetID:      s.targetID(),
	})

	return domain.Task{
		Name:        domain.NewInternedString(name),
		Command:     command,
		WorkingDir:  domain.NewInternedString(s.dir),
		Stage:       stage,
		Environment: env,
		TargetID:    s.targetID(),
	}
}

// taskName prefixes target tasks with the target id.
func taskName(s scope, name string) string {
	if s.target == nil {
		return name
	}
	return s.target.ID + ":" + name
}

func scopeTasks(s scope) map[string]string {
	if s.target == nil {
		return s.member.Config.Tasks
	}
	return s.target.Config.Tasks
}
