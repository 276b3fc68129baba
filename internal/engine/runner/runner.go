// Package runner executes planned tasks stage by stage and aggregates their failures.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Runner executes plans. A failing task never stops the run; every failure is
// recorded and reported once all stages have run.
type Runner struct {
	executor ports.Executor
	logger   ports.Logger
	tracer   ports.Tracer

	jobs    int
	timeout time.Duration
	stdout  io.Writer
	stderr  io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithJobs sets how many working directories of a stage run concurrently.
func WithJobs(jobs int) Option {
	return func(r *Runner) {
		if jobs > 0 {
			r.jobs = jobs
		}
	}
}

// WithTaskTimeout bounds the duration of a single task. Zero disables the limit.
func WithTaskTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithOutput streams task output to the given writers.
// Without it, output lines are sent to the logger.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a new Runner.
func New(executor ports.Executor, logger ports.Logger, tracer ports.Tracer, opts ...Option) *Runner {
	r := &Runner{
		executor: executor,
		logger:   logger,
		tracer:   tracer,
		jobs:     1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every stage of the plan in order and returns a *domain.RunError
// listing all failures, or nil.
func (r *Runner) Run(ctx context.Context, plan *domain.Plan, label string) error {
	var failures domain.Failures
	r.RunInto(ctx, plan, label, &failures)
	return failures.Err(label)
}

// RunInto executes every stage of the plan in order, appending failures to the accumulator.
// A stage starts only after every task of the previous stage has finished.
func (r *Runner) RunInto(ctx context.Context, plan *domain.Plan, label string, failures *domain.Failures) {
	ctx, span := r.tracer.Start(ctx, label, ports.WithAttribute("loru.pipeline", plan.Pipeline.Name))
	defer span.End()

	for i := range plan.Stages {
		sp := &plan.Stages[i]
		if sp.Skipped || len(sp.Tasks) == 0 {
			continue
		}
		*failures = append(*failures, r.RunStage(ctx, label, sp.Stage, sp.Tasks)...)
	}

	if len(*failures) > 0 {
		span.SetAttribute("loru.failures", len(*failures))
	}
}

// RunStage executes the tasks of one stage and returns their failures in plan order.
func (r *Runner) RunStage(ctx context.Context, label string, stage domain.Stage, tasks []domain.Task) []domain.Failure {
	ctx, span := r.tracer.Start(ctx, ports.StageSpanPrefix+string(stage), ports.WithAttribute("loru.stage", string(stage)))
	defer span.End()

	names := make([]string, len(tasks))
	for i := range tasks {
		names[i] = tasks[i].Name.String()
	}
	r.tracer.EmitPlan(ctx, string(stage), names)

	errs := make([]error, len(tasks))
	if r.jobs <= 1 {
		for i := range tasks {
			errs[i] = r.runTask(ctx, label, &tasks[i])
		}
	} else {
		r.runGrouped(ctx, label, tasks, errs)
	}

	var failures domain.Failures
	for i, err := range errs {
		if err != nil {
			failures.Add(tasks[i].WorkingDir.String(), err)
		}
	}
	if len(failures) > 0 {
		span.SetAttribute("loru.failures", len(failures))
	}
	return failures
}

// runGrouped runs the tasks of each working directory sequentially while distinct
// directories run concurrently. errs is indexed by plan position.
func (r *Runner) runGrouped(ctx context.Context, label string, tasks []domain.Task, errs []error) {
	var order []domain.InternedString
	groups := make(map[domain.InternedString][]int)
	for i := range tasks {
		dir := tasks[i].WorkingDir
		if _, ok := groups[dir]; !ok {
			order = append(order, dir)
		}
		groups[dir] = append(groups[dir], i)
	}

	var g errgroup.Group
	g.SetLimit(r.jobs)
	for _, dir := range order {
		indexes := groups[dir]
		g.Go(func() error {
			for _, i := range indexes {
				errs[i] = r.runTask(ctx, label, &tasks[i])
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Runner) runTask(ctx context.Context, label string, task *domain.Task) error {
	ctx, span := r.tracer.Start(ctx, task.Name.String(),
		ports.WithAttribute("loru.task.fingerprint", task.Fingerprint()),
		ports.WithAttribute("loru.task.dir", task.WorkingDir.String()),
		ports.WithAttribute("loru.stage", string(task.Stage)),
	)
	defer span.End()

	ref := label + ":" + task.Name.String()

	// Planned tasks are not launched after cancellation, but still reported.
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		r.logger.Warn(fmt.Sprintf("%s not started: %v", ref, err))
		return err
	}

	r.logger.Info(fmt.Sprintf("%s -> %s (cwd=%s)", ref, task.Command, task.WorkingDir))

	taskCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	stdout, stderr := r.writers(span)

	start := time.Now()
	err := r.executor.Execute(taskCtx, task, stdout, stderr)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil && ctx.Err() == nil && errors.Is(taskCtx.Err(), context.DeadlineExceeded) {
		err = domain.ErrTaskTimedOut
	}

	if err != nil {
		span.RecordError(err)
		r.logger.Warn(fmt.Sprintf("%s failed after %s: %v", ref, elapsed, err))
		return err
	}

	r.logger.Info(fmt.Sprintf("%s ok (%s)", ref, elapsed))
	return nil
}

// writers mirrors task output into the span when output is streamed.
func (r *Runner) writers(span ports.Span) (io.Writer, io.Writer) {
	var stdout, stderr io.Writer
	if r.stdout != nil {
		stdout = io.MultiWriter(r.stdout, span)
	}
	if r.stderr != nil {
		stderr = io.MultiWriter(r.stderr, span)
	}
	return stdout, stderr
}
