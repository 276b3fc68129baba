// Package shell provides a shell-based executor for running tasks.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultShell runs commands when neither the settings nor the task environment name one.
const DefaultShell = "sh"

// waitDelay bounds how long output pipes are drained after a cancelled command is killed.
const waitDelay = 5 * time.Second

// Executor implements ports.Executor by running commands through "<shell> -c".
type Executor struct {
	// Shell overrides the task environment's SHELL.
	Shell  string
	logger ports.Logger
}

// NewExecutor creates a new Executor.
// Output sent to nil writers is logged line by line through logger.
func NewExecutor(shell string, logger ports.Logger) *Executor {
	return &Executor{Shell: shell, logger: logger}
}

// Execute runs the task's command in its working directory with exactly the task's environment.
// Stdin is the null device.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, stdout, stderr io.Writer) error {
	env := environ(task.Environment)
	shell := e.shellFor(task.Environment)

	executable := shell
	if !filepath.IsAbs(shell) {
		if lp, err := lookPath(shell, task.Environment["PATH"]); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, "-c", task.Command) //nolint:gosec // commands come from the workspace config
	cmd.Args[0] = shell
	cmd.Dir = task.WorkingDir.String()
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	var closers []io.Closer
	cmd.Stdout, closers = e.writerOr(stdout, e.logInfo, closers)
	cmd.Stderr, closers = e.writerOr(stderr, e.logWarn, closers)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("%w: %s (%w)", domain.ErrCommandLaunchFailed, task.Command, err)
		return zerr.With(err, "exit_code", -1)
	}

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = fmt.Errorf("%w: %s (%w)", domain.ErrCommandFailed, task.Command, err)
		return zerr.With(err, "exit_code", exitCode)
	}

	return nil
}

func (e *Executor) shellFor(env map[string]string) string {
	if e.Shell != "" {
		return e.Shell
	}
	if sh := env["SHELL"]; sh != "" {
		return sh
	}
	return DefaultShell
}

func (e *Executor) writerOr(w io.Writer, log func(string), closers []io.Closer) (io.Writer, []io.Closer) {
	if w != nil {
		return w, closers
	}
	if e.logger == nil {
		return io.Discard, closers
	}
	lw := &logWriter{log: log}
	return lw, append(closers, lw)
}

func (e *Executor) logInfo(line string) { e.logger.Info(line) }

func (e *Executor) logWarn(line string) { e.logger.Warn(line) }

// environ renders the environment in sorted "KEY=VALUE" form.
func environ(env map[string]string) []string {
	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// logWriter forwards complete lines to a log function.
type logWriter struct {
	mu  sync.Mutex
	log func(string)
	buf []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	w.log(strings.TrimSuffix(string(line), "\r"))
}

// lookPath searches for an executable in the directories of the given PATH value.
func lookPath(file, path string) (string, error) {
	if strings.Contains(file, string(filepath.Separator)) {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
