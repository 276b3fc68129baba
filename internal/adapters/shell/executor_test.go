package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/loru/internal/adapters/shell"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/loru/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newTask(dir, command string, env map[string]string) *domain.Task {
	return &domain.Task{
		Name:        domain.NewInternedString("test-task"),
		Command:     command,
		WorkingDir:  domain.NewInternedString(dir),
		Stage:       domain.StageCheck,
		Environment: env,
	}
}

func TestExecutor_Execute_Output(t *testing.T) {
	executor := shell.NewExecutor("", nil)
	tmpDir := t.TempDir()

	var stdout, stderr bytes.Buffer
	err := executor.Execute(context.Background(), newTask(tmpDir, "echo line1; echo line2; echo oops >&2", nil), &stdout, &stderr)
	require.NoError(t, err)

	assert.Equal(t, "line1\nline2\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	executor := shell.NewExecutor("", nil)
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	require.NoError(t, err)

	var stdout bytes.Buffer
	err = executor.Execute(context.Background(), newTask(tmpDir, "pwd -P", nil), &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, resolved, strings.TrimSpace(stdout.String()))
}

func TestExecutor_Execute_ExactEnvironment(t *testing.T) {
	t.Setenv("LORU_LEAK_CHECK", "leaked")
	executor := shell.NewExecutor("", nil)

	var stdout bytes.Buffer
	task := newTask(t.TempDir(), `echo "$MY_TEST_VAR|$LORU_LEAK_CHECK"`, map[string]string{
		"MY_TEST_VAR": "test-value-123",
	})
	err := executor.Execute(context.Background(), task, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "test-value-123|\n", stdout.String(), "only the task environment is visible")
}

func TestExecutor_Execute_StdinIsNull(t *testing.T) {
	executor := shell.NewExecutor("", nil)

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), newTask(t.TempDir(), "cat; echo done", nil), &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "done\n", stdout.String())
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	executor := shell.NewExecutor("", nil)

	err := executor.Execute(context.Background(), newTask(t.TempDir(), "exit 3", nil), io.Discard, io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommandFailed)
	assert.Contains(t, err.Error(), "exit 3")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_LaunchFailure(t *testing.T) {
	executor := shell.NewExecutor("/definitely/not/a/shell", nil)

	err := executor.Execute(context.Background(), newTask(t.TempDir(), "true", nil), io.Discard, io.Discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCommandLaunchFailed)
}

func TestExecutor_Execute_MissingWorkingDir(t *testing.T) {
	executor := shell.NewExecutor("", nil)

	dir := filepath.Join(t.TempDir(), "gone")
	err := executor.Execute(context.Background(), newTask(dir, "true", nil), io.Discard, io.Discard)
	assert.ErrorIs(t, err, domain.ErrCommandLaunchFailed)
}

func TestExecutor_Execute_ShellFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	fakeShell := filepath.Join(dir, "fakesh")
	require.NoError(t, os.WriteFile(fakeShell, []byte("#!/bin/sh\necho \"fake $2\"\n"), 0o755)) //nolint:gosec // test script must be executable

	executor := shell.NewExecutor("", nil)

	var stdout bytes.Buffer
	task := newTask(dir, "hello", map[string]string{"SHELL": "fakesh", "PATH": dir})
	require.NoError(t, executor.Execute(context.Background(), task, &stdout, io.Discard))
	assert.Equal(t, "fake hello\n", stdout.String())
}

func TestExecutor_Execute_ContextCancelled(t *testing.T) {
	executor := shell.NewExecutor("", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := executor.Execute(ctx, newTask(t.TempDir(), "sleep 5", nil), io.Discard, io.Discard)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecutor_Execute_LogsWhenWritersAreNil(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		mockLogger.EXPECT().Info("out1"),
		mockLogger.EXPECT().Info("out2"),
	)
	mockLogger.EXPECT().Warn("err-partial")

	executor := shell.NewExecutor("", mockLogger)
	task := newTask(t.TempDir(), "echo out1; printf 'out2\\n'; printf err-partial >&2", nil)
	require.NoError(t, executor.Execute(context.Background(), task, nil, nil))
}
