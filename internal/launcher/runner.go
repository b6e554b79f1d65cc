package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
)

// Runner spawns the child process and waits for it. It returns the child's
// exit code when the child ran, whatever that code is, and an error only when
// the child could not be started or waited on.
type Runner interface {
	Run(ctx context.Context, cmd Command) (int, error)
}

// SpawnError reports that the child process could not be started.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run starts cmd and blocks until it exits. Interrupts delivered to the
// console reach the child; the launcher absorbs them while waiting so it can
// still report and pause afterwards.
func (ExecRunner) Run(ctx context.Context, cmd Command) (int, error) {
	child := exec.CommandContext(ctx, cmd.Program, cmd.Args...) //nolint:gosec
	child.Env = cmd.Env
	child.Stdin = cmd.Stdin
	child.Stdout = cmd.Stdout
	child.Stderr = cmd.Stderr

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	if err := child.Start(); err != nil {
		return -1, &SpawnError{Program: cmd.Program, Err: err}
	}

	err := child.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("wait for %s: %w", cmd.Program, err)
}
