package launcher_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"sublaunch/internal/config"
	"sublaunch/internal/history"
	"sublaunch/internal/interpreter"
	"sublaunch/internal/launcher"
	"sublaunch/internal/testsupport"
)

type fakeRunner struct {
	calls  []launcher.Command
	code   int
	err    error
	called chan struct{}
}

func (f *fakeRunner) Run(_ context.Context, cmd launcher.Command) (int, error) {
	f.calls = append(f.calls, cmd)
	if f.called != nil {
		close(f.called)
	}
	return f.code, f.err
}

type countingPauser struct{ count int }

func (p *countingPauser) Pause() error {
	p.count++
	return nil
}

type memoryRecorder struct{ runs []history.Run }

func (m *memoryRecorder) Record(_ context.Context, run history.Run) error {
	m.runs = append(m.runs, run)
	return nil
}

type launchEnv struct {
	cfg    *config.Config
	base   string
	venv   string
	runner *fakeRunner
	pauser *countingPauser
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newLaunchEnv(t *testing.T) *launchEnv {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	base := cfg.Launcher.BaseDir
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatalf("mkdir base: %v", err)
	}
	return &launchEnv{
		cfg:    cfg,
		base:   base,
		venv:   cfg.Launcher.VenvPath(base),
		runner: &fakeRunner{},
		pauser: &countingPauser{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
}

func (e *launchEnv) launcher(extra ...launcher.Option) *launcher.Launcher {
	opts := []launcher.Option{
		launcher.WithRunner(e.runner),
		launcher.WithPauser(e.pauser),
		launcher.WithStreams(strings.NewReader(""), e.stdout, e.stderr),
		launcher.WithEnviron(func() []string { return []string{"PATH=/usr/bin", "LANG=C"} }),
	}
	return launcher.New(launcher.OptionsFromConfig(e.cfg, e.base), append(opts, extra...)...)
}

func TestRunWithoutVenvFallsBackToSystemPython(t *testing.T) {
	env := newLaunchEnv(t)

	result := env.launcher().Run(context.Background(), nil)

	if len(env.runner.calls) != 1 {
		t.Fatalf("expected exactly one spawn, got %d", len(env.runner.calls))
	}
	cmd := env.runner.calls[0]
	want := []string{"python", filepath.Join(env.base, "subtitle_maker.py"), "--no-preview"}
	if !slices.Equal(cmd.Argv(), want) {
		t.Fatalf("argv = %q, want %q", cmd.Argv(), want)
	}
	if cmd.Env != nil {
		t.Fatalf("expected inherited environment, got %v", cmd.Env)
	}
	if result.Resolution.Kind != interpreter.KindSystem {
		t.Fatalf("kind = %s, want system", result.Resolution.Kind)
	}
	if !strings.Contains(env.stdout.String(), "Virtual environment not found, using system python") {
		t.Fatalf("expected resolution notice, got %q", env.stdout.String())
	}
	if !strings.Contains(env.stdout.String(), "Subtitle generation finished.") {
		t.Fatalf("expected completion notice, got %q", env.stdout.String())
	}
	if env.pauser.count != 1 {
		t.Fatalf("expected one pause, got %d", env.pauser.count)
	}
	if result.ExitCode() != 0 || result.RunID == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRunForwardsArgumentsToVenvInterpreter(t *testing.T) {
	env := newLaunchEnv(t)
	python := testsupport.MakeVenv(t, env.venv, testsupport.VenvOptions{Interpreter: true})

	env.launcher().Run(context.Background(), []string{"--lang", "en"})

	cmd := env.runner.calls[0]
	if cmd.Program != python {
		t.Fatalf("program = %q, want %q", cmd.Program, python)
	}
	wantArgs := []string{filepath.Join(env.base, "subtitle_maker.py"), "--no-preview", "--lang", "en"}
	if !slices.Equal(cmd.Args, wantArgs) {
		t.Fatalf("args = %q, want %q", cmd.Args, wantArgs)
	}
	if !strings.Contains(env.stdout.String(), "Using virtual environment interpreter: "+python) {
		t.Fatalf("expected venv notice, got %q", env.stdout.String())
	}
}

func TestRunActivatedVenvAppliesEnvironment(t *testing.T) {
	env := newLaunchEnv(t)
	python := testsupport.MakeVenv(t, env.venv, testsupport.VenvOptions{Activation: true, Interpreter: true})

	result := env.launcher().Run(context.Background(), []string{"movie.mkv"})

	if result.Resolution.Kind != interpreter.KindActivated {
		t.Fatalf("kind = %s, want activated", result.Resolution.Kind)
	}
	cmd := env.runner.calls[0]
	if cmd.Program != python {
		t.Fatalf("program = %q, want %q", cmd.Program, python)
	}
	if !slices.Contains(cmd.Env, "VIRTUAL_ENV="+env.venv) || !slices.Contains(cmd.Env, "LANG=C") {
		t.Fatalf("unexpected child environment: %v", cmd.Env)
	}
	if !strings.Contains(env.stdout.String(), "Activating virtual environment...") {
		t.Fatalf("expected activation notice, got %q", env.stdout.String())
	}
}

func TestRunPausesOnceWhenChildFails(t *testing.T) {
	env := newLaunchEnv(t)
	env.runner.code = 3

	result := env.launcher().Run(context.Background(), []string{"clip.mp4"})

	if env.pauser.count != 1 {
		t.Fatalf("expected one pause, got %d", env.pauser.count)
	}
	if result.ExitCode() != 3 {
		t.Fatalf("exit code = %d, want 3", result.ExitCode())
	}
	if !strings.Contains(env.stdout.String(), "finished with exit code 3") {
		t.Fatalf("expected failure notice, got %q", env.stdout.String())
	}
}

func TestRunExitCodeNotPropagatedWhenDisabled(t *testing.T) {
	env := newLaunchEnv(t)
	env.cfg.Launcher.PropagateExitCode = false
	env.runner.code = 2

	if code := env.launcher().Run(context.Background(), nil).ExitCode(); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}

func TestRunSpawnFailureStillPauses(t *testing.T) {
	env := newLaunchEnv(t)
	env.runner.code = -1
	env.runner.err = &launcher.SpawnError{Program: "python", Err: &exec.Error{Name: "python", Err: exec.ErrNotFound}}

	result := env.launcher().Run(context.Background(), nil)

	if env.pauser.count != 1 {
		t.Fatalf("expected one pause, got %d", env.pauser.count)
	}
	if result.ExitCode() != launcher.ExitInterpreterNotFound {
		t.Fatalf("exit code = %d, want %d", result.ExitCode(), launcher.ExitInterpreterNotFound)
	}
	if !strings.Contains(env.stderr.String(), "start python") {
		t.Fatalf("expected spawn error on stderr, got %q", env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "could not be started") {
		t.Fatalf("expected failure notice, got %q", env.stdout.String())
	}
}

func TestRunOtherSpawnFailureExitCode(t *testing.T) {
	env := newLaunchEnv(t)
	env.runner.code = -1
	env.runner.err = &launcher.SpawnError{Program: "python", Err: os.ErrPermission}

	if code := env.launcher().Run(context.Background(), nil).ExitCode(); code != launcher.ExitSpawnFailed {
		t.Fatalf("exit code = %d, want %d", code, launcher.ExitSpawnFailed)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	env := newLaunchEnv(t)
	env.runner.code = 4
	recorder := &memoryRecorder{}

	result := env.launcher(launcher.WithRecorder(recorder)).Run(context.Background(), []string{"a.mp4", "en"})

	if len(recorder.runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(recorder.runs))
	}
	run := recorder.runs[0]
	if run.ID != result.RunID || run.Kind != "system" || run.ExitCode != 4 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if !slices.Equal(run.Args, []string{"--no-preview", "a.mp4", "en"}) {
		t.Fatalf("unexpected recorded args: %q", run.Args)
	}
	if run.Script != filepath.Join(env.base, "subtitle_maker.py") {
		t.Fatalf("unexpected script: %q", run.Script)
	}
}

func TestRunWaitsForHeldLock(t *testing.T) {
	env := newLaunchEnv(t)
	env.cfg.Launcher.SerializeRuns = true
	env.runner.called = make(chan struct{})

	lockPath := launcher.LockPathFor(env.cfg.Launcher.ScriptPath(env.base))
	holder := flock.New(lockPath)
	if err := holder.Lock(); err != nil {
		t.Fatalf("hold lock: %v", err)
	}

	done := make(chan launcher.Result, 1)
	l := env.launcher()
	go func() {
		done <- l.Run(context.Background(), nil)
	}()

	select {
	case <-env.runner.called:
		t.Fatal("child spawned while another run held the lock")
	case <-time.After(200 * time.Millisecond):
	}

	if err := holder.Unlock(); err != nil {
		t.Fatalf("release lock: %v", err)
	}

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("launcher did not finish after the lock was released")
	}
	if !strings.Contains(env.stdout.String(), "waiting for it to finish") {
		t.Fatalf("expected waiting notice, got %q", env.stdout.String())
	}
	if env.pauser.count != 1 {
		t.Fatalf("expected one pause, got %d", env.pauser.count)
	}
}

func TestExecRunnerInvokesMissingScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub interpreter requires a POSIX shell")
	}
	env := newLaunchEnv(t)
	python := testsupport.MakeVenv(t, env.venv, testsupport.VenvOptions{})
	marker := filepath.Join(t.TempDir(), "argv.txt")
	testsupport.WriteExecutable(t, python, fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %q\nexit 5\n", marker))

	l := launcher.New(
		launcher.OptionsFromConfig(env.cfg, env.base),
		launcher.WithPauser(env.pauser),
		launcher.WithStreams(strings.NewReader(""), env.stdout, env.stderr),
	)
	result := l.Run(context.Background(), []string{"--lang", "en"})

	if result.Err != nil {
		t.Fatalf("unexpected launch error: %v", result.Err)
	}
	if result.ExitCode() != 5 {
		t.Fatalf("exit code = %d, want 5", result.ExitCode())
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("stub interpreter did not run: %v", err)
	}
	want := strings.Join([]string{filepath.Join(env.base, "subtitle_maker.py"), "--no-preview", "--lang", "en"}, "\n") + "\n"
	if string(data) != want {
		t.Fatalf("child argv = %q, want %q", data, want)
	}
	if env.pauser.count != 1 {
		t.Fatalf("expected one pause, got %d", env.pauser.count)
	}
}

func TestExecRunnerReportsMissingInterpreter(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	code, err := launcher.ExecRunner{}.Run(context.Background(), launcher.Command{Program: "sublaunch-missing-python"})
	if err == nil {
		t.Fatal("expected spawn error")
	}
	if code != -1 {
		t.Fatalf("exit code = %d, want -1", code)
	}
	var spawnErr *launcher.SpawnError
	if !errors.As(err, &spawnErr) || !errors.Is(err, exec.ErrNotFound) {
		t.Fatalf("expected SpawnError wrapping exec.ErrNotFound, got %v", err)
	}
}
