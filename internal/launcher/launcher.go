package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"sublaunch/internal/config"
	"sublaunch/internal/history"
	"sublaunch/internal/interpreter"
	"sublaunch/internal/logging"
)

// Exit codes used when the child never produced one.
const (
	ExitInterpreterNotFound = 127
	ExitSpawnFailed         = 1
)

// Recorder persists finished runs.
type Recorder interface {
	Record(ctx context.Context, run history.Run) error
}

// Options locates the interpreter and script for a launch.
type Options struct {
	// VenvDir is the absolute virtual environment directory.
	VenvDir string
	// Script is the absolute subtitle script path. It is not checked before spawning.
	Script string
	// Interpreter is the fallback interpreter name.
	Interpreter string
	// Layout overrides the host venv layout when non-zero.
	Layout interpreter.Layout
	// LockPath serializes runs when set.
	LockPath          string
	PropagateExitCode bool
}

// OptionsFromConfig anchors the configured launcher paths at base.
func OptionsFromConfig(cfg *config.Config, base string) Options {
	opts := Options{
		VenvDir:           cfg.Launcher.VenvPath(base),
		Script:            cfg.Launcher.ScriptPath(base),
		Interpreter:       cfg.Launcher.Interpreter,
		PropagateExitCode: cfg.Launcher.PropagateExitCode,
	}
	if cfg.Launcher.SerializeRuns {
		opts.LockPath = LockPathFor(opts.Script)
	}
	return opts
}

// Launcher runs the subtitle script once per Run call.
type Launcher struct {
	opts     Options
	runner   Runner
	pauser   Pauser
	recorder Recorder
	logger   *slog.Logger
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	environ  func() []string
	colorize bool
}

// Option customizes a Launcher.
type Option func(*Launcher)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(l *Launcher) { l.runner = r }
}

// WithPauser replaces the end-of-run pause.
func WithPauser(p Pauser) Option {
	return func(l *Launcher) { l.pauser = p }
}

// WithRecorder stores every finished run.
func WithRecorder(r Recorder) Option {
	return func(l *Launcher) { l.recorder = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

// WithStreams sets the console streams shared with the child.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stdout = stdout
		l.stderr = stderr
	}
}

// WithEnviron sets the base environment used when a venv is activated.
func WithEnviron(fn func() []string) Option {
	return func(l *Launcher) { l.environ = fn }
}

// New constructs a Launcher. Defaults: ExecRunner, ConsolePauser on the
// process console, no recorder, no-op logger.
func New(opts Options, options ...Option) *Launcher {
	l := &Launcher{
		opts:    opts,
		runner:  ExecRunner{},
		pauser:  NewConsolePauser(),
		logger:  logging.NewNop(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ,
	}
	for _, opt := range options {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.NewNop()
	}
	l.logger = logging.NewComponentLogger(l.logger, "launcher")
	l.colorize = shouldColorize(l.stdout)
	return l
}

// Result describes one finished launch.
type Result struct {
	RunID      string
	Resolution interpreter.Resolution
	Command    Command
	// ChildExitCode is -1 when the child never started.
	ChildExitCode int
	// Err is set when the child could not be started or waited on.
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
	propagate  bool
}

// ExitCode returns the launcher's own exit status: the child's code when
// propagation is enabled, 0 otherwise. Launch failures map to
// ExitInterpreterNotFound or ExitSpawnFailed.
func (r Result) ExitCode() int {
	if !r.propagate {
		return 0
	}
	if r.Err != nil {
		if errors.Is(r.Err, exec.ErrNotFound) {
			return ExitInterpreterNotFound
		}
		return ExitSpawnFailed
	}
	if r.ChildExitCode < 0 {
		return ExitSpawnFailed
	}
	return r.ChildExitCode
}

// Plan resolves the interpreter and builds the child command without running it.
func (l *Launcher) Plan(forwarded []string) (interpreter.Resolution, Command) {
	res := interpreter.Resolve(interpreter.Options{
		VenvDir:  l.opts.VenvDir,
		Fallback: l.opts.Interpreter,
		Layout:   l.opts.Layout,
	})

	args := make([]string, 0, len(forwarded)+2)
	args = append(args, l.opts.Script)
	args = append(args, ChildArgs(forwarded)...)

	cmd := Command{
		Program: res.Program,
		Args:    args,
		Stdin:   l.stdin,
		Stdout:  l.stdout,
		Stderr:  l.stderr,
	}
	if res.Kind == interpreter.KindActivated {
		cmd.Env = res.Environ(l.environ())
	}
	return res, cmd
}

// Run resolves the interpreter, runs the script once with forwarded
// arguments, prints a completion notice and pauses exactly once. It never
// returns early: every outcome is carried in the Result.
func (l *Launcher) Run(ctx context.Context, forwarded []string) Result {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, l.logger)

	res, cmd := l.Plan(forwarded)
	l.announce(res)
	logger.Info("interpreter resolved",
		logging.String("kind", res.Kind.String()),
		logging.String("program", res.Program),
		logging.String("venv", res.VenvDir),
	)

	release := func() {}
	if l.opts.LockPath != "" {
		release = acquireRunLock(l.opts.LockPath, l.stdout, logger)
	}

	result := Result{
		RunID:      runID,
		Resolution: res,
		Command:    cmd,
		StartedAt:  time.Now(),
		propagate:  l.opts.PropagateExitCode,
	}
	logger.Debug("starting child", logging.Strings("argv", cmd.Argv()))
	result.ChildExitCode, result.Err = l.runner.Run(ctx, cmd)
	result.FinishedAt = time.Now()
	release()

	if result.Err != nil {
		logger.Error("child failed to run", logging.Error(result.Err))
	} else {
		logger.Info("child exited",
			logging.Int("exit_code", result.ChildExitCode),
			logging.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
		)
	}

	l.record(ctx, logger, result)
	l.complete(result)

	if err := l.pauser.Pause(); err != nil {
		logger.Warn("pause failed", logging.Error(err))
	}
	return result
}

func (l *Launcher) record(ctx context.Context, logger *slog.Logger, result Result) {
	if l.recorder == nil {
		return
	}
	run := history.Run{
		ID:          result.RunID,
		StartedAt:   result.StartedAt,
		FinishedAt:  result.FinishedAt,
		Kind:        result.Resolution.Kind.String(),
		Interpreter: result.Command.Program,
		Script:      l.opts.Script,
		Args:        result.Command.Args[1:],
		ExitCode:    result.ChildExitCode,
	}
	if result.Err != nil {
		run.Error = result.Err.Error()
	}
	if err := l.recorder.Record(ctx, run); err != nil {
		logger.Warn("failed to record run history", logging.Error(err))
	}
}

func (l *Launcher) announce(res interpreter.Resolution) {
	switch res.Kind {
	case interpreter.KindActivated:
		fmt.Fprintln(l.stdout, "Activating virtual environment...")
	case interpreter.KindVirtualEnv:
		fmt.Fprintf(l.stdout, "Using virtual environment interpreter: %s\n", res.Program)
	default:
		fmt.Fprintf(l.stdout, "Virtual environment not found, using system %s\n", res.Program)
	}
}

func (l *Launcher) complete(result Result) {
	switch {
	case result.Err != nil:
		fmt.Fprintln(l.stderr, result.Err)
		fmt.Fprintln(l.stdout, l.paint(ansiRed, "Subtitle generation could not be started."))
	case result.ChildExitCode != 0:
		fmt.Fprintln(l.stdout, l.paint(ansiYellow, fmt.Sprintf("Subtitle generation finished with exit code %d.", result.ChildExitCode)))
	default:
		fmt.Fprintln(l.stdout, l.paint(ansiGreen, "Subtitle generation finished."))
	}
}
