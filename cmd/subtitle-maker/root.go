package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sublaunch/internal/config"
	"sublaunch/internal/history"
	"sublaunch/internal/launcher"
	"sublaunch/internal/logging"
)

// exitCodeError carries the launcher's exit status out of cobra.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// shimEnv holds the process-facing pieces of the launcher.
type shimEnv struct {
	executableDir func() (string, error)
	pauser        func() launcher.Pauser
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	extra         []launcher.Option
}

func defaultShimEnv() *shimEnv {
	return &shimEnv{
		executableDir: config.ExecutableDir,
		pauser:        func() launcher.Pauser { return launcher.NewConsolePauser() },
		stdin:         os.Stdin,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
	}
}

// argsGuard stops cobra from routing the first forwarded token to a built-in
// command such as __complete. RunE removes it again.
const argsGuard = "--"

func newRootCommand(env *shimEnv) *cobra.Command {
	return &cobra.Command{
		Use:                "subtitle-maker [args...]",
		Short:              "Run subtitle_maker.py with the project's Python interpreter",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == argsGuard {
				args = args[1:]
			}
			return env.launch(cmd, args)
		},
	}
}

// execute runs the launcher with args forwarded verbatim.
func execute(cmd *cobra.Command, args []string) error {
	guarded := make([]string, 0, len(args)+1)
	guarded = append(guarded, argsGuard)
	cmd.SetArgs(append(guarded, args...))
	return cmd.Execute()
}

func (env *shimEnv) launch(cmd *cobra.Command, args []string) error {
	exeDir, exeErr := env.executableDir()

	launcherDir := ""
	if exeErr == nil {
		launcherDir = exeDir
	}
	cfg, _, _, err := config.LoadFrom(launcherDir, "")
	if err != nil {
		fmt.Fprintf(env.stderr, "load config: %v\n", err)
		env.pause(nil)
		return exitCodeError{code: 1}
	}

	base := cfg.Launcher.BaseDir
	if base == "" {
		if exeErr != nil {
			fmt.Fprintln(env.stderr, exeErr)
			env.pause(cfg)
			return exitCodeError{code: 1}
		}
		base = exeDir
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(env.stderr, "logging disabled: %v\n", err)
		logger = logging.NewNop()
	}

	options := []launcher.Option{
		launcher.WithLogger(logger),
		launcher.WithStreams(env.stdin, env.stdout, env.stderr),
		launcher.WithPauser(env.pauserFor(cfg)),
	}
	if store := openHistory(cfg, logger); store != nil {
		defer store.Close()
		options = append(options, launcher.WithRecorder(store))
	}
	options = append(options, env.extra...)

	result := launcher.New(launcher.OptionsFromConfig(cfg, base), options...).Run(cmd.Context(), args)
	if code := result.ExitCode(); code != 0 {
		return exitCodeError{code: code}
	}
	return nil
}

func (env *shimEnv) pauserFor(cfg *config.Config) launcher.Pauser {
	if cfg != nil && !cfg.Launcher.Pause {
		return launcher.NopPauser{}
	}
	return env.pauser()
}

func (env *shimEnv) pause(cfg *config.Config) {
	if err := env.pauserFor(cfg).Pause(); err != nil {
		fmt.Fprintln(env.stderr, err)
	}
}

// openHistory returns nil when history is disabled or unavailable; a broken
// ledger never blocks a launch.
func openHistory(cfg *config.Config, logger *slog.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("run history unavailable", logging.String("path", cfg.History.Path), logging.Error(err))
		return nil
	}
	return store
}
