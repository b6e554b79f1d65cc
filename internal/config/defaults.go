package config

const (
	defaultVenvDir           = "../venv"
	defaultScript            = "subtitle_maker.py"
	defaultInterpreter       = "python"
	defaultLogFormat         = "console"
	defaultLogLevel          = "warn"
	defaultHistoryPath       = "~/.local/share/sublaunch/history.db"
	defaultConfigPath        = "~/.config/sublaunch/config.toml"
	projectConfigName        = "sublaunch.toml"
	configEnvVar             = "SUBLAUNCH_CONFIG"
	defaultHistoryListLimit  = 20
	defaultPause             = true
	defaultPropagateExitCode = true
	defaultSerializeRuns     = false
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Launcher: Launcher{
			VenvDir:           defaultVenvDir,
			Script:            defaultScript,
			Interpreter:       defaultInterpreter,
			Pause:             defaultPause,
			PropagateExitCode: defaultPropagateExitCode,
			SerializeRuns:     defaultSerializeRuns,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Path:      defaultHistoryPath,
			ListLimit: defaultHistoryListLimit,
		},
	}
}
