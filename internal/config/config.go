package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Launcher contains interpreter resolution and child process settings.
type Launcher struct {
	// BaseDir anchors relative lookups. Empty means the directory holding the
	// launcher executable.
	BaseDir string `toml:"base_dir"`
	// VenvDir is the virtual environment directory, relative to BaseDir unless absolute.
	VenvDir string `toml:"venv_dir"`
	// Script is the subtitle script, relative to BaseDir unless absolute.
	Script string `toml:"script"`
	// Interpreter is the bare fallback name looked up on PATH.
	Interpreter       string `toml:"interpreter"`
	Pause             bool   `toml:"pause"`
	PropagateExitCode bool   `toml:"propagate_exit_code"`
	SerializeRuns     bool   `toml:"serialize_runs"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// History contains configuration for the optional run ledger.
type History struct {
	Enabled   bool   `toml:"enabled"`
	Path      string `toml:"path"`
	ListLimit int    `toml:"list_limit"`
}

// Config encapsulates all configuration values for sublaunch.
type Config struct {
	Launcher Launcher `toml:"launcher"`
	Logging  Logging  `toml:"logging"`
	History  History  `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file, searching beside
// the running executable as well. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	dir, err := ExecutableDir()
	if err != nil {
		dir = ""
	}
	return LoadFrom(dir, path)
}

// LoadFrom is Load with an explicit launcher directory. Search order: path,
// then SUBLAUNCH_CONFIG, then sublaunch.toml in launcherDir, then the user
// config file, then sublaunch.toml in the working directory. A missing file
// means defaults.
func LoadFrom(launcherDir, path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(launcherDir, path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(launcherDir, path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		if value, ok := os.LookupEnv(configEnvVar); ok && strings.TrimSpace(value) != "" {
			path = strings.TrimSpace(value)
		}
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	var candidates []string
	if dir := strings.TrimSpace(launcherDir); dir != "" {
		candidates = append(candidates, filepath.Join(dir, projectConfigName))
	}
	// Without a home directory there is simply no user config.
	userPath, userErr := expandPath(defaultConfigPath)
	if userErr == nil {
		candidates = append(candidates, userPath)
	}
	projectPath, projectErr := filepath.Abs(projectConfigName)
	if projectErr == nil {
		candidates = append(candidates, projectPath)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}

	switch {
	case userErr == nil:
		return userPath, false, nil
	case projectErr == nil:
		return projectPath, false, nil
	default:
		return "", false, nil
	}
}

// ExecutableDir returns the directory of the running executable with symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate launcher executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// VenvPath returns the absolute virtual environment directory for base.
func (l Launcher) VenvPath(base string) string {
	return anchor(base, l.VenvDir)
}

// ScriptPath returns the absolute subtitle script path for base.
func (l Launcher) ScriptPath(base string) string {
	return anchor(base, l.Script)
}

func anchor(base, value string) string {
	if filepath.IsAbs(value) || base == "" {
		return filepath.Clean(value)
	}
	return filepath.Join(base, value)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
