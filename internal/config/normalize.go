package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeLauncher(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return c.normalizeHistory()
}

func (c *Config) normalizeLauncher() error {
	var err error
	c.Launcher.BaseDir = strings.TrimSpace(c.Launcher.BaseDir)
	if c.Launcher.BaseDir, err = expandPath(c.Launcher.BaseDir); err != nil {
		return fmt.Errorf("launcher.base_dir: %w", err)
	}
	if c.Launcher.VenvDir, err = normalizeRelative(c.Launcher.VenvDir, defaultVenvDir); err != nil {
		return fmt.Errorf("launcher.venv_dir: %w", err)
	}
	if c.Launcher.Script, err = normalizeRelative(c.Launcher.Script, defaultScript); err != nil {
		return fmt.Errorf("launcher.script: %w", err)
	}
	c.Launcher.Interpreter = strings.TrimSpace(c.Launcher.Interpreter)
	if c.Launcher.Interpreter == "" {
		c.Launcher.Interpreter = defaultInterpreter
	}
	return nil
}

// normalizeRelative expands tilde paths and cleans the rest while keeping
// relative values relative so they can be anchored later.
func normalizeRelative(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if strings.HasPrefix(value, "~") {
		return expandPath(value)
	}
	return filepath.Clean(value), nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.ListLimit <= 0 {
		c.History.ListLimit = defaultHistoryListLimit
	}
	// A disabled ledger keeps its path unexpanded so a missing home
	// directory never blocks a launch.
	if !c.History.Enabled {
		return nil
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}
