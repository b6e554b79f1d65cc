package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLauncher(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateLauncher() error {
	if c.Launcher.Script == "" || c.Launcher.Script == "." {
		return errors.New("launcher.script must name the subtitle script")
	}
	if strings.ContainsAny(c.Launcher.Interpreter, "\x00\n") {
		return errors.New("launcher.interpreter contains invalid characters")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
