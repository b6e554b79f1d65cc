package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sublaunch/internal/config"
)

// executableDir locates the launcher directory searched for sublaunch.toml
// and used as the default base directory.
var executableDir = config.ExecutableDir

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		launcherDir, err := executableDir()
		if err != nil {
			launcherDir = ""
		}
		cfg, resolved, _, err := config.LoadFrom(launcherDir, path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// baseDir returns the launcher base directory: the flag value when given,
// else the configured base_dir, else this executable's directory.
func (c *commandContext) baseDir(cfg *config.Config, flagValue string) (string, error) {
	if value := strings.TrimSpace(flagValue); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return "", fmt.Errorf("resolve base dir: %w", err)
		}
		return expanded, nil
	}
	if cfg.Launcher.BaseDir != "" {
		return cfg.Launcher.BaseDir, nil
	}
	return executableDir()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
