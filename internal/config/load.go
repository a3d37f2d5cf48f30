package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (OS config dir or ~/.paceview/paceview.toml)
// 3. Project config file (paceview.toml or .paceview.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if userFile := findUserConfigFile(); userFile != "" {
		if err := loadConfigFile(cfg, userFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
		}
	}

	if projectFile := findProjectConfigFile(); projectFile != "" {
		if err := loadConfigFile(cfg, projectFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// findUserConfigFile looks for a per-user config file.
func findUserConfigFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "paceview", "paceview.toml")
		if fileExists(path) {
			return path
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".paceview", "paceview.toml")
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	for _, name := range []string{"paceview.toml", ".paceview.toml"} {
		if fileExists(name) {
			return name
		}
	}
	return ""
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	cfg.CacheDir = expandPath(cfg.CacheDir)

	switch cfg.ChartFormat {
	case "png", "svg":
	default:
		return fmt.Errorf("chart_format must be png or svg, got %q", cfg.ChartFormat)
	}
	if cfg.ChartWidth <= 0 || cfg.ChartHeight <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %dx%d", cfg.ChartWidth, cfg.ChartHeight)
	}

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(cfg.ProjectRoot, cfg.DataFile)
	}
	if !filepath.IsAbs(cfg.ChartFile) {
		cfg.ChartFile = filepath.Join(cfg.ProjectRoot, cfg.ChartFile)
	}

	return nil
}
