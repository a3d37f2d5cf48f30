package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from PACEVIEW_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("PACEVIEW_DATA"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("PACEVIEW_CHART"); v != "" {
		cfg.ChartFile = v
	}
	if v := os.Getenv("PACEVIEW_CHART_FORMAT"); v != "" {
		cfg.ChartFormat = v
	}
	if v := os.Getenv("PACEVIEW_CHART_WIDTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.ChartWidth = i
		}
	}
	if v := os.Getenv("PACEVIEW_CHART_HEIGHT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.ChartHeight = i
		}
	}
	if v := os.Getenv("PACEVIEW_CHART_TITLE"); v != "" {
		cfg.ChartTitle = v
	}
	if v := os.Getenv("PACEVIEW_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("PACEVIEW_AUTOSAVE"); v != "" {
		cfg.Autosave = boolFromString(v)
	}
	if v := os.Getenv("PACEVIEW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PACEVIEW_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("PACEVIEW_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
}

func boolFromString(v string) bool {
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
