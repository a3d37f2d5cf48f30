// Package config handles configuration loading and defaults.
package config

// Default values.
const (
	DefaultDataFile    = "ai-progress-data.json"
	DefaultChartFile   = "ai-progress-chart.png"
	DefaultChartFormat = "png"
	DefaultChartWidth  = 1024
	DefaultChartHeight = 576
	DefaultCacheDir    = "~/.paceview"
	DefaultAutosave    = true
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// Config holds the full configuration for paceview.
type Config struct {
	// Paths
	DataFile  string `toml:"data_file"`
	ChartFile string `toml:"chart_file"`
	CacheDir  string `toml:"cache_dir"`

	// Chart rendering
	ChartFormat string `toml:"chart_format"` // png or svg
	ChartWidth  int    `toml:"chart_width"`
	ChartHeight int    `toml:"chart_height"`
	ChartTitle  string `toml:"chart_title"`

	// Editor behavior
	Autosave bool `toml:"autosave"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.ChartFile = DefaultChartFile
	cfg.ChartFormat = DefaultChartFormat
	cfg.ChartWidth = DefaultChartWidth
	cfg.ChartHeight = DefaultChartHeight
	cfg.CacheDir = DefaultCacheDir
	cfg.Autosave = DefaultAutosave
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
