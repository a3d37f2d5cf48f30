package config

import "flag"

// parseFlags registers the global flags on fs and parses args. Flags
// override every other configuration source.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Dataset file path")
	fs.StringVar(&cfg.ChartFile, "chart", cfg.ChartFile, "Chart output path")
	fs.StringVar(&cfg.ChartFormat, "chart-format", cfg.ChartFormat, "Chart output format (png|svg)")
	fs.IntVar(&cfg.ChartWidth, "chart-width", cfg.ChartWidth, "Chart width in pixels")
	fs.IntVar(&cfg.ChartHeight, "chart-height", cfg.ChartHeight, "Chart height in pixels")
	fs.StringVar(&cfg.ChartTitle, "chart-title", cfg.ChartTitle, "Chart title")
	fs.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "Autosave cache directory")
	fs.BoolVar(&cfg.Autosave, "autosave", cfg.Autosave, "Autosave edits to the cache")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")

	return fs.Parse(args)
}
