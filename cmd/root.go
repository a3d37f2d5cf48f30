// Package cmd implements the CLI command structure for paceview.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paceview/paceview/internal/bus"
	"github.com/paceview/paceview/internal/chart"
	"github.com/paceview/paceview/internal/config"
	"github.com/paceview/paceview/internal/dataset"
	"github.com/paceview/paceview/internal/logging"
	"github.com/paceview/paceview/internal/ui"
	"github.com/paceview/paceview/internal/xlsx"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the paceview CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("paceview", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Default to the editor when no subcommand is given.
	subcommand := "edit"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "edit":
		return editCommand(ctx, cfg, remainingArgs)
	case "chart":
		return chartCommand(cfg, remainingArgs)
	case "validate":
		return validateCommand(cfg, remainingArgs)
	case "export":
		return exportCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "version", "--version":
		return versionCommand()
	case "help", "--help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// An existing file path is treated as the dataset to edit.
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.DataFile = subcommand
			return editCommand(ctx, cfg, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// editCommand runs the TUI editor, optionally re-rendering the chart on
// every edit.
func editCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("paceview edit", flag.ContinueOnError)
	follow := fs.Bool("follow", false, "Re-render the chart file after every edit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.DataFile = remaining[0]
	}

	logger := logging.New(cfg)
	b := bus.New()

	done := make(chan struct{})
	if *follow {
		snapshots := b.Subscribe()
		go func() {
			defer close(done)
			opts := chartOptions(cfg)
			for ds := range snapshots {
				if err := chart.RenderFile(ds, cfg.ChartFile, opts); err != nil {
					logger.Warn("chart render failed", "path", cfg.ChartFile, "err", err)
					continue
				}
				logger.Debug("chart rendered", "path", cfg.ChartFile)
			}
		}()
	} else {
		close(done)
	}

	err := ui.RunEditor(ctx, cfg, b, cfg.DataFile)
	b.Close()
	<-done
	return err
}

// chartCommand renders a chart file from a dataset file.
func chartCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("paceview chart", flag.ContinueOnError)
	output := fs.String("o", cfg.ChartFile, "Chart output path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dataPath := cfg.DataFile
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		dataPath = remaining[0]
	}

	logger := logging.New(cfg)
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}
	if err := chart.RenderFile(ds, *output, chartOptions(cfg)); err != nil {
		return err
	}
	logger.Info("chart rendered", "data", dataPath, "chart", *output)
	return nil
}

// validateCommand checks a dataset file and prints every violation.
func validateCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("paceview validate", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	dataPath := cfg.DataFile
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		dataPath = remaining[0]
	}

	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("read dataset file: %w", err)
	}
	ds, result := dataset.Validate(data)
	if !result.Valid {
		for _, violation := range result.Errors {
			fmt.Fprintf(os.Stderr, "  %v\n", violation)
		}
		return fmt.Errorf("%s: %d validation error(s)", dataPath, len(result.Errors))
	}
	fmt.Printf("%s: valid (%d headers, %d rows)\n", dataPath, len(ds.Headers), len(ds.Rows))
	return nil
}

// exportCommand writes the dataset as an .xlsx workbook.
func exportCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("paceview export", flag.ContinueOnError)
	output := fs.String("o", "ai-progress-data.xlsx", "Workbook output path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dataPath := cfg.DataFile
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		dataPath = remaining[0]
	}

	logger := logging.New(cfg)
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}
	if err := xlsx.Write(ds, *output); err != nil {
		return err
	}
	logger.Info("workbook exported", "data", dataPath, "workbook", *output)
	return nil
}

// initCommand writes the built-in default dataset to a new file.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("paceview init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dataPath := cfg.DataFile
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		dataPath = remaining[0]
	}

	if _, err := os.Stat(dataPath); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", dataPath)
	}
	if err := dataset.Default().Save(dataPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", dataPath)
	return nil
}

func versionCommand() error {
	fmt.Printf("paceview %s\n", Version)
	return nil
}

func chartOptions(cfg *config.Config) chart.Options {
	opts := chart.DefaultOptions()
	opts.Width = cfg.ChartWidth
	opts.Height = cfg.ChartHeight
	opts.Format = cfg.ChartFormat
	if cfg.ChartTitle != "" {
		opts.Title = cfg.ChartTitle
	}
	return opts
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `paceview - edit and chart AI progress multiplier datasets

Usage:
  paceview [flags] [command] [args]

Commands:
  edit [file]       Open the dataset editor (default)
  chart [file]      Render the dataset as a chart image
  validate [file]   Validate a dataset file against the schema
  export [file]     Export the dataset as an .xlsx workbook
  init [file]       Write the built-in default dataset
  version           Show version
  help              Show this help

Flags:
`)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
