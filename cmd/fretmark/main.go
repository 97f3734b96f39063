// Package main is the entry point for the fretmark diagram editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/fretmark/internal/app"
	"github.com/dshills/fretmark/internal/config"
	"github.com/dshills/fretmark/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// flags holds the parsed command line.
type flags struct {
	configPath string
	logLevel   string
	logFile    string
	mode       string
	exportPath string
	noWatch    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	fl := parseFlags()

	path := fl.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if fl.logLevel != "" {
		cfg.Logging.Level = fl.logLevel
	}
	if fl.logFile != "" {
		cfg.Logging.File = fl.logFile
	}
	if fl.mode != "" {
		cfg.Editor.Mode = fl.mode
	}

	log, closer, err := app.NewLogger(app.LoggerConfig{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	if fl.exportPath != "" {
		if err := app.Export(cfg, fl.exportPath); err != nil {
			log.Error().Err(err).Msg("export failed")
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("wrote %s\n", fl.exportPath)
		return 0
	}

	application, err := app.New(app.Options{
		ConfigPath:  path,
		Config:      cfg,
		WatchConfig: !fl.noWatch,
		Logger:      log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("run failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() flags {
	var fl flags
	var showVersion bool

	flag.StringVar(&fl.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&fl.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&fl.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&fl.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&fl.mode, "mode", "", "Initial tool (select, create)")
	flag.StringVar(&fl.exportPath, "export", "", "Render the board to an .svg or .png file and exit")
	flag.BoolVar(&fl.noWatch, "no-watch", false, "Do not reload the configuration file on change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "fretmark - fretboard diagram editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: fretmark [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fretmark                        Edit with the user configuration\n")
		fmt.Fprintf(os.Stderr, "  fretmark -c dadgad.toml         Edit with another tuning\n")
		fmt.Fprintf(os.Stderr, "  fretmark -export board.svg      Write an empty board diagram\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("fretmark %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if fl.logLevel != "" {
		if _, err := app.ParseLogLevel(fl.logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v (must be debug, info, warn, or error)\n", err)
			os.Exit(1)
		}
	}

	return fl
}
