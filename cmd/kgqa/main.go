// Package main provides the kgqa binary entry point.
// kgqa turns natural language questions into SPARQL queries over a
// knowledge graph: it tokenizes queries for sequence models, derives
// and fills query templates, and merges entity linking annotations.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/kgqa/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "kgqa"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	app := &appContext{}

	cmd := &cobra.Command{
		Use:   "kgqa",
		Short: "Knowledge graph question answering toolkit",
		Long: `kgqa is a toolkit for question answering over knowledge graphs.

It provides:
- SPARQL query tokenization for sequence-to-sequence models
- Query template derivation and slot extraction
- Template slot filling from linked entity mentions
- Ensemble merging of entity linking annotations

Queries target Wikidata by default; DBpedia is supported for
tokenization.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		app.initCmd(),
		app.tokenizeCmd(),
		app.detokenizeCmd(),
		app.templateCmd(),
		app.slotsCmd(),
		app.fillCmd(),
		app.mergeCmd(),
	)

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup configures logging and loads the layered configuration.
func (a *appContext) setup() error {
	level := slog.LevelInfo
	switch strings.ToLower(a.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	a.logger = logger

	if a.configPath != "" {
		cfg, err := config.LoadFromFile(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		a.cfg = cfg
		return nil
	}

	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	return nil
}
