package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/olehluchkiv/anyspeak/internal/analyzer"
	"github.com/olehluchkiv/anyspeak/internal/demo"
	"github.com/olehluchkiv/anyspeak/internal/diagram"
	"github.com/olehluchkiv/anyspeak/internal/layout"
	"github.com/olehluchkiv/anyspeak/internal/logging"
	"github.com/olehluchkiv/anyspeak/internal/resolver"
	"github.com/olehluchkiv/anyspeak/internal/roster"
)

const usage = "Usage: anyspeak [flags] [demo | sizes | inspect <path>]"

// config is everything main collects from flags and the environment.
type config struct {
	Command           string
	Path              string
	RosterFile        string
	Capability        string
	Filter            string
	IncludeUnexported bool
	Output            string
	Color             bool
}

var errUsage = errors.New(usage)

func main() {
	// Flags may appear after the subcommand or path, so reorder first.
	flags, positional := reorderArgs(os.Args[1:])

	fs := flag.NewFlagSet("anyspeak", flag.ExitOnError)
	rosterFile := fs.String("roster", "", "YAML roster of animals for the demo (default: $ANYSPEAK_ROSTER, else a cat and a dog)")
	capability := fs.String("capability", analyzer.DefaultCapability, "interface name to inspect")
	filter := fs.String("filter", "", "package path prefix filter for inspect")
	includeUnexported := fs.Bool("include-unexported", false, "include unexported implementors in inspect")
	output := fs.String("output", "", "write the inspect diagram to file instead of stdout")
	noColor := fs.Bool("no-color", false, "disable bold section headers")
	logFile := fs.String("log-file", "", "log file path (stderr only when empty)")
	logLevel := fs.String("log-level", "warn", "log level (debug, info, warn, error)")

	if err := fs.Parse(flags); err != nil {
		os.Exit(1)
	}
	positional = append(positional, fs.Args()...)

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}

	logger, logCleanup, err := logging.Setup(*logFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	cfg := config{
		RosterFile:        *rosterFile,
		Capability:        *capability,
		Filter:            *filter,
		IncludeUnexported: *includeUnexported,
		Output:            *output,
		Color:             !*noColor && colorSupported(os.Stdout),
	}
	if cfg.RosterFile == "" {
		cfg.RosterFile = os.Getenv("ANYSPEAK_ROSTER")
	}
	if len(positional) > 0 {
		cfg.Command = positional[0]
	}
	if len(positional) > 1 {
		cfg.Path = positional[1]
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			fs.PrintDefaults()
			os.Exit(2)
		}
		logger.Error("command failed", "command", cfg.Command, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, stdout io.Writer, logger *slog.Logger) error {
	switch cfg.Command {
	case "", "demo":
		return runDemo(cfg, stdout, logger)
	case "sizes":
		return layout.Write(stdout, layout.Report())
	case "inspect":
		if cfg.Path == "" {
			return fmt.Errorf("inspect needs a path: %w", errUsage)
		}
		return runInspect(ctx, cfg, stdout, logger)
	default:
		return fmt.Errorf("unknown command %q: %w", cfg.Command, errUsage)
	}
}

func runDemo(cfg config, stdout io.Writer, logger *slog.Logger) error {
	r := roster.Default()
	if cfg.RosterFile != "" {
		loaded, err := roster.Load(cfg.RosterFile)
		if err != nil {
			return err
		}
		r = loaded
		logger.Info("roster loaded", "file", cfg.RosterFile, "animals", len(r.Animals))
	}
	animals, err := r.Build()
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}
	return demo.Run(stdout, animals, demo.Options{Color: cfg.Color}, logger)
}

func runInspect(ctx context.Context, cfg config, stdout io.Writer, logger *slog.Logger) error {
	dir, err := resolver.Resolve(cfg.Path, logger)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}

	opts := analyzer.AnalyzeOptions{
		Capability:        cfg.Capability,
		Filter:            cfg.Filter,
		IncludeUnexported: cfg.IncludeUnexported,
	}
	result, err := analyzer.Analyze(ctx, dir, opts, logger)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	result = analyzer.Filter(result, opts)

	for _, c := range result.Capabilities {
		if !c.SingleOp {
			logger.Warn("capability has more than one method; a one-entry table cannot describe it",
				"capability", c.PkgPath+"."+c.Name, "methods", len(c.Methods))
		}
	}

	mermaid := diagram.GenerateMermaid(result, diagram.DefaultDiagramOptions())
	if cfg.Output != "" {
		if err := os.WriteFile(cfg.Output, []byte(mermaid+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", cfg.Output, err)
		}
		_, err := fmt.Fprintf(stdout, "Found %d capabilities, %d implementors; wrote diagram to %s\n",
			len(result.Capabilities), len(result.Implementors), cfg.Output)
		return err
	}
	_, err = fmt.Fprintln(stdout, mermaid)
	return err
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position. Flags that take a value (e.g., -roster file.yaml) consume
// the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	valueFlagSet := map[string]bool{
		"-roster": true, "-capability": true, "-filter": true,
		"-output": true, "-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			// Check if this flag takes a value (and it's not using = syntax)
			if !strings.Contains(arg, "=") && valueFlagSet["-"+strings.TrimLeft(arg, "-")] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s (valid: debug, info, warn, error)", s)
	}
}

// colorSupported follows the NO_COLOR convention and only enables escapes
// on a terminal.
func colorSupported(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
