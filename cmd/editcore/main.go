// Package main is the entry point for the editcore script runner.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/editcore/internal/config"
	"github.com/dshills/editcore/internal/config/watcher"
	"github.com/dshills/editcore/internal/engine"
	"github.com/dshills/editcore/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command-line configuration.
type options struct {
	InputPath  string
	OutputPath string
	ScriptPath string
	ConfigPath string
	ReadOnly   bool
	Watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		return 1
	}

	if err := runOnce(opts, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !opts.Watch {
		return 0
	}
	if err := watchLoop(opts, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ScriptPath, "script", "", "Path to edit script (.lua or .json)")
	flag.StringVar(&opts.ScriptPath, "s", "", "Path to edit script (shorthand)")
	flag.StringVar(&opts.OutputPath, "output", "", "Write result to file instead of stdout")
	flag.StringVar(&opts.OutputPath, "o", "", "Write result to file (shorthand)")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Reject edits, allow queries only")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Reject edits, allow queries only (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Re-run the script whenever it changes")
	flag.BoolVar(&opts.Watch, "w", false, "Re-run the script whenever it changes (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "editcore - scriptable undo/redo text engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: editcore [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  editcore -s edits.lua input.txt          Apply script, print result\n")
		fmt.Fprintf(os.Stderr, "  editcore -s edits.json -o out.txt in.txt Apply script, write file\n")
		fmt.Fprintf(os.Stderr, "  editcore -w -s edits.lua input.txt       Re-run on script change\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("editcore %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.Watch && opts.ScriptPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -watch requires -script")
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: at most one input file")
		os.Exit(1)
	}
	if flag.NArg() == 1 {
		opts.InputPath = flag.Arg(0)
	}

	return opts
}

// runOnce loads the input, applies the script, and writes the result.
func runOnce(opts options, cfg config.Config) error {
	eng, err := newEngine(opts, cfg)
	if err != nil {
		return err
	}

	if opts.ScriptPath != "" {
		runner := script.New(eng, script.WithTimeout(cfg.Script.Timeout))
		if err := runner.RunFile(opts.ScriptPath); err != nil {
			return err
		}
	}

	return writeResult(opts, eng)
}

// watchLoop re-runs the script whenever it changes on disk, until
// interrupted.
func watchLoop(opts options, cfg config.Config) error {
	w, err := watcher.New()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch(opts.ScriptPath); err != nil {
		return fmt.Errorf("watch %s: %w", opts.ScriptPath, err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-signals:
			return nil
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watcher: %v\n", err)
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			if event.Op == watcher.OpRemove {
				continue
			}
			if err := runOnce(opts, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// newEngine builds an engine from the input file and configuration.
func newEngine(opts options, cfg config.Config) (*engine.Engine, error) {
	engOpts := []engine.Option{
		engine.WithMaxUndoEntries(cfg.History.MaxEntries),
		engine.WithMaxCheckpoints(cfg.History.MaxCheckpoints),
	}
	if opts.ReadOnly {
		engOpts = append(engOpts, engine.WithReadOnly())
	}

	if opts.InputPath == "" {
		return engine.New(engOpts...), nil
	}
	f, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.InputPath, err)
	}
	defer f.Close()
	eng, err := engine.NewFromReader(f, engOpts...)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", opts.InputPath, err)
	}
	return eng, nil
}

// writeResult writes the final buffer to the output path or stdout.
func writeResult(opts options, eng *engine.Engine) error {
	text := eng.Text()
	if opts.OutputPath == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(opts.OutputPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.OutputPath, err)
	}
	return nil
}
