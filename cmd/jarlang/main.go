// Command jarlang runs jarlang programs. With file arguments it evaluates
// each file and prints the final value; without arguments it starts an
// interactive session.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/podhmo/jarlang"
	"github.com/podhmo/jarlang/fs"
	"github.com/podhmo/jarlang/internal/config"
)

const historyFile = ".jarlang_history"

func main() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	ctx := context.Background()
	a := &app{
		fsys:     fs.NewOSFS(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		logger:   slog.Default(),
		logLevel: logLevel,
		prompter: newLinerPrompter,
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if !errors.Is(err, errReported) {
			slog.ErrorContext(ctx, "jarlang failed", slog.Any("error", err))
		}
		os.Exit(1)
	}
}

// errReported marks failures whose details were already written to stderr.
var errReported = errors.New("failed")

type app struct {
	fsys     fs.FS
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	logLevel *slog.LevelVar
	prompter func(history string) (prompter, error)
}

// settings is the merged result of flags, config file and defaults.
type settings struct {
	strict   bool
	jobs     int
	prompt   string
	history  string
	printAST bool
}

// logLevelVar adapts a slog.LevelVar to flag.Value.
type logLevelVar struct {
	v *slog.LevelVar
}

func (l logLevelVar) String() string {
	if l.v == nil {
		return ""
	}
	return strings.ToLower(l.v.Level().String())
}

func (l logLevelVar) Set(s string) error {
	return l.v.UnmarshalText([]byte(s))
}

func (a *app) run(ctx context.Context, args []string) error {
	var (
		configPath string
		strict     bool
		jobs       int
		history    string
		prompt     string
		printAST   bool
		version    bool
	)

	fset := flag.NewFlagSet("jarlang", flag.ContinueOnError)
	fset.SetOutput(a.stderr)
	fset.Var(logLevelVar{a.logLevel}, "log-level", "log level (debug, info, warn, error)")
	fset.StringVar(&configPath, "config", "", "path to the config file (default: nearest "+config.FileName+")")
	fset.BoolVar(&strict, "strict", false, "make arithmetic on mismatched kinds an error instead of null")
	fset.IntVar(&jobs, "jobs", 4, "number of files evaluated concurrently")
	fset.StringVar(&history, "history", "", "history file of the interactive session (default: ~/"+historyFile+")")
	fset.StringVar(&prompt, "prompt", "> ", "prompt of the interactive session")
	fset.BoolVar(&printAST, "ast", false, "print the parsed program instead of evaluating it")
	fset.BoolVar(&version, "version", false, "print the version and exit")
	fset.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: jarlang [options] [file ...]\n\nWithout files, an interactive session is started.\n\nOptions:\n")
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		return err
	}

	if version {
		fmt.Fprintln(a.stdout, jarlang.Version)
		return nil
	}

	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Check(jarlang.Version); err != nil {
		return err
	}

	explicit := map[string]bool{}
	fset.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if !explicit["log-level"] {
		if err := a.logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return fmt.Errorf("config: log_level: %w", err)
		}
	}
	s := settings{
		strict:   cfg.Strict,
		jobs:     cfg.Jobs,
		prompt:   cfg.REPL.Prompt,
		history:  cfg.REPL.History,
		printAST: printAST,
	}
	if explicit["strict"] {
		s.strict = strict
	}
	if explicit["jobs"] {
		if jobs < 1 {
			return fmt.Errorf("-jobs must be positive, got %d", jobs)
		}
		s.jobs = jobs
	}
	if explicit["prompt"] {
		s.prompt = prompt
	}
	if explicit["history"] {
		s.history = history
	}
	if s.history == "" {
		if home, err := os.UserHomeDir(); err == nil {
			s.history = filepath.Join(home, historyFile)
		}
	}
	a.logger.DebugContext(ctx, "settings", "config", cfg.Path, "strict", s.strict, "jobs", s.jobs, "level", a.logLevel.Level())

	if files := fset.Args(); len(files) > 0 {
		return a.runBatch(ctx, s, files)
	}
	return a.runREPL(ctx, s)
}

// loadConfig reads the explicit config file, or the nearest one above the
// working directory. A missing implicit config yields the defaults.
func (a *app) loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(a.fsys, path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	found, err := config.Find(a.fsys, cwd)
	if errors.Is(err, config.ErrNotFound) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return config.Load(a.fsys, found)
}

func (a *app) options(s settings) []jarlang.Option {
	return []jarlang.Option{
		jarlang.WithLogger(a.logger),
		jarlang.WithStrictArithmetic(s.strict),
	}
}
