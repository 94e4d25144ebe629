// cmd/roledraw/main.go
//
// This is the entry point for the roledraw CLI.
//
// Flow:
// 1. Load .env, then .roledraw/config.yaml and ROLEDRAW_* overrides
// 2. Apply command-line flags on top
// 3. Either print a single draw (-print) or launch the TUI

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/kingrea/roledraw/internal/assign"
	"github.com/kingrea/roledraw/internal/config"
	"github.com/kingrea/roledraw/internal/logbook"
	"github.com/kingrea/roledraw/internal/logging"
	"github.com/kingrea/roledraw/internal/report"
	"github.com/kingrea/roledraw/internal/roster"
	"github.com/kingrea/roledraw/internal/tui"
)

type options struct {
	dir          string
	participants string
	roles        string
	preset       string
	placeholder  string
	seed         int64
	print        bool
}

func main() {
	// A missing .env is the common case
	_ = godotenv.Load()

	opts := parseFlags()
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.dir, "dir", "", "project directory (default: current directory)")
	flag.StringVar(&opts.participants, "participants", "", "comma-separated participants")
	flag.StringVar(&opts.roles, "roles", "", "comma-separated roles")
	flag.StringVar(&opts.preset, "preset", "", "role preset from .roledraw/config.yaml")
	flag.StringVar(&opts.placeholder, "placeholder", "", "label for participants without a role")
	flag.Int64Var(&opts.seed, "seed", 0, "fixed shuffle seed (0 = random)")
	flag.BoolVar(&opts.print, "print", false, "print one draw as a table instead of starting the TUI")
	flag.Parse()
	return opts
}

func run(opts options) error {
	projectDir := opts.dir
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		projectDir = cwd
	}
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("resolve project directory: %w", err)
	}

	if err := config.InitDir(projectDir); err != nil {
		return fmt.Errorf("initialize %s directory: %w", config.Dir, err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogsDir())
	if err != nil {
		return err
	}
	defer logger.Close()

	store := roster.New(
		roster.WithEngine(newEngine(cfg, opts)),
		roster.WithLogger(logger),
	)
	if err := applyListFlags(cfg, store, opts); err != nil {
		return err
	}

	if opts.print {
		if len(store.Participants()) == 0 {
			store.SetParticipants(cfg.Participants())
		}
		if len(store.Roles()) == 0 {
			store.SetRoles(cfg.DefaultRoles())
		}
		return report.Table(os.Stdout, store.AssignRoles())
	}

	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "activity.log"))
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	p := tea.NewProgram(tui.NewApp(cfg, store, tui.WithLogbook(lb)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func newEngine(cfg *config.Config, opts options) *assign.Engine {
	seed := cfg.Seed()
	if opts.seed != 0 {
		seed = opts.seed
	}
	placeholder := cfg.Placeholder()
	if opts.placeholder != "" {
		placeholder = opts.placeholder
	}
	return assign.New(
		assign.WithShuffler(assign.NewRandomizer(seed)),
		assign.WithPlaceholder(placeholder),
	)
}

func applyListFlags(cfg *config.Config, store *roster.Store, opts options) error {
	if opts.participants != "" {
		store.SetParticipants(roster.ParseList(opts.participants))
	}
	switch {
	case opts.roles != "":
		store.SetRoles(roster.ParseList(opts.roles))
	case opts.preset != "":
		roles, ok := cfg.Preset(opts.preset)
		if !ok {
			return fmt.Errorf("unknown preset %q", opts.preset)
		}
		store.SetRoles(roles)
	}
	return nil
}
