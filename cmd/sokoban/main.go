// sokoban is a terminal Sokoban game with level packs, saved progress and
// an SSH server for remote play.
//
// Usage:
//
//	sokoban list                 - List level packs (or levels with --pack)
//	sokoban play [level]         - Play a level of the current pack
//	sokoban menu                 - Level menu with progress tracking
//	sokoban serve                - Start SSH server for remote play
//	sokoban progress             - Show, reset, export or import progress
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.sokoban/config.yaml)
//	--db <path>          - Progress database (default: ~/.sokoban/sokoban.db)
//	--pack <id>          - Level pack (default: classic)
//	--levels-dir <path>  - Directory with user level packs
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sokoban/internal/config"
	"github.com/vovakirdan/sokoban/internal/core"
	"github.com/vovakirdan/sokoban/internal/games/sokoban"
	"github.com/vovakirdan/sokoban/internal/logging"
	"github.com/vovakirdan/sokoban/internal/registry"
	"github.com/vovakirdan/sokoban/internal/storage"
)

// Command annotations read by setup.
const (
	annotationTUI       = "tui"        // full-screen command, logs go to a file or nowhere
	annotationLogFormat = "log-format" // default log format of the command
)

// app carries the flags and the resources shared by all subcommands.
type app struct {
	configPath string
	dbPath     string
	pack       string
	levelsDir  string
	logLevel   string
	player     string

	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sokoban",
		Short: "Sokoban - push boxes onto targets in your terminal",
		Long: `Sokoban is a terminal puzzle game: push every box onto a target.

Available commands:
  list      - Show level packs or the levels of a pack
  play      - Play a level directly
  menu      - Interactive level menu
  serve     - Start SSH server for remote play
  progress  - Show, reset, export or import progress

Examples:
  sokoban list
  sokoban list --pack tutorial
  sokoban play 3
  sokoban menu --pack tutorial
  sokoban serve --ssh :2222
  sokoban progress export > classic.json`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config YAML")
	flags.StringVar(&a.dbPath, "db", "", "Path to progress database")
	flags.StringVar(&a.pack, "pack", "", "Level pack ID")
	flags.StringVar(&a.levelsDir, "levels-dir", "", "Directory with user level packs")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.player, "player", "", "Player name used for progress")

	root.AddCommand(newListCmd(a))
	root.AddCommand(newPlayCmd(a))
	root.AddCommand(newMenuCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newProgressCmd(a))

	return root
}

// setup loads .env and the config file, applies flag overrides, builds the
// logger and registers user level packs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = a.dbPath
	}
	if flags.Changed("pack") {
		cfg.Pack = a.pack
	}
	if flags.Changed("levels-dir") {
		cfg.LevelsDir = a.levelsDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("player") {
		cfg.Player = a.player
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	if err := a.openLogger(cmd); err != nil {
		return err
	}

	a.registerUserPacks()
	return nil
}

func (a *app) openLogger(cmd *cobra.Command) error {
	if cmd.Annotations[annotationTUI] == "true" && a.cfg.Log.File == "" {
		a.logger = logging.Discard()
		a.closeLog = func() error { return nil }
		return nil
	}

	format := cmd.Annotations[annotationLogFormat]
	if format == "" {
		format = config.FormatTint
	}
	logger, closeLog, err := logging.Open(a.cfg.Log, cmd.ErrOrStderr(), format)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog
	return nil
}

func (a *app) registerUserPacks() {
	dir := config.ExpandPath(a.cfg.LevelsDir)
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		a.logger.Debug("no user level directory", "path", dir)
		return
	}

	added, err := registry.RegisterDir(dir)
	if err != nil {
		a.logger.Warn("could not load user level packs", "path", dir, "error", err)
		return
	}
	a.logger.Debug("user level packs registered", "path", dir, "count", added)
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

// openStore opens the progress database. Interactive commands keep going
// without it, so failures are only logged.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.cfg.Database)
	if err != nil {
		a.logger.Warn("could not open progress database", "path", a.cfg.Database, "error", err)
		return nil
	}
	return store
}

// mustOpenStore opens the progress database or fails.
func (a *app) mustOpenStore() (*storage.Store, error) {
	store, err := storage.Open(a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open progress database: %w", err)
	}
	return store, nil
}

func closeStore(store *storage.Store, logger *slog.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close progress database", "error", err)
	}
}

// runtimeConfig sizes the game to the current terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: a.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
	}
}

func (a *app) theme() sokoban.Theme {
	return sokoban.ThemeFromConfig(a.cfg.Theme)
}
