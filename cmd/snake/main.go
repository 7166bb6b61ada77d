// snake is the classic snake arcade game for the terminal.
//
// Usage:
//
//	snake                    - Play a game (same as snake play)
//	snake play               - Play a game
//	snake menu               - Start menu with high scores
//	snake scores             - Show high scores and stats
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Game config YAML (board, speed, theme)
//	--db <path>          - Set database path (default: ~/.snake/scores.db)
//	--log-file <path>    - Write logs to a file (interactive commands)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic arcade game in your terminal",
	Long: `Snake is the classic arcade game played in the terminal.

Steer the snake to the food. Every food is worth 100 points, adds a level
and makes the snake faster. Hitting a wall or the snake's own body ends
the game.

Available commands:
  play     - Play a game directly (default)
  menu     - Interactive menu with high scores
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  snake
  snake play --seed 42
  snake menu
  snake scores --limit 20
  snake serve --ssh :2222 --metrics :9100`,
	Args:          cobra.NoArgs,
	SilenceErrors: true, // main prints the error
	Run:           runPlay,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (discarded when empty)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer, opts log.Options) *log.Logger {
	logger := log.NewWithOptions(w, opts)
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// interactiveLogger returns a logger for commands that own the terminal.
// Logs go to --log-file, or nowhere when it is not set.
func interactiveLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard, log.Options{}), func() {}
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fatal("cannot open log file: %v", err)
	}
	logger := newLogger(f, log.Options{ReportTimestamp: true, Prefix: "snake"})
	return logger, func() { _ = f.Close() }
}

// loadGameConfig loads the game config and returns a factory for new games.
func loadGameConfig(logger *log.Logger) func() tui.Game {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	logger.Debug("config loaded",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"base_rate", cfg.Speed.BaseRate,
		"max_rate", cfg.Speed.MaxRate,
	)
	return func() tui.Game { return snake.New(cfg) }
}

// openStore opens the score database. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

// closeStore closes the store if one was opened.
func closeStore(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close scores database", "err", err)
	}
}

// runtimeConfig reads the terminal size and the --seed flag.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// sessionDeps wires the shared collaborators for interactive commands.
func sessionDeps(store *storage.Store, logger *log.Logger) tui.Deps {
	deps := tui.Deps{
		Logger:  logger,
		NewGame: loadGameConfig(logger),
	}
	// Avoid a typed nil inside the interface
	if store != nil {
		deps.Store = store
	}
	return deps
}
