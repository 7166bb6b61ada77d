package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing snake directly.

Controls:
  Arrows/WASD/hjkl  - Steer
  P                 - Pause
  Enter/Space/R     - Restart (after game over), or click the board
  Esc/B             - Leave (when paused or after game over)
  Ctrl+S            - Save a screenshot to ~/.snake/screenshots
  Q/Ctrl+C          - Quit

Examples:
  snake play
  snake play --seed 42
  snake play --config ./my-snake.yaml
  snake play --log-file /tmp/snake.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := interactiveLogger()
	defer closeLog()

	store := openStore(logger)
	defer closeStore(store, logger)

	if err := tui.Run(sessionDeps(store, logger), runtimeConfig()); err != nil {
		logger.Error("game failed", "err", err)
		fatal("running game: %v", err)
	}
}
