package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start snake with a title menu",
	Long: `Start snake in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game you can return to the menu with Esc or B.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  snake menu
  snake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := interactiveLogger()
	defer closeLog()

	store := openStore(logger)
	defer closeStore(store, logger)

	if err := tui.RunSession(sessionDeps(store, logger), runtimeConfig()); err != nil {
		logger.Error("menu failed", "err", err)
		fatal("running menu: %v", err)
	}
}
