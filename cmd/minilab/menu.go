package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minilab/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start minilab with a game picker menu",
	Long: `Start minilab in interactive menu mode.

Use arrow keys or j/k to pick a game, left/right to change the tier,
Enter to play. After a game ends, B returns to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change tier
  Enter/Space     - Play
  Tab             - Results
  Q               - Quit

Examples:
  minilab menu
  minilab menu --age 9
  minilab menu --db ./results.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	host, cleanup, err := newLocalHost()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tui.Run(host); err != nil {
		return fmt.Errorf("run menu: %w", err)
	}
	return nil
}
