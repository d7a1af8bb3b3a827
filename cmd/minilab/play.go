package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minilab/internal/platform/tui"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move the cursor
  Space        - Place or toggle at the cursor
  Enter        - Confirm, launch or test
  Mouse        - Click, drag and drop
  P            - Pause
  R            - Retry (after the end)
  B/Esc        - Back
  Q/Ctrl+C     - Quit

Tier options:
  easy   - Tier 1
  normal - Tier 2
  hard   - Tier 3

Examples:
  minilab play bridge
  minilab play marble --tier easy
  minilab play binary --age 13
  minilab play quiz --config ./my-tiers.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'minilab list' to see available games)", gameID)
	}

	host, cleanup, err := newLocalHost()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tui.RunGame(host, gameID); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
