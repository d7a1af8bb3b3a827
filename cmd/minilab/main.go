// minilab runs short educational mini-games in the terminal.
//
// Usage:
//
//	minilab list              - List available games
//	minilab play <game>       - Play a game
//	minilab menu              - Start menu to pick games interactively
//	minilab serve             - Start SSH server for remote play
//	minilab scores [game]     - Show results for a game
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible layouts
//	--db <path>        - Set database path (default: ~/.minilab/results.db)
//	--config <path>    - Custom tiers.yaml
//	--tier <preset>    - easy, normal, hard or 1..3
//	--age <years>      - Pick the tier from the learner's age
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-minilab/internal/games/assembly"
	_ "github.com/vovakirdan/tui-minilab/internal/games/binary"
	_ "github.com/vovakirdan/tui-minilab/internal/games/bridge"
	_ "github.com/vovakirdan/tui-minilab/internal/games/dragfit"
	_ "github.com/vovakirdan/tui-minilab/internal/games/marble"
	_ "github.com/vovakirdan/tui-minilab/internal/games/matching"
	_ "github.com/vovakirdan/tui-minilab/internal/games/quiz"
	_ "github.com/vovakirdan/tui-minilab/internal/games/reaction"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagTier     string
	flagAge      int
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
	Use:   "minilab",
	Short: "Minilab - educational mini-games in your terminal",
	Long: `Minilab is a terminal runtime for short educational mini-games:
building a PC, bridges, marble runs, binary numbers, quick keys and more.
Each game comes in three difficulty tiers.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View results

Examples:
  minilab list
  minilab play bridge --tier hard
  minilab play quiz --age 7
  minilab menu
  minilab serve --ssh :2222
  minilab scores marble`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.minilab/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tiers.yaml")
	rootCmd.PersistentFlags().StringVar(&flagTier, "tier", "normal", "Difficulty tier: easy, normal, hard or 1-3")
	rootCmd.PersistentFlags().IntVar(&flagAge, "age", 0, "Learner age; picks the tier when set")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.minilab/minilab.log", "Log file for interactive runs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
