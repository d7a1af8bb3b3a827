package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/platform/tui"
	"github.com/vovakirdan/tui-minilab/internal/registry"
	"github.com/vovakirdan/tui-minilab/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show results",
	Long: `Display the best results for a game, or open the interactive
results screen when no game is given.

Examples:
  minilab scores
  minilab scores bridge
  minilab scores --recent
  minilab scores quiz --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs of every game")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the results of the given game")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open results database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresRecent:
		return printRecent(store)
	case len(args) == 0:
		w, h := terminalSize()
		return tui.RunScoreboard(store, w, h, "")
	}

	gameID := args[0]
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'minilab list' to see available games)", err)
	}

	if flagScoresClear {
		if err := store.ClearResults(gameID); err != nil {
			return fmt.Errorf("clear results: %w", err)
		}
		fmt.Printf("Cleared results for %s.\n", game.Title())
		return nil
	}

	return printTop(store, gameID, game.Title())
}

func printTop(store *storage.Store, gameID, title string) error {
	results, err := store.TopResults(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieve results: %w", err)
	}

	fmt.Printf("Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'minilab play %s' to set the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %-8s  %-8s  %s\n", "Rank", "Score", "Tier", "Result", "Mistakes", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-8s  %-8s  %s\n", "----", "-----", "----", "------", "--------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-6d  %-7s  %-8s  %-8d  %s\n",
			i+1, r.Score, config.Tier(r.Tier), r.Outcome, r.Mistakes, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Plays: %d  Won: %d  Lost: %d  Best: %d  Avg: %.1f\n",
			stats.Plays, stats.Wins, stats.Losses, stats.HighScore, stats.AvgScore)
	}
	return nil
}

func printRecent(store *storage.Store) error {
	results, err := store.RecentResults(flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieve results: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-6s  %-7s  %-8s  %s\n", "Game", "Score", "Tier", "Result", "Date")
	fmt.Printf("  %-10s  %-6s  %-7s  %-8s  %s\n", "----", "-----", "----", "------", "----")
	for _, r := range results {
		fmt.Printf("  %-10s  %-6d  %-7s  %-8s  %s\n",
			r.GameID, r.Score, config.Tier(r.Tier), r.Outcome, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
