package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every registered game with its physics backend and what each
difficulty tier asks of the player. Tier values come from --config when set.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	tables, err := config.LoadTables(flagConfig)
	if err != nil {
		return fmt.Errorf("load tier tables: %w", err)
	}
	return writeGameList(cmd.OutOrStdout(), registry.List(), config.NewBuilder(tables))
}

// writeGameList prints one block per game: title, physics and a line per tier.
func writeGameList(w io.Writer, games []registry.GameInfo, builder config.Builder) error {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games available.")
		return nil
	}

	idWidth := 2
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}

	fmt.Fprintln(w, "Available games:")
	for _, g := range games {
		sc, err := builder.Build(g.ID, config.TierLow)
		if err != nil {
			return fmt.Errorf("game %s: %w", g.ID, err)
		}
		fmt.Fprintf(w, "\n  %-*s  %s (physics: %s)\n", idWidth, g.ID, g.Title, sc.Physics)

		for _, tier := range []config.Tier{config.TierLow, config.TierMid, config.TierHigh} {
			sc, err := builder.Build(g.ID, tier)
			if err != nil {
				return fmt.Errorf("game %s tier %d: %w", g.ID, tier, err)
			}
			fmt.Fprintf(w, "  %s  %-6s %s\n", strings.Repeat(" ", idWidth), tier.String()+":", tierSummary(sc))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'minilab play <id> --tier <easy|normal|hard>' to play a game.")
	return nil
}

// tierSummary describes what one tier of a game asks for.
func tierSummary(sc config.SceneConfig) string {
	switch sc.Game {
	case config.GameAssembly:
		return fmt.Sprintf("%d parts in %ds", sc.Assembly.Parts, sc.Assembly.TimerSeconds)
	case config.GameBridge:
		return fmt.Sprintf("gap %.0f, vehicle mass %.0f", sc.Bridge.Gap, sc.Bridge.VehicleMass)
	case config.GameMatching:
		return fmt.Sprintf("%d pairs", sc.Matching.Pairs)
	case config.GameMarble:
		return fmt.Sprintf("goal at %.0f, %d obstacles", sc.Marble.GoalDistance, sc.Marble.Obstacles)
	case config.GameBinary:
		return fmt.Sprintf("%d bits, %d targets", sc.Binary.Bits, sc.Binary.Targets)
	case config.GameReaction:
		return fmt.Sprintf("%d symbols in %ds", len(sc.Reaction.Symbols), sc.Reaction.Seconds)
	case config.GameDragFit:
		return fmt.Sprintf("%d slots", sc.DragFit.Slots)
	case config.GameQuiz:
		if sc.Quiz.Questions > 0 {
			return fmt.Sprintf("%d questions", sc.Quiz.Questions)
		}
		return "all questions"
	}
	return "-"
}
