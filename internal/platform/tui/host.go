package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-minilab/internal/config"
	"github.com/vovakirdan/tui-minilab/internal/core"
	"github.com/vovakirdan/tui-minilab/internal/session"
	"github.com/vovakirdan/tui-minilab/internal/storage"
)

// Host bundles what a terminal program needs to run sessions.
// One Host serves one terminal; SSH connections get their own.
type Host struct {
	Manager  *session.Manager
	Store    *storage.Store // optional
	Logger   *log.Logger
	Tier     config.Tier // preselected in the menu
	Seed     int64       // 0 picks a time-based seed per session
	TickRate int
	Width    int
	Height   int
}

func (h *Host) tickRate() int {
	if h.TickRate <= 0 {
		return 60
	}
	return h.TickRate
}

func (h *Host) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

// ResultRecorder returns a session hook that saves finished runs to store.
// A nil store records nothing.
func ResultRecorder(store *storage.Store, logger *log.Logger) func(session.Result) {
	if logger == nil {
		logger = log.Default()
	}
	return func(r session.Result) {
		if store == nil {
			return
		}
		// Abandoned or score-less tallies are not worth a row.
		if r.Outcome == core.OutcomeNone || (r.Outcome == core.OutcomeTallied && r.Score == 0) {
			return
		}
		id, err := store.SaveResult(storage.Result{
			GameID:        r.GameID,
			Tier:          int(r.Tier),
			Outcome:       r.Outcome.String(),
			Score:         r.Score,
			Mistakes:      r.Mistakes,
			DurationTicks: int64(r.Ticks),
		})
		if err != nil {
			logger.Warn("save result", "game", r.GameID, "err", err)
			return
		}
		logger.Debug("result saved", "id", id, "game", r.GameID, "outcome", r.Outcome, "score", r.Score)
	}
}
