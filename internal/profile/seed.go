package profile

import (
	"github.com/lox/holdem-brain/internal/history"
	"github.com/lox/holdem-brain/internal/holdem"
)

// SeedFromRecords replays persisted hand records into the model so a new
// session starts with profiles instead of cold-start defaults.
func (m *Model) SeedFromRecords(records []history.Record) {
	for _, rec := range records {
		sawAction := false
		for s := holdem.Preflop; s <= holdem.River; s++ {
			sa := rec.Actions[s]
			if sa.Action == "" {
				continue
			}
			kind, ok := holdem.ParseActionKind(sa.Action)
			if !ok {
				continue
			}
			sawAction = true
			m.RecordAction(rec.Opponent, s, ObservedAction{
				Action:  kind,
				NormBet: sa.BetSize,
			})
		}
		if sawAction {
			m.FinishHand(rec.Opponent, HandOutcome{
				Showdown:       rec.Showdown,
				ShowedWeakHand: rec.ShownWeak,
				WonPot:         rec.WonPot,
			})
		}
	}
	m.logger.Info("seeded profiles from history", "records", len(records))
}
