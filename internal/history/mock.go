package history

import (
	"bytes"
	"encoding/csv"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/holdem-brain/internal/deck"
	"github.com/lox/holdem-brain/internal/fileutil"
	"github.com/lox/holdem-brain/internal/holdem"
)

// mockStyle describes the action tendencies of a generated opponent.
type mockStyle struct {
	name     string
	actions  []string
	betSizes []float64
}

var mockStyles = []mockStyle{
	{
		name:     "tight",
		actions:  []string{"fold", "fold", "fold", "raise", "call"},
		betSizes: []float64{0, 0, 0, 0.5, 0.2},
	},
	{
		name:     "passive",
		actions:  []string{"call", "call", "call", "fold", "check"},
		betSizes: []float64{0.1, 0.15, 0.2, 0, 0},
	},
	{
		name:     "loose",
		actions:  []string{"call", "raise", "raise", "raise", "call"},
		betSizes: []float64{0.2, 0.4, 0.6, 0.5, 0.7},
	},
}

// GenerateMock produces handsPerStyle stylized records for each built-in
// opponent archetype, used to seed a fresh store for testing and demos.
func GenerateMock(handsPerStyle int, rng *rand.Rand) []Record {
	all := deck.All()
	records := make([]Record, 0, handsPerStyle*len(mockStyles))

	for _, style := range mockStyles {
		for i := 0; i < handsPerStyle; i++ {
			c1 := all[rng.IntN(len(all))]
			c2 := all[rng.IntN(len(all))]
			for c1 == c2 {
				c2 = all[rng.IntN(len(all))]
			}

			rec := Record{
				HandID:   fmt.Sprintf("mock-%s-%d", style.name, i),
				Opponent: style.name,
				HoleCards: deck.FormatCards([]deck.Card{c1, c2}),
			}
			for s := holdem.Preflop; s <= holdem.River; s++ {
				idx := rng.IntN(len(style.actions))
				rec.Actions[s] = StreetAction{
					Action:  style.actions[idx],
					BetSize: style.betSizes[idx],
				}
			}

			// Loose opponents reach showdown often and get caught with
			// weak holdings; tight opponents rarely show weak hands.
			switch style.name {
			case "loose":
				rec.Showdown = rng.Float64() < 0.6
				rec.ShownWeak = rec.Showdown && rng.Float64() < 0.7
			case "passive":
				rec.Showdown = rng.Float64() < 0.4
				rec.ShownWeak = rec.Showdown && rng.Float64() < 0.4
			default:
				rec.Showdown = rng.Float64() < 0.2
				rec.ShownWeak = rec.Showdown && rng.Float64() < 0.1
			}
			rec.WonPot = rng.Float64() < 0.5
			records = append(records, rec)
		}
	}
	return records
}

// WriteAll writes a complete store file atomically: header plus every
// record, replacing whatever was at path.
func WriteAll(path string, records []Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("history: write header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.row()); err != nil {
			return fmt.Errorf("history: write record %s: %w", rec.HandID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("history: flush: %w", err)
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
