// Package history persists completed hand records to an append-only CSV
// store and reads them back to seed opponent profiles at session start.
package history

import (
	"fmt"
	"strconv"

	"github.com/lox/holdem-brain/internal/holdem"
)

// StreetAction captures one opponent action on a street, with the bet size
// normalized by the pot at the time of the action.
type StreetAction struct {
	Action  string  // "", "fold", "check", "call", "raise"
	BetSize float64 // fraction of pot, 0 when no chips went in
}

// Record is one completed hand from the opponent's perspective.
type Record struct {
	HandID    string
	Opponent  string
	HoleCards string // revealed at showdown, empty otherwise
	Board     string
	Actions   [4]StreetAction // indexed by holdem.Street
	Showdown  bool
	ShownWeak bool // showdown revealed one pair or worse
	WonPot    bool
}

// header is the fixed CSV column layout.
var header = []string{
	"hand_id", "opponent", "hole_cards", "board",
	"action_preflop", "bet_preflop",
	"action_flop", "bet_flop",
	"action_turn", "bet_turn",
	"action_river", "bet_river",
	"showdown", "shown_weak", "won_pot",
}

func (r Record) row() []string {
	row := make([]string, 0, len(header))
	row = append(row, r.HandID, r.Opponent, r.HoleCards, r.Board)
	for s := holdem.Preflop; s <= holdem.River; s++ {
		sa := r.Actions[s]
		row = append(row, sa.Action, formatFloat(sa.BetSize))
	}
	row = append(row,
		strconv.FormatBool(r.Showdown),
		strconv.FormatBool(r.ShownWeak),
		strconv.FormatBool(r.WonPot),
	)
	return row
}

func recordFromRow(row []string) (Record, error) {
	if len(row) != len(header) {
		return Record{}, fmt.Errorf("history: expected %d columns, got %d", len(header), len(row))
	}

	r := Record{
		HandID:    row[0],
		Opponent:  row[1],
		HoleCards: row[2],
		Board:     row[3],
	}
	for s := holdem.Preflop; s <= holdem.River; s++ {
		i := 4 + int(s)*2
		bet, err := parseFloat(row[i+1])
		if err != nil {
			return Record{}, fmt.Errorf("history: bad bet size %q: %w", row[i+1], err)
		}
		r.Actions[s] = StreetAction{Action: row[i], BetSize: bet}
	}

	var err error
	if r.Showdown, err = strconv.ParseBool(row[12]); err != nil {
		return Record{}, fmt.Errorf("history: bad showdown flag %q", row[12])
	}
	if r.ShownWeak, err = strconv.ParseBool(row[13]); err != nil {
		return Record{}, fmt.Errorf("history: bad shown_weak flag %q", row[13])
	}
	if r.WonPot, err = strconv.ParseBool(row[14]); err != nil {
		return Record{}, fmt.Errorf("history: bad won_pot flag %q", row[14])
	}
	return r, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
