package server

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-brain/internal/brain"
	"github.com/lox/holdem-brain/internal/deck"
	"github.com/lox/holdem-brain/internal/history"
	"github.com/lox/holdem-brain/internal/holdem"
	"github.com/lox/holdem-brain/internal/profile"
)

// Service glues the wire protocol to the decision core: it validates and
// converts DTOs, runs the engine, and feeds observations to the opponent
// model and the history store.
type Service struct {
	engine *brain.Engine
	model  *profile.Model
	store  *history.Store
	logger *log.Logger
}

// NewService creates the decision service. The store may be nil when hand
// persistence is disabled.
func NewService(engine *brain.Engine, model *profile.Model, store *history.Store, logger *log.Logger) *Service {
	return &Service{
		engine: engine,
		model:  model,
		store:  store,
		logger: logger.WithPrefix("service"),
	}
}

// Decide runs one decision request through the engine.
func (s *Service) Decide(ctx context.Context, data DecideRequestData) (DecisionData, error) {
	state, err := handStateFromRequest(data)
	if err != nil {
		return DecisionData{}, err
	}

	decision, err := s.engine.Decide(ctx, state)
	if err != nil {
		return DecisionData{}, err
	}

	return DecisionData{
		HandID:   data.HandID,
		Action:   decision.Action.String(),
		Amount:   decision.Amount,
		Degraded: decision.Degraded,
	}, nil
}

// ObserveAction records a live opponent action into the profiling model.
func (s *Service) ObserveAction(data ObserveActionData) error {
	if data.Opponent == "" {
		return fmt.Errorf("opponent is required")
	}
	street, ok := holdem.ParseStreet(data.Street)
	if !ok {
		return fmt.Errorf("unknown street %q", data.Street)
	}
	action, ok := holdem.ParseActionKind(data.Action)
	if !ok {
		return fmt.Errorf("unknown action %q", data.Action)
	}

	s.model.RecordAction(data.Opponent, street, profile.ObservedAction{
		Action:      action,
		NormBet:     data.BetSize,
		FacingRaise: data.FacingRaise,
	})
	return nil
}

// HandFinished folds the hand outcome into the model and appends the
// record to the history store.
func (s *Service) HandFinished(data HandFinishedData) error {
	if data.Opponent == "" {
		return fmt.Errorf("opponent is required")
	}

	s.model.FinishHand(data.Opponent, profile.HandOutcome{
		Showdown:       data.Showdown,
		ShowedWeakHand: data.ShownWeak,
		WonPot:         data.WonPot,
	})

	if s.store == nil {
		return nil
	}

	rec := history.Record{
		HandID:    data.HandID,
		Opponent:  data.Opponent,
		HoleCards: data.HoleCards,
		Board:     data.Board,
		Showdown:  data.Showdown,
		ShownWeak: data.ShownWeak,
		WonPot:    data.WonPot,
	}
	for _, sa := range data.Actions {
		street, ok := holdem.ParseStreet(sa.Street)
		if !ok {
			return fmt.Errorf("unknown street %q", sa.Street)
		}
		rec.Actions[street] = history.StreetAction{Action: sa.Action, BetSize: sa.BetSize}
	}
	s.store.Append(rec)
	return nil
}

func handStateFromRequest(data DecideRequestData) (*holdem.HandState, error) {
	street, ok := holdem.ParseStreet(data.Street)
	if !ok {
		return nil, fmt.Errorf("unknown street %q", data.Street)
	}

	hole, err := parseCardList(data.Hole)
	if err != nil {
		return nil, fmt.Errorf("bad hole cards: %w", err)
	}
	board, err := parseCardList(data.Board)
	if err != nil {
		return nil, fmt.Errorf("bad board cards: %w", err)
	}

	return &holdem.HandState{
		Hole:         hole,
		Board:        board,
		Street:       street,
		Pot:          data.Pot,
		ToCall:       data.ToCall,
		MinRaise:     data.MinRaise,
		HeroStack:    data.HeroStack,
		VillainStack: data.VillainStack,
		Opponent:     data.Opponent,
	}, nil
}

func parseCardList(strs []string) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, len(strs))
	for _, s := range strs {
		c, err := deck.ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
