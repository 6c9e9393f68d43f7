package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-brain/internal/brain"
	"github.com/lox/holdem-brain/internal/equity"
	"github.com/lox/holdem-brain/internal/evaluator"
	"github.com/lox/holdem-brain/internal/history"
	"github.com/lox/holdem-brain/internal/profile"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestService(t *testing.T, store *history.Store) (*Service, *profile.Model) {
	t.Helper()
	logger := testLogger()
	cfg := brain.DefaultConfig()
	cfg.Equity.Samples = 200

	model := profile.NewModel(logger)
	estimator := equity.NewEstimator(evaluator.New(), logger)
	engine := brain.NewEngine(cfg, estimator, model, logger)
	return NewService(engine, model, store, logger), model
}

func TestServiceDecideNutsRaises(t *testing.T) {
	service, _ := newTestService(t, nil)

	decision, err := service.Decide(context.Background(), DecideRequestData{
		HandID:       "h1",
		Opponent:     "villain",
		Street:       "river",
		Hole:         []string{"As", "Ks"},
		Board:        []string{"Qs", "Js", "Ts", "2d", "3c"},
		Pot:          200,
		ToCall:       50,
		MinRaise:     100,
		HeroStack:    2000,
		VillainStack: 2000,
	})
	require.NoError(t, err)
	assert.Equal(t, "h1", decision.HandID)
	assert.Equal(t, "raise", decision.Action)
	assert.Greater(t, decision.Amount, 0)
	assert.LessOrEqual(t, decision.Amount, 2000)
}

func TestServiceDecideRejectsBadInput(t *testing.T) {
	service, _ := newTestService(t, nil)

	_, err := service.Decide(context.Background(), DecideRequestData{
		Street: "showdown",
		Hole:   []string{"As", "Ks"},
	})
	require.Error(t, err)

	_, err = service.Decide(context.Background(), DecideRequestData{
		Street: "preflop",
		Hole:   []string{"As", "XX"},
	})
	require.Error(t, err)
}

func TestDecisionNeverSerializesBluffTag(t *testing.T) {
	// The wire representation must be free of bluff bookkeeping even if
	// the underlying decision was a bluff.
	msg, err := NewMessage(MessageTypeDecision, DecisionData{
		HandID: "h1",
		Action: "raise",
		Amount: 300,
	})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(raw)), "bluff")
}

func TestServiceObserveAndFinishHand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hands.csv")
	store, err := history.Open(path, testLogger())
	require.NoError(t, err)

	service, model := newTestService(t, store)

	require.NoError(t, service.ObserveAction(ObserveActionData{
		Opponent: "villain",
		Street:   "preflop",
		Action:   "raise",
		BetSize:  0.75,
	}))
	require.NoError(t, service.ObserveAction(ObserveActionData{
		Opponent:    "villain",
		Street:      "flop",
		Action:      "fold",
		FacingRaise: true,
	}))
	require.NoError(t, service.HandFinished(HandFinishedData{
		HandID:   "h1",
		Opponent: "villain",
		Board:    "2h 7s 9d",
		Actions: []StreetActionData{
			{Street: "preflop", Action: "raise", BetSize: 0.75},
			{Street: "flop", Action: "fold"},
		},
		Showdown: false,
	}))

	assert.Equal(t, 1, model.HandsObserved("villain"))
	prof := model.Profile("villain")
	assert.Equal(t, 1.0, prof.FoldToRaise)

	require.NoError(t, store.Close())
	records, err := history.Load(path, testLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "h1", records[0].HandID)
	assert.Equal(t, "raise", records[0].Actions[0].Action)
}

func TestServiceObserveRejectsUnknowns(t *testing.T) {
	service, _ := newTestService(t, nil)

	require.Error(t, service.ObserveAction(ObserveActionData{
		Street: "preflop", Action: "raise",
	}), "missing opponent")
	require.Error(t, service.ObserveAction(ObserveActionData{
		Opponent: "v", Street: "fifth", Action: "raise",
	}))
	require.Error(t, service.ObserveAction(ObserveActionData{
		Opponent: "v", Street: "flop", Action: "shove",
	}))
}

func TestServerWebSocketRoundTrip(t *testing.T) {
	service, _ := newTestService(t, nil)
	srv := NewServer("unused", service, testLogger())
	go srv.run()
	defer func() { _ = srv.Stop() }()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWebSocket)
	httpSrv := httptest.NewServer(mux)
	defer httpSrv.Close()

	url := "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	defer func() { _ = resp.Body.Close() }()

	request, err := NewMessage(MessageTypeDecide, DecideRequestData{
		HandID:       "h1",
		Opponent:     "villain",
		Street:       "river",
		Hole:         []string{"As", "Ks"},
		Board:        []string{"Qs", "Js", "Ts", "2d", "3c"},
		Pot:          200,
		ToCall:       50,
		MinRaise:     100,
		HeroStack:    2000,
		VillainStack: 2000,
	})
	require.NoError(t, err)
	request.RequestID = "r1"
	require.NoError(t, conn.WriteJSON(request))

	var response Message
	require.NoError(t, conn.ReadJSON(&response))
	assert.Equal(t, MessageTypeDecision, response.Type)
	assert.Equal(t, "r1", response.RequestID)

	var decision DecisionData
	require.NoError(t, json.Unmarshal(response.Data, &decision))
	assert.Equal(t, "raise", decision.Action)
	assert.NotContains(t, strings.ToLower(string(response.Data)), "bluff")
}
