package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client → Server
	MessageTypeDecide        MessageType = "decide"
	MessageTypeObserveAction MessageType = "observe_action"
	MessageTypeHandFinished  MessageType = "hand_finished"

	// Server → Client
	MessageTypeDecision MessageType = "decision"
	MessageTypeAck      MessageType = "ack"
	MessageTypeError    MessageType = "error"
)

// Message is the base WebSocket message structure.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// DecideRequestData is one decision point supplied by the game-flow
// driver. Cards are card strings such as "As" or "Td".
type DecideRequestData struct {
	HandID       string   `json:"handId"`
	Opponent     string   `json:"opponent"`
	Street       string   `json:"street"`
	Hole         []string `json:"hole"`
	Board        []string `json:"board"`
	Pot          int      `json:"pot"`
	ToCall       int      `json:"toCall"`
	MinRaise     int      `json:"minRaise"`
	HeroStack    int      `json:"heroStack"`
	VillainStack int      `json:"villainStack"`
}

// ObserveActionData reports one opponent action to the profiling model.
type ObserveActionData struct {
	Opponent    string  `json:"opponent"`
	Street      string  `json:"street"`
	Action      string  `json:"action"`
	BetSize     float64 `json:"betSize,omitempty"` // fraction of the pot
	FacingRaise bool    `json:"facingRaise,omitempty"`
}

// StreetActionData is one opponent street action inside a finished hand.
type StreetActionData struct {
	Street  string  `json:"street"`
	Action  string  `json:"action"`
	BetSize float64 `json:"betSize,omitempty"`
}

// HandFinishedData closes out a hand: it updates the opponent model and
// appends a record to the history store.
type HandFinishedData struct {
	HandID    string             `json:"handId"`
	Opponent  string             `json:"opponent"`
	HoleCards string             `json:"holeCards,omitempty"` // revealed at showdown
	Board     string             `json:"board,omitempty"`
	Actions   []StreetActionData `json:"actions,omitempty"`
	Showdown  bool               `json:"showdown"`
	ShownWeak bool               `json:"shownWeak"`
	WonPot    bool               `json:"wonPot"`
}

// Server → Client Messages

// DecisionData is the opponent-facing action. It deliberately carries no
// bluff marker; that stays inside the decision core.
type DecisionData struct {
	HandID   string `json:"handId"`
	Action   string `json:"action"`
	Amount   int    `json:"amount,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}

// AckData confirms a fire-and-forget message was applied.
type AckData struct {
	HandID string `json:"handId,omitempty"`
}

// ErrorData reports a request failure.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
