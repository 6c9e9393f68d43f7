package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-brain/internal/holdem"
)

// Connection represents a WebSocket connection to a game-flow driver.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	service   *Service
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper.
func NewConnection(conn *websocket.Conn, logger *log.Logger, service *Service) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		service: service,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for delivery to the driver.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown.
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// readPump handles incoming messages from the driver.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the driver.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the driver.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "requestId", msg.RequestID)

	switch msg.Type {
	case MessageTypeDecide:
		var data DecideRequestData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse decide request")
			return
		}
		c.handleDecide(msg.RequestID, data)

	case MessageTypeObserveAction:
		var data ObserveActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse observe action data")
			return
		}
		if err := c.service.ObserveAction(data); err != nil {
			c.sendError(msg.RequestID, "observe_failed", err.Error())
			return
		}
		c.sendAck(msg.RequestID, "")

	case MessageTypeHandFinished:
		var data HandFinishedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse hand finished data")
			return
		}
		if err := c.service.HandFinished(data); err != nil {
			c.sendError(msg.RequestID, "finish_failed", err.Error())
			return
		}
		c.sendAck(msg.RequestID, data.HandID)

	default:
		c.sendError(msg.RequestID, "unknown_message_type", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) handleDecide(requestID string, data DecideRequestData) {
	decision, err := c.service.Decide(c.ctx, data)
	if err != nil {
		code := "decide_failed"
		var invalid *holdem.InvalidHandStateError
		if errors.As(err, &invalid) {
			code = "invalid_hand_state"
		}
		c.sendError(requestID, code, err.Error())
		return
	}

	response, err := NewMessage(MessageTypeDecision, decision)
	if err != nil {
		c.logger.Error("Failed to create decision message", "error", err)
		return
	}
	response.RequestID = requestID
	_ = c.SendMessage(response)
}

func (c *Connection) sendAck(requestID, handID string) {
	ack, err := NewMessage(MessageTypeAck, AckData{HandID: handID})
	if err != nil {
		c.logger.Error("Failed to create ack message", "error", err)
		return
	}
	ack.RequestID = requestID
	_ = c.SendMessage(ack)
}

// sendError sends an error message to the driver.
func (c *Connection) sendError(requestID, code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	errorMsg.RequestID = requestID
	_ = c.SendMessage(errorMsg)
}
