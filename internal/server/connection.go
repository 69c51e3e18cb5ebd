package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/studroom/studroom/internal/game"
	"github.com/studroom/studroom/internal/room"
)

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

// Connection wraps one client WebSocket. It implements room.Viewer so
// the table actor can deliver masked events and snapshots directly.
type Connection struct {
	conn      *websocket.Conn
	send      chan any
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once

	userID      string
	displayName string
	actor       *room.Actor
}

// NewConnection creates a connection wrapper around an upgraded socket.
func NewConnection(conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:   conn,
		send:   make(chan any, 256),
		server: server,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
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

// SendMessage queues a message for the client without blocking the
// caller; a full buffer closes the connection.
func (c *Connection) SendMessage(msg any) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown.
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

// ViewerUserID implements room.Viewer.
func (c *Connection) ViewerUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// OnEvent implements room.Viewer. Called on the actor goroutine.
func (c *Connection) OnEvent(ev room.StampedEvent) {
	_ = c.SendMessage(eventMessage(ev))
}

// OnSnapshot implements room.Viewer. Called on the actor goroutine.
func (c *Connection) OnSnapshot(snap room.Snapshot) {
	_ = c.SendMessage(snapshotMessage(snap))
}

func (c *Connection) setIdentity(userID, displayName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.displayName = displayName
}

func (c *Connection) identity() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID, c.displayName
}

func (c *Connection) setActor(a *room.Actor) *room.Actor {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.actor
	c.actor = a
	return prev
}

func (c *Connection) currentActor() *room.Actor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.actor
}

// readPump handles incoming commands from the client.
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

		var cmd Command
		err := c.conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleCommand(&cmd)
	}
}

// writePump handles outgoing messages to the client.
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

// handleCommand dispatches one inbound command.
func (c *Connection) handleCommand(cmd *Command) {
	c.logger.Debug("Received command", "type", cmd.Type, "user", c.ViewerUserID())

	if cmd.Type == CommandAuth {
		var payload AuthPayload
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			c.sendError(cmd.RequestID, "", game.ErrInvalidAction, "failed to parse auth payload")
			return
		}
		c.handleAuth(cmd.RequestID, payload)
		return
	}

	userID, displayName := c.identity()
	if userID == "" {
		c.sendError(cmd.RequestID, "", game.ErrAuthExpired, "authenticate before issuing commands")
		return
	}

	switch cmd.Type {
	case CommandListTables:
		_ = c.SendMessage(TableListMessage{Type: "tableList", RequestID: cmd.RequestID, Tables: c.server.registry.List()})

	case CommandSubscribe:
		var payload SubscribePayload
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			c.sendError(cmd.RequestID, "", game.ErrInvalidAction, "failed to parse subscribe payload")
			return
		}
		c.handleSubscribe(cmd.RequestID, payload)

	case CommandJoin:
		var payload JoinPayload
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			c.sendError(cmd.RequestID, "", game.ErrInvalidAction, "failed to parse join payload")
			return
		}
		actor, ok := c.server.registry.Lookup(payload.TableID)
		if !ok {
			c.sendError(cmd.RequestID, payload.TableID, game.ErrInvalidAction, "unknown table")
			return
		}
		if err := actor.Join(userID, displayName, payload.SeatNo, payload.BuyIn); err != nil {
			c.sendCommandError(cmd.RequestID, payload.TableID, err)
			return
		}
		c.sendAck(cmd.RequestID, cmd.Type)

	case CommandSitOut, CommandReturn, CommandLeave:
		var payload SeatPayload
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			c.sendError(cmd.RequestID, "", game.ErrInvalidAction, "failed to parse seat payload")
			return
		}
		actor, ok := c.server.registry.Lookup(payload.TableID)
		if !ok {
			c.sendError(cmd.RequestID, payload.TableID, game.ErrInvalidAction, "unknown table")
			return
		}
		var err error
		switch cmd.Type {
		case CommandSitOut:
			err = actor.SitOut(userID)
		case CommandReturn:
			err = actor.Return(userID)
		case CommandLeave:
			err = actor.Leave(userID)
		}
		if err != nil {
			c.sendCommandError(cmd.RequestID, payload.TableID, err)
			return
		}
		c.sendAck(cmd.RequestID, cmd.Type)

	case CommandAct:
		var payload ActPayload
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			c.sendError(cmd.RequestID, "", game.ErrInvalidAction, "failed to parse act payload")
			return
		}
		actor, ok := c.server.registry.Lookup(payload.TableID)
		if !ok {
			c.sendError(cmd.RequestID, payload.TableID, game.ErrInvalidAction, "unknown table")
			return
		}
		if err := actor.Act(userID, payload.Action); err != nil {
			c.sendCommandError(cmd.RequestID, payload.TableID, err)
			return
		}
		// No ack needed; the action's events reach the client via broadcast.

	case CommandResume:
		var payload ResumePayload
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			c.sendError(cmd.RequestID, "", game.ErrInvalidAction, "failed to parse resume payload")
			return
		}
		c.handleResume(cmd.RequestID, payload)

	default:
		c.sendError(cmd.RequestID, "", game.ErrInvalidAction, "unknown command type: "+string(cmd.Type))
	}
}

func (c *Connection) handleAuth(requestID string, payload AuthPayload) {
	userID, err := c.server.identity.ResolveIdentity(payload.Token, payload.DisplayName)
	if err != nil {
		c.sendError(requestID, "", game.ErrAuthExpired, err.Error())
		return
	}
	c.setIdentity(userID, payload.DisplayName)
	_ = c.SendMessage(AuthOKMessage{Type: "authOk", RequestID: requestID, UserID: userID})
}

func (c *Connection) handleSubscribe(requestID string, payload SubscribePayload) {
	actor, ok := c.server.registry.Lookup(payload.TableID)
	if !ok {
		c.sendError(requestID, payload.TableID, game.ErrInvalidAction, "unknown table")
		return
	}

	if prev := c.setActor(actor); prev != nil && prev != actor {
		prev.Unsubscribe(c)
	}
	if err := actor.Subscribe(c); err != nil {
		c.sendCommandError(requestID, payload.TableID, err)
		return
	}
	// A returning user whose seat was marked disconnected gets it back.
	actor.Reconnected(c.ViewerUserID())
}

func (c *Connection) handleResume(requestID string, payload ResumePayload) {
	actor, ok := c.server.registry.Lookup(payload.TableID)
	if !ok {
		c.sendError(requestID, payload.TableID, game.ErrInvalidAction, "unknown table")
		return
	}

	events, snap, err := actor.Resume(c.ViewerUserID(), payload.LastTableSeq)
	if err != nil {
		c.sendCommandError(requestID, payload.TableID, err)
		return
	}
	if snap != nil {
		_ = c.SendMessage(snapshotMessage(*snap))
		return
	}
	for _, ev := range events {
		_ = c.SendMessage(eventMessage(ev))
	}
}

func (c *Connection) sendAck(requestID string, cmd CommandType) {
	_ = c.SendMessage(AckMessage{Type: "ack", RequestID: requestID, Command: cmd})
}

func (c *Connection) sendError(requestID, tableID string, code game.ErrorCode, message string) {
	_ = c.SendMessage(ErrorMessage{
		Type:       "error",
		RequestID:  requestID,
		TableID:    tableID,
		Code:       code,
		Message:    message,
		OccurredAt: time.Now(),
	})
}

// sendCommandError reports a rejected command, preserving the closed
// error code when the rejection carries one.
func (c *Connection) sendCommandError(requestID, tableID string, err error) {
	code := game.ErrInvalidAction
	var cmdErr *game.CommandError
	if errors.As(err, &cmdErr) {
		code = cmdErr.Code
	}
	c.sendError(requestID, tableID, code, err.Error())
}
