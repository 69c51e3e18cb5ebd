package server

import (
	"encoding/json"
	"time"

	"github.com/studroom/studroom/internal/game"
	"github.com/studroom/studroom/internal/room"
)

// CommandType discriminates inbound client commands.
type CommandType string

const (
	CommandAuth       CommandType = "AUTH"
	CommandListTables CommandType = "LIST_TABLES"
	CommandSubscribe  CommandType = "SUBSCRIBE"
	CommandJoin       CommandType = "JOIN"
	CommandSitOut     CommandType = "SIT_OUT"
	CommandReturn     CommandType = "RETURN"
	CommandLeave      CommandType = "LEAVE"
	CommandAct        CommandType = "ACT"
	CommandResume     CommandType = "RESUME"
)

// Command is the inbound wire envelope.
type Command struct {
	Type      CommandType     `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	SentAt    time.Time       `json:"sentAt,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// Client → Server payloads

type AuthPayload struct {
	DisplayName string `json:"displayName"`
	Token       string `json:"token,omitempty"`
}

type SubscribePayload struct {
	TableID string `json:"tableId"`
}

type JoinPayload struct {
	TableID string `json:"tableId"`
	SeatNo  int    `json:"seatNo,omitempty"`
	BuyIn   int    `json:"buyIn"`
}

type SeatPayload struct {
	TableID string `json:"tableId"`
}

type ActPayload struct {
	TableID string      `json:"tableId"`
	Action  game.Action `json:"action"`
}

type ResumePayload struct {
	TableID      string `json:"tableId"`
	LastTableSeq uint64 `json:"lastTableSeq"`
}

// Server → Client messages

// EventMessage carries one stamped table event.
type EventMessage struct {
	Type       string         `json:"type"`
	TableID    string         `json:"tableId"`
	TableSeq   uint64         `json:"tableSeq"`
	HandID     string         `json:"handId,omitempty"`
	HandSeq    uint64         `json:"handSeq,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
	EventName  game.EventName `json:"eventName"`
	Payload    any            `json:"payload"`
}

func eventMessage(ev room.StampedEvent) EventMessage {
	return EventMessage{
		Type:       "event",
		TableID:    ev.TableID,
		TableSeq:   ev.TableSeq,
		HandID:     ev.HandID,
		HandSeq:    ev.HandSeq,
		OccurredAt: ev.OccurredAt,
		EventName:  ev.Name,
		Payload:    ev.Payload,
	}
}

// SnapshotMessage carries a full masked table state.
type SnapshotMessage struct {
	Type       string        `json:"type"`
	TableID    string        `json:"tableId"`
	TableSeq   uint64        `json:"tableSeq"`
	OccurredAt time.Time     `json:"occurredAt"`
	Payload    room.Snapshot `json:"payload"`
}

func snapshotMessage(snap room.Snapshot) SnapshotMessage {
	return SnapshotMessage{
		Type:       "snapshot",
		TableID:    snap.TableID,
		TableSeq:   snap.TableSeq,
		OccurredAt: time.Now(),
		Payload:    snap,
	}
}

// ErrorMessage reports a rejected command.
type ErrorMessage struct {
	Type       string         `json:"type"`
	RequestID  string         `json:"requestId,omitempty"`
	TableID    string         `json:"tableId,omitempty"`
	Code       game.ErrorCode `json:"code"`
	Message    string         `json:"message"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// AuthOKMessage confirms an AUTH command.
type AuthOKMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId,omitempty"`
	UserID    string `json:"userId"`
}

// TableListMessage answers LIST_TABLES.
type TableListMessage struct {
	Type      string         `json:"type"`
	RequestID string         `json:"requestId,omitempty"`
	Tables    []room.Summary `json:"tables"`
}

// AckMessage confirms a command that produces no direct reply of its own.
type AckMessage struct {
	Type      string      `json:"type"`
	RequestID string      `json:"requestId,omitempty"`
	Command   CommandType `json:"command"`
}
