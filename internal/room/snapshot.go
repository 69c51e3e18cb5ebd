package room

import (
	"github.com/studroom/studroom/internal/deck"
	"github.com/studroom/studroom/internal/game"
)

// Snapshot is the full-state fallback sent when a resume request falls
// outside the retained event window, and on first subscribe.
type Snapshot struct {
	TableID  string        `json:"tableId"`
	TableSeq uint64        `json:"tableSeq"`
	Reason   string        `json:"reason"`
	Table    TableSnapshot `json:"table"`
}

// SnapshotOutOfRange tags a snapshot issued because the requested resume
// point was no longer retained.
const SnapshotOutOfRange = "OUT_OF_RANGE"

// SnapshotSubscribe tags the initial snapshot sent to a new viewer.
const SnapshotSubscribe = "SUBSCRIBE"

// TableSnapshot mirrors the table's public state.
type TableSnapshot struct {
	Status             game.TableStatus `json:"status"`
	GameType           game.GameType    `json:"gameType"`
	Stakes             game.Stakes      `json:"stakes"`
	Seats              []SeatSnapshot   `json:"seats"`
	CurrentHand        *HandSnapshot    `json:"currentHand"`
	DealerSeatNo       int              `json:"dealerSeatNo"`
	MixIndex           int              `json:"mixIndex"`
	HandsSinceRotation int              `json:"handsSinceRotation"`
}

// SeatSnapshot is one seat's public state.
type SeatSnapshot struct {
	SeatNo      int             `json:"seatNo"`
	Status      game.SeatStatus `json:"status"`
	UserID      string          `json:"userId,omitempty"`
	DisplayName string          `json:"displayName,omitempty"`
	Stack       int             `json:"stack"`
}

// HandSnapshot is the in-progress hand as one viewer may see it; down
// cards are masked exactly as in live broadcasts.
type HandSnapshot struct {
	HandID      string               `json:"handId"`
	HandNo      int                  `json:"handNo"`
	GameType    game.GameType        `json:"gameType"`
	Status      game.HandStatus      `json:"status"`
	Street      game.Street          `json:"street"`
	PotTotal    int                  `json:"potTotal"`
	StreetBetTo int                  `json:"streetBetTo"`
	RaiseCount  int                  `json:"raiseCount"`
	ToActSeatNo int                  `json:"toActSeatNo"`
	Players     []HandPlayerSnapshot `json:"players"`
}

// HandPlayerSnapshot is one dealt-in player as seen by a viewer.
type HandPlayerSnapshot struct {
	SeatNo             int             `json:"seatNo"`
	UserID             string          `json:"userId"`
	TotalContribution  int             `json:"totalContribution"`
	StreetContribution int             `json:"streetContribution"`
	Cards              []game.CardView `json:"cards"`
	InHand             bool            `json:"inHand"`
	AllIn              bool            `json:"allIn"`
	ActedThisRound     bool            `json:"actedThisRound"`
}

// snapshotFor builds a viewer-specific snapshot of the table. Must run
// inside the actor loop.
func (a *Actor) snapshotFor(viewerUserID, reason string) Snapshot {
	t := a.table
	snap := Snapshot{
		TableID:  t.ID,
		TableSeq: a.tableSeq,
		Reason:   reason,
		Table: TableSnapshot{
			Status:             t.Status,
			GameType:           t.NextGameType(),
			Stakes:             t.Stakes,
			DealerSeatNo:       t.DealerSeatNo,
			MixIndex:           t.MixIndex,
			HandsSinceRotation: t.HandsSinceRotation,
		},
	}
	for _, s := range t.Seats() {
		snap.Table.Seats = append(snap.Table.Seats, SeatSnapshot{
			SeatNo:      s.SeatNo,
			Status:      s.Status,
			UserID:      s.UserID,
			DisplayName: s.DisplayName,
			Stack:       s.Stack,
		})
	}

	h := t.CurrentHand
	if h == nil {
		return snap
	}

	hs := &HandSnapshot{
		HandID:      h.ID,
		HandNo:      h.No,
		GameType:    h.GameType,
		Status:      h.Status,
		Street:      h.Street,
		PotTotal:    h.PotTotal,
		StreetBetTo: h.StreetBetTo,
		RaiseCount:  h.RaiseCount,
		ToActSeatNo: h.ToActSeatNo,
	}
	showdown := h.Status != game.HandInProgress
	for _, p := range h.Players {
		hs.Players = append(hs.Players, HandPlayerSnapshot{
			SeatNo:             p.SeatNo,
			UserID:             p.UserID,
			TotalContribution:  p.TotalContribution,
			StreetContribution: p.StreetContribution,
			Cards:              snapshotCards(p, viewerUserID, showdown),
			InHand:             p.InHand,
			AllIn:              p.AllIn,
			ActedThisRound:     p.ActedThisRound,
		})
	}
	snap.Table.CurrentHand = hs
	return snap
}

// snapshotCards renders a player's cards for a viewer: up cards are
// public, down cards are DOWN_SELF for the owner and identity-stripped
// DOWN_HIDDEN for everyone else. Once the hand reaches showdown, unfolded
// hands are public.
func snapshotCards(p *game.HandPlayer, viewerUserID string, showdown bool) []game.CardView {
	owner := p.UserID == viewerUserID
	revealed := owner || (showdown && p.InHand)

	views := make([]game.CardView, 0, len(p.CardsDown)+len(p.CardsUp))
	for _, c := range p.CardsDown {
		card := c
		switch {
		case revealed && owner:
			views = append(views, game.CardView{Visibility: deck.VisibilityDownSelf, Card: &card})
		case revealed:
			views = append(views, game.CardView{Visibility: deck.VisibilityUp, Card: &card})
		default:
			views = append(views, game.CardView{Visibility: deck.VisibilityDownHidden})
		}
	}
	for _, c := range p.CardsUp {
		card := c
		views = append(views, game.CardView{Visibility: deck.VisibilityUp, Card: &card})
	}
	return views
}
