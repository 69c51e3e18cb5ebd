package game

import "github.com/studroom/studroom/internal/deck"

// EventName identifies a domain event emitted by a state transition.
type EventName string

const (
	EventDealInit           EventName = "DealInit"
	EventDealCards3rd       EventName = "DealCards3rd"
	EventDealCard           EventName = "DealCard"
	EventPostAnte           EventName = "PostAnte"
	EventBringIn            EventName = "BringIn"
	EventComplete           EventName = "Complete"
	EventBet                EventName = "Bet"
	EventRaise              EventName = "Raise"
	EventCall               EventName = "Call"
	EventCheck              EventName = "Check"
	EventFold               EventName = "Fold"
	EventStreetAdvance      EventName = "StreetAdvance"
	EventShowdown           EventName = "Showdown"
	EventDealEnd            EventName = "DealEnd"
	EventSeatStateChanged   EventName = "SeatStateChanged"
	EventPlayerDisconnected EventName = "PlayerDisconnected"
	EventPlayerReconnected  EventName = "PlayerReconnected"
)

// Event is an immutable fact produced by the state machine. Sequence
// numbers are stamped later, when the event leaves the table actor.
type Event struct {
	HandID  string
	Name    EventName
	Payload any
}

// maskable payloads carry cards that must be hidden from non-owning
// viewers. maskFor returns a copy shaped for the given viewer.
type maskable interface {
	maskFor(viewerUserID string) any
}

// MaskedFor returns the event as the given viewer may see it. Events
// without hidden cards are returned unchanged.
func (e Event) MaskedFor(viewerUserID string) Event {
	if m, ok := e.Payload.(maskable); ok {
		return Event{HandID: e.HandID, Name: e.Name, Payload: m.maskFor(viewerUserID)}
	}
	return e
}

// CardView is a card slot as seen by a viewer. Card is nil whenever the
// visibility is DOWN_HIDDEN.
type CardView struct {
	Visibility deck.Visibility `json:"visibility"`
	Card       *deck.Card      `json:"card,omitempty"`
}

func upView(c deck.Card) CardView {
	card := c
	return CardView{Visibility: deck.VisibilityUp, Card: &card}
}

func downView(c deck.Card) CardView {
	card := c
	return CardView{Visibility: deck.VisibilityDownHidden, Card: &card}
}

// maskViews hides down-card identities from everyone but the owner. The
// owner's down cards are retagged DOWN_SELF.
func maskViews(views []CardView, owner bool) []CardView {
	out := make([]CardView, len(views))
	for i, v := range views {
		if v.Visibility != deck.VisibilityDownHidden {
			out[i] = v
			continue
		}
		if owner {
			out[i] = CardView{Visibility: deck.VisibilityDownSelf, Card: v.Card}
		} else {
			out[i] = CardView{Visibility: deck.VisibilityDownHidden}
		}
	}
	return out
}

// HandPlayerInfo is the public snapshot of one dealt-in player.
type HandPlayerInfo struct {
	SeatNo      int    `json:"seatNo"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	StartStack  int    `json:"startStack"`
}

// DealInitPayload opens a hand.
type DealInitPayload struct {
	HandID       string           `json:"handId"`
	HandNo       int              `json:"handNo"`
	GameType     GameType         `json:"gameType"`
	Stakes       Stakes           `json:"stakes"`
	DealerSeatNo int              `json:"dealerSeatNo"`
	Players      []HandPlayerInfo `json:"players"`
}

// AntePost is one seat's ante.
type AntePost struct {
	SeatNo int  `json:"seatNo"`
	Amount int  `json:"amount"`
	AllIn  bool `json:"allIn"`
}

// PostAntePayload reports the auto-debited antes.
type PostAntePayload struct {
	Antes    []AntePost `json:"antes"`
	PotTotal int        `json:"potTotal"`
}

// DealtHand is one player's third-street cards.
type DealtHand struct {
	SeatNo int        `json:"seatNo"`
	UserID string     `json:"userId"`
	Cards  []CardView `json:"cards"`
}

// DealCards3rdPayload carries every player's two down cards and one up
// card. Down cards are masked per viewer.
type DealCards3rdPayload struct {
	Players []DealtHand `json:"players"`
}

func (p DealCards3rdPayload) maskFor(viewerUserID string) any {
	out := DealCards3rdPayload{Players: make([]DealtHand, len(p.Players))}
	for i, dh := range p.Players {
		out.Players[i] = DealtHand{
			SeatNo: dh.SeatNo,
			UserID: dh.UserID,
			Cards:  maskViews(dh.Cards, dh.UserID == viewerUserID),
		}
	}
	return out
}

// DealCardPayload is one card dealt on fourth street or later.
type DealCardPayload struct {
	SeatNo int      `json:"seatNo"`
	UserID string   `json:"userId"`
	Street Street   `json:"street"`
	Card   CardView `json:"card"`
}

func (p DealCardPayload) maskFor(viewerUserID string) any {
	out := p
	masked := maskViews([]CardView{p.Card}, p.UserID == viewerUserID)
	out.Card = masked[0]
	return out
}

// BringInPayload is the forced third-street bet.
type BringInPayload struct {
	SeatNo      int  `json:"seatNo"`
	Amount      int  `json:"amount"`
	AllIn       bool `json:"allIn"`
	StreetBetTo int  `json:"streetBetTo"`
	PotTotal    int  `json:"potTotal"`
	ToActSeatNo int  `json:"toActSeatNo"`
}

// ActionPayload is shared by the voluntary betting actions; Check and
// Fold carry zero amounts.
type ActionPayload struct {
	SeatNo      int  `json:"seatNo"`
	Amount      int  `json:"amount"`
	AllIn       bool `json:"allIn"`
	StreetBetTo int  `json:"streetBetTo"`
	RaiseCount  int  `json:"raiseCount"`
	PotTotal    int  `json:"potTotal"`
	ToActSeatNo int  `json:"toActSeatNo"`
	IsAuto      bool `json:"isAuto,omitempty"`
}

// StreetAdvancePayload marks the transition to a new street, after its
// cards have been dealt.
type StreetAdvancePayload struct {
	Street      Street        `json:"street"`
	Reason      AdvanceReason `json:"reason"`
	ToActSeatNo int           `json:"toActSeatNo"`
}

// RevealedHand is one unfolded player's full seven cards at showdown.
type RevealedHand struct {
	SeatNo int         `json:"seatNo"`
	UserID string      `json:"userId"`
	Cards  []deck.Card `json:"cards"`
}

// ShowdownPayload resolves every pot layer. Reveals are public: a hand
// that reaches showdown is exposed to all viewers.
type ShowdownPayload struct {
	Pots    []PotResult    `json:"pots"`
	Reveals []RevealedHand `json:"reveals"`
}

// DealEndPayload closes a hand.
type DealEndPayload struct {
	HandID       string      `json:"handId"`
	Reason       string      `json:"reason"` // SHOWDOWN or UNCONTESTED
	Winners      []Winner    `json:"winners"`
	PotTotal     int         `json:"potTotal"`
	Stacks       map[int]int `json:"stacks"` // seatNo -> stack after payout
	DealerSeatNo int         `json:"dealerSeatNo"`
	NextGameType GameType    `json:"nextGameType"`
}

// SeatStateChangedPayload reports a seat transition with its reason.
type SeatStateChangedPayload struct {
	SeatNo      int              `json:"seatNo"`
	UserID      string           `json:"userId,omitempty"`
	DisplayName string           `json:"displayName,omitempty"`
	Status      SeatStatus       `json:"status"`
	Reason      SeatChangeReason `json:"reason"`
	Stack       int              `json:"stack"`
}

// PlayerConnectionPayload reports a seated player's socket dropping or
// returning mid-hand.
type PlayerConnectionPayload struct {
	SeatNo int    `json:"seatNo"`
	UserID string `json:"userId"`
}
