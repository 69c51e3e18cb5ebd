package game

import (
	"fmt"

	"github.com/studroom/studroom/internal/deck"
)

// HandPlayer is the per-participant record of one hand, snapshotted at
// deal time. Seats cannot be added mid-hand.
type HandPlayer struct {
	SeatNo             int
	UserID             string
	DisplayName        string
	StartStack         int
	TotalContribution  int
	StreetContribution int
	CardsUp            []deck.Card
	CardsDown          []deck.Card
	InHand             bool
	AllIn              bool
	ActedThisRound     bool

	seat *Seat
}

// AllCards returns the player's full hand, down cards first.
func (p *HandPlayer) AllCards() []deck.Card {
	all := make([]deck.Card, 0, len(p.CardsDown)+len(p.CardsUp))
	all = append(all, p.CardsDown...)
	all = append(all, p.CardsUp...)
	return all
}

// Hand is one in-progress deal at a table.
type Hand struct {
	ID           string
	No           int
	GameType     GameType
	Status       HandStatus
	Street       Street
	PotTotal     int
	StreetBetTo  int
	RaiseCount   int
	ToActSeatNo  int // 0 when no one can act
	DealerSeatNo int
	Players      []*HandPlayer // ascending seat order
	Stakes       Stakes

	rules   Rules
	cards   []deck.Card
	dealt   int
	headsUp bool // fixed at deal time; later folds do not re-enable it
}

// PlayerAt returns the hand player at a seat, or nil.
func (h *Hand) PlayerAt(seatNo int) *HandPlayer {
	for _, p := range h.Players {
		if p.SeatNo == seatNo {
			return p
		}
	}
	return nil
}

func (h *Hand) draw() deck.Card {
	if h.dealt >= len(h.cards) {
		panic("game: deck exhausted")
	}
	c := h.cards[h.dealt]
	h.dealt++
	return c
}

func wrapSeat(seatNo int) int {
	return (seatNo-1)%MaxSeats + 1
}

// playersFromSeat yields the hand players in seat order starting at the
// first seat strictly after from, wrapping.
func (h *Hand) playersFromSeat(from int) []*HandPlayer {
	out := make([]*HandPlayer, 0, len(h.Players))
	for off := 1; off <= MaxSeats; off++ {
		if p := h.PlayerAt(wrapSeat(from + off)); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (h *Hand) inHandCount() int {
	n := 0
	for _, p := range h.Players {
		if p.InHand {
			n++
		}
	}
	return n
}

func (h *Hand) actionableCount() int {
	n := 0
	for _, p := range h.Players {
		if p.InHand && !p.AllIn {
			n++
		}
	}
	return n
}

// debit moves chips from the seat stack into the pot, clamped to the
// stack (all-in). street controls whether the amount counts toward the
// street contribution; antes do not.
func (h *Hand) debit(p *HandPlayer, want int, street bool) int {
	amount := want
	if amount > p.seat.Stack {
		amount = p.seat.Stack
	}
	p.seat.Stack -= amount
	p.TotalContribution += amount
	if street {
		p.StreetContribution += amount
	}
	h.PotTotal += amount
	if p.seat.Stack == 0 {
		p.AllIn = true
	}
	if p.TotalContribution > p.StartStack {
		panic(fmt.Sprintf("game: seat %d contribution %d exceeds start stack %d",
			p.SeatNo, p.TotalContribution, p.StartStack))
	}
	return amount
}

// nextToActAfter scans seats ascending after the given seat for the first
// player who still owes chips this street or has not acted. Returns 0
// when the betting round is settled.
func (h *Hand) nextToActAfter(seatNo int) int {
	if h.actionableCount() < 2 {
		// A lone live player cannot bet against all-in opponents, but must
		// still match an outstanding bet.
		for _, p := range h.Players {
			if p.InHand && !p.AllIn && p.StreetContribution < h.StreetBetTo {
				return p.SeatNo
			}
		}
		return 0
	}
	for _, p := range h.playersFromSeat(seatNo) {
		if p.InHand && !p.AllIn && (p.StreetContribution < h.StreetBetTo || !p.ActedThisRound) {
			return p.SeatNo
		}
	}
	return 0
}

// firstToActOn resolves the street's opener via the variant rules, then
// skips forward if the chosen board belongs to an all-in player.
func (h *Hand) firstToActOn() int {
	if h.actionableCount() < 2 {
		return 0
	}
	seat := h.rules.FirstToAct(h.Players)
	if seat == 0 {
		return 0
	}
	if p := h.PlayerAt(seat); p != nil && p.InHand && !p.AllIn {
		return seat
	}
	for _, p := range h.playersFromSeat(seat) {
		if p.InHand && !p.AllIn {
			return p.SeatNo
		}
	}
	return 0
}

// StartHand deals a new hand at a WAITING table: antes, third street and
// the bring-in. The shuffled deck comes from the supplied draw source
// (see deck.Shuffle).
func (t *Table) StartHand(handID string, draw deck.DrawIndex) ([]Event, error) {
	if !t.CanStartHand() {
		return nil, rejectf(ErrInvalidAction, "table %s cannot start a hand", t.ID)
	}

	cards, err := deck.Shuffle(draw)
	if err != nil {
		return nil, err
	}

	if t.DealerSeatNo == 0 {
		for _, s := range t.Seats() {
			if t.eligibleForDeal(s) {
				t.DealerSeatNo = s.SeatNo
				break
			}
		}
	}

	gameType := t.NextGameType()
	h := &Hand{
		ID:           handID,
		No:           t.NextHandNo,
		GameType:     gameType,
		Status:       HandInProgress,
		Street:       Third,
		DealerSeatNo: t.DealerSeatNo,
		Stakes:       t.Stakes,
		rules:        RulesFor(gameType),
		cards:        cards,
	}
	t.NextHandNo++

	for _, s := range t.Seats() {
		if !t.eligibleForDeal(s) {
			continue
		}
		h.Players = append(h.Players, &HandPlayer{
			SeatNo:      s.SeatNo,
			UserID:      s.UserID,
			DisplayName: s.DisplayName,
			StartStack:  s.Stack,
			InHand:      true,
			seat:        s,
		})
	}
	h.headsUp = len(h.Players) == 2

	t.CurrentHand = h
	t.Status = TableDealing

	events := []Event{{HandID: h.ID, Name: EventDealInit, Payload: h.dealInitPayload()}}
	events = append(events, h.postAntes())
	events = append(events, h.dealThird())
	events = append(events, h.postBringIn())

	if h.ToActSeatNo != 0 {
		t.Status = TableBetting
	} else {
		// Everyone is already all-in from the antes and bring-in.
		events = append(events, t.advance()...)
	}
	return events, nil
}

func (h *Hand) dealInitPayload() DealInitPayload {
	infos := make([]HandPlayerInfo, len(h.Players))
	for i, p := range h.Players {
		infos[i] = HandPlayerInfo{
			SeatNo:      p.SeatNo,
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			StartStack:  p.StartStack,
		}
	}
	return DealInitPayload{
		HandID:       h.ID,
		HandNo:       h.No,
		GameType:     h.GameType,
		Stakes:       h.Stakes,
		DealerSeatNo: h.DealerSeatNo,
		Players:      infos,
	}
}

func (h *Hand) postAntes() Event {
	payload := PostAntePayload{}
	for _, p := range h.playersFromSeat(h.DealerSeatNo) {
		amount := h.debit(p, h.Stakes.Ante, false)
		payload.Antes = append(payload.Antes, AntePost{SeatNo: p.SeatNo, Amount: amount, AllIn: p.AllIn})
	}
	payload.PotTotal = h.PotTotal
	return Event{HandID: h.ID, Name: EventPostAnte, Payload: payload}
}

func (h *Hand) dealThird() Event {
	order := h.playersFromSeat(h.DealerSeatNo)
	// Two down cards, then one up card, dealt a card at a time around the
	// table as a live dealer would.
	for round := 0; round < 2; round++ {
		for _, p := range order {
			p.CardsDown = append(p.CardsDown, h.draw())
		}
	}
	for _, p := range order {
		p.CardsUp = append(p.CardsUp, h.draw())
	}

	payload := DealCards3rdPayload{}
	for _, p := range h.Players {
		views := []CardView{downView(p.CardsDown[0]), downView(p.CardsDown[1]), upView(p.CardsUp[0])}
		payload.Players = append(payload.Players, DealtHand{SeatNo: p.SeatNo, UserID: p.UserID, Cards: views})
	}
	return Event{HandID: h.ID, Name: EventDealCards3rd, Payload: payload}
}

func (h *Hand) postBringIn() Event {
	seat := h.rules.BringInSeat(h.Players)
	p := h.PlayerAt(seat)
	if p == nil {
		panic(fmt.Sprintf("game: bring-in seat %d has no player", seat))
	}

	amount := h.debit(p, h.Stakes.BringIn, true)
	// The table bring-in stands as the price to call even when posted
	// short all-in.
	h.StreetBetTo = h.Stakes.BringIn
	h.RaiseCount = 0
	p.ActedThisRound = true
	h.ToActSeatNo = h.nextToActAfter(seat)

	return Event{HandID: h.ID, Name: EventBringIn, Payload: BringInPayload{
		SeatNo:      seat,
		Amount:      amount,
		AllIn:       p.AllIn,
		StreetBetTo: h.StreetBetTo,
		PotTotal:    h.PotTotal,
		ToActSeatNo: h.ToActSeatNo,
	}}
}

// advance drives the hand forward whenever no seat is left to act:
// uncontested win, next street, all-in runout, or showdown.
func (t *Table) advance() []Event {
	h := t.CurrentHand
	var events []Event

	for h.ToActSeatNo == 0 && h.Status == HandInProgress {
		if h.inHandCount() == 1 {
			events = append(events, t.endUncontested()...)
			return events
		}

		next, ok := h.Street.Next()
		if !ok {
			events = append(events, t.showdown()...)
			return events
		}

		reason := AdvanceBettingRoundComplete
		if h.actionableCount() < 2 {
			reason = AdvanceAllInRunout
		}

		h.Street = next
		h.StreetBetTo = 0
		h.RaiseCount = 0
		for _, p := range h.Players {
			p.StreetContribution = 0
			p.ActedThisRound = !p.InHand || p.AllIn
		}

		for _, p := range h.playersFromSeat(h.DealerSeatNo) {
			if !p.InHand {
				continue
			}
			card := h.draw()
			var view CardView
			if h.Street == Seventh {
				p.CardsDown = append(p.CardsDown, card)
				view = downView(card)
			} else {
				p.CardsUp = append(p.CardsUp, card)
				view = upView(card)
			}
			events = append(events, Event{HandID: h.ID, Name: EventDealCard, Payload: DealCardPayload{
				SeatNo: p.SeatNo,
				UserID: p.UserID,
				Street: h.Street,
				Card:   view,
			}})
		}

		h.ToActSeatNo = h.firstToActOn()
		events = append(events, Event{HandID: h.ID, Name: EventStreetAdvance, Payload: StreetAdvancePayload{
			Street:      h.Street,
			Reason:      reason,
			ToActSeatNo: h.ToActSeatNo,
		}})
	}
	return events
}

// endUncontested awards the whole pot to the last player in the hand.
// No cards are revealed.
func (t *Table) endUncontested() []Event {
	h := t.CurrentHand
	var winner *HandPlayer
	for _, p := range h.Players {
		if p.InHand {
			winner = p
			break
		}
	}
	if winner == nil {
		panic("game: uncontested hand with no player in hand")
	}

	winner.seat.Stack += h.PotTotal
	winners := []Winner{{SeatNo: winner.SeatNo, Amount: h.PotTotal, Side: "SCOOP"}}
	return t.endHand("UNCONTESTED", winners)
}

// showdown resolves side pots, pays winners, and reveals the remaining
// hands.
func (t *Table) showdown() []Event {
	h := t.CurrentHand
	h.Status = HandShowdown
	t.Status = TableShowdown

	results := ResolveShowdown(h.rules, h.Players, h.DealerSeatNo)
	var winners []Winner
	for _, res := range results {
		for _, w := range res.Winners {
			h.PlayerAt(w.SeatNo).seat.Stack += w.Amount
			winners = append(winners, w)
		}
	}

	var reveals []RevealedHand
	for _, p := range h.Players {
		if p.InHand {
			reveals = append(reveals, RevealedHand{SeatNo: p.SeatNo, UserID: p.UserID, Cards: p.AllCards()})
		}
	}

	events := []Event{{HandID: h.ID, Name: EventShowdown, Payload: ShowdownPayload{Pots: results, Reveals: reveals}}}
	return append(events, t.endHand("SHOWDOWN", winners)...)
}

// endHand closes the hand: dealer advances one seat, the mix rotation
// ticks, and the table parks in HAND_END until the reveal wait elapses.
func (t *Table) endHand(reason string, winners []Winner) []Event {
	h := t.CurrentHand
	h.Status = HandEnded
	h.ToActSeatNo = 0
	t.Status = TableHandEnd

	t.DealerSeatNo = wrapSeat(t.DealerSeatNo + 1)
	if t.Mixed {
		t.HandsSinceRotation++
		if t.HandsSinceRotation >= RotationHands {
			t.HandsSinceRotation = 0
			t.MixIndex = (t.MixIndex + 1) % len(MixRotation)
		}
	}

	stacks := make(map[int]int)
	for _, p := range h.Players {
		stacks[p.SeatNo] = p.seat.Stack
	}

	return []Event{{HandID: h.ID, Name: EventDealEnd, Payload: DealEndPayload{
		HandID:       h.ID,
		Reason:       reason,
		Winners:      winners,
		PotTotal:     h.PotTotal,
		Stacks:       stacks,
		DealerSeatNo: t.DealerSeatNo,
		NextGameType: t.NextGameType(),
	}}}
}
