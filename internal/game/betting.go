package game

// Act applies a betting action for the given user. Validation order:
// a hand must be betting, the user must hold a seat, the seat must be
// live in the hand, and it must be that seat's turn. Validation failures
// leave all state untouched.
func (t *Table) Act(userID string, action Action, isAuto bool) ([]Event, error) {
	h := t.CurrentHand
	if t.Status != TableBetting || h == nil || h.Status != HandInProgress {
		return nil, rejectf(ErrInvalidAction, "no betting round in progress")
	}
	seat := t.SeatOf(userID)
	if seat == nil {
		return nil, rejectf(ErrInvalidAction, "user %s is not seated", userID)
	}
	p := h.PlayerAt(seat.SeatNo)
	if p == nil || !p.InHand || p.AllIn {
		return nil, rejectf(ErrInvalidAction, "seat %d cannot act in this hand", seat.SeatNo)
	}
	if h.ToActSeatNo != p.SeatNo {
		return nil, rejectf(ErrNotYourTurn, "seat %d to act, not seat %d", h.ToActSeatNo, p.SeatNo)
	}

	toCall := h.StreetBetTo - p.StreetContribution
	betSize := h.Stakes.BetSize(h.Street)
	var name EventName
	amount := 0

	switch action {
	case ActionCheck:
		if toCall != 0 {
			return nil, rejectf(ErrInvalidAction, "cannot check facing %d to call", toCall)
		}
		name = EventCheck

	case ActionCall:
		if toCall <= 0 {
			return nil, rejectf(ErrInvalidAction, "nothing to call")
		}
		amount = h.debit(p, toCall, true)
		name = EventCall

	case ActionBet:
		if h.Street == Third {
			return nil, rejectf(ErrInvalidAction, "third street opens with the bring-in; complete instead")
		}
		if h.StreetBetTo != 0 {
			return nil, rejectf(ErrInvalidAction, "a bet of %d already stands", h.StreetBetTo)
		}
		amount = h.debit(p, betSize, true)
		h.StreetBetTo = betSize
		name = EventBet

	case ActionComplete:
		// Only legal on third street before any full bet: raises the
		// committed amount from the bring-in to the small bet.
		if h.Street != Third || h.StreetBetTo >= h.Stakes.SmallBet {
			return nil, rejectf(ErrInvalidAction, "complete is only legal on third street before a full bet")
		}
		amount = h.debit(p, h.Stakes.SmallBet-p.StreetContribution, true)
		h.StreetBetTo = h.Stakes.SmallBet
		name = EventComplete

	case ActionRaise:
		if h.StreetBetTo < h.Stakes.SmallBet {
			return nil, rejectf(ErrInvalidAction, "no bet to raise")
		}
		// The raise cap applies to multi-way pots only; a pot dealt
		// heads-up raises without limit.
		if !h.headsUp && h.RaiseCount >= MaxRaisesPerStreet {
			return nil, rejectf(ErrInvalidAction, "street is capped at %d raises", MaxRaisesPerStreet)
		}
		target := h.StreetBetTo + betSize
		amount = h.debit(p, target-p.StreetContribution, true)
		if p.StreetContribution > h.StreetBetTo {
			h.StreetBetTo = p.StreetContribution
		}
		h.RaiseCount++
		name = EventRaise

	case ActionFold:
		p.InHand = false
		name = EventFold

	default:
		return nil, rejectf(ErrInvalidAction, "unknown action %q", action)
	}

	p.ActedThisRound = true
	h.ToActSeatNo = h.nextToActAfter(p.SeatNo)

	events := []Event{{HandID: h.ID, Name: name, Payload: ActionPayload{
		SeatNo:      p.SeatNo,
		Amount:      amount,
		AllIn:       p.AllIn,
		StreetBetTo: h.StreetBetTo,
		RaiseCount:  h.RaiseCount,
		PotTotal:    h.PotTotal,
		ToActSeatNo: h.ToActSeatNo,
		IsAuto:      isAuto,
	}}}

	if h.ToActSeatNo == 0 {
		events = append(events, t.advance()...)
	}
	return events, nil
}

// AutoAction is the timer-driven implicit action for a stalled seat:
// check when checking is free, else fold. Tagged isAuto on the wire.
func (t *Table) AutoAction(seatNo int) ([]Event, error) {
	h := t.CurrentHand
	if t.Status != TableBetting || h == nil || h.Status != HandInProgress || h.ToActSeatNo != seatNo {
		return nil, rejectf(ErrInvalidAction, "seat %d is no longer due to act", seatNo)
	}
	p := h.PlayerAt(seatNo)
	if p == nil {
		return nil, rejectf(ErrInvalidAction, "seat %d not in hand", seatNo)
	}

	action := ActionFold
	if h.StreetBetTo-p.StreetContribution == 0 {
		action = ActionCheck
	}
	return t.Act(p.UserID, action, true)
}
