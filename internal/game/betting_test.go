package game

import "testing"

func TestCheckRejectedFacingBet(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000, 1000)
	startTestHand(t, tbl, threeWayThird)

	// Seat 3 faces the bring-in.
	if code := rejectedAct(t, tbl, 3, ActionCheck); code != ErrInvalidAction {
		t.Errorf("check facing a bet = %s, want INVALID_ACTION", code)
	}
	// The rejection left the hand untouched.
	if tbl.CurrentHand.ToActSeatNo != 3 {
		t.Errorf("to act moved to %d after a rejected action", tbl.CurrentHand.ToActSeatNo)
	}
}

func TestActOutOfTurn(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000, 1000)
	startTestHand(t, tbl, threeWayThird)

	// Seat 1 tries to act while seat 3 is due; even an otherwise valid
	// action fails with NOT_YOUR_TURN.
	if code := rejectedAct(t, tbl, 1, ActionCall); code != ErrNotYourTurn {
		t.Errorf("out-of-turn call = %s, want NOT_YOUR_TURN", code)
	}
	if code := rejectedAct(t, tbl, 1, ActionFold); code != ErrNotYourTurn {
		t.Errorf("out-of-turn fold = %s, want NOT_YOUR_TURN", code)
	}
}

func TestActWhenNotSeatedOrNoHand(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	if _, err := tbl.Act("a", ActionCheck, false); err == nil {
		t.Error("acting with no hand in progress must fail")
	}

	startTestHand(t, tbl, headsUpThird)
	if _, err := tbl.Act("stranger", ActionFold, false); err == nil {
		t.Error("acting while not seated must fail")
	}
}

func TestCompleteOnlyOnThirdStreet(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird+" 3c Qd")

	events := act(t, tbl, 1, ActionComplete)
	payload := events[0].Payload.(ActionPayload)
	if payload.Amount != 10 || payload.StreetBetTo != 10 {
		t.Errorf("complete = %+v, want amount 10 raising the street to 10", payload)
	}
	// Completing the bring-in is not a raise.
	if payload.RaiseCount != 0 {
		t.Errorf("raise count = %d after complete, want 0", payload.RaiseCount)
	}

	act(t, tbl, 2, ActionCall)

	// Fourth street has no bring-in to complete.
	h := tbl.CurrentHand
	if h.Street != Fourth {
		t.Fatalf("street = %s, want FOURTH", h.Street)
	}
	if code := rejectedAct(t, tbl, h.ToActSeatNo, ActionComplete); code != ErrInvalidAction {
		t.Errorf("complete on fourth = %s, want INVALID_ACTION", code)
	}
}

func TestBetRejectedOnThirdStreet(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird)

	if code := rejectedAct(t, tbl, 1, ActionBet); code != ErrInvalidAction {
		t.Errorf("bet on third = %s, want INVALID_ACTION", code)
	}
}

func TestBetOpensLaterStreets(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird+" 3c Qd")
	act(t, tbl, 1, ActionCall)

	// Fourth street: small bet opens.
	h := tbl.CurrentHand
	events := act(t, tbl, h.ToActSeatNo, ActionBet)
	payload := events[0].Payload.(ActionPayload)
	if payload.Amount != 10 {
		t.Errorf("fourth-street bet = %d, want small bet 10", payload.Amount)
	}

	// A second bet on the same street is illegal.
	if code := rejectedAct(t, tbl, h.ToActSeatNo, ActionBet); code != ErrInvalidAction {
		t.Errorf("bet over a standing bet = %s, want INVALID_ACTION", code)
	}
}

func TestRaiseCapMultiWay(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000, 1000)
	startTestHand(t, tbl, threeWayThird)

	// Third street: complete, then four raises cap the street.
	act(t, tbl, 3, ActionComplete)
	act(t, tbl, 1, ActionRaise) // to 20
	act(t, tbl, 2, ActionRaise) // to 30
	act(t, tbl, 3, ActionRaise) // to 40
	act(t, tbl, 1, ActionRaise) // to 50, cap reached

	if got := tbl.CurrentHand.RaiseCount; got != MaxRaisesPerStreet {
		t.Fatalf("raise count = %d, want %d", got, MaxRaisesPerStreet)
	}
	if code := rejectedAct(t, tbl, 2, ActionRaise); code != ErrInvalidAction {
		t.Errorf("fifth raise three-way = %s, want INVALID_ACTION", code)
	}
	// Calling remains legal.
	act(t, tbl, 2, ActionCall)
}

func TestRaiseCapExemptHeadsUp(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird)

	act(t, tbl, 1, ActionComplete)
	act(t, tbl, 2, ActionRaise) // to 20
	act(t, tbl, 1, ActionRaise) // to 30
	act(t, tbl, 2, ActionRaise) // to 40
	act(t, tbl, 1, ActionRaise) // to 50

	// A fifth raise succeeds in a pot dealt heads-up.
	events := act(t, tbl, 2, ActionRaise)
	payload := events[0].Payload.(ActionPayload)
	if payload.RaiseCount != 5 || payload.StreetBetTo != 60 {
		t.Errorf("fifth raise = %+v, want raise count 5 at 60", payload)
	}
}

func TestRaiseCapFixedAtDealTime(t *testing.T) {
	t.Parallel()

	// Three players dealt in; one folds immediately. The remaining two
	// are still bound by the multi-way cap.
	tbl := newTestTable(t, StudHi, 1000, 1000, 1000)
	startTestHand(t, tbl, threeWayThird+" 3d 4d")

	act(t, tbl, 3, ActionComplete)
	act(t, tbl, 1, ActionFold)
	act(t, tbl, 2, ActionCall)

	h := tbl.CurrentHand
	if h.Street != Fourth {
		t.Fatalf("street = %s, want FOURTH", h.Street)
	}
	// Seat 3 shows the king and opens.
	act(t, tbl, 3, ActionBet)
	act(t, tbl, 2, ActionRaise)
	act(t, tbl, 3, ActionRaise)
	act(t, tbl, 2, ActionRaise)
	act(t, tbl, 3, ActionRaise)

	if code := rejectedAct(t, tbl, 2, ActionRaise); code != ErrInvalidAction {
		t.Errorf("fifth raise after a fold = %s, want INVALID_ACTION (cap fixed at deal)", code)
	}
}

func TestRaiseRequiresStandingBet(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird+" 3c Qd")
	act(t, tbl, 1, ActionCall)

	// Fourth street, unopened: raise is illegal, bet is the opener.
	h := tbl.CurrentHand
	if code := rejectedAct(t, tbl, h.ToActSeatNo, ActionRaise); code != ErrInvalidAction {
		t.Errorf("raise with no bet = %s, want INVALID_ACTION", code)
	}
}

func TestCallRejectedWithNothingOwed(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird+" 3c Qd")
	act(t, tbl, 1, ActionCall)

	h := tbl.CurrentHand
	if code := rejectedAct(t, tbl, h.ToActSeatNo, ActionCall); code != ErrInvalidAction {
		t.Errorf("call with nothing owed = %s, want INVALID_ACTION", code)
	}
}

func TestAutoActionChecksWhenFree(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird+" 3c Qd")
	act(t, tbl, 1, ActionCall)

	// Fourth street, nothing to call: the auto action checks.
	h := tbl.CurrentHand
	seat := h.ToActSeatNo
	events, err := tbl.AutoAction(seat)
	if err != nil {
		t.Fatalf("auto action: %v", err)
	}
	payload := events[0].Payload.(ActionPayload)
	if events[0].Name != EventCheck || !payload.IsAuto {
		t.Errorf("auto action = %s isAuto=%v, want an auto check", events[0].Name, payload.IsAuto)
	}
	if p := h.PlayerAt(seat); !p.InHand {
		t.Error("auto check must not fold the player")
	}
}

func TestAutoActionFoldsFacingBet(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird)

	// Seat 1 faces the bring-in: the auto action folds.
	events, err := tbl.AutoAction(1)
	if err != nil {
		t.Fatalf("auto action: %v", err)
	}
	if events[0].Name != EventFold {
		t.Errorf("auto action = %s, want Fold", events[0].Name)
	}
}

func TestAutoActionStaleSeatRejected(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 1000)
	startTestHand(t, tbl, headsUpThird)

	// Seat 2 posted the bring-in and is not due to act.
	if _, err := tbl.AutoAction(2); err == nil {
		t.Error("auto action for a seat not due to act must fail")
	}
}

func TestAllInPlayerCannotAct(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, StudHi, 1000, 5, 1000)
	startTestHand(t, tbl, threeWayThird)

	// Seat 3 completes, seat 1 calls, seat 2 calls all-in short.
	act(t, tbl, 3, ActionComplete)
	act(t, tbl, 1, ActionCall)
	act(t, tbl, 2, ActionCall)

	h := tbl.CurrentHand
	if !h.PlayerAt(2).AllIn {
		t.Fatal("seat 2 should be all-in")
	}
	if h.Street != Fourth {
		t.Fatalf("street = %s, want FOURTH", h.Street)
	}
	if _, err := tbl.Act("b", ActionCheck, false); err == nil {
		t.Error("an all-in player must not act")
	}
}
