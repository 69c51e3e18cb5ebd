package game

import "time"

// Seat is one of the six fixed seats at a table.
type Seat struct {
	SeatNo           int        `json:"seatNo"`
	Status           SeatStatus `json:"status"`
	UserID           string     `json:"userId,omitempty"`
	DisplayName      string     `json:"displayName,omitempty"`
	Stack            int        `json:"stack"`
	DisconnectStreak int        `json:"disconnectStreak"`
	JoinedAt         time.Time  `json:"joinedAt,omitempty"`

	// pendingLeave distinguishes a LEAVE_PENDING seat that wants to leave
	// the table from one that only wants to sit out next hand.
	pendingLeave bool
	// preDisconnect remembers the status to restore on reconnect.
	preDisconnect SeatStatus
}

// Occupied reports whether a user holds this seat.
func (s *Seat) Occupied() bool {
	return s.Status != SeatEmpty
}

func (s *Seat) vacate() {
	s.Status = SeatEmpty
	s.UserID = ""
	s.DisplayName = ""
	s.Stack = 0
	s.DisconnectStreak = 0
	s.JoinedAt = time.Time{}
	s.pendingLeave = false
	s.preDisconnect = SeatEmpty
}

// Table is the authoritative in-memory model of one room table. All
// mutation happens inside the owning actor's serialized command loop;
// Table itself is not safe for concurrent use.
type Table struct {
	ID                 string
	Name               string
	Status             TableStatus
	Game               GameType
	Mixed              bool
	MixIndex           int
	HandsSinceRotation int
	DealerSeatNo       int
	Stakes             Stakes
	BuyInMin           int
	BuyInMax           int
	CurrentHand        *Hand
	NextHandNo         int

	seats [MaxSeats + 1]*Seat // 1-indexed, stable seat numbers
}

// NewTable creates an empty waiting table.
func NewTable(id, name string, game GameType, mixed bool, stakes Stakes, buyInMin, buyInMax int) *Table {
	t := &Table{
		ID:         id,
		Name:       name,
		Status:     TableWaiting,
		Game:       game,
		Mixed:      mixed,
		Stakes:     stakes,
		BuyInMin:   buyInMin,
		BuyInMax:   buyInMax,
		NextHandNo: 1,
	}
	for i := 1; i <= MaxSeats; i++ {
		t.seats[i] = &Seat{SeatNo: i, Status: SeatEmpty}
	}
	return t
}

// Seat returns the seat with the given number, or nil when out of range.
func (t *Table) Seat(seatNo int) *Seat {
	if seatNo < 1 || seatNo > MaxSeats {
		return nil
	}
	return t.seats[seatNo]
}

// Seats returns all seats in seat order.
func (t *Table) Seats() []*Seat {
	return t.seats[1:]
}

// SeatOf returns the seat a user occupies, or nil.
func (t *Table) SeatOf(userID string) *Seat {
	for _, s := range t.Seats() {
		if s.Occupied() && s.UserID == userID {
			return s
		}
	}
	return nil
}

// SeatedCount returns the number of occupied seats.
func (t *Table) SeatedCount() int {
	n := 0
	for _, s := range t.Seats() {
		if s.Occupied() {
			n++
		}
	}
	return n
}

// NextGameType returns the variant the next hand will be played under.
func (t *Table) NextGameType() GameType {
	if t.Mixed {
		return MixRotation[t.MixIndex]
	}
	return t.Game
}

// eligibleForDeal reports whether a seat can be dealt into the next hand.
func (t *Table) eligibleForDeal(s *Seat) bool {
	return s.Status == SeatActive && s.Stack > 0 && s.Stack >= t.Stakes.Ante
}

// CanStartHand reports whether a new hand may begin right now.
func (t *Table) CanStartHand() bool {
	if t.Status != TableWaiting || t.CurrentHand != nil {
		return false
	}
	n := 0
	for _, s := range t.Seats() {
		if t.eligibleForDeal(s) {
			n++
		}
	}
	return n >= 2
}

func (t *Table) handInProgress() bool {
	return t.CurrentHand != nil && t.CurrentHand.Status == HandInProgress
}

// dealtIn reports whether the seat's user is part of the live hand.
func (t *Table) dealtIn(s *Seat) bool {
	if t.CurrentHand == nil || t.CurrentHand.Status == HandEnded {
		return false
	}
	return t.CurrentHand.PlayerAt(s.SeatNo) != nil
}

func seatChanged(s *Seat, reason SeatChangeReason) Event {
	return Event{Name: EventSeatStateChanged, Payload: SeatStateChangedPayload{
		SeatNo:      s.SeatNo,
		UserID:      s.UserID,
		DisplayName: s.DisplayName,
		Status:      s.Status,
		Reason:      reason,
		Stack:       s.Stack,
	}}
}

// Join seats a user. seatNo 0 picks the first empty seat. The caller has
// already debited buyIn from the user's external balance.
func (t *Table) Join(userID, displayName string, seatNo, buyIn int, now time.Time) ([]Event, error) {
	if t.SeatOf(userID) != nil {
		return nil, rejectf(ErrAlreadySeated, "user %s already seated at table %s", userID, t.ID)
	}
	if buyIn < t.BuyInMin || buyIn > t.BuyInMax {
		return nil, rejectf(ErrBuyinOutOfRange, "buy-in %d outside [%d, %d]", buyIn, t.BuyInMin, t.BuyInMax)
	}

	var seat *Seat
	if seatNo != 0 {
		seat = t.Seat(seatNo)
		if seat == nil {
			return nil, rejectf(ErrInvalidAction, "no such seat %d", seatNo)
		}
		if seat.Occupied() {
			return nil, rejectf(ErrTableFull, "seat %d is taken", seatNo)
		}
	} else {
		for _, s := range t.Seats() {
			if !s.Occupied() {
				seat = s
				break
			}
		}
		if seat == nil {
			return nil, rejectf(ErrTableFull, "table %s has no empty seats", t.ID)
		}
	}

	seat.UserID = userID
	seat.DisplayName = displayName
	seat.Stack = buyIn
	seat.DisconnectStreak = 0
	seat.JoinedAt = now
	if t.Status == TableWaiting {
		seat.Status = SeatActive
	} else {
		seat.Status = SeatWaitNextHand
	}

	return []Event{seatChanged(seat, ReasonJoin)}, nil
}

// SitOut takes a seat out of future hands. During a live hand for a
// dealt-in seat it becomes LEAVE_PENDING instead, effective next hand, so
// the hand in progress is untouched.
func (t *Table) SitOut(userID string) ([]Event, error) {
	seat := t.SeatOf(userID)
	if seat == nil {
		return nil, rejectf(ErrInvalidAction, "user %s is not seated", userID)
	}
	switch seat.Status {
	case SeatActive, SeatWaitNextHand:
	default:
		return nil, rejectf(ErrInvalidAction, "cannot sit out from %s", seat.Status)
	}

	if t.handInProgress() && t.dealtIn(seat) {
		seat.Status = SeatLeavePending
		return []Event{seatChanged(seat, ReasonLeavePending)}, nil
	}
	seat.Status = SeatSitOut
	return []Event{seatChanged(seat, ReasonSitOut)}, nil
}

// Return brings a sitting-out or leave-pending seat back. Only legal from
// SIT_OUT or LEAVE_PENDING.
func (t *Table) Return(userID string) ([]Event, error) {
	seat := t.SeatOf(userID)
	if seat == nil {
		return nil, rejectf(ErrInvalidAction, "user %s is not seated", userID)
	}
	switch seat.Status {
	case SeatSitOut, SeatLeavePending:
	default:
		return nil, rejectf(ErrInvalidAction, "cannot return from %s", seat.Status)
	}

	seat.pendingLeave = false
	if t.handInProgress() && !t.dealtIn(seat) {
		seat.Status = SeatWaitNextHand
	} else {
		seat.Status = SeatActive
	}
	return []Event{seatChanged(seat, ReasonReturn)}, nil
}

// Leave removes a user from the table. During a live hand for a dealt-in
// seat the departure is deferred to hand end via LEAVE_PENDING. Returns
// the chips to credit back to the user's external balance.
func (t *Table) Leave(userID string) ([]Event, int, error) {
	seat := t.SeatOf(userID)
	if seat == nil {
		return nil, 0, rejectf(ErrInvalidAction, "user %s is not seated", userID)
	}

	if t.handInProgress() && t.dealtIn(seat) {
		seat.Status = SeatLeavePending
		seat.pendingLeave = true
		return []Event{seatChanged(seat, ReasonLeavePending)}, 0, nil
	}

	cashOut := seat.Stack
	seat.vacate()
	return []Event{seatChanged(seat, ReasonLeave)}, cashOut, nil
}

// MarkDisconnected flags a seated user's dropped socket. The seat stays
// in the hand; the auto-action timer will act for it.
func (t *Table) MarkDisconnected(userID string) []Event {
	seat := t.SeatOf(userID)
	if seat == nil || seat.Status == SeatDisconnected {
		return nil
	}
	seat.preDisconnect = seat.Status
	seat.Status = SeatDisconnected
	return []Event{
		{Name: EventPlayerDisconnected, Payload: PlayerConnectionPayload{SeatNo: seat.SeatNo, UserID: seat.UserID}},
		seatChanged(seat, ReasonDisconnect),
	}
}

// MarkReconnected restores a disconnected seat to its prior status.
func (t *Table) MarkReconnected(userID string) []Event {
	seat := t.SeatOf(userID)
	if seat == nil || seat.Status != SeatDisconnected {
		return nil
	}
	seat.Status = seat.preDisconnect
	if seat.Status == SeatEmpty || seat.Status == "" {
		seat.Status = SeatActive
	}
	seat.preDisconnect = SeatEmpty
	seat.DisconnectStreak = 0
	return []Event{
		{Name: EventPlayerReconnected, Payload: PlayerConnectionPayload{SeatNo: seat.SeatNo, UserID: seat.UserID}},
		seatChanged(seat, ReasonReconnect),
	}
}

// CashOut is a chips credit owed to a departing user's balance.
type CashOut struct {
	UserID string
	Chips  int
}

// FinishHandCleanup runs after the post-hand reveal wait: the hand is
// destroyed, zero-stack seats auto-leave, deferred departures and
// sit-outs take effect, and waiting seats activate.
func (t *Table) FinishHandCleanup() ([]Event, []CashOut) {
	t.CurrentHand = nil
	t.Status = TableWaiting

	var events []Event
	var cashOuts []CashOut
	for _, s := range t.Seats() {
		if !s.Occupied() {
			continue
		}
		switch {
		case s.Stack == 0:
			userID := s.UserID
			s.vacate()
			events = append(events, seatChanged(s, ReasonAutoLeaveZeroStack))
			cashOuts = append(cashOuts, CashOut{UserID: userID, Chips: 0})
		case s.pendingLeave:
			userID := s.UserID
			chips := s.Stack
			s.vacate()
			events = append(events, seatChanged(s, ReasonLeave))
			cashOuts = append(cashOuts, CashOut{UserID: userID, Chips: chips})
		case s.Status == SeatLeavePending:
			s.Status = SeatSitOut
			events = append(events, seatChanged(s, ReasonSitOut))
		case s.Status == SeatDisconnected && s.DisconnectStreak >= 2:
			s.Status = SeatSitOut
			s.preDisconnect = SeatEmpty
			events = append(events, seatChanged(s, ReasonSitOut))
		case s.Status == SeatWaitNextHand:
			s.Status = SeatActive
			events = append(events, seatChanged(s, ReasonNextHandActivate))
		}
	}
	return events, cashOuts
}
