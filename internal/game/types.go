package game

// GameType identifies which stud variant a hand is played under.
type GameType string

const (
	StudHi GameType = "STUD_HI"
	Razz   GameType = "RAZZ"
	Stud8  GameType = "STUD_8"
)

// MixRotation is the variant cycle for mixed tables. The table advances
// one step every RotationHands hands.
var MixRotation = []GameType{StudHi, Razz, Stud8}

// RotationHands is how many hands a mixed table plays before rotating.
const RotationHands = 6

// Street represents one of the five card/betting rounds of seven-card stud.
type Street int

const (
	Third Street = iota + 3
	Fourth
	Fifth
	Sixth
	Seventh
)

func (s Street) String() string {
	switch s {
	case Third:
		return "THIRD"
	case Fourth:
		return "FOURTH"
	case Fifth:
		return "FIFTH"
	case Sixth:
		return "SIXTH"
	case Seventh:
		return "SEVENTH"
	default:
		return "?"
	}
}

// Next returns the following street and false once past seventh.
func (s Street) Next() (Street, bool) {
	if s >= Seventh {
		return s, false
	}
	return s + 1, true
}

// TableStatus is the table lifecycle state.
type TableStatus string

const (
	TableWaiting  TableStatus = "WAITING"
	TableDealing  TableStatus = "DEALING"
	TableBetting  TableStatus = "BETTING"
	TableShowdown TableStatus = "SHOWDOWN"
	TableHandEnd  TableStatus = "HAND_END"
)

// SeatStatus is the per-seat occupancy state.
type SeatStatus string

const (
	SeatEmpty        SeatStatus = "EMPTY"
	SeatWaitNextHand SeatStatus = "SEATED_WAIT_NEXT_HAND"
	SeatActive       SeatStatus = "ACTIVE"
	SeatSitOut       SeatStatus = "SIT_OUT"
	SeatLeavePending SeatStatus = "LEAVE_PENDING"
	SeatDisconnected SeatStatus = "DISCONNECTED"
)

// SeatChangeReason documents why a seat transitioned state.
type SeatChangeReason string

const (
	ReasonJoin               SeatChangeReason = "JOIN"
	ReasonSitOut             SeatChangeReason = "SIT_OUT"
	ReasonReturn             SeatChangeReason = "RETURN"
	ReasonLeave              SeatChangeReason = "LEAVE"
	ReasonLeavePending       SeatChangeReason = "LEAVE_PENDING"
	ReasonAutoLeaveZeroStack SeatChangeReason = "AUTO_LEAVE_ZERO_STACK"
	ReasonNextHandActivate   SeatChangeReason = "NEXT_HAND_ACTIVATE"
	ReasonDisconnect         SeatChangeReason = "DISCONNECT"
	ReasonReconnect          SeatChangeReason = "RECONNECT"
)

// HandStatus is the hand lifecycle state.
type HandStatus string

const (
	HandInProgress HandStatus = "IN_PROGRESS"
	HandShowdown   HandStatus = "SHOWDOWN"
	HandEnded      HandStatus = "HAND_END"
)

// Action is a betting action submitted by the seat to act.
type Action string

const (
	ActionCheck    Action = "CHECK"
	ActionCall     Action = "CALL"
	ActionBet      Action = "BET"
	ActionComplete Action = "COMPLETE"
	ActionRaise    Action = "RAISE"
	ActionFold     Action = "FOLD"
)

// AdvanceReason tags why a street advanced, so clients can distinguish a
// completed betting round from an all-in runout.
type AdvanceReason string

const (
	AdvanceBettingRoundComplete AdvanceReason = "BETTING_ROUND_COMPLETE"
	AdvanceAllInRunout          AdvanceReason = "ALL_IN_RUNOUT"
)

// Stakes are the fixed-limit bet sizes for a table.
type Stakes struct {
	SmallBet int `json:"smallBet"`
	BigBet   int `json:"bigBet"`
	Ante     int `json:"ante"`
	BringIn  int `json:"bringIn"`
}

// BetSize returns the fixed bet/raise increment for a street: the small
// bet on third and fourth, the big bet from fifth on.
func (s Stakes) BetSize(street Street) int {
	if street <= Fourth {
		return s.SmallBet
	}
	return s.BigBet
}

// MaxSeats is the number of seats at every table.
const MaxSeats = 6

// MaxRaisesPerStreet caps raises on one street in multi-way pots. The cap
// does not apply when exactly two players were dealt into the hand.
const MaxRaisesPerStreet = 4
