package game

import "sort"

// PotLayer is one layered (side) pot derived from the final contribution
// levels. Derived at showdown, never persisted.
type PotLayer struct {
	Amount   int   `json:"amount"`
	Level    int   `json:"level"`
	Eligible []int `json:"eligible"` // seat numbers still in the hand at this level
}

// BuildSidePots layers the pot from unequal contributions: for each
// distinct positive contribution level ascending, everyone who put in at
// least that level pays the slab between it and the previous level.
// Folded players fund slabs but are never eligible to win them.
func BuildSidePots(players []*HandPlayer) []PotLayer {
	levelSet := make(map[int]bool)
	for _, p := range players {
		if p.TotalContribution > 0 {
			levelSet[p.TotalContribution] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	pots := make([]PotLayer, 0, len(levels))
	prev := 0
	for _, level := range levels {
		layer := PotLayer{Level: level}
		for _, p := range players {
			if p.TotalContribution >= level {
				layer.Amount += level - prev
				if p.InHand {
					layer.Eligible = append(layer.Eligible, p.SeatNo)
				}
			}
		}
		sort.Ints(layer.Eligible)
		pots = append(pots, layer)
		prev = level
	}
	return pots
}

// Winner is one seat's share of one pot side.
type Winner struct {
	SeatNo int    `json:"seatNo"`
	Amount int    `json:"amount"`
	Side   string `json:"side"` // HI, LO or SCOOP
	Hand   string `json:"hand,omitempty"`
}

// PotResult is the resolution of one pot layer.
type PotResult struct {
	Amount   int      `json:"amount"`
	Eligible []int    `json:"eligible"`
	Winners  []Winner `json:"winners"`
}

// SplitChips divides amount among winning seats: an equal base share plus
// remainder chips handed out one by one in clockwise order from the
// dealer seat, closest seat first.
func SplitChips(amount int, seats []int, dealerSeatNo int) map[int]int {
	ordered := append([]int(nil), seats...)
	dist := func(seat int) int {
		d := (seat - dealerSeatNo + MaxSeats) % MaxSeats
		if d == 0 {
			// The dealer acts last and therefore queues last for odd chips.
			d = MaxSeats
		}
		return d
	}
	sort.Slice(ordered, func(i, j int) bool { return dist(ordered[i]) < dist(ordered[j]) })

	shares := make(map[int]int, len(ordered))
	base := amount / len(ordered)
	remainder := amount - base*len(ordered)
	for i, seat := range ordered {
		shares[seat] = base
		if i < remainder {
			shares[seat]++
		}
	}
	return shares
}

// ResolveShowdown evaluates every pot layer independently for its own
// eligible subset and returns per-pot winners with amounts. For hi/lo
// variants the high side receives the extra odd chip on uneven splits;
// when no eight-or-better low exists the high hand scoops.
func ResolveShowdown(rules Rules, players []*HandPlayer, dealerSeatNo int) []PotResult {
	bySeat := make(map[int]*HandPlayer, len(players))
	for _, p := range players {
		bySeat[p.SeatNo] = p
	}

	pots := BuildSidePots(players)
	results := make([]PotResult, 0, len(pots))
	for _, pot := range pots {
		res := PotResult{Amount: pot.Amount, Eligible: pot.Eligible}

		if len(pot.Eligible) == 1 {
			seat := pot.Eligible[0]
			res.Winners = []Winner{{SeatNo: seat, Amount: pot.Amount, Side: "SCOOP"}}
			results = append(results, res)
			continue
		}

		switch rules.PotMode() {
		case PotHighOnly:
			seats, label := bestHigh(pot.Eligible, bySeat)
			res.Winners = appendShares(res.Winners, pot.Amount, seats, dealerSeatNo, "HI", label)

		case PotLowOnly:
			seats, label := bestLow(pot.Eligible, bySeat, false)
			res.Winners = appendShares(res.Winners, pot.Amount, seats, dealerSeatNo, "LO", label)

		case PotHiLoEight:
			hiSeats, hiLabel := bestHigh(pot.Eligible, bySeat)
			loSeats, loLabel := bestLow(pot.Eligible, bySeat, true)
			if len(loSeats) == 0 {
				res.Winners = appendShares(res.Winners, pot.Amount, hiSeats, dealerSeatNo, "SCOOP", hiLabel)
				break
			}
			hiAmount := pot.Amount/2 + pot.Amount%2
			loAmount := pot.Amount - hiAmount
			res.Winners = appendShares(res.Winners, hiAmount, hiSeats, dealerSeatNo, "HI", hiLabel)
			res.Winners = appendShares(res.Winners, loAmount, loSeats, dealerSeatNo, "LO", loLabel)
		}

		results = append(results, res)
	}
	return results
}

func appendShares(winners []Winner, amount int, seats []int, dealerSeatNo int, side, label string) []Winner {
	if amount == 0 || len(seats) == 0 {
		return winners
	}
	shares := SplitChips(amount, seats, dealerSeatNo)
	ordered := append([]int(nil), seats...)
	sort.Ints(ordered)
	for _, seat := range ordered {
		winners = append(winners, Winner{SeatNo: seat, Amount: shares[seat], Side: side, Hand: label})
	}
	return winners
}

func bestHigh(eligible []int, bySeat map[int]*HandPlayer) ([]int, string) {
	var best HighRank
	var seats []int
	for _, seat := range eligible {
		p := bySeat[seat]
		r := EvaluateHigh(p.AllCards())
		if len(seats) == 0 || r > best {
			best, seats = r, []int{seat}
		} else if r == best {
			seats = append(seats, seat)
		}
	}
	return seats, best.Category()
}

// bestLow returns the best ace-to-five low. With qualify set, only
// eight-or-better hands count and the empty result means no qualifier.
func bestLow(eligible []int, bySeat map[int]*HandPlayer, qualify bool) ([]int, string) {
	var best LowRank
	var seats []int
	for _, seat := range eligible {
		p := bySeat[seat]
		r := EvaluateLow(p.AllCards())
		if qualify && !r.QualifiesEightOrBetter() {
			continue
		}
		if len(seats) == 0 || r < best {
			best, seats = r, []int{seat}
		} else if r == best {
			seats = append(seats, seat)
		}
	}
	if len(seats) == 0 {
		return nil, ""
	}
	return seats, "LOW"
}
