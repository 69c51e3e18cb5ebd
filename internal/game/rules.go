package game

import "github.com/studroom/studroom/internal/deck"

// PotMode describes how a variant resolves pots at showdown.
type PotMode int

const (
	// PotHighOnly awards each pot to the best high hand.
	PotHighOnly PotMode = iota
	// PotLowOnly awards each pot to the best ace-to-five low hand.
	PotLowOnly
	// PotHiLoEight splits each pot between the best high hand and the
	// best qualifying eight-or-better low, if any.
	PotHiLoEight
)

// Rules is the per-variant strategy for bring-in and first-to-act
// selection. Variants share no mutable state, so each implementation is a
// stateless value selected by a lookup from GameType.
type Rules interface {
	GameType() GameType
	PotMode() PotMode

	// BringInSeat selects the seat owing the third-street bring-in.
	// Returns 0 when players is empty.
	BringInSeat(players []*HandPlayer) int

	// FirstToAct selects the first seat to act on fourth street and
	// later, from the exposed boards of the remaining players. Returns 0
	// when no player remains.
	FirstToAct(players []*HandPlayer) int
}

// RulesFor returns the rules strategy for a game type.
func RulesFor(gt GameType) Rules {
	switch gt {
	case StudHi:
		return studRules{hiLo: false}
	case Razz:
		return razzRules{}
	case Stud8:
		return studRules{hiLo: true}
	default:
		panic("game: unknown game type " + string(gt))
	}
}

// exposedHighKey ranks an exposed board (1-4 up cards) as a high hand:
// pairs beat high cards, kickers descending. No flushes or straights with
// fewer than five cards.
func exposedHighKey(cards []deck.Card) uint32 {
	counts := make(map[int]int, 4)
	for _, c := range cards {
		counts[c.HighValue()]++
	}
	ranks := sortedByCountThenRank(counts)

	var cat uint32
	switch {
	case counts[ranks[0]] == 4:
		cat = catQuads
	case counts[ranks[0]] == 3:
		cat = catTrips
	case counts[ranks[0]] == 2 && len(ranks) >= 2 && counts[ranks[1]] == 2:
		cat = catTwoPair
	case counts[ranks[0]] == 2:
		cat = catPair
	default:
		cat = catHighCard
	}

	v := cat << 20
	shift := 16
	for _, r := range ranks {
		v |= uint32(r) << shift
		shift -= 4
	}
	return v
}

// exposedLowKey ranks an exposed board ace-to-five; smaller is better.
// Any paired board ranks worse than every unpaired board.
func exposedLowKey(cards []deck.Card) uint32 {
	counts := make(map[int]int, 4)
	for _, c := range cards {
		counts[c.LowValue()]++
	}
	ranks := sortedByCountThenRank(counts)

	var cat uint32
	switch {
	case counts[ranks[0]] == 4:
		cat = 4
	case counts[ranks[0]] == 3:
		cat = 3
	case counts[ranks[0]] == 2 && len(ranks) >= 2 && counts[ranks[1]] == 2:
		cat = 2
	case counts[ranks[0]] == 2:
		cat = 1
	default:
		cat = 0
	}

	v := cat << 20
	shift := 16
	for _, r := range ranks {
		v |= uint32(r) << shift
		shift -= 4
	}
	return v
}

func sortedByCountThenRank(counts map[int]int) []int {
	ranks := make([]int, 0, len(counts))
	for r := range counts {
		ranks = append(ranks, r)
	}
	for i := 0; i < len(ranks); i++ {
		for j := i + 1; j < len(ranks); j++ {
			if counts[ranks[j]] > counts[ranks[i]] ||
				(counts[ranks[j]] == counts[ranks[i]] && ranks[j] > ranks[i]) {
				ranks[i], ranks[j] = ranks[j], ranks[i]
			}
		}
	}
	return ranks
}

func topCard(cards []deck.Card, better func(a, b deck.Card) bool) deck.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if better(c, best) {
			best = c
		}
	}
	return best
}

func lowestSeat(players []*HandPlayer) int {
	seat := 0
	for _, p := range players {
		if seat == 0 || p.SeatNo < seat {
			seat = p.SeatNo
		}
	}
	return seat
}

// studRules covers Stud Hi and Stud-8; they differ only in pot mode.
type studRules struct {
	hiLo bool
}

func (r studRules) GameType() GameType {
	if r.hiLo {
		return Stud8
	}
	return StudHi
}

func (r studRules) PotMode() PotMode {
	if r.hiLo {
		return PotHiLoEight
	}
	return PotHighOnly
}

// BringInSeat: numerically lowest up card, ties broken by weakest suit in
// stud order (clubs post before diamonds, and so on).
func (r studRules) BringInSeat(players []*HandPlayer) int {
	var bring *HandPlayer
	for _, p := range players {
		if len(p.CardsUp) == 0 {
			continue
		}
		if bring == nil {
			bring = p
			continue
		}
		a, b := p.CardsUp[0], bring.CardsUp[0]
		if a.HighValue() < b.HighValue() ||
			(a.HighValue() == b.HighValue() && a.Suit.StudOrder() < b.Suit.StudOrder()) {
			bring = p
		}
	}
	if bring == nil {
		return lowestSeat(players)
	}
	return bring.SeatNo
}

// FirstToAct: best exposed high board acts first; suit ties resolve in
// reverse, the strongest suit on the top card winning.
func (r studRules) FirstToAct(players []*HandPlayer) int {
	var first *HandPlayer
	var firstKey uint32
	for _, p := range players {
		if !p.InHand || len(p.CardsUp) == 0 {
			continue
		}
		key := exposedHighKey(p.CardsUp)
		if first == nil || key > firstKey {
			first, firstKey = p, key
			continue
		}
		if key == firstKey {
			a := topCard(p.CardsUp, func(x, y deck.Card) bool { return x.HighValue() > y.HighValue() })
			b := topCard(first.CardsUp, func(x, y deck.Card) bool { return x.HighValue() > y.HighValue() })
			if a.Suit.StudOrder() > b.Suit.StudOrder() {
				first, firstKey = p, key
			}
		}
	}
	if first == nil {
		return lowestSeat(remaining(players))
	}
	return first.SeatNo
}

// razzRules inverts the stud selections: the worst board brings in, the
// best low board acts first.
type razzRules struct{}

func (razzRules) GameType() GameType { return Razz }
func (razzRules) PotMode() PotMode   { return PotLowOnly }

// BringInSeat: highest up card with the ace counting low, ties broken by
// the razz suit order (spades post before hearts, and so on).
func (razzRules) BringInSeat(players []*HandPlayer) int {
	var bring *HandPlayer
	for _, p := range players {
		if len(p.CardsUp) == 0 {
			continue
		}
		if bring == nil {
			bring = p
			continue
		}
		a, b := p.CardsUp[0], bring.CardsUp[0]
		if a.LowValue() > b.LowValue() ||
			(a.LowValue() == b.LowValue() && a.Suit.RazzOrder() < b.Suit.RazzOrder()) {
			bring = p
		}
	}
	if bring == nil {
		return lowestSeat(players)
	}
	return bring.SeatNo
}

// FirstToAct: best exposed low board acts first.
func (razzRules) FirstToAct(players []*HandPlayer) int {
	var first *HandPlayer
	var firstKey uint32
	for _, p := range players {
		if !p.InHand || len(p.CardsUp) == 0 {
			continue
		}
		key := exposedLowKey(p.CardsUp)
		if first == nil || key < firstKey {
			first, firstKey = p, key
			continue
		}
		if key == firstKey {
			a := topCard(p.CardsUp, func(x, y deck.Card) bool { return x.LowValue() < y.LowValue() })
			b := topCard(first.CardsUp, func(x, y deck.Card) bool { return x.LowValue() < y.LowValue() })
			if a.Suit.RazzOrder() > b.Suit.RazzOrder() {
				first, firstKey = p, key
			}
		}
	}
	if first == nil {
		return lowestSeat(remaining(players))
	}
	return first.SeatNo
}

func remaining(players []*HandPlayer) []*HandPlayer {
	out := make([]*HandPlayer, 0, len(players))
	for _, p := range players {
		if p.InHand {
			out = append(out, p)
		}
	}
	return out
}
