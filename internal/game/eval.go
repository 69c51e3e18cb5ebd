package game

import (
	"sort"

	"github.com/studroom/studroom/internal/deck"
)

// HighRank encodes a 5-card high hand as a comparable value; a larger
// HighRank beats a smaller one. Layout is category in the top nibbles
// followed by five tie-break ranks, one nibble each.
type HighRank uint32

// LowRank encodes a 5-card ace-to-five low hand; a SMALLER LowRank beats
// a larger one. Straights and flushes do not count against a low.
type LowRank uint32

// High hand categories.
const (
	catHighCard = iota
	catPair
	catTwoPair
	catTrips
	catStraight
	catFlush
	catFullHouse
	catQuads
	catStraightFlush
)

var highCategoryNames = [...]string{
	"HIGH_CARD", "PAIR", "TWO_PAIR", "TRIPS", "STRAIGHT",
	"FLUSH", "FULL_HOUSE", "QUADS", "STRAIGHT_FLUSH",
}

// Category returns the hand category name, e.g. "FULL_HOUSE".
func (r HighRank) Category() string {
	return highCategoryNames[r>>20]
}

func packHigh(cat int, ranks ...int) HighRank {
	v := uint32(cat) << 20
	shift := 16
	for _, r := range ranks {
		v |= uint32(r) << shift
		shift -= 4
	}
	return HighRank(v)
}

// rank5High ranks exactly five cards as a high hand.
func rank5High(cards []deck.Card) HighRank {
	counts := make(map[int]int, 5)
	suits := make(map[deck.Suit]int, 4)
	for _, c := range cards {
		counts[c.HighValue()]++
		suits[c.Suit]++
	}

	flush := len(suits) == 1

	ranks := make([]int, 0, 5)
	for r := range counts {
		ranks = append(ranks, r)
	}
	// Sort by count desc, then rank desc, so pairs lead the tie-break.
	sort.Slice(ranks, func(i, j int) bool {
		if counts[ranks[i]] != counts[ranks[j]] {
			return counts[ranks[i]] > counts[ranks[j]]
		}
		return ranks[i] > ranks[j]
	})

	straightHigh := 0
	if len(ranks) == 5 {
		desc := append([]int(nil), ranks...)
		sort.Sort(sort.Reverse(sort.IntSlice(desc)))
		if desc[0]-desc[4] == 4 {
			straightHigh = desc[0]
		} else if desc[0] == 14 && desc[1] == 5 && desc[4] == 2 {
			// Wheel: A-2-3-4-5 plays as a five-high straight.
			straightHigh = 5
		}
	}

	switch {
	case flush && straightHigh != 0:
		return packHigh(catStraightFlush, straightHigh)
	case counts[ranks[0]] == 4:
		return packHigh(catQuads, ranks[0], ranks[1])
	case counts[ranks[0]] == 3 && counts[ranks[1]] == 2:
		return packHigh(catFullHouse, ranks[0], ranks[1])
	case flush:
		return packHigh(catFlush, ranks...)
	case straightHigh != 0:
		return packHigh(catStraight, straightHigh)
	case counts[ranks[0]] == 3:
		return packHigh(catTrips, ranks...)
	case counts[ranks[0]] == 2 && counts[ranks[1]] == 2:
		return packHigh(catTwoPair, ranks...)
	case counts[ranks[0]] == 2:
		return packHigh(catPair, ranks...)
	default:
		return packHigh(catHighCard, ranks...)
	}
}

// rank5Low ranks exactly five cards ace-to-five. Duplicated ranks are the
// only thing that can hurt a low; suits and sequences are ignored.
func rank5Low(cards []deck.Card) LowRank {
	counts := make(map[int]int, 5)
	for _, c := range cards {
		counts[c.LowValue()]++
	}

	ranks := make([]int, 0, 5)
	for r := range counts {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if counts[ranks[i]] != counts[ranks[j]] {
			return counts[ranks[i]] > counts[ranks[j]]
		}
		return ranks[i] > ranks[j]
	})

	var cat int
	switch {
	case counts[ranks[0]] == 4:
		cat = 5
	case counts[ranks[0]] == 3 && counts[ranks[1]] == 2:
		cat = 4
	case counts[ranks[0]] == 3:
		cat = 3
	case counts[ranks[0]] == 2 && counts[ranks[1]] == 2:
		cat = 2
	case counts[ranks[0]] == 2:
		cat = 1
	default:
		cat = 0
	}

	v := uint32(cat) << 20
	shift := 16
	for _, r := range ranks {
		v |= uint32(r) << shift
		shift -= 4
	}
	return LowRank(v)
}

// forEachChoose5 visits every 5-card subset of cards.
func forEachChoose5(cards []deck.Card, visit func([]deck.Card)) {
	n := len(cards)
	if n == 5 {
		visit(cards)
		return
	}
	pick := make([]deck.Card, 5)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == 5 {
			visit(pick)
			return
		}
		for i := start; i <= n-(5-depth); i++ {
			pick[depth] = cards[i]
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}

// EvaluateHigh returns the best 5-card high rank among the given cards.
// Requires at least five cards.
func EvaluateHigh(cards []deck.Card) HighRank {
	if len(cards) < 5 {
		panic("game: EvaluateHigh needs at least 5 cards")
	}
	var best HighRank
	forEachChoose5(cards, func(five []deck.Card) {
		if r := rank5High(five); r > best {
			best = r
		}
	})
	return best
}

// EvaluateLow returns the best ace-to-five low rank among the given cards.
// Requires at least five cards.
func EvaluateLow(cards []deck.Card) LowRank {
	if len(cards) < 5 {
		panic("game: EvaluateLow needs at least 5 cards")
	}
	best := LowRank(^uint32(0))
	forEachChoose5(cards, func(five []deck.Card) {
		if r := rank5Low(five); r < best {
			best = r
		}
	})
	return best
}

// QualifiesEightOrBetter reports whether a low rank is a stud-8 qualifying
// low: five distinct ranks, all eight or lower.
func (r LowRank) QualifiesEightOrBetter() bool {
	if r>>20 != 0 {
		return false
	}
	top := (uint32(r) >> 16) & 0xf
	return top <= 8
}
