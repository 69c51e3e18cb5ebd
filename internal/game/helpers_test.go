package game

import (
	"strings"
	"testing"
	"time"

	"github.com/studroom/studroom/internal/deck"
)

// mustCard parses "Ah", "Tc", "2s" style shorthand.
func mustCard(t *testing.T, s string) deck.Card {
	t.Helper()
	if len(s) != 2 {
		t.Fatalf("bad card literal %q", s)
	}

	var rank deck.Rank
	switch s[0] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = deck.Rank(int(s[0]-'0') + 0)
	case 'T':
		rank = deck.Ten
	case 'J':
		rank = deck.Jack
	case 'Q':
		rank = deck.Queen
	case 'K':
		rank = deck.King
	case 'A':
		rank = deck.Ace
	default:
		t.Fatalf("bad rank in card literal %q", s)
	}

	var suit deck.Suit
	switch s[1] {
	case 'c':
		suit = deck.Clubs
	case 'd':
		suit = deck.Diamonds
	case 'h':
		suit = deck.Hearts
	case 's':
		suit = deck.Spades
	default:
		t.Fatalf("bad suit in card literal %q", s)
	}

	return deck.NewCard(suit, rank)
}

// mustCards parses a space-separated card list.
func mustCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	fields := strings.Fields(s)
	cards := make([]deck.Card, len(fields))
	for i, f := range fields {
		cards[i] = mustCard(t, f)
	}
	return cards
}

// riggedDraw returns a draw source that makes deck.Shuffle produce a
// deck whose first dealt cards are exactly the given ones; the rest of
// the deck follows in unspecified order.
func riggedDraw(t *testing.T, first []deck.Card) deck.DrawIndex {
	t.Helper()

	target := make([]deck.Card, 0, 52)
	used := make(map[deck.Card]bool, len(first))
	for _, c := range first {
		if used[c] {
			t.Fatalf("duplicate card %s in rigged deck", c)
		}
		used[c] = true
		target = append(target, c)
	}
	for _, c := range deck.All() {
		if !used[c] {
			target = append(target, c)
		}
	}

	// Replay Fisher-Yates backwards: at each step pick the swap index
	// that places target[i] at position i.
	arr := deck.All()
	swaps := make([]int, 0, 51)
	for i := len(arr) - 1; i > 0; i-- {
		j := -1
		for k := 0; k <= i; k++ {
			if arr[k] == target[i] {
				j = k
				break
			}
		}
		if j < 0 {
			t.Fatalf("card %s not found while rigging deck", target[i])
		}
		swaps = append(swaps, j)
		arr[i], arr[j] = arr[j], arr[i]
	}

	k := 0
	return func(int) int {
		j := swaps[k]
		k++
		return j
	}
}

func testStakes() Stakes {
	return Stakes{SmallBet: 10, BigBet: 20, Ante: 1, BringIn: 3}
}

// newTestTable seats the given user/stack pairs in ascending seat order
// starting at seat 1.
func newTestTable(t *testing.T, gt GameType, stacks ...int) *Table {
	t.Helper()
	tbl := NewTable("t1", "t1", gt, false, testStakes(), 10, 100000)
	for i, stack := range stacks {
		userID := string(rune('a' + i))
		if _, err := tbl.Join(userID, userID, i+1, stack, time.Unix(0, 0)); err != nil {
			t.Fatalf("join seat %d: %v", i+1, err)
		}
	}
	return tbl
}

// startTestHand deals a hand whose first cards off the deck are exactly
// firstCards (see riggedDraw for ordering).
func startTestHand(t *testing.T, tbl *Table, firstCards string) []Event {
	t.Helper()
	events, err := tbl.StartHand("hand-1", riggedDraw(t, mustCards(t, firstCards)))
	if err != nil {
		t.Fatalf("start hand: %v", err)
	}
	return events
}

// act applies an action for the seat's current user and fails the test on
// rejection.
func act(t *testing.T, tbl *Table, seatNo int, action Action) []Event {
	t.Helper()
	events, err := tbl.Act(tbl.Seat(seatNo).UserID, action, false)
	if err != nil {
		t.Fatalf("seat %d %s: %v", seatNo, action, err)
	}
	return events
}

// rejectedAct applies an action expected to fail and returns its error
// code.
func rejectedAct(t *testing.T, tbl *Table, seatNo int, action Action) ErrorCode {
	t.Helper()
	if _, err := tbl.Act(tbl.Seat(seatNo).UserID, action, false); err != nil {
		var cmdErr *CommandError
		if !asCommandError(err, &cmdErr) {
			t.Fatalf("seat %d %s: error %v is not a CommandError", seatNo, action, err)
		}
		return cmdErr.Code
	}
	t.Fatalf("seat %d %s: expected rejection", seatNo, action)
	return ""
}

func asCommandError(err error, target **CommandError) bool {
	ce, ok := err.(*CommandError)
	if ok {
		*target = ce
	}
	return ok
}

// totalChips sums stacks plus the live pot, for conservation checks.
func totalChips(tbl *Table) int {
	total := 0
	for _, s := range tbl.Seats() {
		total += s.Stack
	}
	if h := tbl.CurrentHand; h != nil && h.Status == HandInProgress {
		total += h.PotTotal
	}
	return total
}
