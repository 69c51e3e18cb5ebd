package deck

import "fmt"

// DrawIndex supplies the random swap index for one Fisher-Yates step.
// It must return a value in [0, upperExclusive).
type DrawIndex func(upperExclusive int) int

// All returns the 52-card deck in canonical order.
func All() []Card {
	cards := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle builds the ordered 52-card deck and runs Fisher-Yates from the
// last index down to 1, swapping with draw(i+1) at each step. A draw
// outside [0, i] is a contract violation and returns an error rather than
// being clamped.
func Shuffle(draw DrawIndex) ([]Card, error) {
	cards := All()
	for i := len(cards) - 1; i > 0; i-- {
		j := draw(i + 1)
		if j < 0 || j > i {
			return nil, fmt.Errorf("deck: draw index %d out of range [0, %d]", j, i)
		}
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards, nil
}
