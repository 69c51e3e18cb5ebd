package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// StudOrder ranks suits for stud bring-in tie-breaks: clubs weakest,
// spades strongest (♣ < ♦ < ♥ < ♠).
func (s Suit) StudOrder() int {
	return int(s)
}

// RazzOrder ranks suits for razz bring-in tie-breaks, the inverse of
// StudOrder: spades weakest, clubs strongest (♠ < ♥ < ♦ < ♣).
func (s Suit) RazzOrder() int {
	return int(Spades) - int(s)
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// HighValue returns the rank with aces high (A = 14)
func (c Card) HighValue() int {
	return int(c.Rank)
}

// LowValue returns the rank with aces low (A = 1), used for razz
// ordering and ace-to-five evaluation.
func (c Card) LowValue() int {
	if c.Rank == Ace {
		return 1
	}
	return int(c.Rank)
}

// Visibility describes how a dealt card is exposed to viewers.
type Visibility string

const (
	// VisibilityUp cards are face up and visible to everyone.
	VisibilityUp Visibility = "UP"
	// VisibilityDownHidden cards are face down; only the owning seat may
	// learn their identity before showdown.
	VisibilityDownHidden Visibility = "DOWN_HIDDEN"
	// VisibilityDownSelf is the owner's view of their own down card.
	VisibilityDownSelf Visibility = "DOWN_SELF"
)
