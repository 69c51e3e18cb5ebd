package game

import "testing"

func TestEvaluateHighCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		category string
	}{
		{"straight flush", "9h 8h 7h 6h 5h Kc 2d", "STRAIGHT_FLUSH"},
		{"quads", "9h 9d 9c 9s 5h Kc 2d", "QUADS"},
		{"full house", "9h 9d 9c 5s 5h Kc 2d", "FULL_HOUSE"},
		{"flush", "Ah Th 7h 4h 2h Kc 9d", "FLUSH"},
		{"straight", "9h 8d 7c 6s 5h Kc 2d", "STRAIGHT"},
		{"wheel straight", "Ah 2d 3c 4s 5h Kc 9d", "STRAIGHT"},
		{"trips", "9h 9d 9c 5s 4h Kc 2d", "TRIPS"},
		{"two pair", "9h 9d 5c 5s 4h Kc 2d", "TWO_PAIR"},
		{"pair", "9h 9d 5c 4s 3h Kc 2d", "PAIR"},
		{"high card", "9h 7d 5c 4s 3h Kc 2d", "HIGH_CARD"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := EvaluateHigh(mustCards(t, tc.cards))
			if got := r.Category(); got != tc.category {
				t.Errorf("EvaluateHigh(%s) category = %s, want %s", tc.cards, got, tc.category)
			}
		})
	}
}

func TestEvaluateHighOrdering(t *testing.T) {
	t.Parallel()

	// Each hand must beat the next.
	ordered := []string{
		"9h 8h 7h 6h 5h Kc 2d", // straight flush
		"9h 9d 9c 9s 5h Kc 2d", // quads
		"9h 9d 9c 5s 5h Kc 2d", // full house
		"Ah Th 7h 4h 2h Kc 9d", // flush
		"9h 8d 7c 6s 5h Kc 2d", // nine-high straight
		"Ah 2d 3c 4s 5h Kc 9d", // wheel
		"9h 9d 9c 5s 4h Kc 2d", // trips
		"9h 9d 5c 5s 4h Kc 2d", // two pair
		"Ah Ad 5c 4s 3h Kc 2d", // aces
		"9h 9d 5c 4s 3h Kc 2d", // nines
		"Ah 7d 5c 4s 3h Kc 2d", // ace high
	}
	for i := 0; i < len(ordered)-1; i++ {
		hi := EvaluateHigh(mustCards(t, ordered[i]))
		lo := EvaluateHigh(mustCards(t, ordered[i+1]))
		if hi <= lo {
			t.Errorf("%q (%#x) should beat %q (%#x)", ordered[i], hi, ordered[i+1], lo)
		}
	}
}

func TestEvaluateHighKickers(t *testing.T) {
	t.Parallel()

	better := EvaluateHigh(mustCards(t, "Ah Kd 9c 5s 3h 2c 2d"))
	worse := EvaluateHigh(mustCards(t, "Ah Qd 9c 5s 3h 2c 2d"))
	if better <= worse {
		t.Errorf("king kicker must beat queen kicker: %#x vs %#x", better, worse)
	}
}

func TestEvaluateLow(t *testing.T) {
	t.Parallel()

	wheel := EvaluateLow(mustCards(t, "Ah 2d 3c 4s 5h Kc Kd"))
	sixLow := EvaluateLow(mustCards(t, "Ah 2d 3c 4s 6h Kc Kd"))
	if wheel >= sixLow {
		t.Errorf("wheel (%#x) must beat six-low (%#x)", wheel, sixLow)
	}

	// Straights and flushes do not count against a low.
	suited := EvaluateLow(mustCards(t, "Ah 2h 3h 4h 5h Kc Kd"))
	if suited != wheel {
		t.Errorf("suited wheel (%#x) should equal offsuit wheel (%#x)", suited, wheel)
	}

	// A paired board must use the unpaired selection where possible.
	paired := EvaluateLow(mustCards(t, "Ah Ad 2c 3s 4h 8d Kc"))
	eightLow := EvaluateLow(mustCards(t, "Ah 2c 3s 4h 8d Kc Kd"))
	if paired != eightLow {
		// Both best lows are 8-4-3-2-A.
		t.Errorf("paired ace hand should still make 8-4-3-2-A: %#x vs %#x", paired, eightLow)
	}
}

func TestQualifiesEightOrBetter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cards     string
		qualifies bool
	}{
		{"wheel", "Ah 2d 3c 4s 5h Kc Kd", true},
		{"eight low", "8h 7d 5c 4s 2h Kc Kd", true},
		{"nine low", "9h 7d 5c 4s 2h Kc Kd", false},
		{"paired only", "Ah Ad 2c 2s 4h 4c Kd", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := EvaluateLow(mustCards(t, tc.cards))
			if got := r.QualifiesEightOrBetter(); got != tc.qualifies {
				t.Errorf("QualifiesEightOrBetter(%s) = %v, want %v", tc.cards, got, tc.qualifies)
			}
		})
	}
}

func TestEvaluateIndependentPerSubset(t *testing.T) {
	t.Parallel()

	// Five cards exactly: no subset choice.
	five := EvaluateHigh(mustCards(t, "Ah Kd 9c 5s 3h"))
	if five.Category() != "HIGH_CARD" {
		t.Errorf("five-card evaluation category = %s", five.Category())
	}

	// Seven cards must pick the best five: the pair plus top kickers.
	seven := EvaluateHigh(mustCards(t, "Ah Kd 9c 5s 3h 9d 2c"))
	if seven.Category() != "PAIR" {
		t.Errorf("seven-card evaluation category = %s, want PAIR", seven.Category())
	}
}
