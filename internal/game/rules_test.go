package game

import "testing"

func upPlayer(t *testing.T, seatNo int, cards string) *HandPlayer {
	t.Helper()
	return &HandPlayer{SeatNo: seatNo, InHand: true, CardsUp: mustCards(t, cards)}
}

func TestStudBringInSeat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ups   []string // seat 1, 2, 3
		bring int
	}{
		{"lowest card", []string{"9h", "2c", "Kd"}, 2},
		{"ace is high", []string{"Ah", "3c", "Kd"}, 2},
		{"suit tiebreak clubs lowest", []string{"5h", "5c", "Kd"}, 2},
		{"suit tiebreak diamonds under hearts", []string{"5h", "5d", "Kd"}, 2},
		{"spades strongest never brings in on tie", []string{"5s", "5c", "5h"}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			players := make([]*HandPlayer, len(tc.ups))
			for i, up := range tc.ups {
				players[i] = upPlayer(t, i+1, up)
			}
			if got := RulesFor(StudHi).BringInSeat(players); got != tc.bring {
				t.Errorf("bring-in seat = %d, want %d", got, tc.bring)
			}
		})
	}
}

func TestRazzBringInSeat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ups   []string
		bring int
	}{
		{"highest card", []string{"9h", "2c", "Kd"}, 3},
		{"ace is low", []string{"Ah", "3c", "Kd"}, 3},
		{"suit tiebreak spades weakest", []string{"Kh", "Ks", "2d"}, 2},
		{"suit tiebreak hearts under diamonds", []string{"Kh", "Kd", "2c"}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			players := make([]*HandPlayer, len(tc.ups))
			for i, up := range tc.ups {
				players[i] = upPlayer(t, i+1, up)
			}
			if got := RulesFor(Razz).BringInSeat(players); got != tc.bring {
				t.Errorf("bring-in seat = %d, want %d", got, tc.bring)
			}
		})
	}
}

func TestStudFirstToAct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ups   []string
		first int
	}{
		{"high card leads", []string{"9h 2c", "Kd 3c", "Qh 4c"}, 2},
		{"pair beats high card", []string{"9h 9c", "Ad 3c", "Qh 4c"}, 1},
		{"two pair beats pair", []string{"9h 9c 2d 2s", "Ad Ac Kh 3c", "Qh 4c 5d 6s"}, 1},
		{"suit tiebreak strongest suit leads", []string{"Kh 2c", "Ks 3c", "Qh 4c"}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			players := make([]*HandPlayer, len(tc.ups))
			for i, up := range tc.ups {
				players[i] = upPlayer(t, i+1, up)
			}
			if got := RulesFor(StudHi).FirstToAct(players); got != tc.first {
				t.Errorf("first to act = %d, want %d", got, tc.first)
			}
		})
	}
}

func TestStudFirstToActTwoPairComparison(t *testing.T) {
	t.Parallel()

	// Aces up must lead over nines up even though the nines board pairs
	// twice as well.
	players := []*HandPlayer{
		upPlayer(t, 1, "9h 9c 8d 8s"),
		upPlayer(t, 2, "Ad Ac 2h 3c"),
	}
	if got := RulesFor(StudHi).FirstToAct(players); got != 1 {
		t.Errorf("first to act = %d, want 1 (two pair beats one pair)", got)
	}
}

func TestRazzFirstToAct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ups   []string
		first int
	}{
		{"lowest board leads", []string{"9h 2c", "Kd 3c", "2h 4c"}, 3},
		{"ace low leads", []string{"Ah 2c", "3d 2d", "5h 4c"}, 1},
		{"paired board trails", []string{"2h 2c", "Kd Qc", "Jh Tc"}, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			players := make([]*HandPlayer, len(tc.ups))
			for i, up := range tc.ups {
				players[i] = upPlayer(t, i+1, up)
			}
			if got := RulesFor(Razz).FirstToAct(players); got != tc.first {
				t.Errorf("first to act = %d, want %d", got, tc.first)
			}
		})
	}
}

func TestFirstToActSkipsFolded(t *testing.T) {
	t.Parallel()

	folded := upPlayer(t, 2, "Ad 3c")
	folded.InHand = false
	players := []*HandPlayer{
		upPlayer(t, 1, "9h 2c"),
		folded,
		upPlayer(t, 3, "Qh 4c"),
	}
	if got := RulesFor(StudHi).FirstToAct(players); got != 3 {
		t.Errorf("first to act = %d, want 3 (seat 2 folded)", got)
	}
}

func TestPotModes(t *testing.T) {
	t.Parallel()

	if RulesFor(StudHi).PotMode() != PotHighOnly {
		t.Error("stud hi should be high only")
	}
	if RulesFor(Razz).PotMode() != PotLowOnly {
		t.Error("razz should be low only")
	}
	if RulesFor(Stud8).PotMode() != PotHiLoEight {
		t.Error("stud 8 should be hi/lo eight or better")
	}
}
