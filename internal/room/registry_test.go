package room

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studroom/studroom/internal/game"
)

func newRegistryTable(id string) *game.Table {
	return game.NewTable(id, id, game.StudHi, false,
		game.Stakes{SmallBet: 10, BigBet: 20, Ante: 1, BringIn: 3}, 10, 100000)
}

func TestRegistryLookupAndList(t *testing.T) {
	t.Parallel()

	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	balances := NewMemoryBalances(10000)
	reg := NewRegistry()
	t.Cleanup(reg.Close)

	for _, id := range []string{"zeta", "alpha", "mid"} {
		reg.Add(newRegistryTable(id), balances, logger, Options{})
	}

	a, ok := reg.Lookup("mid")
	require.True(t, ok)
	assert.Equal(t, "mid", a.TableID())

	_, ok = reg.Lookup("nope")
	assert.False(t, ok)

	list := reg.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"alpha", "mid", "zeta"},
		[]string{list[0].TableID, list[1].TableID, list[2].TableID})
	for _, s := range list {
		assert.Equal(t, game.StudHi, s.GameType)
		assert.Equal(t, game.MaxSeats, s.MaxSeats)
		assert.Zero(t, s.Seated)
	}
}

func TestRegistrySummaryTracksSeating(t *testing.T) {
	t.Parallel()

	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	reg := NewRegistry()
	t.Cleanup(reg.Close)

	a := reg.Add(newRegistryTable("t1"), NewMemoryBalances(10000), logger, Options{})
	require.NoError(t, a.Join("a", "Alice", 1, 500))

	list := reg.List()
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Seated)
	assert.Equal(t, game.TableWaiting, list[0].Status)
}
