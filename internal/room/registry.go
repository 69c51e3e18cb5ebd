package room

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/studroom/studroom/internal/game"
)

// Registry holds the room's table actors. The set of tables is fixed at
// startup; lookups after that are read-only, so a plain RWMutex covers
// the rare concurrent access during shutdown.
type Registry struct {
	mu     sync.RWMutex
	actors map[string]*Actor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{actors: make(map[string]*Actor)}
}

// Add starts an actor for the table and registers it under the table id.
func (r *Registry) Add(table *game.Table, balances BalanceStore, logger *log.Logger, opts Options) *Actor {
	a := NewActor(table, balances, logger, opts)
	r.mu.Lock()
	r.actors[table.ID] = a
	r.mu.Unlock()
	return a
}

// Lookup returns the actor for a table id.
func (r *Registry) Lookup(tableID string) (*Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actors[tableID]
	return a, ok
}

// List returns lobby summaries for every table, ordered by table id.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	actors := make([]*Actor, 0, len(r.actors))
	for _, a := range r.actors {
		actors = append(actors, a)
	}
	r.mu.RUnlock()

	summaries := make([]Summary, 0, len(actors))
	for _, a := range actors {
		s, err := a.Summarize()
		if err != nil {
			continue // actor shut down mid-listing
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].TableID < summaries[j].TableID })
	return summaries
}

// Close stops every actor.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.actors {
		a.Close()
	}
}
