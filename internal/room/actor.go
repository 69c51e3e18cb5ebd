package room

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/studroom/studroom/internal/deck"
	"github.com/studroom/studroom/internal/game"
)

// StampedEvent is a domain event after the table actor has assigned its
// sequence numbers. HandSeq is zero for events not attached to a hand.
type StampedEvent struct {
	TableID    string          `json:"tableId"`
	TableSeq   uint64          `json:"tableSeq"`
	HandID     string          `json:"handId,omitempty"`
	HandSeq    uint64          `json:"handSeq,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
	Name       game.EventName  `json:"eventName"`
	Payload    any             `json:"payload"`
}

// MaskedFor returns the event as the given viewer may see it.
func (e StampedEvent) MaskedFor(viewerUserID string) StampedEvent {
	masked := game.Event{HandID: e.HandID, Name: e.Name, Payload: e.Payload}.MaskedFor(viewerUserID)
	e.Payload = masked.Payload
	return e
}

// Viewer receives a table's event stream. Deliveries happen on the
// actor's goroutine; implementations must not block.
type Viewer interface {
	ViewerUserID() string
	OnEvent(ev StampedEvent)
	OnSnapshot(snap Snapshot)
}

// Options tune a table actor.
type Options struct {
	ActTimeout       time.Duration
	RevealWait       time.Duration
	RetainedEvents   int
	Clock            quartz.Clock
	NewHandID        func() string
	NewDraw          func() deck.DrawIndex
}

func (o *Options) withDefaults() {
	if o.ActTimeout == 0 {
		o.ActTimeout = 15 * time.Second
	}
	if o.RevealWait == 0 {
		o.RevealWait = 5 * time.Second
	}
	if o.RetainedEvents == 0 {
		o.RetainedEvents = 512
	}
	if o.Clock == nil {
		o.Clock = quartz.NewReal()
	}
	if o.NewHandID == nil {
		o.NewHandID = uuid.NewString
	}
	if o.NewDraw == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		o.NewDraw = func() deck.DrawIndex { return rng.Intn }
	}
}

// Actor owns one table. Every command against the table runs to
// completion on the actor's goroutine before the next begins, which is
// what makes tableSeq and handSeq gap-free and strictly increasing.
type Actor struct {
	table    *game.Table
	logger   *log.Logger
	balances BalanceStore
	opts     Options

	cmds   chan func()
	ctx    context.Context
	cancel context.CancelFunc

	tableSeq uint64
	handSeqs map[string]uint64
	history  []StampedEvent
	viewers  map[Viewer]bool

	actTimer    *quartz.Timer
	revealTimer *quartz.Timer
	armGen      uint64
}

// NewActor creates and starts the actor for a table.
func NewActor(table *game.Table, balances BalanceStore, logger *log.Logger, opts Options) *Actor {
	opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	a := &Actor{
		table:    table,
		logger:   logger.WithPrefix("room").With("table", table.ID),
		balances: balances,
		opts:     opts,
		cmds:     make(chan func(), 64),
		ctx:      ctx,
		cancel:   cancel,
		handSeqs: make(map[string]uint64),
		viewers:  make(map[Viewer]bool),
	}
	go a.run()
	return a
}

// Close stops the actor loop.
func (a *Actor) Close() {
	a.cancel()
}

// TableID returns the owned table's id.
func (a *Actor) TableID() string { return a.table.ID }

func (a *Actor) run() {
	for {
		select {
		case fn := <-a.cmds:
			fn()
		case <-a.ctx.Done():
			a.stopTimers()
			return
		}
	}
}

// call runs fn on the actor goroutine and waits for its result.
func (a *Actor) call(fn func() error) error {
	done := make(chan error, 1)
	select {
	case a.cmds <- func() { done <- fn() }:
	case <-a.ctx.Done():
		return a.ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-a.ctx.Done():
		return a.ctx.Err()
	}
}

// enqueue schedules fn on the actor goroutine without waiting; used by
// timer callbacks so their firing re-enters the serialized path as an
// ordinary command.
func (a *Actor) enqueue(fn func()) {
	select {
	case a.cmds <- fn:
	case <-a.ctx.Done():
	}
}

// emit stamps events, appends them to the bounded history, and fans them
// out to viewers with per-viewer masking.
func (a *Actor) emit(events []game.Event) {
	now := time.Now()
	for _, ev := range events {
		a.tableSeq++
		stamped := StampedEvent{
			TableID:    a.table.ID,
			TableSeq:   a.tableSeq,
			HandID:     ev.HandID,
			OccurredAt: now,
			Name:       ev.Name,
			Payload:    ev.Payload,
		}
		if ev.HandID != "" {
			a.handSeqs[ev.HandID]++
			stamped.HandSeq = a.handSeqs[ev.HandID]
		}

		a.history = append(a.history, stamped)
		if len(a.history) > a.opts.RetainedEvents {
			a.history = a.history[len(a.history)-a.opts.RetainedEvents:]
		}

		for v := range a.viewers {
			v.OnEvent(stamped.MaskedFor(v.ViewerUserID()))
		}
		a.logger.Debug("event", "seq", stamped.TableSeq, "name", stamped.Name, "hand", stamped.HandID)
	}
}

// afterChange runs after every state-changing command: start the next
// hand if the table just became eligible, then re-arm timers against the
// new state. Re-arming on every outcome is what keeps a stale timer from
// acting on a seat that is no longer due.
func (a *Actor) afterChange() {
	if a.table.CanStartHand() {
		events, err := a.table.StartHand(a.opts.NewHandID(), a.opts.NewDraw())
		if err != nil {
			a.logger.Error("failed to start hand", "error", err)
		} else {
			a.emit(events)
		}
	}
	a.rearmTimers()
}

func (a *Actor) stopTimers() {
	if a.actTimer != nil {
		a.actTimer.Stop()
		a.actTimer = nil
	}
	if a.revealTimer != nil {
		a.revealTimer.Stop()
		a.revealTimer = nil
	}
}

func (a *Actor) rearmTimers() {
	a.stopTimers()
	a.armGen++
	gen := a.armGen

	h := a.table.CurrentHand
	if a.table.Status == game.TableBetting && h != nil && h.ToActSeatNo != 0 {
		seat := h.ToActSeatNo
		a.actTimer = a.opts.Clock.AfterFunc(a.opts.ActTimeout, func() {
			a.enqueue(func() { a.fireAutoAction(gen, seat) })
		})
		return
	}
	if a.table.Status == game.TableHandEnd {
		a.revealTimer = a.opts.Clock.AfterFunc(a.opts.RevealWait, func() {
			a.enqueue(func() { a.fireRevealDone(gen) })
		})
	}
}

// fireAutoAction performs the implicit check/fold for a stalled seat.
func (a *Actor) fireAutoAction(gen uint64, seatNo int) {
	if gen != a.armGen {
		return // re-armed since; stale firing
	}
	events, err := a.table.AutoAction(seatNo)
	if err != nil {
		a.logger.Warn("auto action rejected", "seat", seatNo, "error", err)
		a.rearmTimers()
		return
	}
	a.logger.Info("auto action", "seat", seatNo)
	if s := a.table.Seat(seatNo); s != nil && s.Status == game.SeatDisconnected {
		s.DisconnectStreak++
	}
	a.emit(events)
	a.afterChange()
}

// fireRevealDone ends the post-hand reveal wait: seats settle, departing
// users are paid out, and the next hand starts if the table is eligible.
func (a *Actor) fireRevealDone(gen uint64) {
	if gen != a.armGen {
		return
	}
	events, cashOuts := a.table.FinishHandCleanup()
	for _, co := range cashOuts {
		a.creditBalance(co.UserID, co.Chips)
	}
	a.emit(events)
	a.afterChange()
}

func (a *Actor) creditBalance(userID string, chips int) {
	if chips == 0 {
		return
	}
	balance, err := a.balances.ReadBalance(a.ctx, userID)
	if err != nil {
		a.logger.Error("balance read failed during cash-out", "user", userID, "error", err)
		return
	}
	if err := a.balances.WriteBalance(a.ctx, userID, balance+chips); err != nil {
		a.logger.Error("balance write failed during cash-out", "user", userID, "error", err)
	}
}

// Subscribe attaches a viewer to the table's event stream and sends it an
// initial snapshot.
func (a *Actor) Subscribe(v Viewer) error {
	return a.call(func() error {
		a.viewers[v] = true
		v.OnSnapshot(a.snapshotFor(v.ViewerUserID(), SnapshotSubscribe))
		return nil
	})
}

// Unsubscribe detaches a viewer. If the viewer's user holds a seat, the
// seat is marked disconnected.
func (a *Actor) Unsubscribe(v Viewer) {
	_ = a.call(func() error {
		delete(a.viewers, v)
		if userID := v.ViewerUserID(); userID != "" {
			a.emit(a.table.MarkDisconnected(userID))
			a.afterChange()
		}
		return nil
	})
}

// Reconnected restores a previously disconnected seat for the user.
func (a *Actor) Reconnected(userID string) {
	_ = a.call(func() error {
		a.emit(a.table.MarkReconnected(userID))
		a.afterChange()
		return nil
	})
}

// Join seats the user with a buy-in debited from their external balance.
func (a *Actor) Join(userID, displayName string, seatNo, buyIn int) error {
	return a.call(func() error {
		balance, err := a.balances.ReadBalance(a.ctx, userID)
		if err != nil {
			return fmt.Errorf("balance read: %w", err)
		}
		if balance < buyIn {
			return &game.CommandError{Code: game.ErrInsufficientChips,
				Message: fmt.Sprintf("balance %d below buy-in %d", balance, buyIn)}
		}
		events, err := a.table.Join(userID, displayName, seatNo, buyIn, time.Now())
		if err != nil {
			return err
		}
		if err := a.balances.WriteBalance(a.ctx, userID, balance-buyIn); err != nil {
			// The seat was taken but the debit failed; release the seat so
			// chips are not minted out of thin air.
			_, _, _ = a.table.Leave(userID)
			return fmt.Errorf("balance write: %w", err)
		}
		a.emit(events)
		a.afterChange()
		return nil
	})
}

// SitOut requests the user's seat sit out future hands.
func (a *Actor) SitOut(userID string) error {
	return a.call(func() error {
		events, err := a.table.SitOut(userID)
		if err != nil {
			return err
		}
		a.emit(events)
		a.afterChange()
		return nil
	})
}

// Return brings the user's sitting-out seat back in.
func (a *Actor) Return(userID string) error {
	return a.call(func() error {
		events, err := a.table.Return(userID)
		if err != nil {
			return err
		}
		a.emit(events)
		a.afterChange()
		return nil
	})
}

// Leave removes the user from the table, crediting any stack back to
// their balance. Mid-hand departures defer to hand end.
func (a *Actor) Leave(userID string) error {
	return a.call(func() error {
		events, cashOut, err := a.table.Leave(userID)
		if err != nil {
			return err
		}
		a.creditBalance(userID, cashOut)
		a.emit(events)
		a.afterChange()
		return nil
	})
}

// Act applies a betting action for the user's seat.
func (a *Actor) Act(userID string, action game.Action) error {
	return a.call(func() error {
		events, err := a.table.Act(userID, action, false)
		if err != nil {
			return err
		}
		a.emit(events)
		a.afterChange()
		return nil
	})
}

// Resume replies with the exact ordered slice of events after
// lastTableSeq, or a snapshot tagged OUT_OF_RANGE when that point is no
// longer retained. Requesting the current head returns an empty slice.
func (a *Actor) Resume(viewerUserID string, lastTableSeq uint64) ([]StampedEvent, *Snapshot, error) {
	var events []StampedEvent
	var snap *Snapshot
	err := a.call(func() error {
		if lastTableSeq >= a.tableSeq {
			events = []StampedEvent{}
			return nil
		}
		if len(a.history) == 0 || a.history[0].TableSeq > lastTableSeq+1 {
			s := a.snapshotFor(viewerUserID, SnapshotOutOfRange)
			snap = &s
			return nil
		}
		for _, ev := range a.history {
			if ev.TableSeq > lastTableSeq {
				events = append(events, ev.MaskedFor(viewerUserID))
			}
		}
		return nil
	})
	return events, snap, err
}

// SnapshotNow returns a fresh viewer-specific snapshot.
func (a *Actor) SnapshotNow(viewerUserID, reason string) (Snapshot, error) {
	var snap Snapshot
	err := a.call(func() error {
		snap = a.snapshotFor(viewerUserID, reason)
		return nil
	})
	return snap, err
}

// Summary describes the table for lobby listings.
type Summary struct {
	TableID  string        `json:"tableId"`
	Name     string        `json:"name"`
	GameType game.GameType `json:"gameType"`
	Stakes   game.Stakes   `json:"stakes"`
	Seated   int           `json:"seated"`
	MaxSeats int           `json:"maxSeats"`
	Status   game.TableStatus `json:"status"`
}

// Summarize returns the lobby view of the table.
func (a *Actor) Summarize() (Summary, error) {
	var s Summary
	err := a.call(func() error {
		s = Summary{
			TableID:  a.table.ID,
			Name:     a.table.Name,
			GameType: a.table.NextGameType(),
			Stakes:   a.table.Stakes,
			Seated:   a.table.SeatedCount(),
			MaxSeats: game.MaxSeats,
			Status:   a.table.Status,
		}
		return nil
	})
	return s, err
}
