// Package reconciler owns the authoritative in-memory booking list for one
// session. REST snapshots, push events and confirmed local mutations all
// merge into the same mapping; every merge is atomic and idempotent, and the
// mapping never holds two entries for one id.
package reconciler

import (
	"context"
	"sync"

	"homecall/models"
)

// ListFunc fetches a full snapshot from the booking service.
type ListFunc func(ctx context.Context) ([]models.Booking, error)

// UpdateFunc issues a status change to the booking service.
type UpdateFunc func(ctx context.Context, id, status string) error

// RemoveFunc issues a delete to the booking service.
type RemoveFunc func(ctx context.Context, id string) error

// List is the reconciled booking list. Display order is newest-known first:
// snapshots keep the server's order, push-created entries go to the front.
type List struct {
	role   models.Role
	fetch  ListFunc
	update UpdateFunc
	remove RemoveFunc

	mu    sync.Mutex
	byID  map[string]models.Booking
	order []string

	// Monotonic reseed generations. A refresh that started before a
	// later-completed one must not overwrite newer data.
	nextGen    uint64
	appliedGen uint64

	observers []func()
}

// NewList builds an empty list for one role's bookings.
func NewList(role models.Role, fetch ListFunc, update UpdateFunc, remove RemoveFunc) *List {
	return &List{
		role:   role,
		fetch:  fetch,
		update: update,
		remove: remove,
		byID:   make(map[string]models.Booking),
	}
}

// Role returns the role this list belongs to.
func (l *List) Role() models.Role { return l.role }

// OnChange registers fn to run after every state change.
func (l *List) OnChange(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = append(l.observers, fn)
}

func (l *List) notify() {
	l.mu.Lock()
	observers := make([]func(), len(l.observers))
	copy(observers, l.observers)
	l.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

// Snapshot returns a copy of the list in display order.
func (l *List) Snapshot() []models.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Booking, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// Get returns the booking for id, if present.
func (l *List) Get(id string) (models.Booking, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.byID[id]
	return b, ok
}

// Len returns the number of bookings held.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}

// Seed replaces the whole mapping with a snapshot. Entries absent from the
// snapshot are dropped.
func (l *List) Seed(bookings []models.Booking) {
	l.mu.Lock()
	l.seedLocked(bookings)
	l.mu.Unlock()
	l.notify()
}

func (l *List) seedLocked(bookings []models.Booking) {
	l.byID = make(map[string]models.Booking, len(bookings))
	l.order = l.order[:0]
	for _, b := range bookings {
		if _, ok := l.byID[b.ID]; !ok {
			l.order = append(l.order, b.ID)
		}
		l.byID[b.ID] = b
	}
}

// Refresh re-seeds from the booking service. Overlapping refreshes are
// tolerated: only the most recently started refresh may apply its result, so
// a stale response that finishes late cannot revert the mapping.
func (l *List) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.nextGen++
	gen := l.nextGen
	l.mu.Unlock()

	bookings, err := l.fetch(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if gen <= l.appliedGen {
		// A newer refresh already landed; discard this snapshot.
		l.mu.Unlock()
		return nil
	}
	l.appliedGen = gen
	l.seedLocked(bookings)
	l.mu.Unlock()

	l.notify()
	return nil
}

// ApplyCreated inserts a pushed booking at the front. An id collision is
// treated as an update; the list never holds two entries for one id.
func (l *List) ApplyCreated(b models.Booking) {
	l.mu.Lock()
	if _, ok := l.byID[b.ID]; ok {
		l.byID[b.ID] = b
	} else {
		l.byID[b.ID] = b
		l.order = append([]string{b.ID}, l.order...)
	}
	l.mu.Unlock()
	l.notify()
}

// ApplyUpdated replaces the entry matching the pushed booking. An unknown id
// (a missed create event) is inserted at the front instead.
func (l *List) ApplyUpdated(b models.Booking) {
	l.ApplyCreated(b)
}

// ApplyDeleted removes the entry with the given id. Removing an unknown id is
// a no-op.
func (l *List) ApplyDeleted(id string) {
	l.mu.Lock()
	if _, ok := l.byID[id]; !ok {
		l.mu.Unlock()
		return
	}
	delete(l.byID, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.mu.Unlock()
	l.notify()
}

// Clear empties the list (session logout).
func (l *List) Clear() {
	l.mu.Lock()
	l.byID = make(map[string]models.Booking)
	l.order = nil
	// Invalidate refreshes still in flight so a snapshot fetched under the
	// old session cannot repopulate a cleared list.
	l.nextGen++
	l.appliedGen = l.nextGen
	l.mu.Unlock()
	l.notify()
}
