package reconciler

import (
	"context"
	"fmt"

	"homecall/models"
	"homecall/utils"
)

// UpdateStatus issues a status change for one booking. The transition is
// checked locally first; an illegal one fails without touching the network.
// Once the server confirms, the entry is updated exactly as a push event
// would update it. Re-issuing a confirmed status change is a no-op.
func (l *List) UpdateStatus(ctx context.Context, id, status string) error {
	current, ok := l.Get(id)
	if !ok {
		return &utils.ValidationError{Message: "unknown booking"}
	}
	if current.Status == status {
		return nil
	}
	if !models.CanTransition(l.role, current.Status, status) {
		return &utils.ValidationError{
			Message: fmt.Sprintf("cannot move booking from %s to %s", current.Status, status),
		}
	}

	if err := l.update(ctx, id, status); err != nil {
		return err
	}

	l.mu.Lock()
	if b, ok := l.byID[id]; ok {
		b.Status = status
		l.byID[id] = b
	}
	l.mu.Unlock()
	l.notify()
	return nil
}

// Delete removes one booking. Only rejected or completed bookings may be
// deleted; anything else fails locally without a network call.
func (l *List) Delete(ctx context.Context, id string) error {
	current, ok := l.Get(id)
	if !ok {
		return &utils.ValidationError{Message: "unknown booking"}
	}
	if !models.CanDelete(current.Status) {
		return &utils.ValidationError{
			Message: fmt.Sprintf("cannot delete a booking in status %s", current.Status),
		}
	}

	if err := l.remove(ctx, id); err != nil {
		return err
	}

	l.ApplyDeleted(id)
	return nil
}
