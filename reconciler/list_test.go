package reconciler_test

import (
	"context"
	"sync/atomic"
	"testing"

	"homecall/models"
	"homecall/reconciler"

	"github.com/stretchr/testify/require"
)

func noUpdate(ctx context.Context, id, status string) error { return nil }
func noRemove(ctx context.Context, id string) error         { return nil }

func newOwnerList(fetch reconciler.ListFunc) *reconciler.List {
	return reconciler.NewList(models.RoleOwner, fetch, noUpdate, noRemove)
}

func ids(bookings []models.Booking) []string {
	out := make([]string, len(bookings))
	for i, b := range bookings {
		out[i] = b.ID
	}
	return out
}

func TestSeedReplacesWholesale(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	require.Equal(t, []string{"1", "2", "3"}, ids(l.Snapshot()))

	// Entries absent from the new snapshot are dropped.
	l.Seed([]models.Booking{{ID: "2", Status: models.StatusPending}})
	require.Equal(t, []string{"2"}, ids(l.Snapshot()))
}

func TestNoDuplicateIDsAcrossEventSequences(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1"}, {ID: "2"}})
	l.ApplyCreated(models.Booking{ID: "2", Status: models.StatusOwnerConfirm})
	l.ApplyCreated(models.Booking{ID: "3"})
	l.ApplyUpdated(models.Booking{ID: "1", Status: models.StatusRejected})
	l.ApplyUpdated(models.Booking{ID: "4"})
	l.ApplyDeleted("3")

	seen := map[string]bool{}
	for _, b := range l.Snapshot() {
		require.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
	require.Equal(t, 3, l.Len())
}

func TestCreatedWithDuplicateIDKeepsPushedFields(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1"}, {ID: "2", Status: models.StatusPending}})

	l.ApplyCreated(models.Booking{ID: "2", Status: models.StatusOwnerConfirm, TotalPrice: 120})

	require.Equal(t, 2, l.Len())
	b, ok := l.Get("2")
	require.True(t, ok)
	require.Equal(t, models.StatusOwnerConfirm, b.Status)
	require.Equal(t, 120.0, b.TotalPrice)
}

func TestCreatedInsertsAtFront(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1"}, {ID: "2"}})
	l.ApplyCreated(models.Booking{ID: "3"})
	require.Equal(t, []string{"3", "1", "2"}, ids(l.Snapshot()))
}

func TestUpdatedReplacesOrInserts(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1", Status: models.StatusPending}})

	l.ApplyUpdated(models.Booking{ID: "1", Status: models.StatusOwnerConfirm})
	require.Equal(t, []string{"1"}, ids(l.Snapshot()))
	b, _ := l.Get("1")
	require.Equal(t, models.StatusOwnerConfirm, b.Status)

	// Missed create event: unknown id is inserted instead.
	l.ApplyUpdated(models.Booking{ID: "9", Status: models.StatusPending})
	require.Equal(t, 2, l.Len())
}

func TestUpdatedIsIdempotent(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1", Status: models.StatusPending}})

	update := models.Booking{ID: "1", Status: models.StatusOwnerConfirm, TotalPrice: 80}
	l.ApplyUpdated(update)
	once := l.Snapshot()
	l.ApplyUpdated(update)
	require.Equal(t, once, l.Snapshot())
}

func TestDeletedUnknownIDIsNoOp(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1"}})
	require.NotPanics(t, func() { l.ApplyDeleted("missing") })
	require.Equal(t, []string{"1"}, ids(l.Snapshot()))
}

func TestStaleRefreshDoesNotRevertNewerSeed(t *testing.T) {
	stale := []models.Booking{{ID: "1", Status: models.StatusPending}}
	newer := []models.Booking{{ID: "1", Status: models.StatusOwnerConfirm}, {ID: "2"}}

	var calls int32
	entered := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]models.Booking, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
			return stale, nil
		}
		return newer, nil
	}

	l := newOwnerList(fetch)

	done := make(chan error, 1)
	go func() { done <- l.Refresh(context.Background()) }()
	<-entered

	// A later refresh completes first.
	require.NoError(t, l.Refresh(context.Background()))
	require.Equal(t, []string{"1", "2"}, ids(l.Snapshot()))

	// The stale response finishes late and must be discarded.
	close(release)
	require.NoError(t, <-done)
	require.Equal(t, []string{"1", "2"}, ids(l.Snapshot()))
	b, _ := l.Get("1")
	require.Equal(t, models.StatusOwnerConfirm, b.Status)
}

func TestSeedThenPushUpdateExample(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1", Status: models.StatusPending}})
	l.ApplyUpdated(models.Booking{ID: "1", Status: models.StatusOwnerConfirm})

	snapshot := l.Snapshot()
	require.Len(t, snapshot, 1)
	require.Equal(t, "1", snapshot[0].ID)
	require.Equal(t, models.StatusOwnerConfirm, snapshot[0].Status)
}

func TestClearEmptiesList(t *testing.T) {
	l := newOwnerList(nil)
	l.Seed([]models.Booking{{ID: "1"}, {ID: "2"}})
	l.Clear()
	require.Zero(t, l.Len())
	require.Empty(t, l.Snapshot())
}

func TestClearDiscardsInFlightRefresh(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]models.Booking, error) {
		close(entered)
		<-release
		return []models.Booking{{ID: "1"}, {ID: "2"}}, nil
	}

	l := newOwnerList(fetch)

	done := make(chan error, 1)
	go func() { done <- l.Refresh(context.Background()) }()
	<-entered

	// The session ends while the fetch is still in flight.
	l.Clear()

	close(release)
	require.NoError(t, <-done)
	require.Zero(t, l.Len(), "a snapshot fetched before the clear must not repopulate it")
}

func TestObserversNotifiedOnChange(t *testing.T) {
	l := newOwnerList(nil)
	var fired int32
	l.OnChange(func() { atomic.AddInt32(&fired, 1) })

	l.Seed([]models.Booking{{ID: "1"}})
	l.ApplyCreated(models.Booking{ID: "2"})
	l.ApplyDeleted("1")
	require.Equal(t, int32(3), atomic.LoadInt32(&fired))
}
