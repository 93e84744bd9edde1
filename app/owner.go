package app

import (
	"context"
	"sync"
	"time"

	"homecall/api"
	"homecall/models"
	"homecall/realtime"
	"homecall/reconciler"
	"homecall/session"
	"homecall/storage"
	"homecall/utils"

	"go.uber.org/zap"
)

// OwnerRuntime is the owner-side stack: session store, API client, realtime
// channel and the reconciled rental booking list.
type OwnerRuntime struct {
	Sessions *session.OwnerStore
	API      *api.Client
	Bookings *reconciler.List

	baseURL         string
	deviceID        string
	realtimeEnabled bool

	mu      sync.Mutex
	channel *realtime.Channel
}

// NewOwnerRuntime builds the stack and subscribes it to session changes.
func NewOwnerRuntime(ks *storage.Keystore, baseURL string, timeout time.Duration, maxPerMin int, deviceID string, realtimeEnabled bool) *OwnerRuntime {
	r := &OwnerRuntime{
		baseURL:         baseURL,
		deviceID:        deviceID,
		realtimeEnabled: realtimeEnabled,
	}
	r.Sessions = session.NewOwnerStore(ks)
	r.API = api.NewClient(baseURL, timeout, maxPerMin, r.Sessions.Token, deviceID)
	r.Bookings = reconciler.NewList(models.RoleOwner,
		r.API.ListOwnerBookings,
		r.API.UpdateOwnerBookingStatus,
		r.API.DeleteOwnerBooking,
	)
	r.Sessions.Subscribe(r.handleTokenChange)
	return r
}

// Start restores the persisted session and, when one survives, seeds the
// list and opens the channel under the restored token.
func (r *OwnerRuntime) Start() error {
	if err := r.Sessions.Restore(); err != nil {
		return err
	}
	if token := r.Sessions.Token(); token != "" {
		r.handleTokenChange(token)
	}
	return nil
}

// Close tears down the realtime channel.
func (r *OwnerRuntime) Close() {
	r.teardownChannel()
}

// handleTokenChange reacts to every session mutation: close the old channel,
// then either clear the list (logout) or re-seed and redial (login/restore).
func (r *OwnerRuntime) handleTokenChange(token string) {
	r.teardownChannel()

	if token == "" {
		r.Bookings.Clear()
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Bookings.Refresh(ctx); err != nil {
			utils.GetLogger().Warn("Initial owner booking fetch failed", zap.Error(err))
		}
	}()

	if !r.realtimeEnabled {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ch, err := realtime.Dial(ctx, r.baseURL, models.RoleOwner, token, r.deviceID)
	if err != nil {
		utils.GetLogger().Warn("Owner realtime channel unavailable", zap.Error(err))
		return
	}
	reconciler.BindOwnerEvents(ch, r.Bookings)

	// The session may have changed while the dial was in flight; a channel
	// opened under a stale token must not be kept.
	r.mu.Lock()
	if r.Sessions.Token() != token {
		r.mu.Unlock()
		ch.Close()
		return
	}
	r.channel = ch
	r.mu.Unlock()
}

func (r *OwnerRuntime) teardownChannel() {
	r.mu.Lock()
	ch := r.channel
	r.channel = nil
	r.mu.Unlock()
	if ch != nil {
		ch.Close()
	}
}
