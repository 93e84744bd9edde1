package app

import (
	"context"
	"sync"
	"time"

	"homecall/api"
	"homecall/availability"
	"homecall/models"
	"homecall/realtime"
	"homecall/reconciler"
	"homecall/session"
	"homecall/storage"
	"homecall/utils"

	"go.uber.org/zap"
)

// ProviderRuntime is the provider-side stack. On top of the booking list it
// carries the availability manager for unavailable dates.
type ProviderRuntime struct {
	Sessions     *session.ProviderStore
	API          *api.Client
	Bookings     *reconciler.List
	Availability *availability.Manager

	baseURL         string
	deviceID        string
	realtimeEnabled bool

	mu      sync.Mutex
	channel *realtime.Channel
}

// NewProviderRuntime builds the stack and subscribes it to session changes.
func NewProviderRuntime(ks *storage.Keystore, baseURL string, timeout time.Duration, maxPerMin int, deviceID string, realtimeEnabled bool) *ProviderRuntime {
	r := &ProviderRuntime{
		baseURL:         baseURL,
		deviceID:        deviceID,
		realtimeEnabled: realtimeEnabled,
	}
	r.Sessions = session.NewProviderStore(ks)
	r.API = api.NewClient(baseURL, timeout, maxPerMin, r.Sessions.Token, deviceID)
	r.Bookings = reconciler.NewList(models.RoleProvider,
		r.API.ListProviderBookings,
		r.API.UpdateProviderBookingStatus,
		r.API.DeleteProviderBooking,
	)
	r.Availability = availability.NewManager(r.API)
	r.Sessions.Subscribe(r.handleTokenChange)
	return r
}

// Start restores the persisted token and, when it still decodes, seeds the
// list and opens the channel. A dead token was already cleared by Restore.
func (r *ProviderRuntime) Start() error {
	if err := r.Sessions.Restore(); err != nil {
		return err
	}
	if token := r.Sessions.Token(); token != "" {
		r.handleTokenChange(token)
	}
	return nil
}

// Close tears down the realtime channel.
func (r *ProviderRuntime) Close() {
	r.teardownChannel()
}

func (r *ProviderRuntime) handleTokenChange(token string) {
	r.teardownChannel()

	if token == "" {
		r.Bookings.Clear()
		r.Availability.Clear()
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Bookings.Refresh(ctx); err != nil {
			utils.GetLogger().Warn("Initial provider booking fetch failed", zap.Error(err))
		}
		if err := r.Availability.Refresh(ctx); err != nil {
			utils.GetLogger().Warn("Initial availability fetch failed", zap.Error(err))
		}
	}()

	if !r.realtimeEnabled {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ch, err := realtime.Dial(ctx, r.baseURL, models.RoleProvider, token, r.deviceID)
	if err != nil {
		utils.GetLogger().Warn("Provider realtime channel unavailable", zap.Error(err))
		return
	}
	reconciler.BindProviderEvents(ch, r.Bookings)

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

func (r *ProviderRuntime) teardownChannel() {
	r.mu.Lock()
	ch := r.channel
	r.channel = nil
	r.mu.Unlock()
	if ch != nil {
		ch.Close()
	}
}
