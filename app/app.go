// Package app wires the per-role stacks together: session store, API client,
// realtime channel and reconciled booking list. Every token change cascades
// here: the old channel is torn down, the list is cleared or re-seeded, and a
// new channel is dialed under the new credential.
package app

import (
	"time"

	"homecall/config"
	"homecall/storage"

	"github.com/google/uuid"
)

// App bundles both role runtimes over one shared keystore.
type App struct {
	Store    *storage.Keystore
	Owner    *OwnerRuntime
	Provider *ProviderRuntime
}

// New opens the keystore and builds both runtimes from the loaded config.
func New(cfg config.Config) (*App, error) {
	ks, err := storage.Open(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	deviceID, err := ensureDeviceID(ks)
	if err != nil {
		ks.Close()
		return nil, err
	}

	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	return &App{
		Store:    ks,
		Owner:    NewOwnerRuntime(ks, cfg.APIBaseURL, timeout, cfg.MaxRequestsPerMin, deviceID, cfg.RealtimeEnabled),
		Provider: NewProviderRuntime(ks, cfg.APIBaseURL, timeout, cfg.MaxRequestsPerMin, deviceID, cfg.RealtimeEnabled),
	}, nil
}

// Start restores both persisted sessions and activates the ones that are
// still valid.
func (a *App) Start() error {
	if err := a.Owner.Start(); err != nil {
		return err
	}
	return a.Provider.Start()
}

// Close tears down both runtimes and the keystore.
func (a *App) Close() error {
	a.Owner.Close()
	a.Provider.Close()
	return a.Store.Close()
}

// ensureDeviceID returns the persistent client device id, minting one on
// first run.
func ensureDeviceID(ks *storage.Keystore) (string, error) {
	id, err := ks.Get(storage.KeyDeviceID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	id = uuid.New().String()
	if err := ks.Set(storage.KeyDeviceID, id); err != nil {
		return "", err
	}
	return id, nil
}
