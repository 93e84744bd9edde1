// Package availability manages a provider's unavailable dates alongside the
// dates already taken by bookings. Duplicate and booked dates are rejected
// locally before any request goes out; the server stays authoritative.
package availability

import (
	"context"
	"sync"

	"homecall/api"
	"homecall/models"
	"homecall/utils"
)

// Manager holds the provider's blocked-off dates and the booked dates they
// must not collide with.
type Manager struct {
	client *api.Client

	mu     sync.Mutex
	dates  []models.UnavailableDate
	booked map[string]bool
}

// NewManager returns an empty manager backed by the API client.
func NewManager(client *api.Client) *Manager {
	return &Manager{
		client: client,
		booked: make(map[string]bool),
	}
}

// Refresh loads the unavailable dates and the booked dates in one pass.
// Rejected bookings do not block their date.
func (m *Manager) Refresh(ctx context.Context) error {
	dates, err := m.client.ListUnavailableDates(ctx)
	if err != nil {
		return err
	}
	bookings, err := m.client.ListProviderBookings(ctx)
	if err != nil {
		return err
	}

	booked := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		if b.Status == models.StatusRejected {
			continue
		}
		if norm, err := utils.NormalizeDate(b.Date); err == nil {
			booked[norm] = true
		}
	}
	for i, d := range dates {
		if norm, err := utils.NormalizeDate(d.Date); err == nil {
			dates[i].Date = norm
		}
	}

	m.mu.Lock()
	m.dates = dates
	m.booked = booked
	m.mu.Unlock()
	return nil
}

// Dates returns a copy of the unavailable dates.
func (m *Manager) Dates() []models.UnavailableDate {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.UnavailableDate, len(m.dates))
	copy(out, m.dates)
	return out
}

// IsBlocked reports whether the date is already booked or unavailable.
func (m *Manager) IsBlocked(date string) bool {
	norm, err := utils.NormalizeDate(date)
	if err != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blockedLocked(norm)
}

func (m *Manager) blockedLocked(norm string) bool {
	if m.booked[norm] {
		return true
	}
	for _, d := range m.dates {
		if d.Date == norm {
			return true
		}
	}
	return false
}

// Add blocks off a new date. A date that is already booked or unavailable is
// rejected locally; no request is issued for it.
func (m *Manager) Add(ctx context.Context, date string) (*models.UnavailableDate, error) {
	norm, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, &utils.ValidationError{Message: "please select a valid date"}
	}

	m.mu.Lock()
	blocked := m.blockedLocked(norm)
	m.mu.Unlock()
	if blocked {
		return nil, &utils.ValidationError{Message: "this date is already booked or unavailable"}
	}

	created, err := m.client.CreateUnavailableDate(ctx, norm)
	if err != nil {
		return nil, err
	}
	if cnorm, err := utils.NormalizeDate(created.Date); err == nil {
		created.Date = cnorm
	}

	m.mu.Lock()
	m.dates = append(m.dates, *created)
	m.mu.Unlock()
	return created, nil
}

// Remove unblocks a date by record id. A date that overlaps a booked date
// stays blocked and cannot be removed.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	var target *models.UnavailableDate
	for i := range m.dates {
		if m.dates[i].ID == id {
			target = &m.dates[i]
			break
		}
	}
	if target == nil {
		m.mu.Unlock()
		return &utils.ValidationError{Message: "unknown unavailable date"}
	}
	if m.booked[target.Date] {
		m.mu.Unlock()
		return &utils.ValidationError{Message: "this date has a booking and cannot be unblocked"}
	}
	m.mu.Unlock()

	if err := m.client.DeleteUnavailableDate(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	for i := range m.dates {
		if m.dates[i].ID == id {
			m.dates = append(m.dates[:i], m.dates[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	return nil
}

// Clear drops all local state (session logout).
func (m *Manager) Clear() {
	m.mu.Lock()
	m.dates = nil
	m.booked = make(map[string]bool)
	m.mu.Unlock()
}
