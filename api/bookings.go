package api

import (
	"context"
	"net/http"

	"homecall/models"
)

type statusUpdate struct {
	Status string `json:"status"`
}

// ListOwnerBookings fetches the owner's rental bookings.
func (c *Client) ListOwnerBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/rental-bookings/owner", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateOwnerBookingStatus patches one rental booking's status.
func (c *Client) UpdateOwnerBookingStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, http.MethodPatch, "/api/rental-bookings/owner/"+id, statusUpdate{Status: status}, nil)
}

// DeleteOwnerBooking removes one rental booking.
func (c *Client) DeleteOwnerBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/rental-bookings/owner/"+id, nil, nil)
}

// ListProviderBookings fetches the provider's service bookings.
func (c *Client) ListProviderBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/provider", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateProviderBookingStatus patches one service booking's status.
func (c *Client) UpdateProviderBookingStatus(ctx context.Context, id, status string) error {
	return c.do(ctx, http.MethodPatch, "/api/bookings/"+id, statusUpdate{Status: status}, nil)
}

// DeleteProviderBooking removes one service booking.
func (c *Client) DeleteProviderBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/bookings/"+id, nil, nil)
}
