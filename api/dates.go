package api

import (
	"context"
	"net/http"

	"homecall/models"
)

type dateRequest struct {
	Date string `json:"date"`
}

// ListUnavailableDates fetches the provider's blocked-off dates.
func (c *Client) ListUnavailableDates(ctx context.Context) ([]models.UnavailableDate, error) {
	var dates []models.UnavailableDate
	if err := c.do(ctx, http.MethodGet, "/api/providers/unavailable-dates", nil, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// CreateUnavailableDate blocks off one date and returns the created record.
func (c *Client) CreateUnavailableDate(ctx context.Context, date string) (*models.UnavailableDate, error) {
	var created models.UnavailableDate
	if err := c.do(ctx, http.MethodPost, "/api/providers/unavailable-dates", dateRequest{Date: date}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteUnavailableDate unblocks one date by record id.
func (c *Client) DeleteUnavailableDate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/providers/unavailable-dates/"+id, nil, nil)
}
