package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type dateInput struct {
	Date string `json:"date" binding:"required"`
}

// ListUnavailableDates renders the provider's blocked-off dates together with
// the booked dates the dashboard greys out.
func (h *ProviderHandler) ListUnavailableDates(c *gin.Context) {
	if c.Query("refresh") == "true" {
		if err := h.Runtime.Availability.Refresh(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"dates": h.Runtime.Availability.Dates()})
}

// AddUnavailableDate blocks off a new date. Dates already booked or blocked
// are rejected before any request reaches the booking service.
func (h *ProviderHandler) AddUnavailableDate(c *gin.Context) {
	var input dateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "date is required"})
		return
	}

	created, err := h.Runtime.Availability.Add(c.Request.Context(), input.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveUnavailableDate unblocks a date by record id.
func (h *ProviderHandler) RemoveUnavailableDate(c *gin.Context) {
	if err := h.Runtime.Availability.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Date removed"})
}
