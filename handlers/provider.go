package handlers

import (
	"net/http"

	"homecall/app"
	"homecall/models"

	"github.com/gin-gonic/gin"
)

// ProviderHandler serves the provider dashboard views over the provider
// runtime.
type ProviderHandler struct {
	Runtime *app.ProviderRuntime
}

// NewProviderHandler returns a handler bound to the provider runtime.
func NewProviderHandler(rt *app.ProviderRuntime) *ProviderHandler {
	return &ProviderHandler{Runtime: rt}
}

// Login authenticates the provider and installs the session derived from the
// issued token.
func (h *ProviderHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "phone and password are required"})
		return
	}

	token, err := h.Runtime.API.ProviderLogin(c.Request.Context(), input.Phone, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Runtime.Sessions.Login(token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout clears the provider session.
func (h *ProviderHandler) Logout(c *gin.Context) {
	if err := h.Runtime.Sessions.Logout(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ListBookings renders the reconciled service booking list with unpaid
// contact fields redacted. ?refresh=true forces a re-seed first.
func (h *ProviderHandler) ListBookings(c *gin.Context) {
	if c.Query("refresh") == "true" {
		if err := h.Runtime.Bookings.Refresh(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}

	snapshot := h.Runtime.Bookings.Snapshot()
	out := make([]models.Booking, 0, len(snapshot))
	for _, b := range snapshot {
		out = append(out, b.Redacted())
	}
	c.JSON(http.StatusOK, out)
}

// UpdateStatus moves one service booking through its lifecycle.
func (h *ProviderHandler) UpdateStatus(c *gin.Context) {
	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "status is required"})
		return
	}

	if err := h.Runtime.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking marked as " + input.Status})
}

// Delete removes a rejected or completed service booking.
func (h *ProviderHandler) Delete(c *gin.Context) {
	if err := h.Runtime.Bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
