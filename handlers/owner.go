package handlers

import (
	"net/http"

	"homecall/app"
	"homecall/models"

	"github.com/gin-gonic/gin"
)

// OwnerHandler serves the owner dashboard views over the owner runtime.
type OwnerHandler struct {
	Runtime *app.OwnerRuntime
}

// NewOwnerHandler returns a handler bound to the owner runtime.
func NewOwnerHandler(rt *app.OwnerRuntime) *OwnerHandler {
	return &OwnerHandler{Runtime: rt}
}

type loginInput struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates the owner against the booking service and installs the
// session. The service's response body (token plus owner fields) is passed
// through to the caller.
func (h *OwnerHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "phone and password are required"})
		return
	}

	token, raw, err := h.Runtime.API.OwnerLogin(c.Request.Context(), input.Phone, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Runtime.Sessions.Login(token, raw); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Logout clears the owner session.
func (h *OwnerHandler) Logout(c *gin.Context) {
	if err := h.Runtime.Sessions.Logout(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ListBookings renders the reconciled rental booking list. Contact fields are
// redacted here for unpaid bookings; the full records never leave the server
// boundary unfiltered. ?refresh=true forces a re-seed first.
func (h *OwnerHandler) ListBookings(c *gin.Context) {
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

type statusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus confirms or rejects one rental booking.
func (h *OwnerHandler) UpdateStatus(c *gin.Context) {
	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "status is required"})
		return
	}

	if err := h.Runtime.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking " + input.Status})
}

// Delete removes a rejected or completed rental booking.
func (h *OwnerHandler) Delete(c *gin.Context) {
	if err := h.Runtime.Bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}
