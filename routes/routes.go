package routes

import (
	"homecall/handlers"
	"homecall/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterOwnerRoutes registers the owner dashboard endpoints.
func RegisterOwnerRoutes(r *gin.Engine, h *handlers.OwnerHandler) {
	owner := r.Group("/owner")
	{
		owner.POST("/login", h.Login)
		owner.POST("/logout", h.Logout)

		// Protected routes (require an active owner session).
		owner.Use(middleware.RequireSession(h.Runtime.Sessions))
		owner.GET("/bookings", h.ListBookings)
		owner.PATCH("/bookings/:id", h.UpdateStatus)
		owner.DELETE("/bookings/:id", h.Delete)
	}
}

// RegisterProviderRoutes registers the provider dashboard endpoints.
func RegisterProviderRoutes(r *gin.Engine, h *handlers.ProviderHandler) {
	provider := r.Group("/provider")
	{
		provider.POST("/login", h.Login)
		provider.POST("/logout", h.Logout)

		// Protected routes (require an active provider session).
		provider.Use(middleware.RequireSession(h.Runtime.Sessions))
		provider.GET("/bookings", h.ListBookings)
		provider.PATCH("/bookings/:id", h.UpdateStatus)
		provider.DELETE("/bookings/:id", h.Delete)
		provider.GET("/unavailable-dates", h.ListUnavailableDates)
		provider.POST("/unavailable-dates", h.AddUnavailableDate)
		provider.DELETE("/unavailable-dates/:id", h.RemoveUnavailableDate)
	}
}
