package handlers

import (
	"errors"
	"net/http"

	"homecall/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
}

// respondError maps a classified failure onto an HTTP status and the short
// human-readable message the dashboard shows.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var ae *utils.AuthError
	var ve *utils.ValidationError
	var se *utils.ServerError
	var ne *utils.NetworkError
	switch {
	case errors.As(err, &ae):
		status = http.StatusUnauthorized
	case errors.As(err, &ve):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &se):
		status = se.Status
	case errors.As(err, &ne):
		status = http.StatusBadGateway
	}

	c.JSON(status, ErrorResponse{Message: utils.UserMessage(err)})
}
