package handlers

import (
	"errors"
	"net/http"

	"clinicdesk/services/appointment"
	"clinicdesk/services/content"
	"clinicdesk/services/messaging"
	"clinicdesk/services/storage"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, appointment.ErrNotFound), errors.Is(err, content.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, message, err.Error())
	case errors.Is(err, appointment.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, message, err.Error())
	case errors.Is(err, appointment.ErrValidation),
		errors.Is(err, storage.ErrInvalidFolder),
		errors.Is(err, messaging.ErrUnknownIntent):
		utils.JSONError(c, http.StatusBadRequest, message, err.Error())
	default:
		getLogger(c).Error(message, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, "Please try again later.")
	}
}

func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
