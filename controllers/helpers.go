package controllers

import (
	"net/http"

	"civicreport-be/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps a service error onto its HTTP status and a structured
// error body. Errors outside the taxonomy become a generic 500 so internal
// detail never leaks.
func respondError(c *gin.Context, log zerolog.Logger, err error, operation string) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		log.Error().Err(err).Str("operation", operation).Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if appErr.Code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("operation", operation).Msg("request failed")
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
