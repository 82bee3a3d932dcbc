package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"remindchat/internal/apperr"
)

// writeError maps the workflow's error taxonomy onto HTTP responses. The
// calendar-reconnect case carries a machine-readable code so the front-end
// can prompt the user instead of showing a generic failure.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
			"code":  "calendar_auth_required",
		})
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		var externalErr *apperr.ExternalAPIError
		if errors.As(err, &externalErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": externalErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
