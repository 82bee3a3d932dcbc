package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sessionRequest struct {
	UserID        string `json:"user_id" binding:"required"`
	ProviderToken string `json:"provider_token"`
}

// createSession exchanges the identity provider's result for a signed
// session token. This endpoint is the session/token contract boundary; the
// provider wiring itself lives outside this service. Issuing a session is an
// auth-state change, so cached calendar state for the user is dropped.
func (s *Server) createSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	s.flow.InvalidateAuth(req.UserID)

	token, err := s.sessions.Issue(req.UserID, req.ProviderToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
