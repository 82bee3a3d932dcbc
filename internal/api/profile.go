package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remindchat/internal/session"
)

type profileRequest struct {
	Phone    string `json:"phone"`
	Language string `json:"language" binding:"required"`
}

func (s *Server) getProfile(c *gin.Context) {
	sess := session.FromContext(c)

	profile, err := s.flow.Profile(c.Request.Context(), sess)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (s *Server) putProfile(c *gin.Context) {
	sess := session.FromContext(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	profile, err := s.flow.SetProfile(c.Request.Context(), sess, req.Phone, req.Language)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
