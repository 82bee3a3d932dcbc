package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remindchat/internal/session"
)

type chatRequest struct {
	Message  string `json:"message" binding:"required"`
	Language string `json:"language"`
}

func (s *Server) chat(c *gin.Context) {
	sess := session.FromContext(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	result, err := s.flow.Chat(c.Request.Context(), sess, req.Message, req.Language)
	if err != nil {
		writeError(c, err)
		return
	}

	response := gin.H{"reply": result.Reply, "is_reminder": result.Draft != nil}
	if result.Draft != nil {
		response["reminder_draft"] = result.Draft
	}
	c.JSON(http.StatusOK, response)
}
