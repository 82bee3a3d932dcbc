// Package api exposes the reminder workflow over HTTP.
package api

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"remindchat/internal/session"
	"remindchat/internal/workflow"
)

// Server holds the handler dependencies.
type Server struct {
	flow     *workflow.Orchestrator
	sessions *session.Manager
	tokens   *session.TokenCache
	logger   *log.Logger
}

// New creates a Server.
func New(flow *workflow.Orchestrator, sessions *session.Manager, tokens *session.TokenCache, logger *log.Logger) *Server {
	return &Server{
		flow:     flow,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.POST("/auth/session", s.createSession)

	authed := router.Group("/", session.Middleware(s.sessions, s.tokens))
	{
		authed.POST("/chat", s.chat)
		authed.GET("/appointments", s.listAppointments)
		authed.POST("/appointments", s.saveManual)
		authed.POST("/appointments/from-chat", s.saveFromChat)
		authed.PATCH("/appointments/:id", s.editAppointment)
		authed.DELETE("/appointments/:id", s.deleteAppointment)
		authed.GET("/calendar/status", s.calendarStatus)
		authed.GET("/profile", s.getProfile)
		authed.PUT("/profile", s.putProfile)
	}

	return router
}
