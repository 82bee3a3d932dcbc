package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remindchat/internal/normalize"
	"remindchat/internal/session"
	"remindchat/internal/workflow"
)

type saveFromChatRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TimeOfDay   string `json:"time_of_day" binding:"required"`
	RelativeDay string `json:"relative_day" binding:"required"`
	LeadMinutes int    `json:"reminder_minutes_before"`
}

// saveFromChat is the confirmation boundary for chat-detected drafts.
func (s *Server) saveFromChat(c *gin.Context) {
	sess := session.FromContext(c)

	var req saveFromChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := s.flow.SaveFromChat(c.Request.Context(), sess, normalize.Draft{
		Title:       req.Title,
		Description: req.Description,
		TimeOfDay:   req.TimeOfDay,
		RelativeDay: req.RelativeDay,
		LeadMinutes: req.LeadMinutes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saveResponse(result))
}

type saveManualRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	LeadMinutes int    `json:"reminder_minutes_before"`
}

func (s *Server) saveManual(c *gin.Context) {
	sess := session.FromContext(c)

	var req saveManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := s.flow.SaveManual(c.Request.Context(), sess, workflow.ManualFields{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		LeadMinutes: req.LeadMinutes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saveResponse(result))
}

func saveResponse(result *workflow.SaveResult) gin.H {
	response := gin.H{
		"appointment":     result.Appointment,
		"calendar_synced": result.CalendarSynced,
	}
	if result.Warning != "" {
		response["warning"] = result.Warning
	}
	return response
}

func (s *Server) listAppointments(c *gin.Context) {
	sess := session.FromContext(c)

	appointments, err := s.flow.ListUpcoming(c.Request.Context(), sess)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

type editRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	LeadMinutes *int    `json:"reminder_minutes_before"`
}

func (s *Server) editAppointment(c *gin.Context) {
	sess := session.FromContext(c)

	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	appt, err := s.flow.Edit(c.Request.Context(), sess, c.Param("id"), workflow.EditFields{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		LeadMinutes: req.LeadMinutes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

func (s *Server) deleteAppointment(c *gin.Context) {
	sess := session.FromContext(c)

	if err := s.flow.Remove(c.Request.Context(), sess, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

func (s *Server) calendarStatus(c *gin.Context) {
	sess := session.FromContext(c)
	connected := s.flow.CalendarStatus(c.Request.Context(), sess)
	c.JSON(http.StatusOK, gin.H{"connected": connected})
}
