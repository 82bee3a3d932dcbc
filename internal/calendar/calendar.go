// Package calendar adapts the reminder workflow to the Google Calendar API.
// Every call authenticates with the session's provider access token; the
// adapter never retries, the orchestrator decides what a failure means.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"remindchat/internal/apperr"
	"remindchat/internal/model"
)

// Adapter creates events and probes connectivity against a single calendar.
type Adapter struct {
	endpoint        string // empty means the public API endpoint
	calendarID      string
	durationMinutes int
	location        *time.Location
	logger          *log.Logger
}

// New builds an Adapter. durationMinutes is the fixed event length appended
// to each reminder's start instant; there is exactly one such constant.
func New(endpoint string, durationMinutes int, location *time.Location, logger *log.Logger) *Adapter {
	return &Adapter{
		endpoint:        endpoint,
		calendarID:      "primary",
		durationMinutes: durationMinutes,
		location:        location,
		logger:          logger,
	}
}

func (a *Adapter) service(ctx context.Context, token string) (*calendar.Service, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	opts := []option.ClientOption{option.WithTokenSource(source)}
	if a.endpoint != "" {
		opts = append(opts, option.WithEndpoint(a.endpoint))
	}
	return calendar.NewService(ctx, opts...)
}

// CheckConnection performs a lightweight calendar-list read with the given
// token. It reports false, never an error, when the token is absent or the
// API rejects the call; true only on a successful authorized response.
func (a *Adapter) CheckConnection(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	svc, err := a.service(ctx, token)
	if err != nil {
		a.logger.Printf("calendar: service init failed: %v", err)
		return false
	}

	_, err = svc.CalendarList.List().MaxResults(1).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusForbidden {
			a.logger.Printf("calendar: insufficient permissions, re-authentication needed")
		} else {
			a.logger.Printf("calendar: connection probe failed: %v", err)
		}
		return false
	}
	return true
}

// CreateEvent mirrors an appointment as a calendar event and returns the
// external event id. With no token it fails with ErrAuthRequired before any
// network call. An upstream 401 also maps to ErrAuthRequired (expired
// token); other non-2xx responses surface as ExternalAPIError.
func (a *Adapter) CreateEvent(ctx context.Context, token string, appt *model.Appointment) (string, error) {
	if token == "" {
		return "", apperr.ErrAuthRequired
	}

	svc, err := a.service(ctx, token)
	if err != nil {
		return "", fmt.Errorf("calendar service init: %w", err)
	}

	start := appt.DueAt.In(a.location)
	end := start.Add(time.Duration(a.durationMinutes) * time.Minute)

	event := &calendar.Event{
		Summary:     appt.Title,
		Description: appt.Description,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: a.location.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: a.location.String(),
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(appt.LeadMinutes)},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := svc.Events.Insert(a.calendarID, event).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			if gerr.Code == http.StatusUnauthorized {
				return "", apperr.ErrAuthRequired
			}
			return "", &apperr.ExternalAPIError{Status: gerr.Code, Message: gerr.Message}
		}
		return "", &apperr.ExternalAPIError{Status: 0, Message: err.Error()}
	}

	a.logger.Printf("calendar: created event %s for appointment %s", created.Id, appt.ID)
	return created.Id, nil
}
