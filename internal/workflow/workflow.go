// Package workflow coordinates the reminder lifecycle: normalization,
// calendar sync and persistence, in that order, with the failure contract
// between them.
package workflow

import (
	"context"
	"errors"
	"log"
	"time"

	"remindchat/internal/apperr"
	"remindchat/internal/calendar"
	"remindchat/internal/config"
	"remindchat/internal/extractor"
	"remindchat/internal/model"
	"remindchat/internal/normalize"
	"remindchat/internal/session"
	"remindchat/internal/store"
)

// CalendarSync is the slice of the calendar adapter the workflow consumes.
type CalendarSync interface {
	CheckConnection(ctx context.Context, token string) bool
	CreateEvent(ctx context.Context, token string, appt *model.Appointment) (string, error)
}

// IntentExtractor proposes reminder drafts from free text.
type IntentExtractor interface {
	Extract(ctx context.Context, message string, history []model.ChatMessage, language string) (extractor.Result, error)
}

// Orchestrator wires the normalizer, the calendar adapter and the store.
type Orchestrator struct {
	store     *store.Store
	cal       CalendarSync
	extractor IntentExtractor
	status    *calendar.StatusCache
	tokens    *session.TokenCache
	cfg       *config.Config
	logger    *log.Logger
	now       func() time.Time
}

// New creates an Orchestrator.
func New(st *store.Store, cal CalendarSync, ex IntentExtractor, status *calendar.StatusCache, tokens *session.TokenCache, cfg *config.Config, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		store:     st,
		cal:       cal,
		extractor: ex,
		status:    status,
		tokens:    tokens,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// SaveResult reports the outcome of a save: the persisted appointment, the
// sync outcome and a non-fatal warning when the calendar part failed.
type SaveResult struct {
	Appointment    *model.Appointment
	CalendarSynced bool
	Warning        string
}

// syncWarning is surfaced when the reminder was saved but the calendar event
// was not; the scheduler retries pending syncs later.
const syncWarning = "reminder saved, but the calendar event could not be created; it will be retried"

// SaveFromChat confirms a chat-detected draft. The calendar event is
// attempted first: a missing token aborts the whole save (user-actionable,
// nothing is written), any other sync failure still persists the reminder
// with a pending sync status. Losing the user's note would be worse than a
// missing calendar entry.
func (o *Orchestrator) SaveFromChat(ctx context.Context, sess session.Session, draft normalize.Draft) (*SaveResult, error) {
	if draft.Title == "" {
		return nil, apperr.NewValidation("title", "must not be empty")
	}

	due, err := normalize.Normalize(draft, o.now(), o.cfg.LocalTimezone)
	if err != nil {
		return nil, err
	}

	lead := draft.LeadMinutes
	if lead <= 0 {
		lead = config.DefaultChatLeadMinutes
	}

	return o.saveWithSync(ctx, sess, store.AppointmentFields{
		Title:       draft.Title,
		Description: draft.Description,
		Date:        due.Date,
		Time:        due.Time,
		DueAt:       due.DueAt,
		LeadMinutes: lead,
	})
}

// ManualFields is what the reminder form submits directly.
type ManualFields struct {
	Title       string
	Description string
	Date        string // YYYY-MM-DD
	Time        string // HH:mm
	LeadMinutes int    // 0 means "apply the manual default"
}

// SaveManual saves a form-entered reminder with the same sync-then-persist
// ordering as the chat path.
func (o *Orchestrator) SaveManual(ctx context.Context, sess session.Session, fields ManualFields) (*SaveResult, error) {
	if fields.Title == "" {
		return nil, apperr.NewValidation("title", "must not be empty")
	}

	dueAt, err := o.resolveInstant(fields.Date, fields.Time)
	if err != nil {
		return nil, err
	}

	lead := fields.LeadMinutes
	if lead <= 0 {
		lead = config.DefaultManualLeadMinutes
	}

	return o.saveWithSync(ctx, sess, store.AppointmentFields{
		Title:       fields.Title,
		Description: fields.Description,
		Date:        fields.Date,
		Time:        fields.Time,
		DueAt:       dueAt,
		LeadMinutes: lead,
	})
}

func (o *Orchestrator) saveWithSync(ctx context.Context, sess session.Session, fields store.AppointmentFields) (*SaveResult, error) {
	candidate := &model.Appointment{
		UserID:      sess.UserID,
		Title:       fields.Title,
		Description: fields.Description,
		DueAt:       fields.DueAt,
		LeadMinutes: fields.LeadMinutes,
	}

	eventID, syncErr := o.cal.CreateEvent(ctx, sess.ProviderToken, candidate)
	if errors.Is(syncErr, apperr.ErrAuthRequired) {
		// Recoverable by reconnecting; no partial write happens.
		return nil, syncErr
	}

	result := &SaveResult{}
	if syncErr != nil {
		o.logger.Printf("workflow: calendar sync failed for user %s: %v", sess.UserID, syncErr)
		fields.SyncStatus = model.SyncPending
		result.Warning = syncWarning
	} else {
		fields.CalendarEventID = eventID
		fields.SyncStatus = model.SyncSynced
		result.CalendarSynced = true
	}

	appt, err := o.store.CreateAppointment(ctx, sess.UserID, fields)
	if err != nil {
		return nil, err
	}
	result.Appointment = appt
	return result, nil
}

// EditFields carries the partial update for an explicit edit.
type EditFields struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	LeadMinutes *int
}

// Edit applies a partial update. The external calendar event, once created,
// is authoritative and is not re-synced here.
func (o *Orchestrator) Edit(ctx context.Context, sess session.Session, id string, fields EditFields) (*model.Appointment, error) {
	if fields.Title != nil && *fields.Title == "" {
		return nil, apperr.NewValidation("title", "must not be empty")
	}

	update := store.AppointmentUpdate{
		Title:       fields.Title,
		Description: fields.Description,
		LeadMinutes: fields.LeadMinutes,
	}

	if fields.Date != nil || fields.Time != nil {
		current, err := o.store.GetAppointment(ctx, sess.UserID, id)
		if err != nil {
			return nil, err
		}
		date, timeOfDay := current.Date, current.Time
		if fields.Date != nil {
			date = *fields.Date
		}
		if fields.Time != nil {
			timeOfDay = *fields.Time
		}
		dueAt, err := o.resolveInstant(date, timeOfDay)
		if err != nil {
			return nil, err
		}
		update.Date = &date
		update.Time = &timeOfDay
		update.DueAt = &dueAt
	}

	return o.store.UpdateAppointment(ctx, sess.UserID, id, update)
}

// Remove deletes a reminder. The corresponding calendar event, if any, is
// left in place; deleting a nonexistent id is a NotFoundError.
func (o *Orchestrator) Remove(ctx context.Context, sess session.Session, id string) error {
	return o.store.DeleteAppointment(ctx, sess.UserID, id)
}

// ListUpcoming returns the caller's reminders from now on.
func (o *Orchestrator) ListUpcoming(ctx context.Context, sess session.Session) ([]model.Appointment, error) {
	return o.store.ListUpcoming(ctx, sess.UserID, o.now())
}

// CalendarStatus derives the caller's connection state, cached briefly.
func (o *Orchestrator) CalendarStatus(ctx context.Context, sess session.Session) bool {
	if connected, ok := o.status.Get(sess.UserID); ok {
		return connected
	}
	connected := o.cal.CheckConnection(ctx, sess.ProviderToken)
	o.status.Set(sess.UserID, connected)
	return connected
}

// InvalidateAuth drops cached auth-derived state for a user. Called on
// sign-in, sign-out and calendar reconnect.
func (o *Orchestrator) InvalidateAuth(userID string) {
	o.status.Invalidate(userID)
	o.tokens.Drop(userID)
}

// resolveInstant combines validated date and time strings into the absolute
// instant they represent in the configured location.
func (o *Orchestrator) resolveInstant(date, timeOfDay string) (time.Time, error) {
	day, err := time.ParseInLocation(model.DateLayout, date, o.cfg.LocalTimezone)
	if err != nil {
		return time.Time{}, apperr.NewValidation("date", "must be YYYY-MM-DD")
	}
	hour, minute, err := normalize.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, o.cfg.LocalTimezone), nil
}
