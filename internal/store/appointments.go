package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"remindchat/internal/apperr"
	"remindchat/internal/model"
)

// AppointmentFields is the full set of values needed to create an appointment.
// DueAt must be the instant represented by the Date/Time pair.
type AppointmentFields struct {
	Title       string
	Description string
	Date        string
	Time        string
	DueAt       time.Time
	LeadMinutes int
	// Set by the workflow when the calendar event was created before the
	// insert; otherwise SyncStatus records why it was not.
	CalendarEventID string
	SyncStatus      string
}

// AppointmentUpdate carries partial-update values; nil fields keep their
// prior value. When Date or Time change the caller must supply the
// recomputed DueAt as well.
type AppointmentUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	DueAt       *time.Time
	LeadMinutes *int
}

// CreateAppointment atomically inserts a new appointment for ownerID.
func (s *Store) CreateAppointment(ctx context.Context, ownerID string, fields AppointmentFields) (*model.Appointment, error) {
	appt := &model.Appointment{
		UserID:          ownerID,
		Title:           fields.Title,
		Description:     fields.Description,
		Date:            fields.Date,
		Time:            fields.Time,
		DueAt:           fields.DueAt,
		LeadMinutes:     fields.LeadMinutes,
		CalendarEventID: fields.CalendarEventID,
		SyncStatus:      fields.SyncStatus,
	}
	if appt.SyncStatus == "" {
		appt.SyncStatus = model.SyncNone
	}

	if err := s.db.WithContext(ctx).Create(appt).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "create appointment", Err: err}
	}
	return appt, nil
}

// ListUpcoming returns ownerID's appointments whose instant is at or after
// now, ascending by instant. Pure read, restartable.
func (s *Store) ListUpcoming(ctx context.Context, ownerID string, now time.Time) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND due_at >= ?", ownerID, now).
		Order("due_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "list appointments", Err: err}
	}
	return appointments, nil
}

// GetAppointment fetches one appointment under ownerID's scope.
func (s *Store) GetAppointment(ctx context.Context, ownerID, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Resource: "appointment", ID: id}
	}
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "get appointment", Err: err}
	}
	return &appt, nil
}

// UpdateAppointment applies a partial update to an appointment owned by
// ownerID. Unspecified fields retain their prior value.
func (s *Store) UpdateAppointment(ctx context.Context, ownerID, id string, update AppointmentUpdate) (*model.Appointment, error) {
	appt, err := s.GetAppointment(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		appt.Title = *update.Title
	}
	if update.Description != nil {
		appt.Description = *update.Description
	}
	if update.Date != nil {
		appt.Date = *update.Date
	}
	if update.Time != nil {
		appt.Time = *update.Time
	}
	if update.DueAt != nil {
		appt.DueAt = *update.DueAt
		appt.Notified = false
	}
	if update.LeadMinutes != nil {
		appt.LeadMinutes = *update.LeadMinutes
	}

	if err := s.db.WithContext(ctx).Save(appt).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "update appointment", Err: err}
	}
	return appt, nil
}

// DeleteAppointment removes one appointment under ownerID's scope. Deleting
// an id that does not exist for the owner is a NotFoundError, not a no-op.
func (s *Store) DeleteAppointment(ctx context.Context, ownerID, id string) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&model.Appointment{})
	if res.Error != nil {
		return &apperr.PersistenceError{Op: "delete appointment", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperr.NotFoundError{Resource: "appointment", ID: id}
	}
	return nil
}

// MarkSynced records the external event id for an appointment. The id is set
// at most once; a second call for an already synced appointment is rejected
// so duplicate events cannot be recorded.
func (s *Store) MarkSynced(ctx context.Context, ownerID, id, eventID string) error {
	res := s.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("user_id = ? AND id = ? AND calendar_event_id = ''", ownerID, id).
		Updates(map[string]interface{}{
			"calendar_event_id": eventID,
			"sync_status":       model.SyncSynced,
		})
	if res.Error != nil {
		return &apperr.PersistenceError{Op: "mark synced", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperr.NotFoundError{Resource: "unsynced appointment", ID: id}
	}
	return nil
}

// PendingSync returns appointments waiting for a calendar event, oldest first.
func (s *Store) PendingSync(ctx context.Context) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := s.db.WithContext(ctx).
		Where("sync_status = ? AND calendar_event_id = ''", model.SyncPending).
		Order("created_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "list pending sync", Err: err}
	}
	return appointments, nil
}

// DueForNotification returns appointments whose notification window has been
// reached (due_at minus lead minutes is at or before now) and that have not
// been dispatched yet.
func (s *Store) DueForNotification(ctx context.Context, now time.Time) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := s.db.WithContext(ctx).
		Where("notified = ? AND due_at >= ?", false, now).
		Order("due_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "list due notifications", Err: err}
	}

	due := appointments[:0]
	for _, appt := range appointments {
		window := appt.DueAt.Add(-time.Duration(appt.LeadMinutes) * time.Minute)
		if !window.After(now) {
			due = append(due, appt)
		}
	}
	return due, nil
}

// MarkNotified flags an appointment's notification as dispatched.
func (s *Store) MarkNotified(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ?", id).
		Update("notified", true).Error
	if err != nil {
		return &apperr.PersistenceError{Op: "mark notified", Err: err}
	}
	return nil
}
