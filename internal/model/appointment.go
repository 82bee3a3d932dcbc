package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sync states for the external calendar event belonging to an appointment.
// A pending appointment has been persisted but its calendar event could not
// be created yet; the scheduler retries those.
const (
	SyncNone    = "none"
	SyncPending = "pending"
	SyncSynced  = "synced"
)

// Wire formats for the date and time columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is a user-scoped reminder: a title, an absolute instant and a
// notification lead time, optionally mirrored to Google Calendar.
type Appointment struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"index;not null" json:"user_id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Date            string    `gorm:"not null" json:"date"` // YYYY-MM-DD
	Time            string    `gorm:"not null" json:"time"` // HH:mm
	DueAt           time.Time `gorm:"index;not null" json:"due_at"`
	LeadMinutes     int       `gorm:"not null" json:"reminder_minutes_before"`
	CalendarEventID string    `json:"calendar_event_id,omitempty"`
	SyncStatus      string    `gorm:"default:none" json:"sync_status"`
	Notified        bool      `gorm:"default:false" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns the opaque id. UserID is immutable after this point.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// Synced reports whether an external calendar event exists for the appointment.
func (a *Appointment) Synced() bool {
	return a.CalendarEventID != ""
}
