package model

import "time"

// UserProfile carries per-user notification and language preferences.
// Phone is the WhatsApp number used for due-reminder messages; empty means
// no out-of-band notifications for that user.
type UserProfile struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	Phone     string    `json:"phone,omitempty"`
	Language  string    `gorm:"default:en" json:"language"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
