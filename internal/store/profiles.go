package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"remindchat/internal/apperr"
	"remindchat/internal/model"
)

// Profile returns the owner's profile, or a NotFoundError when none exists.
func (s *Store) Profile(ctx context.Context, ownerID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Resource: "profile", ID: ownerID}
	}
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "get profile", Err: err}
	}
	return &profile, nil
}

// UpsertProfile creates or replaces the owner's profile.
func (s *Store) UpsertProfile(ctx context.Context, profile *model.UserProfile) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"phone", "language", "updated_at"}),
		}).
		Create(profile).Error
	if err != nil {
		return &apperr.PersistenceError{Op: "upsert profile", Err: err}
	}
	return nil
}
