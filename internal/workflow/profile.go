package workflow

import (
	"context"

	"remindchat/internal/apperr"
	"remindchat/internal/model"
	"remindchat/internal/session"
)

// Profile returns the caller's notification profile. Users without one get
// an empty profile rather than an error.
func (o *Orchestrator) Profile(ctx context.Context, sess session.Session) (*model.UserProfile, error) {
	profile, err := o.store.Profile(ctx, sess.UserID)
	if apperr.IsNotFound(err) {
		return &model.UserProfile{UserID: sess.UserID, Language: "en"}, nil
	}
	return profile, err
}

// SetProfile stores the caller's phone number and preferred language.
func (o *Orchestrator) SetProfile(ctx context.Context, sess session.Session, phone, language string) (*model.UserProfile, error) {
	if language != "en" && language != "th" {
		return nil, apperr.NewValidation("language", `must be "en" or "th"`)
	}
	profile := &model.UserProfile{
		UserID:   sess.UserID,
		Phone:    phone,
		Language: language,
	}
	if err := o.store.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
