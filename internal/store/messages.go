package store

import (
	"context"

	"remindchat/internal/apperr"
	"remindchat/internal/model"
)

// SaveMessage appends one chat turn to the owner's history.
func (s *Store) SaveMessage(ctx context.Context, ownerID, role, content string) (*model.ChatMessage, error) {
	msg := &model.ChatMessage{
		UserID:  ownerID,
		Role:    role,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "save message", Err: err}
	}
	return msg, nil
}

// RecentMessages returns the owner's latest messages in chronological order.
func (s *Store) RecentMessages(ctx context.Context, ownerID string, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "recent messages", Err: err}
	}

	// Fetched newest-first; reverse so callers get conversation order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
