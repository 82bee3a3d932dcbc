package workflow

import (
	"context"

	"remindchat/internal/model"
	"remindchat/internal/normalize"
	"remindchat/internal/session"
)

// ChatResult is what one chat turn produces: the assistant's reply and, when
// a reminder intent was detected, the proposed draft awaiting confirmation.
type ChatResult struct {
	Reply string
	Draft *normalize.Draft
}

// Chat runs one conversation turn: persist the user's message, extract
// intent against recent history, persist the reply. Extractor failures fall
// back to a plain reply; the turn itself still succeeds. A draft is only a
// proposal, SaveFromChat is the confirmation boundary.
func (o *Orchestrator) Chat(ctx context.Context, sess session.Session, message, language string) (*ChatResult, error) {
	if _, err := o.store.SaveMessage(ctx, sess.UserID, model.RoleUser, message); err != nil {
		return nil, err
	}

	history, err := o.store.RecentMessages(ctx, sess.UserID, o.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}

	result, err := o.extractor.Extract(ctx, message, history, language)
	if err != nil {
		o.logger.Printf("workflow: intent extraction failed for user %s: %v", sess.UserID, err)
		result.ReplyText = fallbackReply(language)
		result.IsReminder = false
		result.Draft = nil
	}

	if _, err := o.store.SaveMessage(ctx, sess.UserID, model.RoleAssistant, result.ReplyText); err != nil {
		return nil, err
	}

	chat := &ChatResult{Reply: result.ReplyText}
	if result.IsReminder {
		chat.Draft = result.Draft
	}
	return chat, nil
}

func fallbackReply(language string) string {
	if language == "th" {
		return "ขออภัยครับ เกิดข้อผิดพลาด กรุณาลองอีกครั้ง"
	}
	return "Sorry, an error occurred. Please try again."
}
