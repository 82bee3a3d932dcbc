package workflow

import (
	"context"
	"errors"
	"testing"

	"remindchat/internal/extractor"
	"remindchat/internal/model"
	"remindchat/internal/normalize"
	"remindchat/internal/session"
)

func TestChatProposesDraft(t *testing.T) {
	t.Parallel()
	ex := &fakeExtractor{result: extractor.Result{
		ReplyText:  "Got it, I'll help you set a reminder.",
		IsReminder: true,
		Draft: &normalize.Draft{
			Title:       "Meeting with Mom",
			TimeOfDay:   "18:00",
			RelativeDay: "tomorrow",
		},
	}}
	o, st := newTestOrchestrator(t, &fakeCalendar{}, ex)
	sess := session.Session{UserID: "alice"}
	ctx := context.Background()

	result, err := o.Chat(ctx, sess, "Remind me to meet Mom tomorrow at 18:00", "en")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if result.Draft == nil || result.Draft.Title != "Meeting with Mom" {
		t.Fatalf("expected proposed draft, got %+v", result)
	}

	// Proposing a draft must not create a reminder; confirmation does.
	if n := countAppointments(t, st, "alice"); n != 0 {
		t.Fatalf("chat created %d appointment(s) without confirmation", n)
	}

	history, err := st.RecentMessages(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("RecentMessages: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected both turns persisted, got %d", len(history))
	}
	if history[0].Role != model.RoleUser || history[1].Role != model.RoleAssistant {
		t.Fatalf("wrong roles: %q, %q", history[0].Role, history[1].Role)
	}
}

func TestChatExtractorFailureFallsBack(t *testing.T) {
	t.Parallel()
	ex := &fakeExtractor{err: errors.New("model unavailable")}
	o, st := newTestOrchestrator(t, &fakeCalendar{}, ex)
	sess := session.Session{UserID: "alice"}
	ctx := context.Background()

	result, err := o.Chat(ctx, sess, "hello", "en")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if result.Draft != nil {
		t.Fatalf("expected no draft on extractor failure")
	}
	if result.Reply == "" {
		t.Fatalf("expected fallback reply")
	}

	history, err := st.RecentMessages(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("RecentMessages: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected both turns persisted, got %d", len(history))
	}
}
