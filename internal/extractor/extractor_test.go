package extractor

import (
	"context"
	"testing"
)

func TestParseResponseReminder(t *testing.T) {
	t.Parallel()

	reply := "Here you go:\n" +
		`{"text": "I'll help you set a reminder", "isReminder": true, "reminderData": {"title": "Meeting with Mom", "description": "Meeting with mom tomorrow at 6 PM", "dateTime": "18:00", "day": "tomorrow"}}`

	result := ParseResponse(reply)
	if !result.IsReminder || result.Draft == nil {
		t.Fatalf("expected reminder result, got %+v", result)
	}
	if result.ReplyText != "I'll help you set a reminder" {
		t.Fatalf("ReplyText = %q", result.ReplyText)
	}
	if result.Draft.Title != "Meeting with Mom" || result.Draft.TimeOfDay != "18:00" || result.Draft.RelativeDay != "tomorrow" {
		t.Fatalf("unexpected draft: %+v", result.Draft)
	}
}

func TestParseResponsePlainChat(t *testing.T) {
	t.Parallel()

	result := ParseResponse(`{"text": "I understand. Let me help you with that.", "isReminder": false}`)
	if result.IsReminder || result.Draft != nil {
		t.Fatalf("expected plain reply, got %+v", result)
	}
	if result.ReplyText != "I understand. Let me help you with that." {
		t.Fatalf("ReplyText = %q", result.ReplyText)
	}
}

func TestParseResponseMalformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"Sure, I'll remember that.",
		`{"text": broken json`,
		// isReminder without reminderData downgrades to a plain reply.
		`{"text": "ok", "isReminder": true}`,
	}
	for _, text := range cases {
		result := ParseResponse(text)
		if result.IsReminder || result.Draft != nil {
			t.Fatalf("ParseResponse(%q) proposed a draft: %+v", text, result)
		}
		if result.ReplyText == "" {
			t.Fatalf("ParseResponse(%q) lost the reply text", text)
		}
	}
}

func TestHeuristicExtraction(t *testing.T) {
	t.Parallel()

	client := New("")
	ctx := context.Background()

	result, err := client.Extract(ctx, "Please remind me about dinner with Mom tomorrow at 18:00", nil, "en")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !result.IsReminder || result.Draft == nil {
		t.Fatalf("expected draft, got %+v", result)
	}
	if result.Draft.TimeOfDay != "18:00" || result.Draft.RelativeDay != "tomorrow" {
		t.Fatalf("unexpected draft fields: %+v", result.Draft)
	}
	if result.Draft.Title == "" {
		t.Fatalf("expected a title")
	}
}

func TestHeuristicThai(t *testing.T) {
	t.Parallel()

	client := New("")
	result, err := client.Extract(context.Background(), "ช่วยเตือนนัดกับแม่พรุ่งนี้เวลา 18:00 หน่อย", nil, "th")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !result.IsReminder || result.Draft == nil {
		t.Fatalf("expected draft, got %+v", result)
	}
	if result.Draft.RelativeDay != "พรุ่งนี้" || result.Draft.TimeOfDay != "18:00" {
		t.Fatalf("unexpected draft fields: %+v", result.Draft)
	}
}

func TestHeuristicRequiresTimeAndDay(t *testing.T) {
	t.Parallel()

	client := New("")
	cases := []string{
		"Remind me to call Mom",            // no time, no day
		"Remind me tomorrow",               // no time
		"Let's meet at 18:00",              // keyword but no day word
		"The weather is nice today at 1pm", // no HH:mm time
	}
	for _, message := range cases {
		result, err := client.Extract(context.Background(), message, nil, "en")
		if err != nil {
			t.Fatalf("Extract(%q): %v", message, err)
		}
		if result.IsReminder || result.Draft != nil {
			t.Fatalf("Extract(%q) guessed a draft: %+v", message, result)
		}
		if result.ReplyText == "" {
			t.Fatalf("Extract(%q) produced no reply", message)
		}
	}
}

func TestExtractEmptyMessage(t *testing.T) {
	t.Parallel()

	client := New("")
	if _, err := client.Extract(context.Background(), "   ", nil, "en"); err == nil {
		t.Fatalf("expected error for empty message")
	}
}
