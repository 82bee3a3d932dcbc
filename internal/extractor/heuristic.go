package extractor

import (
	"regexp"
	"strings"

	"remindchat/internal/normalize"
)

// Keyword heuristic used when no model is configured. It only proposes a
// draft when the message names both a time of day and a relative day; it
// never guesses missing fields.

var reminderKeywords = []string{
	"remind", "remember", "appointment", "meeting", "schedule", "calendar",
	"เตือน", "นัด", "ประชุม",
}

var heuristicTimeRe = regexp.MustCompile(`([01]?\d|2[0-3]):([0-5]\d)`)

var heuristicDayWords = []string{
	"day after tomorrow", "tomorrow", "today",
	"มะรืนนี้", "พรุ่งนี้", "วันนี้",
}

func (c *Client) extractHeuristic(message, language string) Result {
	lower := strings.ToLower(message)

	hasKeyword := false
	for _, keyword := range reminderKeywords {
		if strings.Contains(lower, keyword) {
			hasKeyword = true
			break
		}
	}

	timeOfDay := heuristicTimeRe.FindString(message)
	dayWord := ""
	for _, word := range heuristicDayWords {
		if strings.Contains(lower, word) {
			dayWord = word
			break
		}
	}

	if !hasKeyword || timeOfDay == "" || dayWord == "" {
		return Result{ReplyText: plainReply(language)}
	}

	return Result{
		ReplyText:  reminderReply(language),
		IsReminder: true,
		Draft: &normalize.Draft{
			Title:       heuristicTitle(message),
			Description: message,
			TimeOfDay:   timeOfDay,
			RelativeDay: dayWord,
		},
	}
}

// heuristicTitle picks a short title: the clause after "about" when present,
// otherwise the leading part of the message.
func heuristicTitle(message string) string {
	lower := strings.ToLower(message)
	if idx := strings.Index(lower, "about "); idx != -1 {
		title := strings.TrimSpace(message[idx+len("about "):])
		if cut := strings.IndexAny(title, ".!?"); cut != -1 {
			title = title[:cut]
		}
		if title != "" {
			return title
		}
	}

	title := strings.SplitN(message, ".", 2)[0]
	if runes := []rune(title); len(runes) > 50 {
		title = string(runes[:50]) + "..."
	}
	return strings.TrimSpace(title)
}

func plainReply(language string) string {
	if language == "th" {
		return "เข้าใจแล้วครับ มีอะไรให้ช่วยอีกไหมครับ"
	}
	return "I understand. Let me know if there's anything else I can help with."
}

func reminderReply(language string) string {
	if language == "th" {
		return "เข้าใจแล้วครับ ผมจะช่วยตั้งการเตือนให้คุณ"
	}
	return "Got it, I'll help you set a reminder."
}
