package normalize

import (
	"testing"
	"time"

	"remindchat/internal/apperr"
)

func TestNormalizeDayOffsets(t *testing.T) {
	t.Parallel()

	// Reference instant from a Monday morning.
	ref := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		day      string
		timeOfDay string
		wantDate string
		wantTime string
	}{
		{"today", "07:30", "2024-04-01", "07:30"},
		{"Today", "23:59", "2024-04-01", "23:59"},
		{"วันนี้", "12:00", "2024-04-01", "12:00"},
		{"tomorrow", "18:00", "2024-04-02", "18:00"},
		{"พรุ่งนี้", "18:00", "2024-04-02", "18:00"},
		{"day after tomorrow", "00:15", "2024-04-03", "00:15"},
		{"DAY AFTER TOMORROW", "08:05", "2024-04-03", "08:05"},
		{"มะรืนนี้", "06:45", "2024-04-03", "06:45"},
	}

	for _, tc := range cases {
		draft := Draft{Title: "x", TimeOfDay: tc.timeOfDay, RelativeDay: tc.day}
		got, err := Normalize(draft, ref, time.UTC)
		if err != nil {
			t.Fatalf("Normalize(%q, %q) error: %v", tc.day, tc.timeOfDay, err)
		}
		if got.Date != tc.wantDate || got.Time != tc.wantTime {
			t.Fatalf("Normalize(%q, %q) = %s %s, want %s %s", tc.day, tc.timeOfDay, got.Date, got.Time, tc.wantDate, tc.wantTime)
		}
		if got.DueAt.Second() != 0 || got.DueAt.Nanosecond() != 0 {
			t.Fatalf("Normalize(%q, %q) did not truncate seconds: %v", tc.day, tc.timeOfDay, got.DueAt)
		}
	}
}

func TestNormalizeConcreteScenario(t *testing.T) {
	t.Parallel()

	ref := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	draft := Draft{
		Title:       "Meeting with Mom",
		Description: "Meeting with mom tomorrow at 6 PM",
		TimeOfDay:   "18:00",
		RelativeDay: "tomorrow",
	}

	got, err := Normalize(draft, ref, time.UTC)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}

	want := time.Date(2024, 4, 2, 18, 0, 0, 0, time.UTC)
	if !got.DueAt.Equal(want) {
		t.Fatalf("DueAt = %v, want %v", got.DueAt, want)
	}
}

func TestNormalizeMalformedTime(t *testing.T) {
	t.Parallel()

	ref := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	malformed := []string{"", "24:00", "18:60", "7pm", "18", "half past six", "18:0"}

	for _, timeOfDay := range malformed {
		draft := Draft{Title: "x", TimeOfDay: timeOfDay, RelativeDay: "today"}
		got, err := Normalize(draft, ref, time.UTC)
		if err == nil {
			t.Fatalf("Normalize(%q) succeeded, want ValidationError", timeOfDay)
		}
		if !apperr.IsValidation(err) {
			t.Fatalf("Normalize(%q) error = %v, want ValidationError", timeOfDay, err)
		}
		if got != (DueDate{}) {
			t.Fatalf("Normalize(%q) returned partial result %+v", timeOfDay, got)
		}
	}
}

func TestNormalizeUnknownDayWord(t *testing.T) {
	t.Parallel()

	ref := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	for _, day := range []string{"", "yesterday", "next week", "sunday"} {
		draft := Draft{Title: "x", TimeOfDay: "10:00", RelativeDay: day}
		if _, err := Normalize(draft, ref, time.UTC); !apperr.IsValidation(err) {
			t.Fatalf("Normalize(day=%q) error = %v, want ValidationError", day, err)
		}
	}
}

func TestParseRelativeDay(t *testing.T) {
	t.Parallel()

	cases := map[string]RelativeDay{
		"today":              Today,
		"วันนี้":             Today,
		"tomorrow":           Tomorrow,
		"พรุ่งนี้":           Tomorrow,
		"day after tomorrow": DayAfterTomorrow,
		"มะรืนนี้":           DayAfterTomorrow,
	}
	for word, want := range cases {
		got, err := ParseRelativeDay(word)
		if err != nil {
			t.Fatalf("ParseRelativeDay(%q) error: %v", word, err)
		}
		if got != want {
			t.Fatalf("ParseRelativeDay(%q) = %q, want %q", word, got, want)
		}
	}
}
