// Package normalize turns the extractor's loosely structured day/time fields
// into an absolute date-time. It is the only component that computes an
// instant from relative day words.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"remindchat/internal/apperr"
	"remindchat/internal/model"
)

// RelativeDay is the day-word produced by the intent extractor.
type RelativeDay string

const (
	Today            RelativeDay = "today"
	Tomorrow         RelativeDay = "tomorrow"
	DayAfterTomorrow RelativeDay = "day_after_tomorrow"
)

// Draft is a chat-detected reminder proposal awaiting confirmation.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TimeOfDay   string `json:"time_of_day"`   // HH:mm
	RelativeDay string `json:"relative_day"`  // today / tomorrow / day after tomorrow, en or th
	LeadMinutes int    `json:"lead_minutes"`  // 0 means "apply the chat default"
}

// DueDate is the normalized result: a calendar date, a time of day and the
// single absolute instant the pair represents.
type DueDate struct {
	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	DueAt time.Time
}

var timeOfDayRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// The extractor emits day words in English or Thai depending on the chat
// language; both are accepted case-insensitively.
var dayOffsets = map[string]int{
	"today":              0,
	"วันนี้":             0,
	"tomorrow":           1,
	"พรุ่งนี้":           1,
	"day after tomorrow": 2,
	"มะรืนนี้":           2,
}

// Normalize resolves a draft against referenceNow in the given location.
// Seconds are truncated to zero. A malformed time or an unknown day word
// fails with a ValidationError and produces no partial result; midnight is
// never silently assumed.
func Normalize(draft Draft, referenceNow time.Time, loc *time.Location) (DueDate, error) {
	hour, minute, err := ParseTimeOfDay(draft.TimeOfDay)
	if err != nil {
		return DueDate{}, err
	}

	offset, err := dayOffset(draft.RelativeDay)
	if err != nil {
		return DueDate{}, err
	}

	ref := referenceNow.In(loc)
	day := ref.AddDate(0, 0, offset)
	due := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)

	return DueDate{
		Date:  due.Format(model.DateLayout),
		Time:  due.Format(model.TimeLayout),
		DueAt: due,
	}, nil
}

// ParseTimeOfDay validates an HH:mm string and returns its components.
func ParseTimeOfDay(timeOfDay string) (hour, minute int, err error) {
	m := timeOfDayRe.FindStringSubmatch(strings.TrimSpace(timeOfDay))
	if m == nil {
		return 0, 0, apperr.NewValidation("time", fmt.Sprintf("%q is not a valid HH:mm time", timeOfDay))
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// ParseRelativeDay maps a day word onto the canonical RelativeDay value.
func ParseRelativeDay(word string) (RelativeDay, error) {
	offset, err := dayOffset(word)
	if err != nil {
		return "", err
	}
	switch offset {
	case 0:
		return Today, nil
	case 1:
		return Tomorrow, nil
	default:
		return DayAfterTomorrow, nil
	}
}

func dayOffset(word string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(word))
	offset, ok := dayOffsets[key]
	if !ok {
		return 0, apperr.NewValidation("day", fmt.Sprintf("unrecognized day word %q", word))
	}
	return offset, nil
}
