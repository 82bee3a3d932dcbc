package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Lead-minute defaults. The chat-detected flow and the manual form apply
// different defaults; callers must be explicit about which one they use.
const (
	DefaultManualLeadMinutes = 10
	DefaultChatLeadMinutes   = 30
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	Port                 string
	DatabaseURL          string
	JWTSecret            string
	OpenAIAPIKey         string
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	CalendarEndpoint     string // empty means the public Google Calendar API
	EventDurationMinutes int
	HistoryLimit         int
	SchedulerSpec        string
	LocalTimezone        *time.Location
}

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	timezoneName := getenvDefault("LOCAL_TIMEZONE", "Local")
	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, defaulting to system local: %v", timezoneName, err)
		location = time.Local
	}

	return &Config{
		Port:                 getenvDefault("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            os.Getenv("JWT_SECRET_KEY"),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		CalendarEndpoint:     os.Getenv("CALENDAR_API_ENDPOINT"),
		EventDurationMinutes: ParseIntEnv("EVENT_DURATION_MINUTES", 30),
		HistoryLimit:         ParseIntEnv("CHAT_HISTORY_LIMIT", 10),
		SchedulerSpec:        getenvDefault("SCHEDULER_SPEC", "@every 5m"),
		LocalTimezone:        location,
	}
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

// ParseIntEnv returns the integer value for an environment variable or the provided default.
func ParseIntEnv(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: unable to parse %s=%q as int: %v", key, value, err)
		return def
	}
	return parsed
}
