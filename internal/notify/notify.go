// Package notify delivers due-reminder messages over WhatsApp. It is the
// out-of-band channel for reminders whose calendar sync never succeeded, and
// a plain copy for everyone who registered a phone number.
package notify

import (
	"fmt"
	"strings"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier wraps Twilio messaging operations required by the scheduler.
type Notifier struct {
	client       *twilio.RestClient
	fromWhatsApp string
}

// New creates a Notifier bound to the configured WhatsApp sender number.
// Missing credentials yield a disabled Notifier that rejects sends.
func New(accountSID, authToken, fromWhatsApp string) *Notifier {
	if accountSID == "" || authToken == "" {
		return &Notifier{}
	}
	return &Notifier{
		client:       twilio.NewRestClientWithParams(twilio.ClientParams{Username: accountSID, Password: authToken}),
		fromWhatsApp: fromWhatsApp,
	}
}

// Enabled reports whether the notifier can actually send messages.
func (n *Notifier) Enabled() bool {
	return n.client != nil && n.fromWhatsApp != ""
}

// Send delivers a WhatsApp message to the given phone number.
func (n *Notifier) Send(to, body string) error {
	if n.client == nil {
		return fmt.Errorf("twilio client not initialised")
	}

	sender := normalizeWhatsAppAddress(n.fromWhatsApp)
	if sender == "" {
		return fmt.Errorf("twilio sender WhatsApp number is not configured")
	}

	recipient := normalizeWhatsAppAddress(to)
	if recipient == "" {
		return fmt.Errorf("recipient number missing or invalid")
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(recipient)
	params.SetFrom(sender)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send message: %w", err)
	}
	return nil
}

func normalizeWhatsAppAddress(number string) string {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "whatsapp:") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "+") {
		return "whatsapp:" + trimmed
	}
	return "whatsapp:+" + trimmed
}
