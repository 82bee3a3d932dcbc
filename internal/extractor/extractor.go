// Package extractor classifies free-text chat messages and proposes
// structured reminder drafts. It only ever proposes; a reminder is created
// when the user confirms through the workflow's save path.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"remindchat/internal/model"
	"remindchat/internal/normalize"
)

// ErrClientNotInitialised is returned when attempting to call the API without a configured client.
var ErrClientNotInitialised = errors.New("openai client not initialised")

// Result is the outcome of one extraction: the reply to show the user and,
// when the message carried a reminder intent, the proposed draft.
type Result struct {
	ReplyText  string
	IsReminder bool
	Draft      *normalize.Draft
}

// Client wraps the OpenAI SDK. When no API key is configured the inner
// client is nil and a local keyword heuristic stands in for the model.
type Client struct {
	client *openai.Client
	model  openai.ChatModel
}

// New returns a Client. An empty apiKey yields the heuristic-only fallback.
func New(apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

// wire format shared with the model's JSON reply
type rawResponse struct {
	Text         string `json:"text"`
	IsReminder   bool   `json:"isReminder"`
	ReminderData *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DateTime    string `json:"dateTime"` // HH:mm
		Day         string `json:"day"`
	} `json:"reminderData"`
}

const systemPromptEN = `You are a helpful assistant for a note-taking and reminder app. Respond in English only.
When the user's message contains a task or reminder for a specific time, reply with a JSON object:
{"text": "<normal reply>", "isReminder": true, "reminderData": {"title": "<short title>", "description": "<details>", "dateTime": "HH:mm", "day": "today|tomorrow|day after tomorrow"}}
Otherwise reply with: {"text": "<normal reply>", "isReminder": false}
The "text" field must contain plain conversational text only, never JSON.`

const systemPromptTH = `คุณเป็นผู้ช่วยสำหรับแอปจดบันทึกและเตือนความจำ ตอบเป็นภาษาไทยเท่านั้น
ถ้าข้อความของผู้ใช้มีงานหรือการเตือนความจำในเวลาที่เจาะจง ให้ตอบเป็น JSON:
{"text": "<ข้อความตอบกลับปกติ>", "isReminder": true, "reminderData": {"title": "<หัวข้อ>", "description": "<รายละเอียด>", "dateTime": "HH:mm", "day": "วันนี้|พรุ่งนี้|มะรืนนี้"}}
ถ้าไม่ใช่ ให้ตอบ: {"text": "<ข้อความตอบกลับปกติ>", "isReminder": false}
ฟิลด์ "text" ต้องเป็นข้อความธรรมดาเท่านั้น ห้ามใส่โครงสร้าง JSON`

// Extract classifies message (with conversation history for context) and
// returns the reply plus an optional reminder draft. Callers must fall back
// to treating the raw text as a plain reply when Extract fails.
func (c *Client) Extract(ctx context.Context, message string, history []model.ChatMessage, language string) (Result, error) {
	if strings.TrimSpace(message) == "" {
		return Result{}, fmt.Errorf("message cannot be empty")
	}
	if c.client == nil {
		return c.extractHeuristic(message, language), nil
	}

	systemPrompt := systemPromptEN
	if language == "th" {
		systemPrompt = systemPromptTH
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfSystem: &openai.ChatCompletionSystemMessageParam{
			Content: openai.ChatCompletionSystemMessageParamContentUnion{
				OfString: openai.String(systemPrompt),
			},
		},
	})
	for _, msg := range history {
		messages = append(messages, historyMessage(msg))
	}
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(message),
			},
		},
	})

	req := openai.ChatCompletionNewParams{
		Model:               c.model,
		Messages:            messages,
		Temperature:         openai.Float(0.7),
		MaxCompletionTokens: openai.Int(1024),
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("no completion received")
	}

	return ParseResponse(strings.TrimSpace(resp.Choices[0].Message.Content)), nil
}

func historyMessage(msg model.ChatMessage) openai.ChatCompletionMessageParamUnion {
	if msg.Role == model.RoleAssistant {
		return openai.ChatCompletionMessageParamUnion{
			OfAssistant: &openai.ChatCompletionAssistantMessageParam{
				Content: openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(msg.Content),
				},
			},
		}
	}
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(msg.Content),
			},
		},
	}
}

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ParseResponse interprets a model reply. When no parseable JSON object is
// found the raw text becomes a plain, non-reminder reply.
func ParseResponse(text string) Result {
	block := jsonBlockRe.FindString(text)
	if block == "" {
		return Result{ReplyText: text}
	}

	var raw rawResponse
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return Result{ReplyText: text}
	}

	result := Result{ReplyText: raw.Text, IsReminder: raw.IsReminder}
	if raw.IsReminder && raw.ReminderData != nil {
		result.Draft = &normalize.Draft{
			Title:       raw.ReminderData.Title,
			Description: raw.ReminderData.Description,
			TimeOfDay:   raw.ReminderData.DateTime,
			RelativeDay: raw.ReminderData.Day,
		}
	}
	if result.Draft == nil {
		result.IsReminder = false
	}
	return result
}
