package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/onedayhr/crm-api/internal/infra/queue"
)

var ErrNotConfigured = errors.New("Telegram credentials not configured")

// LeadMessage is the form data relayed to the sales chat. Empty fields get placeholders.
type LeadMessage struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

type Client struct {
	bot    *tgbotapi.BotAPI
	chatID string
}

// NewClient builds the bot without calling getMe, so boot never depends on Telegram.
// endpoint is a format string with bot token and method placeholders; empty means the public API.
func NewClient(token, chatID, endpoint string, timeout time.Duration) (*Client, error) {
	if token == "" || chatID == "" {
		return nil, ErrNotConfigured
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
		Buffer: 100,
	}
	bot.SetAPIEndpoint(endpoint)

	return &Client{bot: bot, chatID: chatID}, nil
}

func placeholder(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return html.EscapeString(s)
}

func FormatLeadMessage(m LeadMessage) string {
	return fmt.Sprintf(`🔔 <b>New request!</b>

👤 <b>Name:</b> %s
📱 <b>Phone:</b> %s
📍 <b>Source:</b> %s

⏰ Time: %s`,
		placeholder(m.Name, "Not specified"),
		placeholder(m.Phone, "Not specified"),
		placeholder(m.Source, "Unknown"),
		placeholder(m.Timestamp, "now"),
	)
}

func (c *Client) message(text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(c.chatID, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}
	return tgbotapi.NewMessageToChannel(c.chatID, text)
}

// Send posts an HTML message. The bot library has no context support; the HTTP timeout bounds the call.
func (c *Client) Send(_ context.Context, text string) error {
	msg := c.message(text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func (c *Client) SendLead(ctx context.Context, m LeadMessage) error {
	return c.Send(ctx, FormatLeadMessage(m))
}

// NotifyLeadCaptured relays a queued capture event.
func (c *Client) NotifyLeadCaptured(ctx context.Context, p queue.LeadCapturedPayload) error {
	ts := ""
	if !p.CapturedAt.IsZero() {
		ts = p.CapturedAt.Format("2006-01-02 15:04")
	}
	return c.SendLead(ctx, LeadMessage{Name: p.Name, Phone: p.Phone, Source: p.Source, Timestamp: ts})
}
