package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"rental-app-go/internal/config"
	"rental-app-go/pkg/logger"
)

// Message is the structured push payload. Lines render as label/value rows
// under the title in the receiving client.
type Message struct {
	Title string        `json:"title"`
	Text  string        `json:"text"`
	Lines []MessageLine `json:"lines,omitempty"`
}

type MessageLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type pushRequest struct {
	To       string    `json:"to"`
	Messages []Message `json:"messages"`
}

// Notifier delivers push messages best-effort: failures are logged, never
// returned, so notification trouble cannot fail the request that triggered
// it. Unconfigured or missing recipient means a silent no-op.
type Notifier struct {
	client *resty.Client
	log    logger.Logger
}

func New(cfg config.NotifyConfig, log logger.Logger) *Notifier {
	if cfg.PushURL == "" {
		log.Info("notify: push url not configured, notifications disabled")
		return &Notifier{log: log}
	}

	client := resty.New().
		SetBaseURL(cfg.PushURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &Notifier{client: client, log: log}
}

func (n *Notifier) Send(ctx context.Context, externalUserID string, message Message) {
	if n.client == nil || externalUserID == "" {
		return
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(pushRequest{To: externalUserID, Messages: []Message{message}}).
		Post("")
	if err != nil {
		n.log.InternalError("notify: push failed", err, "title", message.Title)
		return
	}
	if resp.IsError() {
		n.log.InternalError("notify: push rejected", fmt.Errorf("status %d", resp.StatusCode()), "title", message.Title)
	}
}
