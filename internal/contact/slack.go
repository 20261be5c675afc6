package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	slackTitle = "New Portfolio Chat Message"
	slackIntro = "A visitor sent a message from your portfolio chat bar. They may have included their email in the text below."
)

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

func buildPayload(msg string, at time.Time) slackPayload {
	return slackPayload{
		Text: slackTitle,
		Blocks: []slackBlock{
			{Type: "header", Text: &slackText{Type: "plain_text", Text: "💬 " + slackTitle}},
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: slackIntro}},
			{Type: "divider"},
			{Type: "section", Text: &slackText{Type: "mrkdwn", Text: "*Message:*\n```" + msg + "```"}},
			{Type: "context", Elements: []slackText{{Type: "mrkdwn", Text: "Received at: " + at.Format("1/2/2006, 3:04:05 PM")}}},
		},
	}
}

// Notifier delivers a visitor's message somewhere a human will read it.
type Notifier interface {
	Notify(ctx context.Context, msg string) error
}

// Slack posts messages to an incoming webhook.
type Slack struct {
	URL  string
	HTTP *http.Client
	Now  func() time.Time
}

func NewSlack(url string) *Slack {
	return &Slack{
		URL:  url,
		HTTP: &http.Client{Timeout: 10 * time.Second},
		Now:  time.Now,
	}
}

func (s *Slack) Notify(ctx context.Context, msg string) error {
	if s == nil || s.URL == "" {
		return ErrNotConfigured
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	body, err := json.Marshal(buildPayload(msg, now()))
	if err != nil {
		return fmt.Errorf("encode slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: slack responded %d: %s", ErrDelivery, resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}
