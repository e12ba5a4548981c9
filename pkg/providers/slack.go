package providers

import (
	"context"
	"fmt"
	"time"
)

// SlackClient fetches the authed user's reminders.
type SlackClient struct {
	baseURL string
}

// NewSlackClient creates a Slack client; baseURL "" means slack.com/api.
func NewSlackClient(baseURL string) *SlackClient {
	if baseURL == "" {
		baseURL = "https://slack.com/api"
	}
	return &SlackClient{baseURL: baseURL}
}

type slackRemindersResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	Reminders []struct {
		ID         string `json:"id"`
		Text       string `json:"text"`
		Time       int64  `json:"time"`
		CompleteTS int64  `json:"complete_ts"`
	} `json:"reminders"`
}

// Reminders lists the user's incomplete reminders.
func (c *SlackClient) Reminders(ctx context.Context, token string) ([]Item, error) {
	req, err := newGetRequest(ctx, c.baseURL+"/reminders.list")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var result slackRemindersResponse
	if err := getJSON(defaultHTTPClient(), req, &result); err != nil {
		return nil, fmt.Errorf("slack: %w", err)
	}
	// Slack reports API-level failures with a 200 and ok=false
	if !result.OK {
		return nil, fmt.Errorf("slack: API error: %s", result.Error)
	}

	items := make([]Item, 0, len(result.Reminders))
	for _, reminder := range result.Reminders {
		if reminder.CompleteTS != 0 {
			continue
		}
		item := Item{
			ID:    reminder.ID,
			Title: reminder.Text,
			URL:   "https://slack.com/app_redirect?app=reminders",
		}
		if reminder.Time > 0 {
			t := time.Unix(reminder.Time, 0)
			item.DueDate = &t
		}
		items = append(items, item)
	}
	return items, nil
}
