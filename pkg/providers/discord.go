package providers

import (
	"context"
	"fmt"
)

// DiscordClient fetches recent messages from one channel.
type DiscordClient struct {
	baseURL string
}

// NewDiscordClient creates a Discord client; baseURL "" means the public API.
func NewDiscordClient(baseURL string) *DiscordClient {
	if baseURL == "" {
		baseURL = "https://discord.com/api/v10"
	}
	return &DiscordClient{baseURL: baseURL}
}

type discordMessage struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	ChannelID string `json:"channel_id"`
	Author    struct {
		Username string `json:"username"`
	} `json:"author"`
}

// ChannelMessages lists the latest messages of the channel.
func (c *DiscordClient) ChannelMessages(ctx context.Context, botToken, channelID string) ([]Item, error) {
	url := fmt.Sprintf("%s/channels/%s/messages?limit=25", c.baseURL, channelID)
	req, err := newGetRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bot "+botToken)

	var messages []discordMessage
	if err := getJSON(defaultHTTPClient(), req, &messages); err != nil {
		return nil, fmt.Errorf("discord: %w", err)
	}

	items := make([]Item, 0, len(messages))
	for _, message := range messages {
		if message.Content == "" {
			continue
		}
		items = append(items, Item{
			ID:          message.ID,
			Title:       message.Content,
			Description: "Message from " + message.Author.Username,
			URL:         fmt.Sprintf("https://discord.com/channels/@me/%s/%s", message.ChannelID, message.ID),
		})
	}
	return items, nil
}
