package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	integrationdomain "kanflow-backend/internal/integration/domain"
	integrationusecase "kanflow-backend/internal/integration/usecase"
)

const webhookConfigField = "webhookUrl"

var webhookClient = &http.Client{
	Timeout: 10 * time.Second,
}

// PostTeamMessage sends a quick message to the team channel behind the
// provider's configured incoming webhook.
func (u *widgetUsecase) PostTeamMessage(ctx context.Context, userID, provider, text string) error {
	p, ok := integrationdomain.ProviderByKey(provider)
	if !ok {
		return integrationusecase.ErrUnknownProvider
	}

	registry, err := u.integrations.GetRegistry(userID)
	if err != nil {
		return err
	}

	entry := registry[p.Key]
	webhookURL := entry.Config[webhookConfigField]
	if !entry.Connected || webhookURL == "" {
		return ErrNoWebhook
	}

	// Slack webhooks expect "text", Discord webhooks expect "content"
	payload := map[string]string{"text": text}
	if p.Key == integrationdomain.ProviderDiscord {
		payload = map[string]string{"content": text}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := webhookClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
