package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

// ZoomClient fetches upcoming meetings using Zoom's server-to-server OAuth
// (account-credentials token exchange).
type ZoomClient struct {
	apiBaseURL string
	tokenURL   string
}

// NewZoomClient creates a Zoom client; empty URLs mean the public endpoints.
func NewZoomClient(apiBaseURL, tokenURL string) *ZoomClient {
	if apiBaseURL == "" {
		apiBaseURL = "https://api.zoom.us/v2"
	}
	if tokenURL == "" {
		// Zoom's server-to-server grant rides on the client-credentials
		// flow with the grant type carried as a query parameter
		tokenURL = "https://zoom.us/oauth/token?grant_type=account_credentials"
	}
	return &ZoomClient{apiBaseURL: apiBaseURL, tokenURL: tokenURL}
}

type zoomMeetingsResponse struct {
	Meetings []struct {
		ID        int64  `json:"id"`
		Topic     string `json:"topic"`
		Agenda    string `json:"agenda"`
		JoinURL   string `json:"join_url"`
		StartTime string `json:"start_time"`
	} `json:"meetings"`
}

// UpcomingMeetings exchanges the account credentials for an access token and
// lists the account owner's upcoming meetings.
func (c *ZoomClient) UpcomingMeetings(ctx context.Context, accountID, clientID, clientSecret string) ([]Item, error) {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     c.tokenURL,
		EndpointParams: url.Values{
			"account_id": {accountID},
		},
	}
	client := conf.Client(ctx)
	client.Timeout = 15 * time.Second

	req, err := newGetRequest(ctx, c.apiBaseURL+"/users/me/meetings?type=upcoming&page_size=30")
	if err != nil {
		return nil, err
	}

	var result zoomMeetingsResponse
	if err := getJSON(client, req, &result); err != nil {
		return nil, fmt.Errorf("zoom: %w", err)
	}

	items := make([]Item, 0, len(result.Meetings))
	for _, meeting := range result.Meetings {
		item := Item{
			ID:          strconv.FormatInt(meeting.ID, 10),
			Title:       meeting.Topic,
			Description: meeting.Agenda,
			URL:         meeting.JoinURL,
		}
		if meeting.StartTime != "" {
			if t, err := time.Parse(time.RFC3339, meeting.StartTime); err == nil {
				item.DueDate = &t
			}
		}
		items = append(items, item)
	}
	return items, nil
}
