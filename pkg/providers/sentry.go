package providers

import (
	"context"
	"fmt"
)

// SentryClient fetches unresolved issues from one project.
type SentryClient struct {
	getBaseURL func() string
}

// NewSentryClient creates a Sentry issues client with a dynamic base URL
// getter; a nil getter or empty result means sentry.io.
func NewSentryClient(getBaseURL func() string) *SentryClient {
	return &SentryClient{getBaseURL: getBaseURL}
}

func (c *SentryClient) base() string {
	if c.getBaseURL != nil {
		if url := c.getBaseURL(); url != "" {
			return url
		}
	}
	return "https://sentry.io"
}

type sentryIssue struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Culprit   string `json:"culprit"`
	Permalink string `json:"permalink"`
}

// Issues lists the unresolved issues of org/project.
func (c *SentryClient) Issues(ctx context.Context, token, organizationSlug, projectSlug string) ([]Item, error) {
	url := fmt.Sprintf("%s/api/0/projects/%s/%s/issues/?query=is:unresolved", c.base(), organizationSlug, projectSlug)
	req, err := newGetRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var issues []sentryIssue
	if err := getJSON(defaultHTTPClient(), req, &issues); err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}

	items := make([]Item, 0, len(issues))
	for _, issue := range issues {
		items = append(items, Item{
			ID:          issue.ID,
			Title:       issue.Title,
			Description: issue.Culprit,
			URL:         issue.Permalink,
		})
	}
	return items, nil
}
