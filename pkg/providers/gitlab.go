package providers

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// GitLabClient fetches open issues from one project.
type GitLabClient struct {
	// getBaseURL is dynamic so a self-hosted instance can be configured
	// at runtime
	getBaseURL func() string
}

// NewGitLabClient creates a GitLab issues client with a dynamic base URL
// getter; a nil getter or empty result means gitlab.com.
func NewGitLabClient(getBaseURL func() string) *GitLabClient {
	return &GitLabClient{getBaseURL: getBaseURL}
}

func (c *GitLabClient) base() string {
	if c.getBaseURL != nil {
		if url := c.getBaseURL(); url != "" {
			return url
		}
	}
	return "https://gitlab.com"
}

type gitlabIssue struct {
	IID         int    `json:"iid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WebURL      string `json:"web_url"`
	DueDate     string `json:"due_date"`
}

// Issues lists the open issues of the project.
func (c *GitLabClient) Issues(ctx context.Context, token, projectID string) ([]Item, error) {
	url := fmt.Sprintf("%s/api/v4/projects/%s/issues?state=opened&per_page=50", c.base(), projectID)
	req, err := newGetRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("PRIVATE-TOKEN", token)

	var issues []gitlabIssue
	if err := getJSON(defaultHTTPClient(), req, &issues); err != nil {
		return nil, fmt.Errorf("gitlab: %w", err)
	}

	items := make([]Item, 0, len(issues))
	for _, issue := range issues {
		item := Item{
			ID:          strconv.Itoa(issue.IID),
			Title:       issue.Title,
			Description: issue.Description,
			URL:         issue.WebURL,
		}
		if issue.DueDate != "" {
			if t, err := time.Parse("2006-01-02", issue.DueDate); err == nil {
				item.DueDate = &t
			}
		}
		items = append(items, item)
	}
	return items, nil
}
