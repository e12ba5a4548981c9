package providers

import (
	"context"
	"fmt"
	"strconv"
)

// GitHubClient fetches open issues from one repository.
type GitHubClient struct {
	baseURL string
}

// NewGitHubClient creates a GitHub issues client; baseURL "" means api.github.com.
func NewGitHubClient(baseURL string) *GitHubClient {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GitHubClient{baseURL: baseURL}
}

type githubIssue struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	HTMLURL     string `json:"html_url"`
	PullRequest *struct {
		URL string `json:"url"`
	} `json:"pull_request,omitempty"`
}

// Issues lists the open issues of repo ("owner/name").
func (c *GitHubClient) Issues(ctx context.Context, token, repo string) ([]Item, error) {
	url := fmt.Sprintf("%s/repos/%s/issues?state=open&per_page=50", c.baseURL, repo)
	req, err := newGetRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	var issues []githubIssue
	if err := getJSON(defaultHTTPClient(), req, &issues); err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}

	items := make([]Item, 0, len(issues))
	for _, issue := range issues {
		// The issues endpoint also returns pull requests
		if issue.PullRequest != nil {
			continue
		}
		items = append(items, Item{
			ID:          strconv.Itoa(issue.Number),
			Title:       issue.Title,
			Description: issue.Body,
			URL:         issue.HTMLURL,
		})
	}
	return items, nil
}
