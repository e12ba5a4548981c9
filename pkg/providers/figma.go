package providers

import (
	"context"
	"fmt"
)

// FigmaClient fetches the projects of one team.
type FigmaClient struct {
	baseURL string
	webURL  string
}

// NewFigmaClient creates a Figma client; baseURL "" means api.figma.com.
func NewFigmaClient(baseURL string) *FigmaClient {
	if baseURL == "" {
		baseURL = "https://api.figma.com"
	}
	return &FigmaClient{baseURL: baseURL, webURL: "https://www.figma.com"}
}

type figmaProjectsResponse struct {
	Name     string `json:"name"`
	Projects []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"projects"`
}

// Projects lists the team's projects.
func (c *FigmaClient) Projects(ctx context.Context, token, teamID string) ([]Item, error) {
	url := fmt.Sprintf("%s/v1/teams/%s/projects", c.baseURL, teamID)
	req, err := newGetRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Figma-Token", token)

	var result figmaProjectsResponse
	if err := getJSON(defaultHTTPClient(), req, &result); err != nil {
		return nil, fmt.Errorf("figma: %w", err)
	}

	items := make([]Item, 0, len(result.Projects))
	for _, project := range result.Projects {
		items = append(items, Item{
			ID:          project.ID,
			Title:       project.Name,
			Description: "Figma project in team " + result.Name,
			URL:         fmt.Sprintf("%s/files/project/%s", c.webURL, project.ID),
		})
	}
	return items, nil
}
