package aggregator

import (
	"context"

	"kanflow-backend/internal/integration/domain"
	"kanflow-backend/pkg/providers"
)

// DefaultSources builds the real provider sources. The GitLab and Sentry
// base URLs are dynamic getters so self-hosted instances can be configured
// at runtime.
func DefaultSources(gitlabBaseURL, sentryBaseURL func() string) []Source {
	return []Source{
		&zoomSource{client: providers.NewZoomClient("", "")},
		&githubSource{client: providers.NewGitHubClient("")},
		&gitlabSource{client: providers.NewGitLabClient(gitlabBaseURL)},
		&sentrySource{client: providers.NewSentryClient(sentryBaseURL)},
		&figmaSource{client: providers.NewFigmaClient("")},
		&slackSource{client: providers.NewSlackClient("")},
		&discordSource{client: providers.NewDiscordClient("")},
	}
}

func mustProvider(key string) domain.Provider {
	p, _ := domain.ProviderByKey(key)
	return p
}

type githubSource struct{ client *providers.GitHubClient }

func (s *githubSource) Provider() domain.Provider { return mustProvider(domain.ProviderGitHub) }

func (s *githubSource) Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error) {
	return s.client.Issues(ctx, config["token"], config["repo"])
}

type gitlabSource struct{ client *providers.GitLabClient }

func (s *gitlabSource) Provider() domain.Provider { return mustProvider(domain.ProviderGitLab) }

func (s *gitlabSource) Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error) {
	return s.client.Issues(ctx, config["token"], config["projectId"])
}

type sentrySource struct{ client *providers.SentryClient }

func (s *sentrySource) Provider() domain.Provider { return mustProvider(domain.ProviderSentry) }

func (s *sentrySource) Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error) {
	return s.client.Issues(ctx, config["token"], config["organizationSlug"], config["projectSlug"])
}

type figmaSource struct{ client *providers.FigmaClient }

func (s *figmaSource) Provider() domain.Provider { return mustProvider(domain.ProviderFigma) }

func (s *figmaSource) Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error) {
	return s.client.Projects(ctx, config["token"], config["teamId"])
}

type zoomSource struct{ client *providers.ZoomClient }

func (s *zoomSource) Provider() domain.Provider { return mustProvider(domain.ProviderZoom) }

func (s *zoomSource) Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error) {
	return s.client.UpcomingMeetings(ctx, config["accountId"], config["clientId"], config["clientSecret"])
}

type slackSource struct{ client *providers.SlackClient }

func (s *slackSource) Provider() domain.Provider { return mustProvider(domain.ProviderSlack) }

func (s *slackSource) Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error) {
	return s.client.Reminders(ctx, config["token"])
}

type discordSource struct{ client *providers.DiscordClient }

func (s *discordSource) Provider() domain.Provider { return mustProvider(domain.ProviderDiscord) }

func (s *discordSource) Fetch(ctx context.Context, config map[string]string) ([]providers.Item, error) {
	return s.client.ChannelMessages(ctx, config["botToken"], config["channelId"])
}
