package domain

import "strings"

// Provider describes one of the fixed set of external systems tasks can be
// pulled from. Prefix namespaces aggregated task ids so they can never
// collide with locally or database-assigned ids. Position is a fixed sort
// sentinel: aggregated tasks keep a stable relative order among themselves
// and are never user-reorderable.
type Provider struct {
	Key         string
	DisplayName string
	Prefix      string
	Position    int
	// Config fields that must be present before the provider is fetched
	RequiredConfig []string
}

const (
	ProviderGitHub  = "github"
	ProviderGitLab  = "gitlab"
	ProviderSentry  = "sentry"
	ProviderFigma   = "figma"
	ProviderZoom    = "zoom"
	ProviderSlack   = "slack"
	ProviderDiscord = "discord"
)

// Providers is the fixed provider set, in aggregation order. Zoom carries
// position 0 so meetings sort first among external tasks.
var Providers = []Provider{
	{Key: ProviderZoom, DisplayName: "Zoom", Prefix: "zoom-", Position: 0, RequiredConfig: []string{"accountId", "clientId", "clientSecret"}},
	{Key: ProviderGitHub, DisplayName: "GitHub", Prefix: "gh-", Position: 1001, RequiredConfig: []string{"token", "repo"}},
	{Key: ProviderGitLab, DisplayName: "GitLab", Prefix: "gl-", Position: 1002, RequiredConfig: []string{"token", "projectId"}},
	{Key: ProviderSentry, DisplayName: "Sentry", Prefix: "sen-", Position: 1003, RequiredConfig: []string{"token", "organizationSlug", "projectSlug"}},
	{Key: ProviderFigma, DisplayName: "Figma", Prefix: "fig-", Position: 1004, RequiredConfig: []string{"token", "teamId"}},
	{Key: ProviderSlack, DisplayName: "Slack", Prefix: "slack-", Position: 1005, RequiredConfig: []string{"token"}},
	{Key: ProviderDiscord, DisplayName: "Discord", Prefix: "disc-", Position: 1006, RequiredConfig: []string{"botToken", "channelId"}},
}

// ProviderByKey returns the provider definition for key.
func ProviderByKey(key string) (Provider, bool) {
	for _, p := range Providers {
		if p.Key == key {
			return p, true
		}
	}
	return Provider{}, false
}

// ProviderForTaskID reports which provider a task id belongs to, if its
// prefix is recognized. Tasks with a recognized prefix are read-only.
func ProviderForTaskID(id string) (Provider, bool) {
	for _, p := range Providers {
		if strings.HasPrefix(id, p.Prefix) {
			return p, true
		}
	}
	return Provider{}, false
}

// HasRequiredConfig reports whether every required config field is non-empty.
func (p Provider) HasRequiredConfig(config map[string]string) bool {
	for _, field := range p.RequiredConfig {
		if config[field] == "" {
			return false
		}
	}
	return true
}
