package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// RuntimeConfig holds runtime-configurable provider endpoints. GitLab and
// Sentry are the two providers commonly self-hosted behind custom base URLs.
type RuntimeConfig struct {
	GitLabBaseURL string `json:"gitlab_base_url"`
	SentryBaseURL string `json:"sentry_base_url"`
}

var (
	runtimeConfig     RuntimeConfig
	runtimeConfigLock sync.RWMutex
)

// InitRuntimeConfig initializes runtime config from static config
func InitRuntimeConfig(gitlabBaseURL, sentryBaseURL string) {
	runtimeConfigLock.Lock()
	defer runtimeConfigLock.Unlock()
	runtimeConfig = RuntimeConfig{
		GitLabBaseURL: gitlabBaseURL,
		SentryBaseURL: sentryBaseURL,
	}
}

// GetRuntimeGitLabBaseURL returns the current GitLab base URL override
func GetRuntimeGitLabBaseURL() string {
	runtimeConfigLock.RLock()
	defer runtimeConfigLock.RUnlock()
	return runtimeConfig.GitLabBaseURL
}

// GetRuntimeSentryBaseURL returns the current Sentry base URL override
func GetRuntimeSentryBaseURL() string {
	runtimeConfigLock.RLock()
	defer runtimeConfigLock.RUnlock()
	return runtimeConfig.SentryBaseURL
}

// UpdateProviderSettingsRequest represents the request body for updating
// provider endpoints
type UpdateProviderSettingsRequest struct {
	GitLabBaseURL *string `json:"gitlab_base_url"`
	SentryBaseURL *string `json:"sentry_base_url"`
}

// GetProviderSettings returns current provider endpoint overrides
// GET /api/settings/providers
func GetProviderSettings(c *gin.Context) {
	runtimeConfigLock.RLock()
	defer runtimeConfigLock.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"gitlab_base_url": runtimeConfig.GitLabBaseURL,
		"sentry_base_url": runtimeConfig.SentryBaseURL,
	})
}

// UpdateProviderSettings updates provider endpoints at runtime. An empty
// string restores the provider's public default.
// PUT /api/settings/providers
func UpdateProviderSettings(c *gin.Context) {
	var req UpdateProviderSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runtimeConfigLock.Lock()
	if req.GitLabBaseURL != nil {
		runtimeConfig.GitLabBaseURL = *req.GitLabBaseURL
	}
	if req.SentryBaseURL != nil {
		runtimeConfig.SentryBaseURL = *req.SentryBaseURL
	}
	runtimeConfigLock.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"message":         "provider settings updated",
		"gitlab_base_url": GetRuntimeGitLabBaseURL(),
		"sentry_base_url": GetRuntimeSentryBaseURL(),
	})
}
