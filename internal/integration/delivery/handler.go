package delivery

import (
	"errors"
	"net/http"

	"kanflow-backend/internal/integration/domain"
	"kanflow-backend/internal/integration/usecase"

	"github.com/gin-gonic/gin"
)

// IntegrationHandler handles integration registry HTTP requests
type IntegrationHandler struct {
	integrationUsecase usecase.IntegrationUsecase
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(integrationUsecase usecase.IntegrationUsecase) *IntegrationHandler {
	return &IntegrationHandler{
		integrationUsecase: integrationUsecase,
	}
}

// ConnectRequest carries the provider config entered by the user
type ConnectRequest struct {
	Config map[string]string `json:"config"`
}

// GetRegistry returns the full integration registry
// GET /api/integrations
func (h *IntegrationHandler) GetRegistry(c *gin.Context) {
	userID := c.GetString("userID")

	registry, err := h.integrationUsecase.GetRegistry(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, registry)
}

// Connect stores the provider config and marks it connected
// POST /api/integrations/:provider/connect
func (h *IntegrationHandler) Connect(c *gin.Context) {
	userID := c.GetString("userID")
	provider := c.Param("provider")

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Missing required fields are rejected before anything is stored
	if p, ok := domain.ProviderByKey(provider); ok {
		for _, field := range p.RequiredConfig {
			if req.Config[field] == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field: " + field})
				return
			}
		}
	}

	registry, err := h.integrationUsecase.Connect(userID, provider, req.Config)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownProvider) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, registry)
}

// Disconnect clears the provider config
// POST /api/integrations/:provider/disconnect
func (h *IntegrationHandler) Disconnect(c *gin.Context) {
	userID := c.GetString("userID")
	provider := c.Param("provider")

	registry, err := h.integrationUsecase.Disconnect(userID, provider)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownProvider) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, registry)
}
