package api

import (
	"log"

	authrepo "kanflow-backend/internal/auth/repository"
	authUsecasePkg "kanflow-backend/internal/auth/usecase"
	integrationDelivery "kanflow-backend/internal/integration/delivery"
	integrationUsecasePkg "kanflow-backend/internal/integration/usecase"
	"kanflow-backend/internal/session"
	taskDelivery "kanflow-backend/internal/task/delivery"
	taskUsecasePkg "kanflow-backend/internal/task/usecase"
	widgetDelivery "kanflow-backend/internal/widget/delivery"
	widgetUsecasePkg "kanflow-backend/internal/widget/usecase"
	"kanflow-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase        authUsecasePkg.AuthUsecase
	resolver           *session.Resolver
	config             *config.Config
	deviceTokenRepo    authrepo.DeviceTokenRepository
	taskHandler        *taskDelivery.TaskHandler
	integrationHandler *integrationDelivery.IntegrationHandler
	widgetHandler      *widgetDelivery.WidgetHandler
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	taskUc taskUsecasePkg.TaskUsecase,
	integrationUc integrationUsecasePkg.IntegrationUsecase,
	widgetUc widgetUsecasePkg.WidgetUsecase,
	resolver *session.Resolver,
	cfg *config.Config,
	deviceTokenRepo authrepo.DeviceTokenRepository,
) *Handler {
	// Initialize runtime provider endpoints for the settings API
	InitRuntimeConfig("", "")

	log.Println("HTTP handlers initialized")

	return &Handler{
		authUsecase:        authUc,
		resolver:           resolver,
		config:             cfg,
		deviceTokenRepo:    deviceTokenRepo,
		taskHandler:        taskDelivery.NewTaskHandler(taskUc),
		integrationHandler: integrationDelivery.NewIntegrationHandler(integrationUc),
		widgetHandler:      widgetDelivery.NewWidgetHandler(widgetUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
