package api

import (
	"net/http"

	"kanflow-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := delivery.NewAuthHandler(h.authUsecase, h.deviceTokenRepo)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Session mode (no auth required; guest mode is chosen before login)
		api.GET("/session", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"guest_mode": h.resolver.IsGuestMode()})
		})
		api.PUT("/session", func(c *gin.Context) {
			var req struct {
				GuestMode *bool `json:"guest_mode" binding:"required"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := h.resolver.SetGuestMode(*req.GuestMode); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"guest_mode": *req.GuestMode})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify", authHandler.VerifyEmail)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", delivery.AuthMiddleware(h.authUsecase), authHandler.Me)
		}

		// Device token routes (protected) for push reminders
		devices := api.Group("/devices")
		devices.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			devices.POST("/register", authHandler.RegisterDeviceToken)
			devices.DELETE("/:token", authHandler.UnregisterDeviceToken)
		}

		// Task routes follow the session mode: guest requests hit the local
		// store without a token, authenticated ones require a bearer token
		tasks := api.Group("/tasks")
		tasks.Use(delivery.SessionMiddleware(h.resolver, h.authUsecase))
		{
			tasks.GET("", h.taskHandler.GetTasks)
			tasks.POST("", h.taskHandler.CreateTask)
			tasks.DELETE("", h.taskHandler.DeleteAllTasks)
			tasks.GET("/stats", h.taskHandler.GetStats)
			tasks.GET("/search", h.taskHandler.SearchTasks)
			tasks.PUT("/:id", h.taskHandler.UpdateTask)
			tasks.DELETE("/:id", h.taskHandler.DeleteTask)
			tasks.POST("/:id/hide", h.taskHandler.HideExternalTask)
		}

		// Integration routes (authenticated accounts only)
		integrations := api.Group("/integrations")
		integrations.Use(h.requireAuthenticatedMode(), delivery.AuthMiddleware(h.authUsecase))
		{
			integrations.GET("", h.integrationHandler.GetRegistry)
			integrations.POST("/:provider/connect", h.integrationHandler.Connect)
			integrations.POST("/:provider/disconnect", h.integrationHandler.Disconnect)
		}

		// Widget routes share the session mode with tasks
		widgets := api.Group("/widgets")
		widgets.Use(delivery.SessionMiddleware(h.resolver, h.authUsecase))
		{
			widgets.GET("/habits", h.widgetHandler.ListHabits)
			widgets.POST("/habits", h.widgetHandler.AddHabit)
			widgets.POST("/habits/:id/toggle", h.widgetHandler.ToggleHabitDay)
			widgets.DELETE("/habits/:id", h.widgetHandler.DeleteHabit)

			widgets.GET("/water", h.widgetHandler.GetWater)
			widgets.POST("/water/add", h.widgetHandler.AddWater)
			widgets.POST("/water/reset", h.widgetHandler.ResetWater)
			widgets.PUT("/water/target", h.widgetHandler.SetWaterTarget)

			widgets.GET("/notes", h.widgetHandler.ListNotes)
			widgets.POST("/notes", h.widgetHandler.SaveNote)
			widgets.DELETE("/notes/:id", h.widgetHandler.DeleteNote)

			widgets.GET("/worldclock", h.widgetHandler.GetWorldClocks)
			widgets.PUT("/worldclock", h.widgetHandler.SetWorldClocks)

			widgets.GET("/stopwatch", h.widgetHandler.GetStopwatch)
			widgets.POST("/stopwatch/:action", h.widgetHandler.StopwatchAction)

			widgets.GET("/quote", h.widgetHandler.GetQuote)

			widgets.POST("/team-message", h.widgetHandler.PostTeamMessage)
		}

		// Settings routes (public) for runtime provider endpoints
		settings := api.Group("/settings")
		{
			settings.GET("/providers", GetProviderSettings)
			settings.PUT("/providers", UpdateProviderSettings)
		}
	}
}

// requireAuthenticatedMode blocks integration management while the session
// runs against the local guest store.
func (h *Handler) requireAuthenticatedMode() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.resolver.IsGuestMode() {
			c.JSON(http.StatusForbidden, gin.H{"error": "integrations require a signed-in account"})
			c.Abort()
			return
		}
		c.Next()
	}
}
