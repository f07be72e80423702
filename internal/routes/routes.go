package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-calendar-api/internal/config"
	"booking-calendar-api/internal/handler"
	"booking-calendar-api/internal/middleware"
)

// Setup wires the tool surface. Token issuance and free-text search carry a
// per-IP rate limit; everything under /api/v1 requires a bearer token.
func Setup(router *gin.Engine, h *handler.Handler, cfg *config.Config) {
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router.POST("/auth/token", rl.Limit(), h.Token)

	api := router.Group("/api/v1")
	api.Use(middleware.BearerAuth(cfg.JWTSecret))
	{
		clients := api.Group("/clients")
		{
			clients.POST("", h.CreateClient)
			clients.GET("", h.SearchClients)
			clients.GET("/:id", h.GetClient)
			clients.PUT("/:id", h.UpdateClient)
			clients.DELETE("/:id", h.DeactivateClient)
		}

		types := api.Group("/types")
		{
			types.POST("", h.CreateType)
			types.GET("", h.ListTypes)
			types.GET("/:id", h.GetType)
			types.PUT("/:id", h.UpdateType)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", h.CreateAppointment)
			appointments.GET("", h.ListAppointments)
			appointments.GET("/search", rl.Limit(), h.SearchAppointments)
			appointments.GET("/export", h.ExportAppointments)
			appointments.GET("/:id", h.GetAppointment)
			appointments.PATCH("/:id", h.UpdateAppointment)
			appointments.DELETE("/:id", h.DeleteAppointment)
			appointments.POST("/:id/complete", h.CompleteAppointment)
			appointments.POST("/:id/reminder", h.MarkReminder)
			appointments.GET("/:id/history", h.History)
		}

		api.GET("/schedule/:date", h.DailySchedule)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}
