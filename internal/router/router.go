package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskmail/internal/handler"
)

func SetupRoutes(
	e *echo.Echo,
	emailHandler *handler.EmailHandler,
	taskHandler *handler.TaskHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := e.Group("/api/v1")

	// Email routes
	api.POST("/email", emailHandler.IngestEmail)
	api.GET("/email/spam", emailHandler.GetSpamEmails)
	api.PATCH("/email/:id/not-spam", emailHandler.MarkNotSpam)
	api.PATCH("/email/:id/archive", emailHandler.ArchiveEmail)

	// Webhook endpoint, rate-limited on top of the security gate
	api.POST("/email/incoming", emailHandler.IncomingWebhook,
		middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// Task routes
	api.GET("/tasks", taskHandler.GetTasks)
	api.PATCH("/tasks/:id", taskHandler.UpdateTask)

	// Admin routes
	api.GET("/admin/webhook/security", adminHandler.GetWebhookSecurity)
	api.POST("/admin/webhook/security", adminHandler.CreateWebhookSecurity)
}
