package http

import (
	"github.com/amankumarsingh77/channel-monitor/internal/downloads"
	"github.com/amankumarsingh77/channel-monitor/internal/middleware"
	"github.com/labstack/echo/v4"
)

func MapDownloadsRoutes(videosGroup *echo.Group, h downloads.Handlers, mw *middleware.MiddlewareManager) {
	videosGroup.Use(mw.AuthJWTMiddleware())
	videosGroup.POST("/download", h.Download())
	videosGroup.GET("/:id/progress", h.GetProgress())
	videosGroup.GET("/:id/archive-url", h.ArchiveURL())
	videosGroup.GET("/ws/:id", h.ProgressStream())
}
