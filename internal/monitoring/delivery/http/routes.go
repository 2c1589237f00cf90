package http

import (
	"github.com/amankumarsingh77/channel-monitor/internal/middleware"
	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/internal/monitoring"
	"github.com/labstack/echo/v4"
)

func MapMonitoringRoutes(monitoringGroup *echo.Group, h monitoring.Handlers, mw *middleware.MiddlewareManager) {
	monitoringGroup.Use(mw.AuthJWTMiddleware())
	monitoringGroup.POST("", h.Create())
	monitoringGroup.GET("", h.List())
	monitoringGroup.POST("/sweep", h.Sweep(), mw.RoleBasedAuthMiddleware([]models.Role{models.AdminRole}))
	monitoringGroup.GET("/:id", h.GetByID())
	monitoringGroup.PUT("/:id", h.Update())
	monitoringGroup.DELETE("/:id", h.Delete())
	monitoringGroup.GET("/:id/videos", h.ListVideos())
	monitoringGroup.POST("/:id/start", h.Start())
	monitoringGroup.POST("/:id/stop", h.Stop())
}
