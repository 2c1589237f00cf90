package http

import (
	"github.com/amankumarsingh77/channel-monitor/internal/channels"
	"github.com/amankumarsingh77/channel-monitor/internal/middleware"
	"github.com/labstack/echo/v4"
)

func MapChannelsRoutes(channelsGroup *echo.Group, h channels.Handlers, mw *middleware.MiddlewareManager) {
	channelsGroup.Use(mw.AuthJWTMiddleware())
	channelsGroup.POST("", h.Create())
	channelsGroup.GET("", h.List())
	channelsGroup.GET("/:id", h.GetByID())
	channelsGroup.PUT("/:id", h.Update())
	channelsGroup.DELETE("/:id", h.Delete())
	channelsGroup.POST("/:id/sync", h.Sync())
	channelsGroup.POST("/:id/access", h.GrantAccess())
	channelsGroup.GET("/:id/videos", h.ListVideos())
	channelsGroup.GET("/:id/playlists", h.ListPlaylists())
}
