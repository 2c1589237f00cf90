package http

import (
	"github.com/amankumarsingh77/channel-monitor/internal/auth"
	"github.com/amankumarsingh77/channel-monitor/internal/middleware"
	"github.com/labstack/echo/v4"
)

func MapAuthRoutes(authGroup *echo.Group, h auth.Handler, mw *middleware.MiddlewareManager) {
	authGroup.POST("/register", h.Register())
	authGroup.POST("/login", h.Login())
	authGroup.Use(mw.AuthJWTMiddleware())
	authGroup.GET("/me", h.GetMe())
	authGroup.GET("/:user_id", h.GetUserByID(), mw.OwnerOrAdminMiddleware())
}
