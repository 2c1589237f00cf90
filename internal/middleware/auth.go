package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	jwtCookieName = "jwt-token"
	// browsers cannot set headers on a websocket handshake
	jwtQueryParam = "token"
)

// AuthJWTMiddleware resolves the caller from a bearer header, the jwt cookie or the token query param.
func (mw *MiddlewareManager) AuthJWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				mw.logger.Warnf("AuthJWTMiddleware RequestID: %s, Error: %v", utils.GetRequestID(c), err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			if err := mw.validateJWTToken(c, tokenString); err != nil {
				mw.logger.Warnf("AuthJWTMiddleware validateJWTToken RequestID: %s, Error: %v", utils.GetRequestID(c), err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, error) {
	if bearerHeader := c.Request().Header.Get(echo.HeaderAuthorization); bearerHeader != "" {
		headerParts := strings.Split(bearerHeader, " ")
		if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
			return "", fmt.Errorf("malformed authorization header")
		}
		return headerParts[1], nil
	}
	if cookie, err := c.Cookie(jwtCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	if token := c.QueryParam(jwtQueryParam); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no token provided")
}

func (mw *MiddlewareManager) validateJWTToken(c echo.Context, tokenString string) error {
	claims, err := utils.ValidateToken(tokenString, mw.cfg.Server.JwtSecretKey)
	if err != nil {
		return err
	}

	userUUID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return fmt.Errorf("invalid jwt claims: %w", err)
	}

	u, err := mw.authUC.GetByID(c.Request().Context(), userUUID)
	if err != nil {
		return err
	}

	c.Set("user", u)
	c.SetRequest(c.Request().WithContext(utils.WithUser(c.Request().Context(), u)))
	return nil
}

func (mw *MiddlewareManager) OwnerOrAdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*models.User)
			if !ok {
				mw.logger.Errorf("Error c.Get(user) RequestID: %s, ERROR: %s,", utils.GetRequestID(c), "invalid user ctx")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			if user.IsAdmin() || user.UserID.String() == c.Param("user_id") {
				return next(c)
			}

			mw.logger.Warnf("OwnerOrAdminMiddleware RequestID: %s, UserID: %s, forbidden",
				utils.GetRequestID(c),
				user.UserID.String(),
			)
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
		}
	}
}

func (mw *MiddlewareManager) RoleBasedAuthMiddleware(roles []models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get("user").(*models.User)
			if !ok {
				mw.logger.Errorf("Error c.Get(user) RequestID: %s, ERROR: %s,", utils.GetRequestID(c), "invalid user ctx")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			for _, role := range roles {
				if role == user.Role {
					return next(c)
				}
			}

			mw.logger.Warnf("RoleBasedAuthMiddleware RequestID: %s, UserID: %s, Role: %s, forbidden",
				utils.GetRequestID(c),
				user.UserID.String(),
				user.Role,
			)
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
		}
	}
}
