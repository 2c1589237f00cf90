package utils

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/amankumarsingh77/channel-monitor/internal/models"
	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/logger"
	"github.com/labstack/echo/v4"
)

type UserCtxKey struct{}

func GetUserFromCtx(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(UserCtxKey{}).(*models.User)
	if !ok {
		return nil, apperrors.Forbidden("user not found in context")
	}
	return user, nil
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey{}, user)
}

func GetRequestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func GetIPAddress(c echo.Context) string {
	return c.Request().RemoteAddr
}

// ReadRequest binds the body into request and validates its tags.
func ReadRequest(c echo.Context, request interface{}) error {
	if err := c.Bind(request); err != nil {
		return apperrors.Validation("invalid request payload: %v", err)
	}
	if err := ValidateStruct(c.Request().Context(), request); err != nil {
		return apperrors.Validation("%v", err)
	}
	return nil
}

// GetInt64Param parses a positive numeric path parameter.
func GetInt64Param(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid %s", name)
	}
	return id, nil
}

// ErrResponseWithLog logs err with the request id and writes the mapped status.
func ErrResponseWithLog(c echo.Context, log logger.Logger, err error) error {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("ErrResponseWithLog, RequestID: %s, IPAddress: %s, Error: %s",
			GetRequestID(c),
			GetIPAddress(c),
			err,
		)
	} else {
		log.Warnf("RequestID: %s, Status: %d, Error: %s", GetRequestID(c), status, err)
	}
	return c.JSON(status, map[string]string{"error": apperrors.Message(err)})
}

// MessageResponse is the body of endpoints that only acknowledge an action.
func MessageResponse(format string, args ...interface{}) map[string]string {
	return map[string]string{"message": fmt.Sprintf(format, args...)}
}
