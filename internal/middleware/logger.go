package middleware

import (
	"time"

	"github.com/amankumarsingh77/channel-monitor/pkg/utils"
	"github.com/labstack/echo/v4"
)

// RequestLoggerMiddleware logs method, uri, status and latency of every request.
func (mw *MiddlewareManager) RequestLoggerMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		req := ctx.Request()
		res := ctx.Response()
		mw.logger.Infof("RequestID: %s, Method: %s, URI: %s, Status: %v, Size: %v, Time: %s",
			utils.GetRequestID(ctx), req.Method, req.URL.String(), res.Status, res.Size, time.Since(start),
		)
		return err
	}
}
