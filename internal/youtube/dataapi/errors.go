package dataapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
	"github.com/amankumarsingh77/channel-monitor/pkg/retry"
	"google.golang.org/api/googleapi"
)

var errChannelNotFound = apperrors.NotFound("channel not found on youtube")

var retryableReasons = map[string]bool{
	"quotaExceeded":         true,
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
	"backendError":          true,
}

// isRetryable reports whether a Data API call is worth another attempt.
func isRetryable(err error) bool {
	if !retry.IsRetryable(err) || apperrors.IsNotFound(err) || apperrors.IsValidation(err) {
		return false
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if gErr.Code == http.StatusTooManyRequests || gErr.Code >= http.StatusInternalServerError {
			return true
		}
		for _, item := range gErr.Errors {
			if retryableReasons[item.Reason] {
				return true
			}
		}
		return false
	}
	return true
}

// classify maps a failed call onto the application error taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch {
		case gErr.Code == http.StatusNotFound:
			return apperrors.Wrap(apperrors.KindNotFound, op, err)
		case gErr.Code == http.StatusBadRequest || gErr.Code == http.StatusUnauthorized:
			return apperrors.Wrap(apperrors.KindValidation, op, err)
		case gErr.Code == http.StatusForbidden && !isRetryable(gErr):
			return apperrors.Wrap(apperrors.KindValidation, op, err)
		}
	}
	return apperrors.Wrap(apperrors.KindTransientProvider, op, err)
}
