// Package apperrors holds the error taxonomy shared by usecases and handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindAuthorization     Kind = "authorization"
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindBadRequest        Kind = "bad_request"
	KindTransientProvider Kind = "transient_provider"
	KindFatalOrchestrator Kind = "fatal_orchestrator"
	KindInternal          Kind = "internal"
)

type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func NotFound(format string, args ...interface{}) *AppError {
	return Newf(KindNotFound, format, args...)
}

func Forbidden(format string, args ...interface{}) *AppError {
	return Newf(KindAuthorization, format, args...)
}

func Validation(format string, args ...interface{}) *AppError {
	return Newf(KindValidation, format, args...)
}

func Conflict(format string, args ...interface{}) *AppError {
	return Newf(KindConflict, format, args...)
}

func BadRequest(format string, args ...interface{}) *AppError {
	return Newf(KindBadRequest, format, args...)
}

// KindOf returns the kind of the first AppError in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the user facing message of the first AppError in the chain.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

func IsConflict(err error) bool {
	return err != nil && KindOf(err) == KindConflict
}

func IsAuthorization(err error) bool {
	return err != nil && KindOf(err) == KindAuthorization
}

func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// HTTPStatus maps an error onto the status code returned by the API.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict, KindBadRequest:
		return http.StatusBadRequest
	case KindTransientProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
