package apperrors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("job %d not found", 1), http.StatusNotFound},
		{"forbidden", Forbidden("no access"), http.StatusForbidden},
		{"validation", Validation("interval required"), http.StatusUnprocessableEntity},
		{"conflict", Conflict("already running"), http.StatusBadRequest},
		{"bad request", Wrap(KindBadRequest, "failed to prepare download", sql.ErrConnDone), http.StatusBadRequest},
		{"provider", Wrap(KindTransientProvider, "youtube", sql.ErrConnDone), http.StatusBadGateway},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestKindOf_ThroughWrapping(t *testing.T) {
	base := NotFound("video %d not found", 7)

	wrapped := errors.Wrap(fmt.Errorf("repo: %w", base), "downloadsUC.Download")

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(wrapped))
	assert.Equal(t, "video 7 not found", Message(wrapped))
}

func TestAppError_ErrorIncludesCause(t *testing.T) {
	err := Wrap(KindInternal, "failed to start", sql.ErrNoRows)

	assert.Equal(t, "failed to start: sql: no rows in result set", err.Error())
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.False(t, IsNotFound(nil))
}
