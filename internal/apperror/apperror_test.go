package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err    *Error
		kind   Kind
		status int
	}{
		{Validation("username is required"), KindValidation, http.StatusBadRequest},
		{Unprocessable("too short"), KindValidation, http.StatusUnprocessableEntity},
		{Auth("Invalid credentials"), KindAuth, http.StatusUnauthorized},
		{NotFound("User not found"), KindNotFound, http.StatusNotFound},
		{Conflict("Username already exists"), KindConflict, http.StatusConflict},
		{Internal(errors.New("boom")), KindInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, c.err.Kind, c.err.Message)
		assert.Equal(t, c.status, c.err.Status, c.err.Message)
	}
}

func TestFromWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("follow: %w", NotFound("User not found"))
	e := From(wrapped)
	assert.Equal(t, KindNotFound, e.Kind)
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindConflict))

	plain := From(context.DeadlineExceeded)
	assert.Equal(t, KindInternal, plain.Kind)
	assert.ErrorIs(t, plain, context.DeadlineExceeded)
	assert.Nil(t, From(nil))
}

func TestWriteHidesInternalDetail(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core).Sugar()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	Write(rec, req, logger, true, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}

func TestWriteClientErrorsQuietInProduction(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core).Sugar()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	Write(rec, req, logger, true, Conflict("Username already exists"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Username already exists"}`, rec.Body.String())
	assert.Zero(t, logs.Len())

	rec = httptest.NewRecorder()
	Write(rec, req, logger, false, Conflict("Username already exists"))
	assert.Equal(t, 1, logs.FilterMessage("request rejected").Len())
}
