package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name: "from context",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-request-id")
			},
			expectedID: "ctx-request-id",
		},
		{
			name: "from header when context empty",
			setup: func(c *gin.Context) {
				c.Request.Header.Set("X-Request-ID", "header-request-id")
			},
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-id")
				c.Request.Header.Set("X-Request-ID", "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)
			tt.setup(c)

			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Created(c, map[string]string{"id": "new"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBaseHandlerNoContent(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.NoContent(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandlerErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		invoke   func(h *BaseHandler, c *gin.Context)
		wantCode int
		wantErr  string
	}{
		{
			name:     "bad request",
			invoke:   func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad input") },
			wantCode: http.StatusBadRequest,
			wantErr:  dto.ErrCodeBadRequest,
		},
		{
			name:     "not found",
			invoke:   func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") },
			wantCode: http.StatusNotFound,
			wantErr:  dto.ErrCodeNotFound,
		},
		{
			name:     "conflict",
			invoke:   func(h *BaseHandler, c *gin.Context) { h.Conflict(c, "version conflict") },
			wantCode: http.StatusConflict,
			wantErr:  dto.ErrCodeConflict,
		},
		{
			name: "unprocessable entity",
			invoke: func(h *BaseHandler, c *gin.Context) {
				h.UnprocessableEntity(c, dto.ErrCodeInvalidState, "cannot finalize")
			},
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  dto.ErrCodeInvalidState,
		},
		{
			name:     "internal error",
			invoke:   func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "boom") },
			wantCode: http.StatusInternalServerError,
			wantErr:  dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			tt.invoke(h, c)

			assert.Equal(t, tt.wantCode, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
		})
	}
}

func TestHandleDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "not found",
			err:      shared.NewDomainError("NOT_FOUND", "purchase not found"),
			wantCode: http.StatusNotFound,
			wantErr:  dto.ErrCodeNotFound,
		},
		{
			name:     "invalid state",
			err:      shared.NewDomainError("INVALID_STATE", "invoice already issued"),
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  dto.ErrCodeInvalidState,
		},
		{
			name:     "period closed",
			err:      shared.NewDomainError("PERIOD_CLOSED", "period 2026-03 is closed"),
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  dto.ErrCodePeriodClosed,
		},
		{
			name:     "exceeds balance",
			err:      shared.NewDomainError("EXCEEDS_BALANCE", "payment exceeds balance due"),
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  dto.ErrCodeExceedsBalance,
		},
		{
			name:     "bespoke domain code maps to 422 and keeps its code",
			err:      shared.NewDomainError("DUPLICATE_VIN", "a vehicle with this VIN already exists"),
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "DUPLICATE_VIN",
		},
		{
			name:     "non-domain error never leaks internals",
			err:      assert.AnError,
			wantCode: http.StatusInternalServerError,
			wantErr:  dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
			if tt.name == "non-domain error never leaks internals" {
				assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
			}
		})
	}
}
