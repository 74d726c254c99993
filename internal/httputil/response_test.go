package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/containertoken/internal/errors"
)

func newTestGinContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedCode  int
		expectedError string
	}{
		{
			name:          "not found",
			err:           apperrors.Wrap(apperrors.ErrNotFound, "container not found"),
			expectedCode:  http.StatusNotFound,
			expectedError: "not_found",
		},
		{
			name:          "conflict",
			err:           apperrors.Wrap(apperrors.ErrConflict, "container already registered"),
			expectedCode:  http.StatusConflict,
			expectedError: "conflict",
		},
		{
			name:          "invalid input",
			err:           apperrors.Wrap(apperrors.ErrInvalidInput, "token identifier is malformed"),
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "invalid_input",
		},
		{
			name:          "unauthorized",
			err:           apperrors.Wrap(apperrors.ErrUnauthorized, "token signature mismatch"),
			expectedCode:  http.StatusUnauthorized,
			expectedError: "unauthorized",
		},
		{
			name:          "forbidden",
			err:           apperrors.Wrap(apperrors.ErrForbidden, "identity not authorized"),
			expectedCode:  http.StatusForbidden,
			expectedError: "forbidden",
		},
		{
			name:          "internal error",
			err:           errors.New("unexpected failure"),
			expectedCode:  http.StatusInternalServerError,
			expectedError: "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(t)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedError)
		})
	}

	t.Run("Success_NilErrorWritesNothing", func(t *testing.T) {
		c, w := newTestGinContext(t)

		HandleErrorGin(c, nil, nil)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestGinContext(t)

	HandleBadRequestGin(c, errors.New("invalid JSON"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestGinContext(t)

	HandleValidationErrorGin(c, errors.New("node_address: must not be blank"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestMakeJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	MakeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
