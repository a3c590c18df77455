package errors

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barpulse/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAPIError(t *testing.T) {
	t.Run("error message includes code", func(t *testing.T) {
		err := New(http.StatusBadRequest, "BAD_INPUT", "row index out of range")
		assert.Contains(t, err.Error(), "BAD_INPUT")
		assert.Contains(t, err.Error(), "row index out of range")
	})

	t.Run("validation helper", func(t *testing.T) {
		err := ErrValidation("Margin", "must be a number")
		assert.Equal(t, http.StatusBadRequest, err.StatusCode)
		require.NotNil(t, err.Details)
	})

	t.Run("unreadable upload wraps cause", func(t *testing.T) {
		cause := domain.NewFormatError("missing header row", nil)
		err := ErrUnreadableUpload(cause)
		assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
		assert.True(t, domain.IsFormatError(err))
	})
}

func TestProblemDetailsMarshal(t *testing.T) {
	pd := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "no dataset for category", "/api/inventory/wine").
		WithExtension("error_code", "NOT_FOUND")

	data, err := pd.MarshalJSON()
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"status":404`)
	assert.Contains(t, body, `"type":"/errors/not-found"`)
	assert.Contains(t, body, `"error_code":"NOT_FOUND"`)
	assert.Contains(t, body, `"instance":"/api/inventory/wine"`)
}

func TestErrorHandler(t *testing.T) {
	handler := NewErrorHandler(testLogger())

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "format error maps to 422",
			err:        domain.NewFormatError("file is empty", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeUnreadable,
		},
		{
			name:       "deadline exceeded maps to 504",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "api error keeps its status",
			err:        New(http.StatusNotFound, "NOT_FOUND", "no dataset loaded"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "unknown error maps to 500",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/inventory/spirits", nil)
			problem := handler.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/inventory/spirits", problem.Instance)
		})
	}

	t.Run("writes RFC 7807 response", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/inventory/beer", nil)
		w := httptest.NewRecorder()
		handler.HandleError(w, r, New(http.StatusNotFound, "NOT_FOUND", "no dataset loaded"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}
