package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stagemap/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]any{"month": "2021-01"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode(t, rec)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"month": "2021-01"}, resp.Data)
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errors.NewNotFoundError("month", "99"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped validation", fmt.Errorf("select: %w", errors.NewValidationError("index", 9, "out of range")), http.StatusBadRequest, "BAD_REQUEST"},
		{"load", errors.NewLoadError("data.json", 404, nil), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"wrapped load", fmt.Errorf("startup: %w", errors.NewLoadError("data.json", 0, errors.New("refused"))), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"closed", errors.ErrClosed, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorFromType(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	InternalError(rec, errors.New("secret path /etc/x"))
	assert.NotContains(t, rec.Body.String(), "secret")
}
