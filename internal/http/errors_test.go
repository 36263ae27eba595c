package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/order-wizard/ow-api/internal/errors"
)

func TestWriteAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantErrCode string
	}{
		{
			name:        "validation maps to 400",
			err:         apperrors.Validation("productName is required"),
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "validation",
		},
		{
			name:        "not found maps to 404",
			err:         apperrors.NotFound("order not found"),
			wantStatus:  http.StatusNotFound,
			wantErrCode: "not_found",
		},
		{
			name:        "conflict maps to 409",
			err:         apperrors.Conflict("duplicate"),
			wantStatus:  http.StatusConflict,
			wantErrCode: "conflict",
		},
		{
			name:        "auth maps to 400",
			err:         apperrors.Auth("unknown or already used state"),
			wantStatus:  http.StatusBadRequest,
			wantErrCode: "auth_failed",
		},
		{
			name:        "unauthorized maps to 401",
			err:         apperrors.Unauthorized("no session"),
			wantStatus:  http.StatusUnauthorized,
			wantErrCode: "authentication_required",
		},
		{
			name:        "transport maps to 502",
			err:         apperrors.Transport("userinfo endpoint unreachable"),
			wantStatus:  http.StatusBadGateway,
			wantErrCode: "upstream_unreachable",
		},
		{
			name:        "internal maps to 500",
			err:         apperrors.Internal("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: "internal",
		},
		{
			name:        "plain error maps to 500",
			err:         errors.New("driver: bad connection"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErrCode, body["error"])
		})
	}
}

func TestWriteAppError_HidesInternalCauses(t *testing.T) {
	wrapped := apperrors.Wrap(errors.New("pq: connection refused"), apperrors.ErrCodeInternal, "saving order failed")

	rec := httptest.NewRecorder()
	WriteAppError(rec, wrapped)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestWriteAppError_UsesMessageNotCause(t *testing.T) {
	wrapped := apperrors.Wrap(errors.New("oauth2: invalid_grant"), apperrors.ErrCodeAuth, "code exchange failed")

	rec := httptest.NewRecorder()
	WriteAppError(rec, wrapped)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "code exchange failed", body["message"])
	assert.NotContains(t, rec.Body.String(), "invalid_grant")
}
