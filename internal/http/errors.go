package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/order-wizard/ow-api/internal/errors"
)

// statusForError maps an application error to an HTTP status and a stable
// error code for the response body. Unknown errors become a 500 so callers
// never leak internal details by accident.
func statusForError(err error) (int, string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "internal"
	}

	switch appErr.Code {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest, "validation"
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, "not_found"
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, "conflict"
	case apperrors.ErrCodeAuth:
		return http.StatusBadRequest, "auth_failed"
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized, "authentication_required"
	case apperrors.ErrCodeTransport:
		return http.StatusBadGateway, "upstream_unreachable"
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, "timeout"
	case apperrors.ErrCodeCanceled:
		return http.StatusBadRequest, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// WriteAppError renders err as a JSON error response using the status
// mapping above. Internal causes are collapsed to the AppError message so
// wrapped driver errors stay out of responses.
func WriteAppError(w http.ResponseWriter, err error) {
	code, errCode := statusForError(err)

	msg := err
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		msg = errors.New(appErr.Message)
	}
	if code == http.StatusInternalServerError {
		msg = errors.New("internal server error")
	}

	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: msg})
}
