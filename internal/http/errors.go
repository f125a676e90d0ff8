package httpx

import (
	"net/http"

	apperrors "github.com/spotdown/spotdown/internal/errors"
)

// StatusForError maps application error codes to HTTP status codes.
// Resolution failures surface as 400: from the client's perspective the track
// URL they submitted could not be turned into a track.
func StatusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeResolution:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError writes an application error as a JSON response with the
// mapped status code.
func WriteAppError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	WriteError(w, ErrorParams{Code: StatusForError(err), ErrCode: string(code), Err: err})
}
