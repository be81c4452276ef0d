package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cardap-io/cardap/internal/domain"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ECONFLICT:
		return http.StatusConflict // 409
	case domain.ECLOSED:
		return http.StatusConflict // 409
	case domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// ErrorResponse writes a domain error as a JSON error envelope. Internal
// errors get a generic message so backend details never reach clients.
// Validation errors carry their per-field messages.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsValidationError(err) {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    domain.EINVALID,
			Message: err.Error(),
			Fields:  domain.GetValidationFields(err),
		}})
		return
	}

	code := domain.ErrorCode(err)
	writeJSON(w, ErrorCodeToHTTPStatus(code), errorEnvelope{Error: errorBody{
		Code:    code,
		Message: domain.ErrorMessage(err),
	}})
}

// ValidationErrorResponse writes a validation error with its per-field
// messages. Non-validation errors fall back to the plain envelope.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	ErrorResponse(w, r, err)
}

// NotFoundResponse writes a generic 404 error.
func NotFoundResponse(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.NotFound("", "resource", ""))
}

// BadRequestResponse writes a 400 error with the given message.
func BadRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	ErrorResponse(w, r, domain.Invalid("", message))
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
