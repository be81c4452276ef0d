package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardap-io/cardap/internal/domain"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.ECLOSED, http.StatusConflict},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"unknown_code", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ErrorCodeToHTTPStatus(tt.code); got != tt.expected {
				t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", tt.code, got, tt.expected)
			}
		})
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found error",
			err:            domain.NotFound("catalog.get_product", "product", "abc-123"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.ENOTFOUND,
		},
		{
			name:           "invalid error",
			err:            domain.Invalid("catalog.create_product", "price must not be negative"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   domain.EINVALID,
		},
		{
			name:           "closed error",
			err:            domain.ErrRestaurantClosed,
			expectedStatus: http.StatusConflict,
			expectedCode:   domain.ECLOSED,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			rec := httptest.NewRecorder()

			ErrorResponse(rec, req, tt.err)

			if rec.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.expectedStatus)
			}

			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want %q", ct, "application/json")
			}

			var response struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}

			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response.Error.Code != tt.expectedCode {
				t.Errorf("error.code = %q, want %q", response.Error.Code, tt.expectedCode)
			}
		})
	}
}

func TestErrorResponse_InternalHidesDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	err := domain.Internal(nil, "db.query", "failed to connect to database at 192.168.1.100:5432")
	ErrorResponse(rec, req, err)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var response struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	expected := "An internal error occurred. Please try again later."
	if response.Error.Message != expected {
		t.Errorf("message = %q, want %q", response.Error.Message, expected)
	}
}

func TestValidationErrorResponse_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rec := httptest.NewRecorder()

	err := domain.NewValidationError("checkout.validate", "name", "Informe seu nome")
	err = domain.AddFieldError(err, "payment_method", "Escolha a forma de pagamento")

	ValidationErrorResponse(rec, req, err)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var response struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}

	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Error.Code != domain.EINVALID {
		t.Errorf("error.code = %q, want %q", response.Error.Code, domain.EINVALID)
	}

	if len(response.Error.Fields) != 2 {
		t.Errorf("fields count = %d, want 2", len(response.Error.Fields))
	}

	if response.Error.Fields["name"] != "Informe seu nome" {
		t.Errorf("fields[name] = %q", response.Error.Fields["name"])
	}
}

func TestValidationErrorResponse_NonValidationError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rec := httptest.NewRecorder()

	err := domain.NotFound("catalog.get_product", "product", "123")
	ValidationErrorResponse(rec, req, err)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
