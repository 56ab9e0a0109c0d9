// Package api contains the JSON HTTP handlers for the storefront API.
// Handlers decode and validate requests, call services, and write the
// response envelope; business rules live in the service layer.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shopeasy/shopeasy/internal/domain"
	"github.com/shopeasy/shopeasy/internal/middleware"
)

// validate checks request structs tagged with `validate` rules.
var validate = validator.New(validator.WithRequiredStructEnabled())

// debugErrors controls whether 5xx responses carry the underlying error
// chain instead of the generic message. Off outside dev.
var debugErrors bool

// EnableDebugErrors switches 5xx responses to include error detail.
// Called once at startup when running in dev.
func EnableDebugErrors() {
	debugErrors = true
}

// Envelope is the uniform response shape. Success responses carry Data;
// failures carry Message and optionally per-field Errors.
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// RespondJSON writes a success envelope.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

// RespondError maps a domain error onto the envelope and HTTP status.
// Internal errors are logged with their full chain; the client sees the
// generic message unless debug errors are enabled.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request failed", attrs...)
	}

	env := Envelope{Success: false, Message: domain.ErrorMessage(err)}
	if debugErrors && status >= 500 {
		env.Message = err.Error()
	}
	if fields := domain.GetValidationFields(err); fields != nil {
		env.Errors = fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodes a request body into dst and runs validator rules.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Errorf(domain.EINVALID, "", "Request body is required")
		}
		return domain.Errorf(domain.EINVALID, "", "Invalid JSON body")
	}

	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return domain.Internal(err, "api.decode", "failed to validate request")
		}

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var fieldErr error
			for _, fe := range verrs {
				fieldErr = domain.AddFieldError(fieldErr, fe.Field(), validationMessage(fe))
			}
			return fieldErr
		}
		return domain.Errorf(domain.EINVALID, "", "Invalid request")
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "gte":
		return "Must be at least " + fe.Param()
	default:
		return "Invalid value"
	}
}

// parseUUIDField parses a UUID carried in a request body field.
func parseUUIDField(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.AddFieldError(nil, field, "Must be a valid UUID")
	}
	return id, nil
}

// PathUUID parses a UUID path segment registered with the given name.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.EINVALID, "", "Invalid %s: %q", name, raw)
	}
	return id, nil
}

// RequestUser returns the authenticated user. Routes behind RequireAuth
// always have one; the nil check guards against wiring mistakes.
func RequestUser(r *http.Request) (*domain.User, error) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		return nil, domain.Unauthorized("api.user", "Authentication required")
	}
	return user, nil
}
