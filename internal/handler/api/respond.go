// Package api contains the JSON HTTP handlers for the store API.
//
// Success responses wrap payloads in a "data" envelope. Error responses carry
// a "message" field, plus per-field "errors" for validation failures.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

var validate = newValidator()

// newValidator builds the shared validator with json tag names, so field
// errors report "product_id" instead of "ProductID".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondData wraps the payload in the standard data envelope.
func respondData(w http.ResponseWriter, status int, v any) {
	respondJSON(w, status, map[string]any{"data": v})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps a domain error onto an HTTP response. Validation errors
// become a 422 with per-field messages; internal errors hide their cause.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if fields := domain.GetValidationFields(err); fields != nil {
		errs := make(map[string][]string, len(fields))
		for field, msg := range fields {
			errs[field] = []string{msg}
		}
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  errs,
		})
		return
	}

	code := domain.ErrorCode(err)
	status := statusForCode(code)

	if status >= 500 {
		attrs := []any{
			"error", err.Error(),
			"path", r.URL.Path,
			"method", r.Method,
		}
		if reqID := domain.RequestIDFromContext(r.Context()); reqID != "" {
			attrs = append(attrs, "request_id", reqID)
		}
		logger.Error("request failed", attrs...)
	}

	respondMessage(w, status, domain.ErrorMessage(err))
}

func statusForCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes the request body into dst and runs struct validation.
// Returns a ValidationError suitable for respondError.
func bindJSON(r *http.Request, dst any) error {
	const op = "request.bind"

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid(op, "Request body is empty")
		}
		return domain.Invalid(op, "Request body is not valid JSON")
	}

	if err := validate.Struct(dst); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			fields := make(map[string]string, len(verr))
			for _, fe := range verr {
				fields[fe.Field()] = validationMessage(fe.Field(), fe)
			}
			return &domain.ValidationError{Op: op, Fields: fields}
		}
		return domain.Invalid(op, "Request body is invalid")
	}
	return nil
}

func validationMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "The " + name + " field is required."
	case "email":
		return "The " + name + " must be a valid email address."
	case "min":
		if fe.Kind().String() == "string" {
			return "The " + name + " must be at least " + fe.Param() + " characters."
		}
		return "The " + name + " must be at least " + fe.Param() + "."
	case "max":
		if fe.Kind().String() == "string" {
			return "The " + name + " may not be greater than " + fe.Param() + " characters."
		}
		return "The " + name + " may not be greater than " + fe.Param() + "."
	case "gte":
		return "The " + name + " must be at least " + fe.Param() + "."
	case "oneof":
		return "The selected " + name + " is invalid."
	default:
		return "The " + name + " is invalid."
	}
}
