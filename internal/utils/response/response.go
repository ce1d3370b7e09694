// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Classification errors use the {"number": ..., "error": true} shape the
// public API promises. Every other endpoint reports errors as
//
//	{ "status": "error", "error": "field Limit is invalid" }
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aanand-mishra/number-classifier/internal/types"
	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope for non-classification errors.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
// Header() → WriteHeader() → body, in that order.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// ClassificationError builds the 400 body for a number that could not be
// classified, echoing the raw input back.
func ClassificationError(raw string) types.ErrorResult {
	return types.ErrorResult{
		Number: raw,
		Error:  true,
	}
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts validator field errors into one readable
// Response.
//
//	{ "status": "error", "error": "field Limit must be at least 1" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "min":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "max":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
