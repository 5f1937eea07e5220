// Package web defines common components for a web application.
package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// BindError turns a gin binding error into a response, describing the first failed field.
func BindError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return Response{Error: ve[0].Field() + GetErrorMsg(ve[0])}
	}

	return Error(err)
}

// GetErrorMsg returns the human readable suffix for a failed validation tag.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "amount":
		return " must be a decimal number greater than 0"
	case "decimal":
		return " must be a non-negative decimal number"
	case "max":
		return " must be at most " + fe.Param() + " characters"
	}

	return " is invalid"
}
