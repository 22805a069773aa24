// Package apierror defines the JSON error bodies returned by the API.
// Services return an ErrorResponse as their error value; routes serialize
// it with c.JSON(apierr.Code(), apierr).
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse interface {
	Code() int
}

type SimpleError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *SimpleError) Code() int {
	return e.StatusCode
}

func NewSimple(code int, message string) *SimpleError {
	return &SimpleError{StatusCode: code, Message: message}
}

// FieldsError carries per-field messages alongside the generic error, the
// shape clients expect for form validation.
type FieldsError struct {
	StatusCode  int               `json:"-"`
	Message     string            `json:"error"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

func (e *FieldsError) Code() int {
	return e.StatusCode
}

func NewFieldError(field, message string) *FieldsError {
	return &FieldsError{
		StatusCode:  http.StatusBadRequest,
		Message:     "Validation error",
		FieldErrors: map[string]string{field: message},
	}
}

func NewMissingParamError(name string) *SimpleError {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter '%s'", name))
}

func NewInvalidParamTypeError(name, expected string) *SimpleError {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter '%s' must be of type %s", name, expected))
}

// FromValidationError converts validator.ValidationErrors into a 400 with
// one message per offending field.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return MalformedBodyError
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageForTag(fe)
	}
	return &FieldsError{
		StatusCode:  http.StatusBadRequest,
		Message:     "Validation error",
		FieldErrors: fields,
	}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	case "mixedclasses":
		return "Use at least two of: letters, numbers, symbols"
	case "iso8601":
		return fmt.Sprintf("%s must be an ISO-8601 timestamp", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

var (
	MalformedBodyError      = NewSimple(http.StatusBadRequest, "Malformed request body")
	InternalServerError     = NewSimple(http.StatusInternalServerError, "Something went wrong")
	NotFoundError           = NewSimple(http.StatusNotFound, "Not found")
	InvalidAuthTokenError   = NewSimple(http.StatusUnauthorized, "Unauthorized")
	TooManyAttemptsError    = NewSimple(http.StatusTooManyRequests, "Too many attempts. Try again later.")
	InvalidCredentialsError = NewSimple(http.StatusBadRequest, "Invalid credentials")
	UserAlreadyExistsError  = &FieldsError{StatusCode: http.StatusBadRequest, Message: "User already exists", FieldErrors: map[string]string{"email": "This email is already in use"}}
	SelfLikeError           = NewFieldError("receiverId", "You cannot like yourself")
	MatchNotFoundError      = NewSimple(http.StatusNotFound, "Match not found")
	SlotNotFoundError       = NewSimple(http.StatusNotFound, "Slot not found")
	InviteNotFoundError     = NewSimple(http.StatusNotFound, "Invite not found")
	SlotAlreadyBookedError  = NewSimple(http.StatusConflict, "Slot already booked")
	OwnInviteAcceptError    = NewSimple(http.StatusForbidden, "You cannot accept your own invite")
	InvalidResetTokenError  = NewSimple(http.StatusBadRequest, "Invalid or expired reset token")
	SlotTimesOrderError     = NewFieldError("startTime", "startTime must be before endTime")
)
