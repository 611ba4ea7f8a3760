package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes exposed to API clients in the errCode field.
const (
	CodeAuth            = "AUTH"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUserExists      = "USER_EXISTS"
	CodeUnknownUser     = "UNKNOWN_USER"
	CodeInvalidPassword = "INVALID_PASSWORD"
	CodeInvalidID       = "INVALID_ID"
	CodeUnknownCase     = "UNKNOWN_CASE"
	CodeOperationFailed = "OPERATION_FAILED"
	CodeServerError     = "SERVER_ERR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches another DomainError by code, so errors.Is works against the
// package level constructors' results.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeAuth, message, http.StatusUnauthorized)
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest)
}

func NewUserExists(email string) error {
	return NewDomainError(CodeUserExists, fmt.Sprintf("user with email %s already exists", email), http.StatusConflict)
}

func NewUnknownUser(message string) error {
	return NewDomainError(CodeUnknownUser, message, http.StatusNotFound)
}

func NewInvalidPassword() error {
	return NewDomainError(CodeInvalidPassword, "invalid password", http.StatusUnauthorized)
}

func NewInvalidID() error {
	return NewDomainError(CodeInvalidID, "invalid id format", http.StatusBadRequest)
}

func NewUnknownCase(id string) error {
	return NewDomainError(CodeUnknownCase, fmt.Sprintf("case with id %s does not exist", id), http.StatusNotFound)
}

func NewOperationFailed(message string) error {
	return NewDomainError(CodeOperationFailed, message, http.StatusConflict)
}

// NewInternalError hides err from clients; it is kept for logging only.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeServerError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeOf returns the errCode of err, or SERVER_ERR for foreign errors.
func CodeOf(err error) string {
	return ToDomainError(err).Code
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return &DomainError{
		Code:       CodeServerError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func fromFiberError(err *fiber.Error) *DomainError {
	switch {
	case err.Code == http.StatusUnauthorized:
		return NewDomainError(CodeAuth, err.Message, err.Code)
	case err.Code == http.StatusTooManyRequests:
		return NewDomainError(CodeBadRequest, "too many requests", err.Code)
	case err.Code >= 400 && err.Code < 500:
		return NewDomainError(CodeBadRequest, err.Message, err.Code)
	default:
		return &DomainError{
			Code:       CodeServerError,
			Message:    "internal server error",
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		}
	}
}

