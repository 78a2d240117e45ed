package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrCampaignNotFound is returned when a campaign is not found.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrInvalidCampaignID is returned when a campaign id is not a valid UUID.
	ErrInvalidCampaignID = errors.New("invalid campaign id format")
	// ErrInvalidAmount is returned when a donation amount is missing, non-numeric or not positive.
	ErrInvalidAmount = errors.New("donation amount must be greater than 0")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrEmailNotRegistered is returned when logging in with an unknown email.
	ErrEmailNotRegistered = errors.New("email not registered")
	// ErrIncorrectPassword is returned when the password hash comparison fails.
	ErrIncorrectPassword = errors.New("password incorrect")
	// ErrTokenNotFound is returned when a verification token does not exist.
	ErrTokenNotFound = errors.New("token not found")
	// ErrAccountNotFound is returned when a token's account no longer exists.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAlreadyVerified is returned when the account is already verified.
	ErrAlreadyVerified = errors.New("account already verified")
)

// ValidationError reports missing or out-of-range creation input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Malformed identifiers map
// to 400, absent records to 404, domain-rule violations to 400 and anything
// else to 500.
func MapErrorToHTTP(err error) *HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return NewHTTPError(http.StatusBadRequest, vErr.Message, "VALIDATION_ERROR")
	}

	switch err {
	case ErrCampaignNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "CAMPAIGN_NOT_FOUND")
	case ErrInvalidCampaignID:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CAMPAIGN_ID")
	case ErrInvalidAmount:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case ErrEmailNotRegistered:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_NOT_REGISTERED")
	case ErrIncorrectPassword:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INCORRECT_PASSWORD")
	case ErrTokenNotFound:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOKEN_NOT_FOUND")
	case ErrAccountNotFound:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ACCOUNT_NOT_FOUND")
	case ErrAlreadyVerified:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_VERIFIED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
