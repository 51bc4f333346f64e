package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeAppError   = "APP_ERROR"
	CodeSuggestion = "SUGGESTION_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeStore      = "STORE_ERROR"
	CodeService    = "SERVICE_ERROR"
	CodeBusy       = "BUSY"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

// SuggestionKind classifies why a suggestion request failed.
type SuggestionKind string

const (
	KindConfiguration SuggestionKind = "configuration"
	KindTransport     SuggestionKind = "transport"
	KindParse         SuggestionKind = "parse"
	KindValidation    SuggestionKind = "validation"
	KindUnknown       SuggestionKind = "unknown"
)

const (
	MsgInvalidAPIKey  = "The provided API key is not valid. Please check your environment configuration."
	MsgInvalidFormat  = "Invalid response format from API. The response did not contain the expected 'hashtags' or 'growthIdeas' properties."
	MsgUnknownFailure = "An unknown error occurred while fetching suggestions."

	MsgStoreUnavailable = "Session storage is unavailable. Please try again shortly."
)

// SuggestionError is the single failure channel of a suggestion request.
// Message is always safe to show to the end user.
type SuggestionError struct {
	*AppError
	Kind SuggestionKind
}

// Error returns the user-facing message only; the cause stays reachable via Unwrap.
func (e *SuggestionError) Error() string {
	return e.Message
}

func NewSuggestionError(kind SuggestionKind, cause error) *SuggestionError {
	var message string
	statusCode := 502

	switch kind {
	case KindConfiguration:
		message = MsgInvalidAPIKey
	case KindTransport, KindParse:
		detail := "unknown error"
		if cause != nil {
			detail = cause.Error()
		}
		message = "Failed to get suggestions: " + detail
	case KindValidation:
		message = "Failed to get suggestions: " + MsgInvalidFormat
	default:
		kind = KindUnknown
		message = MsgUnknownFailure
		statusCode = 500
	}

	return &SuggestionError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeSuggestion,
			StatusCode: statusCode,
			Context: map[string]any{
				"kind": string(kind),
			},
			Cause: cause,
		},
		Kind: kind,
	}
}

// KindOf reports the kind of a suggestion failure, or KindUnknown for any other error.
func KindOf(err error) SuggestionKind {
	var se *SuggestionError
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

type ValidationError struct {
	*AppError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type StoreError struct {
	*AppError
	Operation string
	Key       string
}

func NewStoreError(message, operation, key string, cause error) *StoreError {
	return &StoreError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeStore,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AppError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// StatusCodeOf extracts the HTTP status carried by an AppError-derived error.
func StatusCodeOf(err error, fallback int) int {
	var se *SuggestionError
	if stderrors.As(err, &se) {
		return se.StatusCode
	}
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve.StatusCode
	}
	var st *StoreError
	if stderrors.As(err, &st) {
		return st.StatusCode
	}
	var sv *ServiceError
	if stderrors.As(err, &sv) {
		return sv.StatusCode
	}
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae.StatusCode
	}
	return fallback
}
