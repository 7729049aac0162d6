package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyPrompt is returned when a prompt is empty after trimming.
	ErrEmptyPrompt = errors.New("please enter a prompt to generate an image")
	// ErrStoreNotLoaded is returned by history operations issued before Load.
	ErrStoreNotLoaded = errors.New("history store not loaded")
	// ErrDuplicateRecord is returned when Append is given an id already stored.
	ErrDuplicateRecord = errors.New("history record already exists")
)

// ErrorKind classifies why a generation degraded to a placeholder.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindNotFound      ErrorKind = "not_found"
	KindPermission    ErrorKind = "permission"
	KindRateLimit     ErrorKind = "rate_limit"
	KindServer        ErrorKind = "server"
	KindAPI           ErrorKind = "api"
	KindParseAnomaly  ErrorKind = "parse_anomaly"
	KindNetwork       ErrorKind = "network"
)

// GenerationError carries the kind, an HTTP-like status and a readable message.
type GenerationError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Annotate appends the explanation shown in a fallback caption.
func (e *GenerationError) Annotate(prompt string) string {
	if e == nil {
		return prompt
	}
	if e.Kind == KindParseAnomaly && e.Err == nil {
		return fmt.Sprintf("%s (%s)", prompt, e.Message)
	}
	return fmt.Sprintf("%s (Demo Mode - %s)", prompt, e.Message)
}

const (
	msgMissingCredential = "Gemini API key is not configured. Please set %s in your environment."
	msgModelNotFound     = "Image generation model not found. The Gemini image generation model may not be available in your region."
	msgPermissionDenied  = "API key does not have permission for image generation. Please check your API key permissions."
	msgRateLimited       = "Rate limit exceeded. Please wait a moment before trying again."
	msgNoImagePart       = `The API responded but didn't generate an image - try adding "generate an image of" to your prompt`
)

// NewConfigurationError reports a missing credential named by envVar.
func NewConfigurationError(envVar string) *GenerationError {
	return &GenerationError{
		Kind:    KindConfiguration,
		Status:  http.StatusUnauthorized,
		Message: fmt.Sprintf(msgMissingCredential, envVar),
	}
}

// NewStatusError classifies a non-success provider response.
// serverMessage is the provider's error.message, possibly empty.
func NewStatusError(status int, statusText, serverMessage string) *GenerationError {
	switch status {
	case http.StatusNotFound:
		return &GenerationError{Kind: KindNotFound, Status: status, Message: msgModelNotFound}
	case http.StatusForbidden:
		return &GenerationError{Kind: KindPermission, Status: status, Message: msgPermissionDenied}
	case http.StatusTooManyRequests:
		return &GenerationError{Kind: KindRateLimit, Status: status, Message: msgRateLimited}
	}

	message := serverMessage
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", status, statusText)
	}
	kind := KindAPI
	if status >= http.StatusInternalServerError {
		kind = KindServer
	}
	return &GenerationError{Kind: kind, Status: status, Message: message}
}

// NewNoImageError reports a successful response without inline image data.
func NewNoImageError() *GenerationError {
	return &GenerationError{Kind: KindParseAnomaly, Message: msgNoImagePart}
}

// NewDecodeError wraps a malformed provider response body.
func NewDecodeError(err error) *GenerationError {
	return &GenerationError{Kind: KindParseAnomaly, Message: err.Error(), Err: err}
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) *GenerationError {
	return &GenerationError{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// UserMessage maps an error to a short string suitable for a notification.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Status {
		case http.StatusBadRequest:
			return "Invalid request. Please check your prompt and try again."
		case http.StatusUnauthorized:
			return "API key is invalid or missing. Please check your configuration."
		case http.StatusForbidden:
			return "Access forbidden. Please check your API key permissions."
		case http.StatusTooManyRequests:
			return "Too many requests. Please wait a moment and try again."
		case http.StatusInternalServerError:
			return "Server error. Please try again later."
		}
		if genErr.Message != "" {
			return genErr.Message
		}
		return "An unexpected error occurred."
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}
