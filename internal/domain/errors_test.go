package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/doeshing/imagegen/internal/domain"
)

func TestNewStatusErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		serverMsg string
		wantKind  domain.ErrorKind
		wantMsg   string
	}{
		{"not found", 404, "ignored", domain.KindNotFound, "model not found"},
		{"forbidden", 403, "", domain.KindPermission, "permission"},
		{"rate limited", 429, "", domain.KindRateLimit, "Rate limit exceeded"},
		{"server error uses server message", 503, "backend overloaded", domain.KindServer, "backend overloaded"},
		{"bad request without message", 400, "", domain.KindAPI, "HTTP 400: Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.NewStatusError(tt.status, statusText(tt.status), tt.serverMsg)
			if err.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", err.Kind, tt.wantKind)
			}
			if err.Status != tt.status {
				t.Errorf("status = %d, want %d", err.Status, tt.status)
			}
			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func statusText(code int) string {
	switch code {
	case 400:
		return "Bad Request"
	case 503:
		return "Service Unavailable"
	default:
		return ""
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad request", &domain.GenerationError{Status: 400}, "Invalid request"},
		{"missing key", domain.NewConfigurationError("GEMINI_API_KEY"), "API key is invalid or missing"},
		{"forbidden", &domain.GenerationError{Status: 403}, "Access forbidden"},
		{"rate limited", &domain.GenerationError{Status: 429}, "Too many requests"},
		{"server", &domain.GenerationError{Status: 500}, "Server error"},
		{"raw message", &domain.GenerationError{Status: 418, Message: "teapot"}, "teapot"},
		{"generic", &domain.GenerationError{Status: 418}, "An unexpected error occurred."},
		{"wrapped", fmt.Errorf("generate: %w", &domain.GenerationError{Status: 429}), "Too many requests"},
		{"plain error", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.UserMessage(tt.err); !strings.HasPrefix(got, tt.want) {
				t.Errorf("UserMessage() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestGenerationErrorAnnotate(t *testing.T) {
	rate := domain.NewStatusError(429, "Too Many Requests", "")
	if got := rate.Annotate("a cat"); got != "a cat (Demo Mode - "+rate.Message+")" {
		t.Errorf("unexpected annotation %q", got)
	}

	noImage := domain.NewNoImageError()
	got := noImage.Annotate("a cat")
	if strings.Contains(got, "Demo Mode") || !strings.Contains(got, `try adding "generate an image of"`) {
		t.Errorf("unexpected no-image annotation %q", got)
	}

	network := domain.NewNetworkError(errors.New("dial tcp: refused"))
	if !errors.Is(network, network.Err) {
		t.Error("network error should unwrap to its cause")
	}
}
