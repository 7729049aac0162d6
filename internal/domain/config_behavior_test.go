package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/imagegen/internal/domain"
)

// TestConfig_SetValue tests dotted key updates and validation
func TestConfig_SetValue(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantError bool
	}{
		{name: "sets aspect ratio", key: "preferences.default_aspect_ratio", value: "16:9"},
		{name: "rejects unknown aspect ratio", key: "preferences.default_aspect_ratio", value: "2:1", wantError: true},
		{name: "sets timeout", key: "preferences.timeout", value: "15"},
		{name: "rejects non-positive timeout", key: "preferences.timeout", value: "0", wantError: true},
		{name: "sets zero temperature", key: "gemini.temperature", value: "0"},
		{name: "sets fractional top_p", key: "gemini.top_p", value: "0.25"},
		{name: "sets zero top_k", key: "gemini.top_k", value: "0"},
		{name: "clears max tokens", key: "gemini.max_output_tokens", value: ""},
		{name: "rejects non-numeric temperature", key: "gemini.temperature", value: "warm", wantError: true},
		{name: "sets sqlite backend", key: "history.backend", value: "sqlite"},
		{name: "rejects unknown backend", key: "history.backend", value: "redis", wantError: true},
		{name: "rejects unknown key", key: "nope", value: "x", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg domain.Config
			err := cfg.SetValue(tt.key, tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, err := cfg.GetValue(tt.key)
			if err != nil {
				t.Fatalf("GetValue error: %v", err)
			}
			if got != tt.value {
				t.Errorf("got %s, want %s", got, tt.value)
			}
		})
	}
}

// TestConfig_Defaults tests derived values on a zero config
func TestConfig_Defaults(t *testing.T) {
	var cfg domain.Config
	if cfg.AspectRatio() != domain.AspectSquare {
		t.Errorf("AspectRatio() = %s, want 1:1", cfg.AspectRatio())
	}
	if cfg.Timeout() != 60*time.Second {
		t.Errorf("Timeout() = %s, want 60s", cfg.Timeout())
	}
	if cfg.BatchLimit() != domain.DefaultBatchConcurrency {
		t.Errorf("BatchLimit() = %d", cfg.BatchLimit())
	}
}
