package config

import (
	"testing"

	"github.com/doeshing/imagegen/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.Config)
		wantError bool
	}{
		{name: "zero config is valid", mutate: func(*domain.Config) {}},
		{name: "known ratio", mutate: func(c *domain.Config) { c.Preferences.DefaultAspectRatio = "9:16" }},
		{name: "unknown ratio", mutate: func(c *domain.Config) { c.Preferences.DefaultAspectRatio = "5:4" }, wantError: true},
		{name: "relative endpoint", mutate: func(c *domain.Config) { c.Gemini.Endpoint = "/v1beta" }, wantError: true},
		{name: "top_p out of range", mutate: func(c *domain.Config) { c.Gemini.TopP = ptr(1.5) }, wantError: true},
		{name: "zero temperature", mutate: func(c *domain.Config) { c.Gemini.Temperature = ptr(0.0) }},
		{name: "zero top_k", mutate: func(c *domain.Config) { c.Gemini.TopK = ptr(0) }},
		{name: "negative top_k", mutate: func(c *domain.Config) { c.Gemini.TopK = ptr(-1) }, wantError: true},
		{name: "temperature too high", mutate: func(c *domain.Config) { c.Gemini.Temperature = ptr(2.5) }, wantError: true},
		{name: "unknown threshold", mutate: func(c *domain.Config) { c.Gemini.SafetyThreshold = "BLOCK_ALL" }, wantError: true},
		{name: "unknown backend", mutate: func(c *domain.Config) { c.History.Backend = "redis" }, wantError: true},
		{name: "sqlite backend", mutate: func(c *domain.Config) { c.History.Backend = "sqlite" }},
		{name: "mixed case backend", mutate: func(c *domain.Config) { c.History.Backend = "SQLite" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg domain.Config
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
