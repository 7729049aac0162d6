package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/doeshing/imagegen/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	if err := validateGemini(cfg.Gemini); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	return nil
}

func validatePreferences(prefs domain.Preferences) error {
	if prefs.DefaultAspectRatio != "" && !domain.AspectRatio(prefs.DefaultAspectRatio).Valid() {
		return fmt.Errorf("preferences.default_aspect_ratio must be one of %s, got %s", ratioList(), prefs.DefaultAspectRatio)
	}
	if prefs.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	if prefs.BatchConcurrency < 0 {
		return fmt.Errorf("preferences.batch_concurrency must be >= 0")
	}
	return nil
}

func validateGemini(g domain.GeminiSettings) error {
	if g.Endpoint != "" {
		u, err := url.Parse(g.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("gemini.endpoint must be an absolute URL, got %s", g.Endpoint)
		}
	}
	if t := g.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("gemini.temperature must be within [0, 2], got %g", *t)
	}
	if p := g.TopP; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("gemini.top_p must be within [0, 1], got %g", *p)
	}
	if k := g.TopK; k != nil && *k < 0 {
		return fmt.Errorf("gemini.top_k must be >= 0, got %d", *k)
	}
	if n := g.MaxOutputTokens; n != nil && *n < 0 {
		return fmt.Errorf("gemini.max_output_tokens must be >= 0, got %d", *n)
	}
	switch g.SafetyThreshold {
	case "", "BLOCK_NONE", "BLOCK_ONLY_HIGH", "BLOCK_MEDIUM_AND_ABOVE", "BLOCK_LOW_AND_ABOVE":
	default:
		return fmt.Errorf("gemini.safety_threshold %s is not a known threshold", g.SafetyThreshold)
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch domain.NormalizeBackend(history.Backend) {
	case domain.HistoryBackendJSON, domain.HistoryBackendSQLite:
		return nil
	default:
		return fmt.Errorf("history.backend must be json|sqlite, got %s", history.Backend)
	}
}

func ratioList() string {
	var parts []string
	for _, r := range domain.AspectRatios() {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ", ")
}
