package doctor

import (
	"context"
	"fmt"
	"net/url"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	HistoryStore   ports.HistoryRepository
	// APIKey is the resolved Gemini credential; empty means demo mode.
	APIKey string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded version %s", cfg.ConfigFormatVersion)))

	checks = append(checks, endpointCheck(cfg.Gemini))
	checks = append(checks, s.apiKeyCheck(cfg.Gemini))
	checks = append(checks, s.historyCheck(ctx))

	return domain.HealthReport{Checks: checks}, nil
}

func endpointCheck(settings domain.GeminiSettings) domain.HealthCheck {
	parsed, err := url.Parse(settings.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fail("Gemini endpoint", fmt.Sprintf("invalid endpoint %q", settings.Endpoint))
	}
	return ok("Gemini endpoint", fmt.Sprintf("%s (model %s)", settings.Endpoint, settings.ModelID))
}

func (s *Service) apiKeyCheck(settings domain.GeminiSettings) domain.HealthCheck {
	if s.APIKey == "" {
		envVar := settings.AuthEnvVar
		if envVar == "" {
			envVar = domain.DefaultAuthEnvVar
		}
		return warn("API key", fmt.Sprintf("%s not set, placeholders only (demo mode)", envVar))
	}
	return ok("API key", "configured")
}

func (s *Service) historyCheck(ctx context.Context) domain.HealthCheck {
	if s.HistoryStore == nil {
		return warn("History store", "not initialized")
	}
	if err := s.HistoryStore.Load(ctx); err != nil {
		return fail("History store", err.Error())
	}
	records, err := s.HistoryStore.List("")
	if err != nil {
		return fail("History store", err.Error())
	}
	return ok("History store", fmt.Sprintf("%d records at %s", len(records), s.HistoryStore.Path()))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
