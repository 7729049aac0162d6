package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/infrastructure/history"
)

type staticConfig struct {
	cfg domain.Config
	err error
}

func (s staticConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

func validConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Gemini: domain.GeminiSettings{
			Endpoint:   domain.DefaultGeminiEndpoint,
			ModelID:    domain.DefaultGeminiModel,
			AuthEnvVar: domain.DefaultAuthEnvVar,
		},
	}
}

func statuses(report domain.HealthReport) map[string]domain.HealthStatus {
	out := make(map[string]domain.HealthStatus, len(report.Checks))
	for _, check := range report.Checks {
		out[check.Name] = check.Status
	}
	return out
}

func TestRunReportsDemoModeAsWarning(t *testing.T) {
	svc := &Service{
		ConfigProvider: staticConfig{cfg: validConfig()},
		HistoryStore:   history.NewJSONStore(filepath.Join(t.TempDir(), "slot.json"), nil),
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]domain.HealthStatus{
		"Config file":     domain.HealthOK,
		"Gemini endpoint": domain.HealthOK,
		"API key":         domain.HealthWarn,
		"History store":   domain.HealthOK,
	}
	if diff := cmp.Diff(want, statuses(report)); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}
	if !report.Healthy() {
		t.Error("demo mode alone should not make the report unhealthy")
	}
}

func TestRunFlagsInvalidEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Gemini.Endpoint = "not a url"
	svc := &Service{ConfigProvider: staticConfig{cfg: cfg}, APIKey: "key"}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := statuses(report)
	if got["Gemini endpoint"] != domain.HealthError || got["API key"] != domain.HealthOK {
		t.Fatalf("unexpected statuses %v", got)
	}
	if report.Healthy() {
		t.Error("invalid endpoint should fail the report")
	}
}

func TestRunStopsOnConfigError(t *testing.T) {
	boom := errors.New("boom")
	svc := &Service{ConfigProvider: staticConfig{err: boom}}

	report, err := svc.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run error = %v", err)
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("unexpected report %+v", report)
	}
}
