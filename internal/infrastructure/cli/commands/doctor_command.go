package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/imagegen/internal/app"
	"github.com/doeshing/imagegen/internal/domain"
)

// NewDoctorCommand checks config, credential and history health.
// It exits non-zero only when a check fails; demo mode is a warning.
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.DoctorService == nil {
				return fmt.Errorf(ErrDoctorServiceUnavailable)
			}

			report, err := container.DoctorService.Run(cmd.Context())
			writeHealthReport(cmd.OutOrStdout(), report)
			if err != nil {
				return fmt.Errorf("diagnostics aborted: %w", err)
			}
			if failed := report.Count(domain.HealthError); failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}

var overallWords = map[domain.HealthStatus]string{
	domain.HealthOK:    "healthy",
	domain.HealthWarn:  "degraded",
	domain.HealthError: "unhealthy",
}

var statusMarks = map[domain.HealthStatus]string{
	domain.HealthOK:    "ok",
	domain.HealthWarn:  "!!",
	domain.HealthError: "xx",
}

func writeHealthReport(out io.Writer, report domain.HealthReport) {
	width := 0
	for _, check := range report.Checks {
		width = max(width, len(check.Name))
	}
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %-*s  %s\n", statusMarks[check.Status], width, check.Name, check.Details)
	}
	fmt.Fprintf(out, "%s: %d ok, %d warnings, %d failed\n",
		strings.ToUpper(overallWords[report.Overall()]),
		report.Count(domain.HealthOK),
		report.Count(domain.HealthWarn),
		report.Count(domain.HealthError))
}
