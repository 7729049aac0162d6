package domain

// HealthStatus is the outcome of one doctor check, ordered by severity.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

var healthSeverity = map[HealthStatus]int{HealthOK: 0, HealthWarn: 1, HealthError: 2}

// HealthCheck is a single named diagnostic.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport is the ordered list of checks from one doctor run.
type HealthReport struct {
	Checks []HealthCheck
}

// Count returns how many checks ended with status.
func (r HealthReport) Count(status HealthStatus) int {
	n := 0
	for _, check := range r.Checks {
		if check.Status == status {
			n++
		}
	}
	return n
}

// Overall is the most severe status in the report, HealthOK when empty.
func (r HealthReport) Overall() HealthStatus {
	worst := HealthOK
	for _, check := range r.Checks {
		if healthSeverity[check.Status] > healthSeverity[worst] {
			worst = check.Status
		}
	}
	return worst
}

// Healthy is true when no check failed. Warnings such as demo mode are tolerated.
func (r HealthReport) Healthy() bool {
	return r.Overall() != HealthError
}
