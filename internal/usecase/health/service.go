package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks over the registered collections.
type Service struct {
	components []Pinger
}

// New creates a Service. Nil components are skipped.
func New(components ...Pinger) *Service {
	s := &Service{}
	for _, c := range components {
		if c != nil {
			s.components = append(s.components, c)
		}
	}
	return s
}

// Check pings every component. The report is ok when all pass, error when
// all fail (or none are registered), degraded otherwise.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.components))
	failed := 0

	for _, c := range s.components {
		if err := c.Ping(ctx); err != nil {
			checks[c.Name()] = CheckError
			failed++
			continue
		}
		checks[c.Name()] = CheckOK
	}

	status := Healthy
	switch {
	case len(s.components) == 0 || failed == len(s.components):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
