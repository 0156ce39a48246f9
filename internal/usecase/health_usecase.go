package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

// HealthCheck probes one dependency. Returning an error marks it down.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, timeout: 2 * time.Second}
}

// Check runs every probe and reports "ok" or "down" per dependency. The
// bool is false if any probe failed.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	healthy := true
	result := map[string]string{"status": "ok"}
	for name, check := range u.checks {
		if err := check(ctx); err != nil {
			result[name] = "down"
			healthy = false
			continue
		}
		result[name] = "ok"
	}
	if !healthy {
		result["status"] = "degraded"
	}
	return result, healthy
}
