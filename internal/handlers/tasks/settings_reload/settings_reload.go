package settings_reload

import (
	"context"
	"time"
)

type Service interface {
	Reload(ctx context.Context) error
}

// SettingsReload подтягивает веса и тариф, измененные другими инстансами.
type SettingsReload struct {
	service  Service
	interval time.Duration
}

func NewSettingsReload(service Service, interval time.Duration) *SettingsReload {
	return &SettingsReload{
		service:  service,
		interval: interval,
	}
}

func (s *SettingsReload) TTL() time.Duration {
	return s.interval
}

func (s *SettingsReload) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	return s.service.Reload(ctxWithTimeout)
}

func (s *SettingsReload) Info() string {
	return "settings reload"
}
