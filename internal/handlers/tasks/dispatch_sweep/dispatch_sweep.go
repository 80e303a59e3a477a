package dispatch_sweep

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type DispatchSweep struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func NewDispatchSweep(log handlerLogger, service Service, interval time.Duration) *DispatchSweep {
	return &DispatchSweep{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (d *DispatchSweep) TTL() time.Duration {
	return d.interval
}

// Do один проход по неназначенным заказам. Проход не должен пересекаться со следующим тиком.
func (d *DispatchSweep) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	assigned, err := d.service.Sweep(ctxWithTimeout)

	if assigned > 0 {
		d.log.Info("dispatch sweep",
			logger.NewField("assigned_orders", assigned),
		)
	}

	return err
}

func (d *DispatchSweep) Info() string {
	return "dispatch sweep"
}
