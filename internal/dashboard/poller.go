package dashboard

import (
	"context"
	"puredrop/internal/models"
	"time"

	"github.com/sirupsen/logrus"
)

const DefaultPollInterval = 5 * time.Second

type FetchFunc func(ctx context.Context) ([]models.Order, error)

// Poller refreshes a shop's orders on a fixed interval. Only one fetch is in
// flight at a time; a failed fetch is logged and retried on the next tick.
type Poller struct {
	interval time.Duration
	fetch    FetchFunc
	onUpdate func([]models.Order)
	logger   *logrus.Logger
}

func NewPoller(interval time.Duration, fetch FetchFunc, onUpdate func([]models.Order), logger *logrus.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		interval: interval,
		fetch:    fetch,
		onUpdate: onUpdate,
		logger:   logger,
	}
}

// Run polls immediately and then on every tick until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
			// drop a tick that fired while the fetch was running
			select {
			case <-ticker.C:
			default:
			}
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	orders, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.WithError(err).Warn("Failed to fetch orders, retrying on next tick")
		return
	}
	if p.onUpdate != nil {
		p.onUpdate(orders)
	}
}
