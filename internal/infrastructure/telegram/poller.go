package telegram

import (
	"context"
	"time"

	"robocon-bot/internal/application/port/output"

	"golang.org/x/sync/errgroup"
)

type PollerConfig struct {
	// Timeout is the long-poll timeout in seconds.
	Timeout     int
	Concurrency int
	RetryDelay  time.Duration
}

func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		Timeout:     30,
		Concurrency: 8,
		RetryDelay:  3 * time.Second,
	}
}

// Poller receives updates with getUpdates and dispatches each one in its
// own goroutine, at most Concurrency at a time.
type Poller struct {
	client     *Client
	dispatcher *Dispatcher
	logger     output.LoggerPort
	cfg        PollerConfig
}

func NewPoller(client *Client, dispatcher *Dispatcher, logger output.LoggerPort, cfg PollerConfig) *Poller {
	def := DefaultPollerConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	return &Poller{
		client:     client,
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run polls until ctx is cancelled, then waits for in-flight turns.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.client.DeleteWebhook(ctx); err != nil {
		p.logger.Warn("Could not delete webhook before polling", "error", err)
	}

	var g errgroup.Group
	g.SetLimit(p.cfg.Concurrency)
	defer g.Wait()

	p.logger.Info("Polling for updates", "timeout", p.cfg.Timeout)

	var offset int64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := p.client.GetUpdates(ctx, offset, p.cfg.Timeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("getUpdates failed", "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.cfg.RetryDelay):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			g.Go(func() error {
				p.dispatcher.Dispatch(ctx, update)
				return nil
			})
		}
	}
}
