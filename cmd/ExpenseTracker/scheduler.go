package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sebuszqo/ExpenseTracker/internal/logger"
)

// StartHealthScheduler probes the store on the given cron schedule and logs
// when it stops answering. The returned cron must be stopped by the caller.
func StartHealthScheduler(schedule string, health func(ctx context.Context) map[string]string, log *logger.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		stats := health(ctx)
		if stats["status"] != "up" {
			log.Warn("Store health check failed", "error", stats["error"])
			return
		}
		log.Debug("Store health check passed", "driver", stats["driver"])
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
