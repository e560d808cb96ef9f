// Package jobs runs periodic housekeeping for in-process state.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/ratelimit"
	"github.com/shineplatform/sitegen/internal/templates"
)

// SweepSchedule is the cron expression for the janitor.
const SweepSchedule = "@every 5m"

// Janitor evicts expired rate-limit windows, idle API buckets and stale
// template scans. Any target may be nil.
type Janitor struct {
	Cron *cron.Cron

	rateStore  ratelimit.Store
	apiLimiter *ratelimit.APILimiter
	catalog    *templates.Catalog
	now        func() time.Time
}

func NewJanitor(rateStore ratelimit.Store, apiLimiter *ratelimit.APILimiter, catalog *templates.Catalog) (*Janitor, error) {
	j := &Janitor{
		Cron:       cron.New(),
		rateStore:  rateStore,
		apiLimiter: apiLimiter,
		catalog:    catalog,
		now:        time.Now,
	}
	if _, err := j.Cron.AddFunc(SweepSchedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return nil, err
	}
	return j, nil
}

// Start schedules the sweeps in the background.
func (j *Janitor) Start() {
	j.Cron.Start()
}

// Stop prevents new sweeps and waits for a running one, or for ctx.
func (j *Janitor) Stop(ctx context.Context) {
	select {
	case <-j.Cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce performs a single sweep of every target.
func (j *Janitor) RunOnce(ctx context.Context) {
	now := j.now()
	fields := logrus.Fields{}

	if j.rateStore != nil {
		n, err := j.rateStore.Sweep(ctx, now)
		if err != nil {
			logger.Log().WithError(err).Warn("rate limit sweep failed")
		}
		fields["rate_windows"] = n
	}
	if j.apiLimiter != nil {
		fields["api_buckets"] = j.apiLimiter.Sweep(now)
	}
	if j.catalog != nil {
		fields["scan_cache_dropped"] = j.catalog.Sweep(now)
	}
	logger.WithFields(fields).Debug("janitor sweep finished")
}
