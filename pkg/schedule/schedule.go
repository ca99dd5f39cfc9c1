// Package schedule runs the staleness check on a cron schedule for
// deployments without an external trigger.
package schedule

import (
	"github.com/robfig/cron/v3"

	"github.com/ratewatch/ratewatch/pkg/log"
)

// Runner fires a job on a cron schedule. Each firing is an independent
// invocation; no state is shared between runs.
type Runner struct {
	cron   *cron.Cron
	logger log.Logger
}

// NewRunner creates a Runner accepting standard 5-field cron
// expressions (minute hour day month weekday) and descriptors like
// "@hourly".
func NewRunner(logger log.Logger) *Runner {
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)))
	return &Runner{cron: c, logger: logger.WithComponent("schedule")}
}

// Start registers the job under the given cron expression and begins
// the schedule.
func (r *Runner) Start(spec string, job func()) error {
	if _, err := r.cron.AddFunc(spec, job); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("schedule started", log.Str("spec", spec))
	return nil
}

// Stop halts the schedule and waits for any in-flight run to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("schedule stopped")
}
