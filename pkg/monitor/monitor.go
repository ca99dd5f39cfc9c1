// Package monitor implements the currency rates staleness check: fetch
// the published file, evaluate its dataAsOf timestamp against a
// threshold, and dispatch an alert email when the data is stale or the
// file cannot be read.
package monitor

import (
	"context"
	"time"

	"github.com/ratewatch/ratewatch/internal/config"
	"github.com/ratewatch/ratewatch/pkg/log"
	"github.com/ratewatch/ratewatch/pkg/types"
)

// ObjectFetcher reads the monitored file from object storage.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// MailSender delivers one alert email.
type MailSender interface {
	Send(ctx context.Context, msg types.AlertMessage) error
}

// Monitor runs one staleness-check invocation. Each invocation is
// independent and stateless; the Monitor holds only configuration and
// collaborators.
type Monitor struct {
	cfg     config.Config
	fetcher ObjectFetcher
	sender  MailSender
	logger  log.Logger
	now     func() time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// New creates a Monitor with the given configuration and collaborators.
func New(cfg config.Config, fetcher ObjectFetcher, sender MailSender, logger log.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		cfg:     cfg,
		fetcher: fetcher,
		sender:  sender,
		logger:  logger.WithComponent("monitor"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run executes one invocation of the check pipeline:
// fetch → parse → evaluate → (maybe) alert.
//
// A non-nil result is the invocation's completion signal and is produced
// exactly once per run. A nil result means the invocation terminated
// without completing: missing bucket/key, an unparseable body, or a
// missing alert field. Those paths only log. A failed alert send does
// not change the outcome; the original result is still returned.
func (m *Monitor) Run(ctx context.Context) *types.StalenessResult {
	if m.cfg.S3.Bucket == "" || m.cfg.S3.Key == "" {
		m.logger.Error("s3 bucket or file name is missing",
			log.Str("bucket", m.cfg.S3.Bucket),
			log.Str("key", m.cfg.S3.Key))
		return nil
	}

	m.logger.Debug("fetching currency rates file",
		log.Str("bucket", m.cfg.S3.Bucket),
		log.Str("key", m.cfg.S3.Key))

	body, err := m.fetcher.Fetch(ctx, m.cfg.S3.Bucket, m.cfg.S3.Key)
	if err != nil {
		m.logger.Error("error reading currency rates file", log.Err(err))
		return m.alert(ctx, FetchErrorResult(err))
	}

	rec, err := ParseFileRecord(body)
	if err != nil {
		m.logger.Error("failed to parse currency rates file", log.Err(err))
		return nil
	}
	asOf, err := ParseAsOf(rec)
	if err != nil {
		m.logger.Error("failed to parse currency rates file", log.Err(err))
		return nil
	}

	result := Evaluate(rec, asOf, m.now(), m.cfg.StaleAfterDays)
	if result.Stale {
		return m.alert(ctx, result)
	}

	m.logger.Info(result.Message)
	return result
}

// alert dispatches an email carrying the result message, then completes
// the invocation with that same result. A send failure is logged and
// otherwise ignored. A missing required field aborts before the send
// and the invocation does not complete.
func (m *Monitor) alert(ctx context.Context, result *types.StalenessResult) *types.StalenessResult {
	msg := types.AlertMessage{
		Recipient: m.cfg.Alert.To,
		Subject:   m.cfg.Alert.Subject,
		Sender:    m.cfg.Alert.From,
		ReplyTo:   m.cfg.Alert.From,
		Body:      result.Message,
	}
	if err := msg.Validate(); err != nil {
		m.logger.Error("alert not sent", log.Err(err))
		return nil
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		m.logger.Error("failed to send alert email", log.Err(err))
	} else {
		m.logger.Info("alert email sent", log.Str("recipient", msg.Recipient))
	}
	return result
}
