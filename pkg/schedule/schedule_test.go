package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratewatch/ratewatch/pkg/log"
)

func TestStartInvalidSpec(t *testing.T) {
	r := NewRunner(log.NewTestLogger())
	err := r.Start("not a cron spec", func() {})
	assert.Error(t, err)
}

func TestStartAcceptsFiveFieldSpec(t *testing.T) {
	r := NewRunner(log.NewTestLogger())
	require.NoError(t, r.Start("*/5 * * * *", func() {}))
	r.Stop()
}

func TestStartAcceptsDescriptor(t *testing.T) {
	r := NewRunner(log.NewTestLogger())
	require.NoError(t, r.Start("@hourly", func() {}))
	r.Stop()
}

func TestStopWaitsForInFlightRun(t *testing.T) {
	r := NewRunner(log.NewTestLogger())

	var fired int32
	started := make(chan struct{})
	require.NoError(t, r.Start("@every 10ms", func() {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&fired, 1)
	}))

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job never fired")
	}

	r.Stop()
	assert.GreaterOrEqual(t, atomic.LoadInt32(&fired), int32(1),
		"Stop returns only after the in-flight run completed")
}
