package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulselab/linkpulse/internal/testutil"
	"github.com/pulselab/linkpulse/pkg/types"
)

func TestParseTimeOfDay(t *testing.T) {
	hour, minute, err := parseTimeOfDay("07:30")
	require.NoError(t, err)
	assert.Equal(t, 7, hour)
	assert.Equal(t, 30, minute)

	for _, bad := range []string{"", "730", "24:00", "12:60", "ab:cd"} {
		_, _, err := parseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestNextTrigger(t *testing.T) {
	now := time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)

	next := nextTrigger(now, 7, 30)
	assert.Equal(t, time.Date(2026, 8, 30, 7, 30, 0, 0, time.UTC), next)

	// Already past today's trigger: roll to tomorrow.
	next = nextTrigger(now, 5, 0)
	assert.Equal(t, time.Date(2026, 8, 31, 5, 0, 0, 0, time.UTC), next)

	// Exactly at the trigger counts as past.
	next = nextTrigger(time.Date(2026, 8, 30, 7, 30, 0, 0, time.UTC), 7, 30)
	assert.Equal(t, time.Date(2026, 8, 31, 7, 30, 0, 0, time.UTC), next)
}

func TestWatch_InvalidSchedule(t *testing.T) {
	st := testutil.NewMockStore()
	reports := &reportCollector{}
	r := newTestRunner(t, st, reports, nil)

	err := r.Watch(context.Background(), types.ScheduleConfig{At: "noon"})
	assert.Error(t, err)

	err = r.Watch(context.Background(), types.ScheduleConfig{At: "07:30", Timezone: "Mars/Olympus"})
	assert.Error(t, err)
}

func TestWatch_StopsOnCancel(t *testing.T) {
	st := testutil.NewMockStore()
	reports := &reportCollector{}
	r := newTestRunner(t, st, reports, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Watch(ctx, types.ScheduleConfig{At: "07:30"})
	assert.ErrorIs(t, err, context.Canceled)
}
