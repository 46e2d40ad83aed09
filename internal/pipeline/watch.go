package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pulselab/linkpulse/pkg/types"
)

// Watch runs the pipeline once per day at the configured local time. Each
// trigger covers the date it fires on. Watch blocks until the context is
// cancelled.
func (r *Runner) Watch(ctx context.Context, sched types.ScheduleConfig) error {
	loc, err := loadLocation(sched.Timezone)
	if err != nil {
		return err
	}
	hour, minute, err := parseTimeOfDay(sched.At)
	if err != nil {
		return err
	}

	r.logger.Info("watch loop starting", "at", sched.At, "timezone", loc.String())

	for {
		next := nextTrigger(time.Now().In(loc), hour, minute)
		r.logger.Debug("next trigger scheduled", "at", next)

		select {
		case <-time.After(time.Until(next)):
		case <-ctx.Done():
			return ctx.Err()
		}

		date := time.Now().In(loc).Format("2006-01-02")
		if _, err := r.RunWithRetry(ctx, date); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Already logged and alerted; the loop keeps going for the
			// next day.
			r.logger.Error("scheduled run exhausted retries", "date", date, "error", err)
		}
	}
}

// nextTrigger returns the next occurrence of hour:minute strictly after now.
func nextTrigger(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// parseTimeOfDay parses an "HH:MM" string.
func parseTimeOfDay(hhmm string) (hour, minute int, err error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format %q: expected HH:MM", hhmm)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return hour, minute, nil
}
