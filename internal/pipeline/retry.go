package pipeline

import (
	"context"
	"errors"
	"math"
	"net"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pulselab/linkpulse/pkg/types"
)

const maxBackoffSeconds = 3600

// StageError carries the failing stage and its failure classification up
// to the retry loop.
type StageError struct {
	Stage    types.Stage
	Category types.FailureCategory
	Err      error
}

func (e *StageError) Error() string {
	return string(e.Stage) + " stage: " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// Classify maps an error to a failure category. Timeouts and network
// conditions are retryable; everything else inside the pipeline is a
// deterministic computation, so unknown errors default to permanent.
func Classify(err error) types.FailureCategory {
	var se *StageError
	if errors.As(err, &se) && se.Category != "" {
		return se.Category
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.FailureTimeout
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.FailureTransient
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return types.FailureTimeout
		}
		return types.FailureTransient
	}
	return types.FailurePermanent
}

// CalculateBackoff returns the wait duration for a given attempt number.
// Uses exponential backoff: base * multiplier^(attempt-1).
func CalculateBackoff(policy types.RetryPolicy, attempt int) time.Duration {
	if attempt <= 1 {
		return time.Duration(policy.BackoffSeconds) * time.Second
	}
	multiplier := policy.BackoffMultiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	backoff := float64(policy.BackoffSeconds) * math.Pow(multiplier, float64(attempt-1))
	if backoff > maxBackoffSeconds {
		backoff = maxBackoffSeconds
	}
	return time.Duration(backoff) * time.Second
}

// IsRetryable returns whether a failure category should be retried.
func IsRetryable(policy types.RetryPolicy, category types.FailureCategory) bool {
	if category == types.FailurePermanent {
		return false
	}
	if len(policy.RetryableFailures) == 0 {
		// Default: retry transient and timeout
		return category == types.FailureTransient || category == types.FailureTimeout
	}
	for _, fc := range policy.RetryableFailures {
		if fc == category {
			return true
		}
	}
	return false
}
