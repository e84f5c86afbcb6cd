// Package await provides a bounded polling primitive for conditions that
// become true asynchronously, such as a client namespace published by a
// background loader. There is no cancellation beyond attempt exhaustion
// and the caller's context; call sites are initialization steps with no
// external cancel trigger.
package await

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/vk/patchgridgo/internal/ctxlog"
)

// ErrTimeout is wrapped by every TimeoutError, so callers can classify the
// failure with errors.Is without caring which condition was watched.
var ErrTimeout = errors.New("condition not met within polling budget")

var errNotReady = errors.New("not ready")

// TimeoutError reports that a watched condition never became true within
// its polling budget.
type TimeoutError struct {
	Label    string
	Attempts uint
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("await %q: gave up after %d attempts over %s: %s",
		e.Label, e.Attempts, e.Elapsed.Round(time.Millisecond), ErrTimeout)
}

func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// WaitFor polls pred up to maxAttempts times at a fixed interval, returning
// nil as soon as pred reports true. Each probe, the first included, happens
// one interval after the previous tick, so a never-true predicate holds the
// caller for maxAttempts*interval. When the budget is exhausted it returns
// a *TimeoutError; when ctx is cancelled first, ctx.Err(). pred must be
// pure observation — WaitFor never mutates anything on its behalf.
func WaitFor(ctx context.Context, label string, pred func() bool, maxAttempts uint, interval time.Duration) error {
	logger := ctxlog.FromContext(ctx).With("await", label)
	start := time.Now()

	// retry.Do probes immediately and only delays between attempts; the
	// leading wait keeps every probe on the interval grid.
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		logger.Debug("Polling cancelled by context.", "elapsed", time.Since(start))
		return ctx.Err()
	case <-timer.C:
	}

	err := retry.Do(
		func() error {
			if pred() {
				return nil
			}
			return errNotReady
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, _ error) {
			logger.Debug("Condition not ready, polling again.", "attempt", attempt+1)
		}),
	)
	if err == nil {
		logger.Debug("Condition met.", "elapsed", time.Since(start))
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Debug("Polling cancelled by context.", "elapsed", time.Since(start))
		return ctxErr
	}

	tErr := &TimeoutError{Label: label, Attempts: maxAttempts, Elapsed: time.Since(start)}
	logger.Warn("Condition never became true.", "attempts", maxAttempts, "elapsed", tErr.Elapsed)
	return tErr
}
