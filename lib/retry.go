package lib

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Sleep pauses for d, returning early with the context's error if ctx is done first.
func Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithJitteredRetries calls f until it succeeds or maxAttempts is reached, sleeping with [Jitter] between attempts.
// It stops early once ctx is done.
func WithJitteredRetries[T any](ctx context.Context, baseMs, maxMs, maxAttempts int, f func(attempt int) (T, error)) (T, error) {
	maxAttempts = max(maxAttempts, 1)
	var result T
	var err error
	for attempt := range maxAttempts {
		if attempt > 0 {
			sleepDuration := Jitter(baseMs, maxMs, attempt+1)
			slog.Info("An error occurred, retrying after delay...",
				slog.Duration("sleep", sleepDuration),
				slog.Int("attemptsLeft", maxAttempts-attempt),
				slog.Any("err", err),
			)
			if sleepErr := Sleep(ctx, sleepDuration); sleepErr != nil {
				return result, fmt.Errorf("stopped retrying after %d attempts: %w, last error: %w", attempt, sleepErr, err)
			}
		}

		result, err = f(attempt)
		if err == nil {
			return result, nil
		}
	}
	return result, err
}
