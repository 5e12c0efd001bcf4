package store

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
)

// withRetry runs fn until it succeeds, fails with an error the classifier
// does not consider transient, the retry budget is spent or ctx is done.
// The last error of fn is returned.
func (db *DB) withRetry(ctx context.Context, op string, fn func() error) error {
	err := fn()
	if err == nil || db.retryMaxElapsed <= 0 || db.errorClassificator == nil {
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = db.retryInitialInterval
	b.MaxElapsedTime = db.retryMaxElapsed
	b.Reset()

	for attempt := 1; ; attempt++ {
		if db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		next := b.NextBackOff()
		if next == backoff.Stop {
			return err
		}
		db.logger.Warn().Err(err).
			Str("func", "DB.withRetry").
			Str("op", op).
			Int("attempt", attempt).
			Dur("next", next).
			Msg("transient database error, retrying")

		timer := time.NewTimer(next)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}

		if err = fn(); err == nil {
			return nil
		}
	}
}
