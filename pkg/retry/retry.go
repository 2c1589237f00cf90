// Package retry runs an operation with exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
	// JitterFraction is the share of the backoff used as +/- jitter (0.0-1.0).
	JitterFraction float64
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	}
}

// Classifier reports whether err is worth another attempt.
type Classifier func(error) bool

// Permanent marks an error as not retryable.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string { return p.Err.Error() }

func (p *Permanent) Unwrap() error { return p.Err }

func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var p *Permanent
	return !errors.As(err, &p)
}

func Do(ctx context.Context, cfg Config, classifier Classifier, fn func(context.Context) error) error {
	if classifier == nil {
		classifier = IsRetryable
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}

	var lastErr error
	backoff := cfg.InitialBackoff

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !classifier(err) {
			return err
		}
		if attempt == cfg.MaxRetries {
			break
		}

		sleep := backoff + jitter(backoff, cfg.JitterFraction)
		if cfg.MaxBackoff > 0 && sleep > cfg.MaxBackoff {
			sleep = cfg.MaxBackoff
		}

		timer := time.NewTimer(sleep)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}

		backoff = time.Duration(float64(backoff) * cfg.Multiplier)
		if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func jitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || d <= 0 {
		return 0
	}
	jitterRange := float64(d) * fraction
	return time.Duration((rand.Float64() - 0.5) * 2 * jitterRange)
}
