// Package retry выполняет удаленный вызов с ограниченным числом попыток
// и экспоненциальной паузой между ними.
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxAttempts  = 3
	DefaultInitialDelay = time.Second
)

// Policy описывает, какие ошибки повторять и сколько ждать перед попыткой.
type Policy struct {
	MaxAttempts int
	// Backoff возвращает паузу после неудачной попытки с номером attempt (с единицы).
	Backoff func(attempt int) time.Duration
	// IsTransient отделяет временные ошибки от фатальных.
	IsTransient func(err error) bool
}

// Exponential возвращает паузу initial * 2^(attempt-1) без джиттера.
func Exponential(initial time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		return initial * time.Duration(1<<(attempt-1))
	}
}

// NewPolicy собирает политику с экспоненциальной паузой.
func NewPolicy(maxAttempts int, initialDelay time.Duration, isTransient func(error) bool) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff:     Exponential(initialDelay),
		IsTransient: isTransient,
	}
}

// Do выполняет op. Временная ошибка повторяется, пока не исчерпаны попытки;
// фатальная или последняя ошибка возвращается вызывающему как есть.
func Do[T any](ctx context.Context, p Policy, logger logrus.FieldLogger, op func(ctx context.Context) (T, error)) (T, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoffFn := p.Backoff
	if backoffFn == nil {
		backoffFn = Exponential(DefaultInitialDelay)
	}

	var (
		result  T
		attempt int
		lastErr error
	)

	backoff := goretry.BackoffFunc(func() (time.Duration, bool) {
		if attempt >= maxAttempts {
			logger.WithFields(logrus.Fields{
				"attempt":      attempt,
				"max_attempts": maxAttempts,
			}).WithError(lastErr).Error("Retry attempts exhausted")
			return 0, true
		}
		delay := backoffFn(attempt)
		logger.WithFields(logrus.Fields{
			"attempt":      attempt,
			"max_attempts": maxAttempts,
			"delay":        delay,
		}).WithError(lastErr).Warn("Transient failure, retrying")
		return delay, false
	})

	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		v, err := op(ctx)
		if err != nil {
			lastErr = err
			if p.IsTransient != nil && p.IsTransient(err) {
				return goretry.RetryableError(err)
			}
			logger.WithField("attempt", attempt).WithError(err).Error("Fatal failure, not retrying")
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
