// Package retry реализует ограниченное число повторов с постоянной задержкой.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Значения политики по умолчанию
const (
	DefaultMaxAttempts = 2
	DefaultDelay       = 2 * time.Second
)

// Policy описывает политику повторов: число попыток и фиксированную паузу между ними
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// NotifyFunc вызывается перед каждой паузой: err - ошибка попытки attempt (с единицы)
type NotifyFunc func(err error, attempt int, delay time.Duration)

// DefaultPolicy возвращает политику по умолчанию: 2 попытки с паузой 2 секунды
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		Delay:       DefaultDelay,
	}
}

// Do выполняет op до MaxAttempts раз последовательно. Все ошибки считаются повторяемыми.
// После исчерпания попыток возвращается ошибка последней попытки без обертки.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error, notify NotifyFunc) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.Delay
	if delay < 0 {
		delay = 0
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1)),
		ctx,
	)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		return op(ctx)
	}, b, func(err error, d time.Duration) {
		if notify != nil {
			notify(err, attempt, d)
		}
	})
}
