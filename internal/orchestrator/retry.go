package orchestrator

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"campusEvents/internal/models/domain"
)

// retryPolicy решает, повторять ли упавший шаг и через сколько.
type retryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// newRetryPolicy создаёт политику повторов.
func newRetryPolicy(maxAttempts int, baseDelay time.Duration) *retryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &retryPolicy{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    baseDelay * 16,
	}
}

// shouldRetry возвращает решение о повторе и задержку перед ним.
func (r *retryPolicy) shouldRetry(attempt int, err error) (bool, time.Duration) {
	if attempt >= r.maxAttempts || !r.retryable(err) {
		return false, 0
	}
	return true, r.backoff(attempt)
}

// retryable возвращает false для ошибок, которые повтор не исправит.
func (r *retryPolicy) retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case domain.IsNotFound(err),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAIUnavailable),
		errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

// backoff считает base*2^(attempt-1) с джиттером +-25%, не больше 16x base.
func (r *retryPolicy) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return r.baseDelay
	}

	shift := min(attempt-1, 10)
	backoff := r.baseDelay * time.Duration(1<<shift)

	if quarter := int64(backoff / 4); quarter > 0 {
		backoff += time.Duration(rand.Int63n(2*quarter+1) - quarter)
	}

	if backoff > r.maxDelay {
		backoff = r.maxDelay
	}
	return backoff
}
