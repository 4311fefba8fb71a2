package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimited paces requests with a token bucket so the transport stays
// under the provider's rate limits even when several profiles queue up.
type rateLimited struct {
	next    Generator
	limiter *rate.Limiter
}

// RateLimit returns middleware enforcing a sustained requests-per-second
// limit with the given burst allowance. The call blocks until a token
// is available or the context ends.
func RateLimit(limit rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(next Generator) Generator {
		return &rateLimited{next: next, limiter: limiter}
	}
}

func (r *rateLimited) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Completion{}, fmt.Errorf("rate limit: %w", err)
	}
	return r.next.Generate(ctx, prompt, opts)
}

func (r *rateLimited) Model() string { return r.next.Model() }

// timed bounds each request with a deadline. Orchestration carries no
// timeout layer of its own, so this is the only place a hung oracle
// call gets cut off.
type timed struct {
	next    Generator
	timeout time.Duration
}

// Timeout returns middleware applying a per-request deadline.
func Timeout(timeout time.Duration) Middleware {
	return func(next Generator) Generator {
		return &timed{next: next, timeout: timeout}
	}
}

func (t *timed) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Generate(ctx, prompt, opts)
}

func (t *timed) Model() string { return t.next.Model() }

// retried re-issues failed requests with exponential backoff and
// jitter. It is opt-in and off by default: the orchestration layer
// specifies that nothing is retried automatically, so enabling this
// middleware is an explicit caller decision.
type retried struct {
	next       Generator
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// Retry returns middleware retrying transient failures up to maxRetries
// times. Non-retryable provider errors and context cancellation stop
// the loop immediately.
func Retry(maxRetries int, baseDelay, maxDelay time.Duration) Middleware {
	return func(next Generator) Generator {
		return &retried{next: next, maxRetries: maxRetries, baseDelay: baseDelay, maxDelay: maxDelay}
	}
}

func (r *retried) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		completion, err := r.next.Generate(ctx, prompt, opts)
		if err == nil {
			return completion, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) || attempt == r.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return Completion{}, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}
	return Completion{}, fmt.Errorf("request failed after %d attempt(s): %w", r.maxRetries+1, lastErr)
}

func (r *retried) Model() string { return r.next.Model() }

func (r *retried) backoff(attempt int) time.Duration {
	if attempt > 16 {
		attempt = 16
	}
	delay := r.baseDelay << uint(attempt)
	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	// Full jitter keeps concurrent retriers from synchronizing.
	return time.Duration(rand.Int63n(int64(delay) + 1))
}

func retryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Retryable()
	}
	return false
}

// logged emits one debug entry per request with prompt/response sizes
// and latency. Raw oracle text never leaves debug level.
type logged struct {
	next   Generator
	logger *zap.Logger
}

// Logging returns middleware recording request metadata through zap.
func Logging(logger *zap.Logger) Middleware {
	return func(next Generator) Generator {
		return &logged{next: next, logger: logger}
	}
}

func (l *logged) Generate(ctx context.Context, prompt string, opts RequestOptions) (Completion, error) {
	start := time.Now()
	completion, err := l.next.Generate(ctx, prompt, opts)
	fields := []zap.Field{
		zap.String("model", l.next.Model()),
		zap.Int("prompt_chars", len(prompt)),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
		return completion, err
	}
	l.logger.Debug("llm request completed", append(fields,
		zap.Int("response_chars", len(completion.Text)),
		zap.Int("tokens_in", completion.TokensIn),
		zap.Int("tokens_out", completion.TokensOut),
	)...)
	return completion, nil
}

func (l *logged) Model() string { return l.next.Model() }
