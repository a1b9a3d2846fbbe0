package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter - два token bucket: запросы в минуту и токены в час.
type RateLimiter struct {
	mu  sync.Mutex
	now func() time.Time

	requests bucket
	tokens   bucket
}

type bucket struct {
	rate      int // пополнение за period
	period    time.Duration
	available int
	lastCheck time.Time
}

// refill пополняет ведро пропорционально прошедшему времени, не выше rate.
// lastCheck сдвигается ровно на время начисленных единиц, остаток копится дальше.
func (b *bucket) refill(now time.Time) {
	if b.available >= b.rate {
		b.lastCheck = now
		return
	}
	perUnit := float64(b.period) / float64(b.rate)
	add := int(float64(now.Sub(b.lastCheck)) / perUnit)
	if add <= 0 {
		return
	}
	if b.available+add >= b.rate {
		b.available = b.rate
		b.lastCheck = now
		return
	}
	b.available += add
	b.lastCheck = b.lastCheck.Add(time.Duration(float64(add) * perUnit))
}

// retryAfter - через сколько накопится need единиц.
func (b *bucket) retryAfter(need int) time.Duration {
	missing := need - b.available
	if missing <= 0 {
		return 0
	}
	return time.Duration(float64(b.period) * float64(missing) / float64(b.rate))
}

func NewRateLimiter(requestsPerMinute, tokensPerHour int) *RateLimiter {
	return newRateLimiter(requestsPerMinute, tokensPerHour, time.Now)
}

func newRateLimiter(requestsPerMinute, tokensPerHour int, now func() time.Time) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if tokensPerHour <= 0 {
		tokensPerHour = 90000 // GPT-4 tier 1
	}

	start := now()
	return &RateLimiter{
		now:      now,
		requests: bucket{rate: requestsPerMinute, period: time.Minute, available: requestsPerMinute, lastCheck: start},
		tokens:   bucket{rate: tokensPerHour, period: time.Hour, available: tokensPerHour, lastCheck: start},
	}
}

// AllowRequest списывает один запрос или возвращает ошибку, если лимит исчерпан.
func (rl *RateLimiter) AllowRequest(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.requests.refill(rl.now())
	if rl.requests.available <= 0 {
		return fmt.Errorf("превышен лимит запросов (%d RPM), повторите через %v",
			rl.requests.rate, rl.requests.retryAfter(1).Round(time.Second))
	}
	rl.requests.available--
	return nil
}

// AllowTokens резервирует tokens из часового бюджета.
func (rl *RateLimiter) AllowTokens(ctx context.Context, tokens int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.tokens.refill(rl.now())
	if tokens > rl.tokens.rate {
		return fmt.Errorf("запрос на %d токенов больше часового лимита %d", tokens, rl.tokens.rate)
	}
	if rl.tokens.available < tokens {
		return fmt.Errorf("превышен лимит токенов (%d TPH), недостаточно токенов (%d требуется, %d доступно), повторите через %v",
			rl.tokens.rate, tokens, rl.tokens.available, rl.tokens.retryAfter(tokens).Round(time.Second))
	}
	rl.tokens.available -= tokens
	return nil
}

// ConsumeTokens списывает токены после успешного запроса
func (rl *RateLimiter) ConsumeTokens(tokens int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.tokens.refill(rl.now())
	rl.tokens.available = max(rl.tokens.available-tokens, 0)
}

// GetStats возвращает текущую статистику лимитера
func (rl *RateLimiter) GetStats() (requestsAvailable int, tokensAvailable int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.requests.refill(now)
	rl.tokens.refill(now)
	return rl.requests.available, rl.tokens.available
}
