package llm

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen - запросы к OpenAI временно не выполняются после серии ошибок.
var ErrCircuitOpen = errors.New("запросы к OpenAI приостановлены после серии ошибок")

type circuitState int

const (
	stateClosed circuitState = iota
	stateOpen
	stateHalfOpen
)

// breaker размыкается после maxFailures ошибок подряд и через resetTimeout
// пропускает одну пробную попытку.
type breaker struct {
	mu           sync.Mutex
	now          func() time.Time
	maxFailures  int
	resetTimeout time.Duration
	state        circuitState
	failures     int
	openedAt     time.Time
}

func newBreaker(maxFailures int, resetTimeout time.Duration, now func() time.Time) *breaker {
	if maxFailures <= 0 {
		maxFailures = 3
	}
	if resetTimeout <= 0 {
		resetTimeout = 5 * time.Minute
	}
	return &breaker{now: now, maxFailures: maxFailures, resetTimeout: resetTimeout}
}

func (b *breaker) call(fn func() error) error {
	b.mu.Lock()
	switch b.state {
	case stateOpen:
		if b.now().Sub(b.openedAt) < b.resetTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		b.state = stateHalfOpen
	case stateHalfOpen:
		// пробная попытка уже идет
		b.mu.Unlock()
		return ErrCircuitOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.state = stateClosed
		b.failures = 0
		return nil
	}

	b.failures++
	if b.state == stateHalfOpen || b.failures >= b.maxFailures {
		b.state = stateOpen
		b.openedAt = b.now()
	}
	return err
}

func (b *breaker) open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state == stateOpen && b.now().Sub(b.openedAt) < b.resetTimeout
}
