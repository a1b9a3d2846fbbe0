package responder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrAlreadyRunning = errors.New("цикл откликов уже запущен")
	ErrNotRunning     = errors.New("цикл откликов не запущен")
)

// HandlerError - сбой обработчика состояния на конкретном шаге.
type HandlerError struct {
	State PageState
	Step  string
	Err   error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.State, e.Step, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

func stepError(state PageState, step string, err error) error {
	if err == nil {
		return nil
	}
	var he *HandlerError
	if errors.As(err, &he) {
		return err
	}
	return &HandlerError{State: state, Step: step, Err: err}
}

type ErrorType int

const (
	ErrorTypeTemporary ErrorType = iota
	ErrorTypeCritical
	ErrorTypeRetryable
)

func (e ErrorType) String() string {
	switch e {
	case ErrorTypeTemporary:
		return "temporary"
	case ErrorTypeCritical:
		return "critical"
	case ErrorTypeRetryable:
		return "retryable"
	default:
		return "unknown"
	}
}

// classifyError делит ошибки браузера по тексту: сетевые сбои и таймауты
// можно повторить, пропавшие элементы - временные, остальное критично.
func classifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeTemporary
	}
	if errors.Is(err, context.Canceled) {
		return ErrorTypeCritical
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(errStr, "timeout"),
		strings.Contains(errStr, "network"),
		strings.Contains(errStr, "connection"),
		strings.Contains(errStr, "econnrefused"),
		strings.Contains(errStr, "etimedout"):
		return ErrorTypeRetryable
	case strings.Contains(errStr, "not found"),
		strings.Contains(errStr, "selector"),
		strings.Contains(errStr, "element"),
		strings.Contains(errStr, "detached"):
		return ErrorTypeTemporary
	}
	return ErrorTypeCritical
}

// retryAction повторяет fn, пока ошибка не критическая.
func retryAction(ctx context.Context, maxRetries int, delay time.Duration, fn func() error) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if classifyError(err) == ErrorTypeCritical {
			return err
		}
	}

	return fmt.Errorf("после %d попыток: %w", maxRetries, lastErr)
}
