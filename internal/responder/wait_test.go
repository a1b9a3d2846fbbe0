package responder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitUntil(t *testing.T) {
	ctx := context.Background()

	calls := 0
	ok, err := waitUntil(ctx, 0, 0, func() (bool, error) {
		calls++
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, calls, "нулевой таймаут - одна проверка")

	calls = 0
	ok, err = waitUntil(ctx, time.Second, time.Millisecond, func() (bool, error) {
		calls++
		return calls == 3, nil
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, calls)

	boom := errors.New("boom")
	_, err = waitUntil(ctx, time.Second, time.Millisecond, func() (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = waitUntil(canceled, time.Second, time.Millisecond, func() (bool, error) { return false, nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), 0))
	assert.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, ErrorTypeRetryable, classifyError(errors.New("navigation timeout 30000ms exceeded")))
	assert.Equal(t, ErrorTypeRetryable, classifyError(context.DeadlineExceeded))
	assert.Equal(t, ErrorTypeTemporary, classifyError(errors.New("element is not attached to the DOM")))
	assert.Equal(t, ErrorTypeCritical, classifyError(context.Canceled))
	assert.Equal(t, ErrorTypeCritical, classifyError(errors.New("браузер не запущен")))
	assert.Equal(t, "retryable", ErrorTypeRetryable.String())
}

func TestRetryAction(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := retryAction(ctx, 3, 0, func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	fatal := errors.New("браузер закрыт")
	err = retryAction(ctx, 3, 0, func() error {
		calls++
		return fatal
	})
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)

	err = retryAction(ctx, 2, 0, func() error { return errors.New("timeout") })
	assert.EqualError(t, err, "после 2 попыток: timeout")
}

func TestHandlerError(t *testing.T) {
	inner := errors.New("element is not attached")
	err := stepError(StateResponsePage, "submit", inner)

	var he *HandlerError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "submit", he.Step)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "response_page/submit: element is not attached", err.Error())

	wrapped := fmt.Errorf("повтор: %w", err)
	assert.Equal(t, wrapped, stepError(StateSearchList, "respond", wrapped), "уже размеченная ошибка не оборачивается повторно")
	assert.NoError(t, stepError(StateSearchList, "respond", nil))
}
