package responder

import (
	"context"
	"time"
)

// Timings - паузы и таймауты цикла. Нулевые значения означают "не ждать":
// условие проверяется один раз.
type Timings struct {
	LoopPause       time.Duration // перед каждым проходом по выдаче
	RespondTimeout  time.Duration // появление модалки или страницы отклика после клика
	BeforeResponse  time.Duration // перед обработкой страницы отклика
	BeforeQuestions time.Duration
	QuestionPause   time.Duration // между ответами на вопросы
	BeforeLetter    time.Duration
	LetterTimeout   time.Duration // появление поля письма после клика по переключателю
	BeforeSubmit    time.Duration
	SubmitTimeout   time.Duration // закрытие модалки после отправки
	Settle          time.Duration // короткая пауза между шагами
	PagerTimeout    time.Duration // смена страницы после клика по пагинатору
	ReturnPause     time.Duration // после принудительного возврата к поиску
	FirstPoll       time.Duration // перед первой проверкой страницы поиска
	PollStep        time.Duration // шаг опроса в waitUntil
}

func DefaultTimings() Timings {
	return Timings{
		LoopPause:       2 * time.Second,
		RespondTimeout:  2 * time.Second,
		BeforeResponse:  time.Second,
		BeforeQuestions: 200 * time.Millisecond,
		QuestionPause:   50 * time.Millisecond,
		BeforeLetter:    time.Second,
		LetterTimeout:   1500 * time.Millisecond,
		BeforeSubmit:    500 * time.Millisecond,
		SubmitTimeout:   3 * time.Second,
		Settle:          200 * time.Millisecond,
		PagerTimeout:    3 * time.Second,
		ReturnPause:     2 * time.Second,
		FirstPoll:       500 * time.Millisecond,
		PollStep:        100 * time.Millisecond,
	}
}

// sleep прерывается только отменой контекста, но не остановкой цикла.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// waitUntil опрашивает cond до успеха или истечения timeout.
// Возвращает false без ошибки, если условие так и не выполнилось.
func waitUntil(ctx context.Context, timeout, step time.Duration, cond func() (bool, error)) (bool, error) {
	if step <= 0 {
		step = 50 * time.Millisecond
	}
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond()
		if err != nil || ok {
			return ok, err
		}
		left := time.Until(deadline)
		if left <= 0 {
			return false, nil
		}
		if err := sleep(ctx, min(step, left)); err != nil {
			return false, err
		}
	}
}
