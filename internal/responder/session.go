// Package responder ведет цикл откликов на hh.ru: определяет состояние вкладки,
// выполняет для него последовательность действий и восстанавливается после сбоев.
package responder

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hhResponder/internal/browser"
	"hhResponder/internal/logger"
)

// Причины остановки цикла.
const (
	StopStopped     = "stopped"
	StopExhausted   = "exhausted"
	StopErrorLimit  = "error_limit"
	StopDailyLimit  = "daily_limit"
	StopCanceled    = "canceled"
	StopUnknownPage = "unknown_page"
	StopDone        = "done"
	StopError       = "error"
)

// Letters отдает выбранный шаблон письма.
type Letters interface {
	Current() (name, text string)
}

type Config struct {
	// DefaultSearchURL - куда возвращаться, если адрес выдачи не запомнен.
	DefaultSearchURL string
	AnswerQuestions  bool
	SkipApplied      bool
	MaxErrors        int
	DailyLimit       int
	PollAttempts     int
	PollInterval     time.Duration
	Timings          Timings
}

// VacancyContext - вакансия, на которую сейчас идет отклик.
type VacancyContext struct {
	Title     string
	ID        string
	URL       string
	SearchURL string
}

// Result - итог одного запуска.
type Result struct {
	RunID      string
	StartURL   string
	StartState PageState
	Processed  int
	Submitted  int
	Failed     int
	Skipped    int
	Pages      int
	StopReason string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Status - снимок состояния для консоли и HTTP API.
type Status struct {
	Running bool
	Vacancy VacancyContext
	Current *Result
	Last    *Result
}

type Session struct {
	page    browser.Page
	letters Letters
	answers Answerer
	journal Journal
	cfg     Config
	log     *logger.Zap
	now     func() time.Time

	// running - флаг пользователя (старт/стоп), loop - занятость самого цикла:
	// после Stop цикл может еще дорабатывать текущий шаг.
	running atomic.Bool
	loop    sync.Mutex
	wg      sync.WaitGroup

	mu      sync.Mutex
	vacancy VacancyContext
	current *Result
	last    *Result
}

func NewSession(page browser.Page, letters Letters, answers Answerer, journal Journal, cfg Config, log *logger.Zap) *Session {
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = 5
	}
	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = 30
	}
	if journal == nil {
		journal = NewMemoryJournal()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		page:    page,
		letters: letters,
		answers: answers,
		journal: journal,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

func (s *Session) Journal() Journal {
	return s.journal
}

func (s *Session) Running() bool {
	return s.running.Load()
}

// Run выполняет цикл в текущей горутине и возвращает итог.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if !s.loop.TryLock() {
		return Result{}, ErrAlreadyRunning
	}
	defer s.loop.Unlock()

	s.running.Store(true)
	defer s.running.Store(false)
	return s.run(ctx)
}

// Start запускает цикл в фоне.
func (s *Session) Start(ctx context.Context) error {
	if !s.loop.TryLock() {
		return ErrAlreadyRunning
	}
	s.running.Store(true)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.loop.Unlock()
		defer s.running.Store(false)

		if _, err := s.run(ctx); err != nil {
			s.log.Error("Цикл откликов завершился с ошибкой", zap.Error(err))
		}
	}()
	return nil
}

// Stop снимает флаг; цикл заметит это между шагами.
func (s *Session) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return ErrNotRunning
	}
	s.log.Info("Остановка цикла откликов запрошена")
	return nil
}

// Toggle повторяет кнопку старт/стоп: повторное нажатие во время работы останавливает цикл.
func (s *Session) Toggle(ctx context.Context) (bool, error) {
	if s.running.Load() {
		return false, s.Stop()
	}
	if err := s.Start(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Wait ждет завершения фонового цикла.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Running: s.running.Load(), Vacancy: s.vacancy}
	if s.current != nil {
		r := *s.current
		st.Current = &r
	}
	if s.last != nil {
		r := *s.last
		st.Last = &r
	}
	return st
}

func (s *Session) Vacancy() VacancyContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vacancy
}

// setVacancy заменяет контекст вакансии; пустой url - текущий адрес вкладки.
func (s *Session) setVacancy(title, id, url, searchURL string) {
	if url == "" {
		url = s.page.URL()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vacancy = VacancyContext{Title: title, ID: id, URL: url, SearchURL: searchURL}
}

func (s *Session) publish(res *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *res
	s.current = &r
}

func (s *Session) run(ctx context.Context) (Result, error) {
	startURL := s.page.URL()
	res := Result{
		RunID:      uuid.NewString(),
		StartURL:   startURL,
		StartState: Classify(startURL),
		StartedAt:  s.now(),
	}
	log := s.log.With(zap.String("run_id", res.RunID), zap.Stringer("state", res.StartState))
	log.Info("Цикл откликов запущен", zap.String("url", startURL))

	if err := s.journal.StartRun(ctx, s.runRecord(res)); err != nil {
		log.Warn("Не удалось записать запуск в журнал", zap.Error(err))
	}
	s.publish(&res)

	var err error
	switch res.StartState {
	case StateResponsePage:
		err = s.runSingle(ctx, &res, s.processResponsePage)
	case StateVacancyDetail:
		err = s.runSingle(ctx, &res, s.processVacancyDetail)
	case StateSearchList:
		err = s.runSearchList(ctx, &res)
	default:
		log.Warn("Неизвестная страница, цикл не запущен", zap.String("url", startURL))
		res.StopReason = StopUnknownPage
	}

	if err != nil {
		if ctx.Err() != nil {
			res.StopReason = StopCanceled
			err = nil
		} else {
			res.StopReason = StopError
			log.Error("Критическая ошибка цикла откликов", zap.Error(err))
		}
	}
	res.FinishedAt = s.now()

	// Запись завершения не должна зависеть от отмененного контекста.
	finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if jerr := s.journal.FinishRun(finishCtx, s.runRecord(res)); jerr != nil {
		log.Warn("Не удалось записать итог запуска в журнал", zap.Error(jerr))
	}

	s.mu.Lock()
	r := res
	s.last = &r
	s.current = nil
	s.mu.Unlock()

	log.Info("Цикл откликов завершен",
		zap.Int("processed", res.Processed),
		zap.Int("submitted", res.Submitted),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped),
		zap.Int("pages", res.Pages),
		zap.String("stop_reason", res.StopReason),
	)
	return res, err
}

func (s *Session) runRecord(res Result) RunRecord {
	rec := RunRecord{
		ID:         res.RunID,
		StartURL:   res.StartURL,
		StartState: res.StartState.String(),
		Processed:  res.Processed,
		Submitted:  res.Submitted,
		Failed:     res.Failed,
		Skipped:    res.Skipped,
		Pages:      res.Pages,
		StopReason: res.StopReason,
		StartedAt:  res.StartedAt,
	}
	if !res.FinishedAt.IsZero() {
		t := res.FinishedAt
		rec.FinishedAt = &t
	}
	return rec
}
