package responder

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	StatusSubmitted    = "submitted"
	StatusNotSubmitted = "not_submitted"
	StatusFailed       = "failed"
)

const (
	VariantModal = "modal"
	VariantPage  = "page"
)

// Application - запись журнала об одной попытке отклика.
type Application struct {
	RunID        string
	VacancyID    string
	Title        string
	URL          string
	SearchURL    string
	Template     string
	Variant      string
	Questions    int
	Status       string
	Error        string
	CoverLetter  string
	Technologies []string
	Level        string
	CreatedAt    time.Time
}

// RunRecord - запись журнала о запуске цикла.
type RunRecord struct {
	ID         string
	StartURL   string
	StartState string
	Processed  int
	Submitted  int
	Failed     int
	Skipped    int
	Pages      int
	StopReason string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Journal хранит историю откликов. Реализации: MemoryJournal и репозиторий PostgreSQL.
type Journal interface {
	Record(ctx context.Context, app Application) error
	Applied(ctx context.Context, vacancyID string) (bool, error)
	SubmittedSince(ctx context.Context, since time.Time) (int, error)
	StartRun(ctx context.Context, run RunRecord) error
	FinishRun(ctx context.Context, run RunRecord) error
	Applications(ctx context.Context, limit int) ([]Application, error)
	Stats(ctx context.Context) (map[string]int, error)
}

// MemoryJournal живет до конца процесса; используется, когда БД не настроена.
type MemoryJournal struct {
	mu   sync.RWMutex
	apps []Application
	runs map[string]RunRecord
}

func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{runs: make(map[string]RunRecord)}
}

func (j *MemoryJournal) Record(ctx context.Context, app Application) error {
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now()
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.apps = append(j.apps, app)
	return nil
}

func (j *MemoryJournal) Applied(ctx context.Context, vacancyID string) (bool, error) {
	if vacancyID == "" {
		return false, nil
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, a := range j.apps {
		if a.VacancyID == vacancyID && a.Status == StatusSubmitted {
			return true, nil
		}
	}
	return false, nil
}

func (j *MemoryJournal) SubmittedSince(ctx context.Context, since time.Time) (int, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	n := 0
	for _, a := range j.apps {
		if a.Status == StatusSubmitted && !a.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (j *MemoryJournal) StartRun(ctx context.Context, run RunRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs[run.ID] = run
	return nil
}

func (j *MemoryJournal) FinishRun(ctx context.Context, run RunRecord) error {
	return j.StartRun(ctx, run)
}

// Run возвращает запись о запуске по id.
func (j *MemoryJournal) Run(id string) (RunRecord, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	r, ok := j.runs[id]
	return r, ok
}

// Applications возвращает последние записи, новые первыми. limit <= 0 - все.
func (j *MemoryJournal) Applications(ctx context.Context, limit int) ([]Application, error) {
	j.mu.RLock()
	out := make([]Application, len(j.apps))
	copy(out, j.apps)
	j.mu.RUnlock()

	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (j *MemoryJournal) Stats(ctx context.Context) (map[string]int, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	stats := map[string]int{}
	for _, a := range j.apps {
		stats[a.Status]++
	}
	return stats, nil
}

// startOfDay - начало суток в локальной зоне, от него считается дневной лимит.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
