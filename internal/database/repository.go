package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hhResponder/internal/responder"
)

// JournalRepository - журнал откликов в PostgreSQL.
type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

var _ responder.Journal = (*JournalRepository)(nil)

func (r *JournalRepository) Record(ctx context.Context, app responder.Application) error {
	m := applicationModel(app)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *JournalRepository) Applied(ctx context.Context, vacancyID string) (bool, error) {
	if vacancyID == "" {
		return false, nil
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&Application{}).
		Where("vacancy_id = ? AND status = ?", vacancyID, responder.StatusSubmitted).
		Count(&n).Error
	return n > 0, err
}

func (r *JournalRepository) SubmittedSince(ctx context.Context, since time.Time) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Application{}).
		Where("status = ? AND created_at >= ?", responder.StatusSubmitted, since).
		Count(&n).Error
	return int(n), err
}

func (r *JournalRepository) StartRun(ctx context.Context, run responder.RunRecord) error {
	m := runModel(run)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *JournalRepository) FinishRun(ctx context.Context, run responder.RunRecord) error {
	m := runModel(run)
	return r.db.WithContext(ctx).Model(&Run{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"processed":   m.Processed,
			"submitted":   m.Submitted,
			"failed":      m.Failed,
			"skipped":     m.Skipped,
			"pages":       m.Pages,
			"stop_reason": m.StopReason,
			"finished_at": m.FinishedAt,
		}).Error
}

func (r *JournalRepository) Applications(ctx context.Context, limit int) ([]responder.Application, error) {
	q := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []Application
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]responder.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *JournalRepository) Stats(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Status string
		Count  int
	}
	err := r.db.WithContext(ctx).Model(&Application{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int, len(rows))
	for _, row := range rows {
		stats[row.Status] = row.Count
	}
	return stats, nil
}

// SettingsRepository хранит настройки в таблице settings.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var s Setting
	err := r.db.WithContext(ctx).First(&s, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s.Value, true, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Setting{Key: key, Value: value}).Error
}

// LlmLogRepository сохраняет запросы к LLM.
type LlmLogRepository struct {
	db *gorm.DB
}

func NewLlmLogRepository(db *gorm.DB) *LlmLogRepository {
	return &LlmLogRepository{db: db}
}

func (r *LlmLogRepository) LogLLMRequest(ctx context.Context, role, promptText, responseText, model string, tokensUsed int) error {
	return r.db.WithContext(ctx).Create(&LlmLog{
		Role:         role,
		PromptText:   promptText,
		ResponseText: responseText,
		Model:        model,
		TokensUsed:   tokensUsed,
	}).Error
}

func applicationModel(a responder.Application) Application {
	return Application{
		RunID:        a.RunID,
		VacancyID:    a.VacancyID,
		Title:        a.Title,
		URL:          a.URL,
		SearchURL:    a.SearchURL,
		Template:     a.Template,
		Variant:      a.Variant,
		Questions:    a.Questions,
		Status:       a.Status,
		Error:        a.Error,
		CoverLetter:  a.CoverLetter,
		Technologies: strings.Join(a.Technologies, ","),
		Level:        a.Level,
		CreatedAt:    a.CreatedAt,
	}
}

func (m Application) toDomain() responder.Application {
	var techs []string
	if m.Technologies != "" {
		techs = strings.Split(m.Technologies, ",")
	}
	return responder.Application{
		RunID:        m.RunID,
		VacancyID:    m.VacancyID,
		Title:        m.Title,
		URL:          m.URL,
		SearchURL:    m.SearchURL,
		Template:     m.Template,
		Variant:      m.Variant,
		Questions:    m.Questions,
		Status:       m.Status,
		Error:        m.Error,
		CoverLetter:  m.CoverLetter,
		Technologies: techs,
		Level:        m.Level,
		CreatedAt:    m.CreatedAt,
	}
}

func runModel(r responder.RunRecord) Run {
	return Run{
		ID:         r.ID,
		StartURL:   r.StartURL,
		StartState: r.StartState,
		Processed:  r.Processed,
		Submitted:  r.Submitted,
		Failed:     r.Failed,
		Skipped:    r.Skipped,
		Pages:      r.Pages,
		StopReason: r.StopReason,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}
