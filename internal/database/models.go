// Package database хранит журнал откликов, запуски, настройки и логи LLM в PostgreSQL.
// Использует GORM с prepared statements; схема создается миграциями golang-migrate.
package database

import "time"

// Application - попытка отклика на вакансию.
// Статусы: submitted, not_submitted, failed.
type Application struct {
	ID           uint      `gorm:"primaryKey"`
	RunID        string    `gorm:"type:uuid;index"`
	VacancyID    string    `gorm:"type:varchar(32);index"`
	Title        string    `gorm:"type:text;not null"`
	URL          string    `gorm:"type:text"`
	SearchURL    string    `gorm:"type:text"`
	Template     string    `gorm:"type:varchar(64)"`
	Variant      string    `gorm:"type:varchar(16)"` // modal или page
	Questions    int       `gorm:"not null;default:0"`
	Status       string    `gorm:"type:varchar(32);not null;index"`
	Error        string    `gorm:"type:text"`
	CoverLetter  string    `gorm:"type:text"` // с замаскированными контактами
	Technologies string    `gorm:"type:text"` // через запятую
	Level        string    `gorm:"type:varchar(16)"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

// Run - один запуск цикла откликов.
type Run struct {
	ID         string     `gorm:"type:uuid;primaryKey"`
	StartURL   string     `gorm:"type:text"`
	StartState string     `gorm:"type:varchar(32)"`
	Processed  int        `gorm:"not null;default:0"`
	Submitted  int        `gorm:"not null;default:0"`
	Failed     int        `gorm:"not null;default:0"`
	Skipped    int        `gorm:"not null;default:0"`
	Pages      int        `gorm:"not null;default:0"`
	StopReason string     `gorm:"type:varchar(32)"`
	StartedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time
}

// Setting - пара ключ-значение пользовательских настроек (шаблоны писем, выбранный шаблон).
type Setting struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// LlmLog представляет лог запроса к LLM.
// Сохраняет промпт, ответ, модель и количество использованных токенов.
type LlmLog struct {
	ID           uint      `gorm:"primaryKey"`
	RunID        *string   `gorm:"type:uuid;index"`
	Role         string    `gorm:"type:varchar(16);not null"`
	PromptText   string    `gorm:"type:text;not null"`
	ResponseText string    `gorm:"type:text"`
	Model        string    `gorm:"type:varchar(64)"`
	TokensUsed   int
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
