// Package llm отвечает на вопросы работодателя через OpenAI, когда заготовленного ответа нет.
// Включает rate limiting и логирование запросов с замаскированными личными данными.
package llm

import (
	"context"
	"time"
)

// Logger определяет интерфейс для логирования LLM запросов.
type Logger interface {
	// LogLLMRequest сохраняет информацию о запросе к LLM в базу данных.
	LogLLMRequest(ctx context.Context, role, promptText, responseText, model string, tokensUsed int) error
}

// Options задает параметры клиента. Нулевые значения заменяются значениями по умолчанию.
type Options struct {
	BaseURL           string
	MaxTokens         int
	RequestsPerMinute int
	TokensPerHour     int
	// MaxFailures ошибок подряд приостанавливают запросы на Cooldown.
	MaxFailures int
	Cooldown    time.Duration
	// Profile - сведения о кандидате, которые модель использует в ответах.
	Profile string
}
