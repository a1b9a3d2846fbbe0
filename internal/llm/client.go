package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"hhResponder/internal/sanitizer"
)

const systemPrompt = `Ты помогаешь кандидату отвечать на вопросы работодателя при отклике на вакансию hh.ru.
Отвечай от первого лица, коротко (1-3 предложения), по-русски, без приветствий.
Если в сведениях о кандидате нет ответа, дай нейтральный ответ и предложи обсудить на собеседовании.

Сведения о кандидате:
%s`

type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	profile     string
	logger      Logger
	sanitizer   *sanitizer.DataSanitizer
	rateLimiter *RateLimiter
	breaker     *breaker
}

func NewClient(apiKey, model string, logger Logger, opts Options) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 300
	}

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   opts.MaxTokens,
		profile:     opts.Profile,
		logger:      logger,
		sanitizer:   sanitizer.New(),
		rateLimiter: NewRateLimiter(opts.RequestsPerMinute, opts.TokensPerHour),
		breaker:     newBreaker(opts.MaxFailures, opts.Cooldown, time.Now),
	}
}

func formatPrompt(systemMsg, userPrompt string) string {
	return fmt.Sprintf("System: %s\n\nUser: %s", systemMsg, userPrompt)
}

// AnswerQuestion формулирует ответ на вопрос анкеты работодателя.
func (c *Client) AnswerQuestion(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("пустой вопрос")
	}

	systemMsg := fmt.Sprintf(systemPrompt, c.profile)
	prompt := "Вопрос работодателя: " + question

	req := c.request(systemMsg, prompt)
	// Локальный лимит проверяется до предохранителя: отказ лимитера не сбой OpenAI.
	estimated, err := c.reserve(ctx, req)
	if err != nil {
		c.logRequest(ctx, "error", systemMsg, prompt, err.Error(), 0)
		return "", fmt.Errorf("ошибка запроса к OpenAI: %w", err)
	}

	var resp openai.ChatCompletionResponse
	err = c.breaker.call(func() error {
		var err error
		resp, err = c.createChatCompletion(ctx, req, estimated)
		return err
	})
	if errors.Is(err, ErrCircuitOpen) {
		return "", err
	}
	if err != nil {
		c.logRequest(ctx, "error", systemMsg, prompt, err.Error(), 0)
		return "", fmt.Errorf("ошибка запроса к OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("пустой ответ от OpenAI")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logRequest(ctx, "assistant", systemMsg, prompt, answer, resp.Usage.TotalTokens)
	return answer, nil
}

func (c *Client) request(systemMsg, prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemMsg,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0.3,
	}
}

// Stats возвращает остаток лимитов запросов и токенов.
func (c *Client) Stats() (requests, tokens int) {
	return c.rateLimiter.GetStats()
}

func (c *Client) logRequest(ctx context.Context, role, systemMsg, prompt, response string, tokens int) {
	if c.logger == nil {
		return
	}
	fullPrompt := c.sanitizer.Sanitize(formatPrompt(systemMsg, prompt))
	_ = c.logger.LogLLMRequest(ctx, role, fullPrompt, c.sanitizer.Sanitize(response), c.model, tokens)
}

// reserve списывает запрос и оценку токенов из лимитов; возвращает оценку.
func (c *Client) reserve(ctx context.Context, req openai.ChatCompletionRequest) (int, error) {
	if err := c.rateLimiter.AllowRequest(ctx); err != nil {
		return 0, err
	}

	// Грубая оценка: ~4 символа на токен
	estimatedTokens := 0
	for _, msg := range req.Messages {
		estimatedTokens += len(msg.Content) / 4
	}
	estimatedTokens += req.MaxTokens

	if err := c.rateLimiter.AllowTokens(ctx, estimatedTokens); err != nil {
		return 0, err
	}
	return estimatedTokens, nil
}

func (c *Client) createChatCompletion(ctx context.Context, req openai.ChatCompletionRequest, estimatedTokens int) (openai.ChatCompletionResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return resp, err
	}

	// Корректируем использованные токены (теперь знаем точное значение)
	if resp.Usage.TotalTokens > estimatedTokens {
		c.rateLimiter.ConsumeTokens(resp.Usage.TotalTokens - estimatedTokens)
	}

	return resp, nil
}
