package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type logEntry struct {
	role, prompt, response string
	tokens                 int
}

type fakeLogger struct {
	entries []logEntry
}

func (l *fakeLogger) LogLLMRequest(_ context.Context, role, promptText, responseText, _ string, tokensUsed int) error {
	l.entries = append(l.entries, logEntry{role: role, prompt: promptText, response: responseText, tokens: tokensUsed})
	return nil
}

func newTestServer(t *testing.T, status int, answer string) (*httptest.Server, *openai.ChatCompletionRequest) {
	t.Helper()
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID: "chatcmpl-1",
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answer},
			}},
			Usage: openai.Usage{TotalTokens: 42},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestAnswerQuestion(t *testing.T) {
	srv, req := newTestServer(t, http.StatusOK, "  Готов выйти через две недели.  ")
	log := &fakeLogger{}
	c := NewClient("sk-test", "gpt-4o", log, Options{
		BaseURL: srv.URL + "/v1",
		Profile: "Телефон: +7 999 123-45-67",
	})

	answer, err := c.AnswerQuestion(context.Background(), "Когда сможете приступить?")
	require.NoError(t, err)
	assert.Equal(t, "Готов выйти через две недели.", answer)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "+7 999 123-45-67")
	assert.Contains(t, req.Messages[1].Content, "Когда сможете приступить?")
	assert.Equal(t, 300, req.MaxTokens)

	require.Len(t, log.entries, 1)
	assert.Equal(t, "assistant", log.entries[0].role)
	assert.Equal(t, 42, log.entries[0].tokens)
	assert.NotContains(t, log.entries[0].prompt, "999 123-45-67")
}

func TestAnswerQuestionError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, "")
	log := &fakeLogger{}
	c := NewClient("sk-test", "gpt-4o", log, Options{BaseURL: srv.URL + "/v1"})

	_, err := c.AnswerQuestion(context.Background(), "Ваш опыт?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ошибка запроса к OpenAI")
	require.Len(t, log.entries, 1)
	assert.Equal(t, "error", log.entries[0].role)
}

func TestAnswerQuestionEmpty(t *testing.T) {
	c := NewClient("sk-test", "gpt-4o", nil, Options{BaseURL: "http://127.0.0.1:0/v1"})
	_, err := c.AnswerQuestion(context.Background(), "   ")
	require.Error(t, err)
}

func TestAnswerQuestionRateLimited(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "ok")
	c := NewClient("sk-test", "gpt-4o", nil, Options{BaseURL: srv.URL + "/v1", RequestsPerMinute: 1})

	_, err := c.AnswerQuestion(context.Background(), "Первый вопрос")
	require.NoError(t, err)
	_, err = c.AnswerQuestion(context.Background(), "Второй вопрос")
	require.Error(t, err)

	requests, _ := c.Stats()
	assert.Equal(t, 0, requests)
}

func TestAnswerQuestionCircuitOpen(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("sk-test", "gpt-4o", nil, Options{BaseURL: srv.URL + "/v1", MaxFailures: 1})

	_, err := c.AnswerQuestion(context.Background(), "Ваш опыт?")
	require.Error(t, err)
	_, err = c.AnswerQuestion(context.Background(), "Ваш опыт?")
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 1, hits)
}

func TestAnswerQuestionRateLimitDoesNotOpenCircuit(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "ok")
	log := &fakeLogger{}
	c := NewClient("sk-test", "gpt-4o", log, Options{
		BaseURL:           srv.URL + "/v1",
		RequestsPerMinute: 1,
		MaxFailures:       1,
	})

	_, err := c.AnswerQuestion(context.Background(), "Первый вопрос")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = c.AnswerQuestion(context.Background(), "Следующий вопрос")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
		assert.Contains(t, err.Error(), "превышен лимит запросов")
	}

	c.breaker.mu.Lock()
	defer c.breaker.mu.Unlock()
	assert.Equal(t, stateClosed, c.breaker.state)
	assert.Equal(t, 0, c.breaker.failures)
}
