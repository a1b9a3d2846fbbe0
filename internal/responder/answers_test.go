package responder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAnswer(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"Какая у вас желаемая зарплата?", testProfile.Salary},
		{"Укажите опыт, город и зарплатные ожидания", testProfile.Salary},
		{"Из какого вы города?", testProfile.Location},
		{"Сколько лет работы с Go?", testProfile.Experience},
		{"Готовы работать в офисе?", testProfile.WorkFormat},
		{"Уровень английского?", testProfile.English},
		{"Какой стек вы используете?", testProfile.Skills},
		{"WHAT IS YOUR SALARY EXPECTATION", testProfile.Salary},
		{"Расскажите о себе", DefaultAnswer},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateAnswer(testProfile, tt.question), tt.question)
	}
}

type stubFallback struct {
	answer string
	err    error
	calls  int
}

func (f *stubFallback) AnswerQuestion(ctx context.Context, question string) (string, error) {
	f.calls++
	return f.answer, f.err
}

func TestAnswerGenerator_Fallback(t *testing.T) {
	ctx := context.Background()

	fb := &stubFallback{answer: "  Люблю сложные задачи.  "}
	g := NewAnswerGenerator(testProfile, fb, nil)
	assert.Equal(t, "Люблю сложные задачи.", g.Answer(ctx, "Почему вы выбрали нашу компанию?"))
	assert.Equal(t, testProfile.Salary, g.Answer(ctx, "Ожидаемый доход?"))
	assert.Equal(t, 1, fb.calls, "заготовленные темы не уходят в LLM")

	g = NewAnswerGenerator(testProfile, &stubFallback{err: errors.New("rate limit")}, nil)
	assert.Equal(t, DefaultAnswer, g.Answer(ctx, "Почему вы выбрали нашу компанию?"))

	g = NewAnswerGenerator(testProfile, &stubFallback{}, nil)
	assert.Equal(t, DefaultAnswer, g.Answer(ctx, "Почему вы выбрали нашу компанию?"))

	g = NewAnswerGenerator(testProfile, nil, nil)
	assert.Equal(t, DefaultAnswer, g.Answer(ctx, "Почему вы выбрали нашу компанию?"))
}

func TestAnswerGenerator_WithoutFallbackMatchesGenerateAnswer(t *testing.T) {
	g := NewAnswerGenerator(testProfile, nil, nil)
	for _, q := range []string{
		"Какая у вас желаемая зарплата?",
		"Уровень английского?",
		"Почему вы выбрали нашу компанию?",
	} {
		assert.Equal(t, GenerateAnswer(testProfile, q), g.Answer(context.Background(), q), q)
	}
}
