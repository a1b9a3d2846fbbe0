package responder

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"hhResponder/internal/logger"
)

// DefaultAnswer - ответ на вопрос, который не подошел ни под одну тему.
const DefaultAnswer = "Готов подробно обсудить на собеседовании."

// Profile - заготовленные ответы соискателя.
type Profile struct {
	Name         string
	Experience   string
	Skills       string
	Salary       string
	Location     string
	WorkFormat   string
	English      string
	Education    string
	StartDate    string
	Achievements string
}

type topic struct {
	pattern *regexp.Regexp
	answer  func(Profile) string
}

// Порядок тем задает приоритет: вопрос про зарплату в городе - это вопрос про зарплату.
var topics = []topic{
	{regexp.MustCompile(`зарплат|оклад|доход|компенсац|salary`), func(p Profile) string { return p.Salary }},
	{regexp.MustCompile(`город|откуда|местоположение|location`), func(p Profile) string { return p.Location }},
	{regexp.MustCompile(`опыт|стаж|лет работы|experience`), func(p Profile) string { return p.Experience }},
	{regexp.MustCompile(`формат|удален|офис|remote|гибрид`), func(p Profile) string { return p.WorkFormat }},
	{regexp.MustCompile(`английск|english|язык`), func(p Profile) string { return p.English }},
	{regexp.MustCompile(`навык|умеете|технолог|стек|skill`), func(p Profile) string { return p.Skills }},
}

// MatchAnswer подбирает поле профиля по ключевым словам вопроса.
func MatchAnswer(p Profile, question string) (string, bool) {
	q := strings.ToLower(question)
	for _, t := range topics {
		if t.pattern.MatchString(q) {
			return t.answer(p), true
		}
	}
	return "", false
}

// GenerateAnswer - MatchAnswer с общим ответом по умолчанию.
func GenerateAnswer(p Profile, question string) string {
	if answer, ok := MatchAnswer(p, question); ok {
		return answer
	}
	return DefaultAnswer
}

// Answerer отвечает на вопрос работодателя.
type Answerer interface {
	Answer(ctx context.Context, question string) string
}

// Fallback отвечает на вопросы вне заготовленных тем, например через LLM.
type Fallback interface {
	AnswerQuestion(ctx context.Context, question string) (string, error)
}

type AnswerGenerator struct {
	profile  Profile
	fallback Fallback
	log      *logger.Zap
}

// NewAnswerGenerator создает генератор ответов. fallback может быть nil.
func NewAnswerGenerator(p Profile, fallback Fallback, log *logger.Zap) *AnswerGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &AnswerGenerator{profile: p, fallback: fallback, log: log}
}

func (g *AnswerGenerator) Answer(ctx context.Context, question string) string {
	if g.fallback == nil {
		return GenerateAnswer(g.profile, question)
	}
	if answer, ok := MatchAnswer(g.profile, question); ok {
		return answer
	}

	answer, err := g.fallback.AnswerQuestion(ctx, question)
	if err != nil {
		g.log.Warn("Не удалось получить ответ от LLM, используется ответ по умолчанию", zap.Error(err))
		return DefaultAnswer
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return DefaultAnswer
	}
	return answer
}
