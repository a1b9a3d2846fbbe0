package responder

import (
	"strings"

	"hhResponder/internal/templates"
)

type keywordGroup struct {
	name     string
	keywords []string
}

var techGroups = []keywordGroup{
	{"frontend", []string{"react", "vue", "angular", "javascript", "typescript", "frontend", "фронтенд"}},
	{"backend", []string{"node.js", "python", "java", "php", "backend", "бэкенд", "api"}},
	{"qa", []string{"qa", "тест", "автотест", "testing"}},
	{"management", []string{"менеджер", "руководитель", "лид", "lead", "manager"}},
}

var levelGroups = []keywordGroup{
	{"junior", []string{"junior", "джуниор", "начинающий", "младший"}},
	{"middle", []string{"middle", "миддл", "средний"}},
	{"senior", []string{"senior", "сеньор", "ведущий", "старший"}},
}

const defaultLevel = "middle"

var techSentences = map[string]string{
	"frontend":   "Специализируюсь на frontend-разработке с пониманием современных технологий.",
	"backend":    "Имею опыт backend-разработки и работы с API.",
	"qa":         "Понимаю важность качества и имею опыт тестирования.",
	"management": "Имею опыт управления проектами и командной работы.",
}

// Analysis - что удалось понять о вакансии по названию и описанию.
type Analysis struct {
	Title        string
	Technologies []string
	Level        string
}

// MainTech возвращает первую найденную категорию или пустую строку.
func (a Analysis) MainTech() string {
	if len(a.Technologies) == 0 {
		return ""
	}
	return a.Technologies[0]
}

func AnalyzeVacancy(title, description string) Analysis {
	text := strings.ToLower(title + " " + description)

	a := Analysis{Title: title, Level: defaultLevel}
	for _, g := range techGroups {
		if containsAny(text, g.keywords) {
			a.Technologies = append(a.Technologies, g.name)
		}
	}
	for _, g := range levelGroups {
		if containsAny(text, g.keywords) {
			a.Level = g.name
			break
		}
	}
	return a
}

// AdaptCoverLetter подставляет название вакансии и, если распознана категория,
// добавляет про нее абзац перед последними одним-двумя абзацами письма.
func AdaptCoverLetter(template, title, description string) (string, Analysis) {
	analysis := AnalyzeVacancy(title, description)
	letter := strings.ReplaceAll(template, templates.Placeholder, title)

	sentence, ok := techSentences[analysis.MainTech()]
	if !ok {
		return letter, analysis
	}

	parts := strings.Split(letter, "\n\n")
	at := len(parts) - 1
	if len(parts) >= 3 {
		at = len(parts) - 2
	}
	parts = append(parts[:at], append([]string{sentence}, parts[at:]...)...)
	return strings.Join(parts, "\n\n"), analysis
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
