package responder

import (
	"regexp"
	"strings"
)

var searchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)найден[а-я]*\s+\d+`),
	regexp.MustCompile(`(?i)\d+\s+подходящ[а-я]*`),
	regexp.MustCompile(`(?i)\d+\s+вакансий`),
	regexp.MustCompile(`(?i)результат[а-я]*\s+поиска`),
	regexp.MustCompile(`(?i)поиск\s+работы`),
	regexp.MustCompile(`(?i)страниц[а-я]*\s+\d+`),
}

var systemPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)вероятность\s+получить\s+отклик`),
	regexp.MustCompile(`(?i)не\s+останавливайтесь`),
	regexp.MustCompile(`(?i)продолжайте\s+в\s+том\s+же\s+духе`),
	regexp.MustCompile(`(?i)поздравляем`),
	regexp.MustCompile(`(?i)успешно\s+отправлен`),
	regexp.MustCompile(`(?i)ваш\s+отклик`),
}

// IsSearchText распознает подписи выдачи ("найдено 120 вакансий", "страница 2").
// Пустой текст считается подписью, чтобы не принять его за название вакансии.
func IsSearchText(text string) bool {
	return matchAny(searchPatterns, text)
}

// IsSystemMessage распознает баннеры после отклика ("ваш отклик отправлен").
func IsSystemMessage(text string) bool {
	return matchAny(systemPatterns, text)
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// acceptableTitle: не подпись, не баннер и длиннее трех символов.
func acceptableTitle(text string) bool {
	return !IsSearchText(text) && !IsSystemMessage(text) && len([]rune(text)) > 3
}
