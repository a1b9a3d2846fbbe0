package sanitizer

import "regexp"

var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(token|токен)(\s*[:=]\s*)["']?[a-zA-Z0-9_-]{20,}["']?`),
	regexp.MustCompile(`(?i)(api[_-]?key|api[_-]?secret|access[_-]?token)(\s*[:=]\s*)["']?[a-zA-Z0-9_-]{20,}["']?`),
	regexp.MustCompile(`(?i)(password|пароль|passwd|pwd)(\s*[:=]\s*)["']?[^"'\s]{3,}["']?`),
	regexp.MustCompile(`(?i)(bearer)(\s+)[a-zA-Z0-9_.-]{20,}`),
	regexp.MustCompile(`()()sk-[a-zA-Z0-9_-]{32,}`),
}

// TokenSanitizer скрывает токены, ключи API и пароли, оставляя имя поля.
type TokenSanitizer struct{}

func (s *TokenSanitizer) Sanitize(text string) string {
	for _, pattern := range tokenPatterns {
		text = pattern.ReplaceAllString(text, `${1}${2}[FILTERED]`)
	}
	return text
}
