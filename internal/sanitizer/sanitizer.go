// Package sanitizer маскирует личные данные в текстах, которые уходят в журнал и в LLM.
package sanitizer

type DataSanitizer struct {
	rules []Rule
}

// Rule заменяет найденные фрагменты маской.
type Rule interface {
	Sanitize(text string) string
}

func New() *DataSanitizer {
	return &DataSanitizer{
		rules: []Rule{
			&TokenSanitizer{},
			&EmailSanitizer{},
			&PhoneSanitizer{},
		},
	}
}

func (s *DataSanitizer) Sanitize(text string) string {
	if text == "" {
		return text
	}

	result := text
	for _, rule := range s.rules {
		result = rule.Sanitize(result)
	}

	return result
}

var std = New()

// Sanitize применяет набор правил по умолчанию.
func Sanitize(text string) string {
	return std.Sanitize(text)
}
