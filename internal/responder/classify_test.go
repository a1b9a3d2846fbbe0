package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSearchText(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Найдено 120 вакансий", true},
		{"найдена 1 вакансия", true},
		{"15 подходящих вакансий", true},
		{"Результаты поиска", true},
		{"Поиск работы в Москве", true},
		{"Страница 2", true},
		{"", true},
		{"   ", true},
		{"Go разработчик", false},
		{"Senior Python Developer", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSearchText(tt.text), tt.text)
	}
}

func TestIsSystemMessage(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Вероятность получить отклик высокая", true},
		{"Не останавливайтесь на достигнутом", true},
		{"Продолжайте в том же духе", true},
		{"Поздравляем!", true},
		{"Резюме успешно отправлено", true},
		{"Ваш отклик отправлен", true},
		{"", true},
		{"Frontend разработчик", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSystemMessage(tt.text), tt.text)
	}
}

func TestAcceptableTitle(t *testing.T) {
	assert.True(t, acceptableTitle("Go разработчик"))
	assert.False(t, acceptableTitle("Гоу"))
	assert.True(t, acceptableTitle("QA инж"))
	assert.False(t, acceptableTitle("Найдено 5 вакансий"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want PageState
	}{
		{"https://hh.ru/applicant/vacancy_response?vacancyId=1&from=search", StateResponsePage},
		{"https://hh.ru/vacancy/123456", StateVacancyDetail},
		{"https://hh.ru/vacancy/123456?query=search", StateUnknown},
		{"https://hh.ru/search/vacancy?text=go", StateSearchList},
		{"https://hh.ru/vacancies/programmist", StateSearchList},
		{"https://hh.ru/employer/1", StateUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.url), tt.url)
	}
	assert.Equal(t, "search_list", StateSearchList.String())
	assert.Equal(t, "unknown", PageState(42).String())
}

func TestIsSearchURL(t *testing.T) {
	assert.True(t, isSearchURL("https://hh.ru/search/vacancy?page=2"))
	assert.False(t, isSearchURL("https://hh.ru/applicant/vacancy_response?vacancyId=1&search/vacancy"))
	assert.False(t, isSearchURL("https://hh.ru/vacancy/1?from=search/vacancy"))
}
