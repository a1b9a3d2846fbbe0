package responder

import "strings"

// PageState - состояние вкладки, определяемое по адресу.
type PageState int

const (
	StateUnknown PageState = iota
	StateSearchList
	StateVacancyDetail
	StateResponsePage
)

func (s PageState) String() string {
	switch s {
	case StateSearchList:
		return "search_list"
	case StateVacancyDetail:
		return "vacancy_detail"
	case StateResponsePage:
		return "response_page"
	default:
		return "unknown"
	}
}

// Classify определяет состояние по URL. Порядок проверок важен:
// адрес страницы отклика содержит и vacancy, и search в параметрах.
func Classify(url string) PageState {
	switch {
	case strings.Contains(url, "applicant/vacancy_response"):
		return StateResponsePage
	case strings.Contains(url, "/vacancy/") && !strings.Contains(url, "search"):
		return StateVacancyDetail
	case strings.Contains(url, "search/vacancy") || strings.Contains(url, "vacancies"):
		return StateSearchList
	default:
		return StateUnknown
	}
}

// isSearchURL - адрес выдачи, а не вакансии или отклика.
func isSearchURL(url string) bool {
	return (strings.Contains(url, "search/vacancy") || strings.Contains(url, "vacancies")) &&
		!strings.Contains(url, "vacancy_response") &&
		!strings.Contains(url, "/vacancy/")
}
