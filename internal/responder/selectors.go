package responder

// Селекторы hh.ru. Разметка сайта меняется без предупреждения, поэтому
// почти везде используется цепочка запасных вариантов.
const (
	selPagerNext         = `[data-qa="pager-next"]`
	selModalOverlay      = `[data-qa="modal-overlay"]`
	selRelocationConfirm = `[data-qa="relocation-warning-confirm"]`
	selVacancyCards      = `[data-qa="vacancy-serp__vacancy"]`
	selCardTitle         = `[data-qa='serp-item__title']`
	selCardRespond       = `[data-qa="vacancy-serp__vacancy_response"]`
	selVacancyLink       = `a[href*="/vacancy/"]`
	selResponseLinkTop   = `[data-qa="vacancy-response-link-top"]`

	selLetter          = `textarea[name="letter"]`
	selLetterToggleTxt = `[data-qa="vacancy-response-letter-toggle-text"]`
	selLetterToggle    = `[data-qa="vacancy-response-letter-toggle"]`
	selDescription     = `[data-qa="vacancy-description"]`

	selSubmitPopup  = `[data-qa="vacancy-response-submit-popup"]`
	selSubmitLetter = `[data-qa="vacancy-response-letter-submit"]`

	selTaskTextareas = `textarea[name*="task"]:not([name="letter"])`
	selTaskBody      = `[data-qa="task-body"]`
	selControlGroup  = `.bloko-control-group`
)

var titleSelectors = []string{
	`h1:not([data-qa="title-description"])`,
	`[data-qa="vacancy-title"]:not([data-qa="title-description"])`,
	`[data-qa="bloko-header-1"]:not([data-qa="title-description"])`,
	`.vacancy-title:not(.title-description)`,
	`[data-qa="vacancy-name"]`,
	`[itemprop="title"]`,
}

var titleMetaSelectors = []string{
	`meta[property="og:title"]`,
	`meta[name="title"]`,
}

const (
	respondText      = "Откликнуться"
	letterToggleText = "сопроводительное письмо"
	cardHighlight    = "2px solid #0059b3"

	questionsHeader = "Ответьте на вопросы"
	questionsIntro  = "Для отклика необходимо ответить на несколько вопросов работодателя"

	defaultCardTitle = "вакансию"
	titlePlaceholder = "данную позицию"
)
