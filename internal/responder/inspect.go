package responder

import (
	"context"

	"hhResponder/internal/browser"
)

// CardReport - как цикл видит карточку выдачи.
type CardReport struct {
	Title       string
	ID          string
	URL         string
	RespondText string
	Eligible    bool
}

// Report - разбор страницы без каких-либо действий на ней.
type Report struct {
	URL           string
	State         PageState
	Title         string
	Cards         []CardReport
	PagerPresent  bool
	PagerDisabled bool
	Modal         bool
	LetterField   bool
	Questions     int
}

// Inspect разбирает страницу теми же селекторами, что и цикл откликов.
// Нужен, чтобы проверить сохраненную страницу hh.ru после смены разметки.
func Inspect(ctx context.Context, page browser.Page) (Report, error) {
	r := Report{URL: page.URL(), State: Classify(page.URL())}
	r.Title = ResolveTitle(ctx, page, "")

	cards, err := page.QueryAll(ctx, selVacancyCards)
	if err != nil {
		return r, err
	}
	for _, el := range cards {
		c, err := readCard(ctx, r.URL, el)
		if err != nil {
			return r, err
		}
		r.Cards = append(r.Cards, CardReport{
			Title:       c.Title,
			ID:          c.ID,
			URL:         c.URL,
			RespondText: c.respondText,
			Eligible:    c.Eligible,
		})
	}

	next, err := page.Query(ctx, selPagerNext)
	if err != nil {
		return r, err
	}
	if next != nil {
		r.PagerPresent = true
		if r.PagerDisabled, err = next.IsDisabled(ctx); err != nil {
			return r, err
		}
	}

	if modal, err := page.Query(ctx, selModalOverlay); err == nil {
		r.Modal = modal != nil
	}
	if letter, err := page.Query(ctx, selLetter); err == nil {
		r.LetterField = letter != nil
	}
	if tasks, err := page.QueryAll(ctx, selTaskTextareas); err == nil {
		r.Questions = len(tasks)
	}
	return r, nil
}

// Eligible - сколько карточек доступны для отклика.
func (r Report) Eligible() int {
	n := 0
	for _, c := range r.Cards {
		if c.Eligible {
			n++
		}
	}
	return n
}
