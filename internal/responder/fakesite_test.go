package responder

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"hhResponder/internal/browser"
	"hhResponder/internal/logger"
	"hhResponder/internal/templates"
)

const testBase = "https://hh.test"

var testProfile = Profile{
	Name:       "Иван",
	Experience: "6 лет коммерческой разработки",
	Skills:     "Go, PostgreSQL, Kubernetes",
	Salary:     "от 300 000 рублей",
	Location:   "Москва",
	WorkFormat: "удаленно",
	English:    "B2",
}

type fakeVacancy struct {
	ID          string
	Title       string
	Variant     string
	Relocation  bool
	FailRespond bool
	Question    string
	Description string
	Applied     bool
	NoSubmit    bool
}

// fakeSite - упрощенная копия выдачи hh.ru поверх HTMLPage.
type fakeSite struct {
	mu          sync.Mutex
	pages       [][]*fakeVacancy
	lastPager   string // "disabled" или "" (нет пагинатора) на последней странице
	modalFor    string
	relocation  string
	confirmed   map[string]bool
	letters     map[string]string
	answers     map[string]string
	respondHits int
	onRespond   func()

	// blankAfterSubmit оставляет вкладку на адресе выдачи, но без карточек.
	blankAfterSubmit bool

	page *browser.HTMLPage
}

func newFakeSite(pages ...[]*fakeVacancy) *fakeSite {
	s := &fakeSite{
		pages:     pages,
		confirmed: map[string]bool{},
		letters:   map[string]string{},
		answers:   map[string]string{},
	}
	s.page = browser.NewHTMLPage(s.load)
	s.page.OnClick(s.click)
	return s
}

func (s *fakeSite) searchURL(n int) string {
	return fmt.Sprintf("%s/search/vacancy?text=go&page=%d", testBase, n)
}

// open загружает страницу, не считая это переходом цикла.
func (s *fakeSite) open(t *testing.T, rawURL string) {
	t.Helper()
	html, err := s.load(context.Background(), rawURL)
	require.NoError(t, err)
	require.NoError(t, s.page.SetContent(rawURL, html))
}

func (s *fakeSite) find(id string) *fakeVacancy {
	for _, p := range s.pages {
		for _, v := range p {
			if v.ID == id {
				return v
			}
		}
	}
	return nil
}

func (s *fakeSite) load(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case u.Path == "/search/vacancy":
		n, _ := strconv.Atoi(u.Query().Get("page"))
		if n < 1 {
			n = 1
		}
		return s.renderSearch(n), nil
	case u.Path == "/applicant/vacancy_response":
		v := s.find(u.Query().Get("vacancyId"))
		if v == nil {
			return "", errors.New("vacancy not found")
		}
		return s.renderResponse(v), nil
	case strings.HasPrefix(u.Path, "/vacancy/"):
		v := s.find(strings.TrimPrefix(u.Path, "/vacancy/"))
		if v == nil {
			return "", errors.New("vacancy not found")
		}
		return s.renderDetail(v), nil
	}
	return "<html><head><title>hh.ru</title></head><body><h1>Работодатель</h1></body></html>", nil
}

func (s *fakeSite) renderSearch(n int) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Найдено 2 вакансии</title></head><body><main>`)
	if n <= len(s.pages) {
		for _, v := range s.pages[n-1] {
			respond := "Откликнуться"
			if v.Applied {
				respond = "Вы откликнулись"
			}
			fmt.Fprintf(&b, `<div data-qa="vacancy-serp__vacancy">
<span data-qa="serp-item__title">%s</span>
<a href="/vacancy/%s">%s</a>
<a data-qa="vacancy-serp__vacancy_response" data-id="%s">%s</a>
</div>`, v.Title, v.ID, v.Title, v.ID, respond)
		}
	}
	switch {
	case n < len(s.pages):
		fmt.Fprintf(&b, `<a data-qa="pager-next" href="/search/vacancy?text=go&page=%d">дальше</a>`, n+1)
	case s.lastPager == "disabled":
		b.WriteString(`<button data-qa="pager-next" disabled>дальше</button>`)
	}
	b.WriteString(`</main>`)

	if s.relocation != "" {
		fmt.Fprintf(&b, `<div role="dialog"><button data-qa="relocation-warning-confirm" data-id="%s">Продолжить</button></div>`, s.relocation)
	}
	if v := s.find(s.modalFor); v != nil {
		b.WriteString(`<div data-qa="modal-overlay">`)
		if v.Question != "" {
			fmt.Fprintf(&b, `<div data-qa="task-body">Ответьте на вопросы %s <textarea name="task_1_text"></textarea></div>`, v.Question)
		}
		b.WriteString(`<textarea name="letter"></textarea>`)
		if !v.NoSubmit {
			fmt.Fprintf(&b, `<button data-qa="vacancy-response-submit-popup" data-id="%s">Откликнуться</button>`, v.ID)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func (s *fakeSite) renderResponse(v *fakeVacancy) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<html><head><title>Отклик на вакансию</title></head><body>`)
	fmt.Fprintf(&b, `<div data-qa="vacancy-description">%s</div>`, v.Description)
	if v.Question != "" {
		fmt.Fprintf(&b, `<div class="bloko-control-group">Для отклика необходимо ответить на несколько вопросов работодателя %s <textarea name="task_7_text"></textarea></div>`, v.Question)
	}
	b.WriteString(`<span data-qa="vacancy-response-letter-toggle">Добавить сопроводительное письмо</span><div id="letter-slot"></div>`)
	fmt.Fprintf(&b, `<button data-qa="vacancy-response-letter-submit" data-id="%s">Откликнуться</button>`, v.ID)
	b.WriteString(`</body></html>`)
	return b.String()
}

func (s *fakeSite) renderDetail(v *fakeVacancy) string {
	return fmt.Sprintf(`<html><head><title>Вакансия %s в Москве, работа в компании Пример</title></head><body>
<h1 data-qa="vacancy-title">%s</h1>
<a data-qa="vacancy-response-link-top" href="/applicant/vacancy_response?vacancyId=%s">Откликнуться</a>
</body></html>`, v.Title, v.Title, v.ID)
}

func (s *fakeSite) click(ctx context.Context, p *browser.HTMLPage, el *goquery.Selection) (bool, error) {
	id := el.AttrOr("data-id", "")
	switch el.AttrOr("data-qa", "") {
	case "vacancy-serp__vacancy_response":
		s.mu.Lock()
		s.respondHits++
		hook := s.onRespond
		v := s.find(id)
		s.mu.Unlock()
		if hook != nil {
			hook()
		}
		if v.FailRespond {
			return true, errors.New("element is not attached to the DOM")
		}
		if v.Relocation && !s.confirmed[id] {
			return true, s.rerender(p, func() { s.relocation = id })
		}
		return true, s.openForm(ctx, p, v)

	case "relocation-warning-confirm":
		v := s.find(id)
		return true, s.rerender(p, func() {
			s.relocation = ""
			s.confirmed[id] = true
		}, func() error { return s.openForm(ctx, p, v) })

	case "vacancy-response-letter-toggle":
		p.Document().Find("#letter-slot").AppendHtml(`<textarea name="letter"></textarea>`)
		return true, nil

	case "vacancy-response-submit-popup":
		s.submit(p, id)
		if s.blankAfterSubmit {
			s.mu.Lock()
			s.modalFor = ""
			s.mu.Unlock()
			return true, p.SetContent(p.URL(), `<html><head><title>hh.ru</title></head><body><div class="loading"></div></body></html>`)
		}
		return true, s.rerender(p, func() { s.modalFor = "" })

	case "vacancy-response-letter-submit":
		s.submit(p, id)
		return true, p.SetContent(p.URL(), `<html><head><title>Отклик отправлен</title></head><body><h2>Ваш отклик успешно отправлен</h2></body></html>`)
	}
	return false, nil
}

func (s *fakeSite) openForm(ctx context.Context, p *browser.HTMLPage, v *fakeVacancy) error {
	if v.Variant == VariantModal {
		return s.rerender(p, func() { s.modalFor = v.ID })
	}
	return p.Navigate(ctx, testBase+"/applicant/vacancy_response?vacancyId="+v.ID)
}

// rerender меняет состояние и перерисовывает текущую страницу выдачи.
func (s *fakeSite) rerender(p *browser.HTMLPage, change func(), then ...func() error) error {
	s.mu.Lock()
	change()
	s.mu.Unlock()

	html, err := s.load(context.Background(), p.URL())
	if err != nil {
		return err
	}
	if err := p.SetContent(p.URL(), html); err != nil {
		return err
	}
	for _, fn := range then {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeSite) submit(p *browser.HTMLPage, id string) {
	doc := p.Document()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.letters[id] = doc.Find(`textarea[name="letter"]`).Text()
	s.answers[id] = doc.Find(`textarea[name*="task"]`).Text()
	if v := s.find(id); v != nil {
		v.Applied = true
	}
}

func testConfig() Config {
	return Config{
		DefaultSearchURL: testBase + "/search/vacancy",
		AnswerQuestions:  true,
		SkipApplied:      true,
		MaxErrors:        5,
		PollAttempts:     3,
	}
}

func newTestSession(t *testing.T, site *fakeSite, cfg Config, journal Journal) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Zap{Logger: zap.New(core)}
	s := NewSession(site.page, templates.New(nil, nil), NewAnswerGenerator(testProfile, nil, log), journal, cfg, log)
	return s, logs
}
