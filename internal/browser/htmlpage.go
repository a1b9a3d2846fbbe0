package browser

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Loader отдает HTML для адреса, на который переходит HTMLPage.
type Loader func(ctx context.Context, url string) (string, error)

// ClickHook вызывается при клике по элементу HTMLPage. handled=false включает
// поведение по умолчанию: переход по href у ссылок.
type ClickHook func(ctx context.Context, p *HTMLPage, el *goquery.Selection) (handled bool, err error)

// HTMLPage - страница без браузера поверх goquery. Используется для проверки
// селекторов на сохраненных страницах hh.ru и как сайт-заглушка в тестах.
type HTMLPage struct {
	mu          sync.Mutex
	url         string
	doc         *goquery.Document
	loader      Loader
	onClick     ClickHook
	navigations int
}

func NewHTMLPage(loader Loader) *HTMLPage {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<html><head></head><body></body></html>"))
	return &HTMLPage{
		url:    "about:blank",
		doc:    doc,
		loader: loader,
	}
}

// OpenFile загружает сохраненную страницу; url задает адрес, под которым она открыта.
func OpenFile(path, pageURL string) (*HTMLPage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	p := NewHTMLPage(nil)
	if err := p.SetContent(pageURL, string(raw)); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *HTMLPage) OnClick(hook ClickHook) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onClick = hook
}

// SetContent подменяет документ и адрес, как после перехода.
func (p *HTMLPage) SetContent(pageURL, html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("ошибка разбора HTML: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = pageURL
	p.doc = doc
	return nil
}

// Document возвращает текущий документ.
func (p *HTMLPage) Document() *goquery.Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc
}

// Navigations - сколько раз вызывался Navigate.
func (p *HTMLPage) Navigations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.navigations
}

func (p *HTMLPage) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.url
}

func (p *HTMLPage) Title(ctx context.Context) (string, error) {
	return strings.TrimSpace(p.Document().Find("title").First().Text()), nil
}

func (p *HTMLPage) Navigate(ctx context.Context, pageURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	p.navigations++
	loader := p.loader
	p.mu.Unlock()

	if loader == nil {
		return fmt.Errorf("переход на %s невозможен: страница открыта из файла", pageURL)
	}
	html, err := loader(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("ошибка загрузки %s: %w", pageURL, err)
	}
	return p.SetContent(pageURL, html)
}

func (p *HTMLPage) Query(ctx context.Context, selector string) (Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	return p.wrap(p.Document().Find(selector).First()), nil
}

func (p *HTMLPage) QueryAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	return p.wrapAll(p.Document().Find(selector)), nil
}

func (p *HTMLPage) wrap(sel *goquery.Selection) Element {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &htmlElement{page: p, sel: sel}
}

func (p *HTMLPage) wrapAll(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &htmlElement{page: p, sel: s})
	})
	return out
}

func (p *HTMLPage) resolve(href string) string {
	base, err := url.Parse(p.URL())
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

var (
	_ Page    = (*HTMLPage)(nil)
	_ Element = (*htmlElement)(nil)
)

type htmlElement struct {
	page *HTMLPage
	sel  *goquery.Selection
}

func (e *htmlElement) Query(ctx context.Context, selector string) (Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	return e.page.wrap(e.sel.Find(selector).First()), nil
}

func (e *htmlElement) QueryAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	return e.page.wrapAll(e.sel.Find(selector)), nil
}

func (e *htmlElement) Closest(ctx context.Context, selector string) (Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	return e.page.wrap(e.sel.Closest(selector)), nil
}

func (e *htmlElement) InnerText(ctx context.Context) (string, error) {
	return e.sel.Text(), nil
}

func (e *htmlElement) TextContent(ctx context.Context) (string, error) {
	return e.sel.Text(), nil
}

func (e *htmlElement) Attribute(ctx context.Context, name string) (string, error) {
	return e.sel.AttrOr(name, ""), nil
}

func (e *htmlElement) Value(ctx context.Context) (string, error) {
	if goquery.NodeName(e.sel) == "textarea" {
		return e.sel.Text(), nil
	}
	return e.sel.AttrOr("value", ""), nil
}

// IsVisible: элемент скрыт, если у него или у предка есть hidden или display:none.
func (e *htmlElement) IsVisible(ctx context.Context) (bool, error) {
	for _, s := range append([]*goquery.Selection{e.sel}, splitSelection(e.sel.Parents())...) {
		if _, hidden := s.Attr("hidden"); hidden {
			return false, nil
		}
		style := strings.ReplaceAll(strings.ToLower(s.AttrOr("style", "")), " ", "")
		if strings.Contains(style, "display:none") {
			return false, nil
		}
	}
	return true, nil
}

func (e *htmlElement) IsDisabled(ctx context.Context) (bool, error) {
	switch goquery.NodeName(e.sel) {
	case "button", "input", "select", "textarea", "fieldset", "option":
		_, disabled := e.sel.Attr("disabled")
		return disabled, nil
	}
	return false, nil
}

func (e *htmlElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.page.mu.Lock()
	hook := e.page.onClick
	e.page.mu.Unlock()

	if hook != nil {
		handled, err := hook(ctx, e.page, e.sel)
		if err != nil || handled {
			return err
		}
	}

	if href, ok := e.sel.Attr("href"); ok && goquery.NodeName(e.sel) == "a" {
		return e.page.Navigate(ctx, e.page.resolve(href))
	}
	return nil
}

func (e *htmlElement) Focus(ctx context.Context) error {
	return nil
}

func (e *htmlElement) ScrollIntoView(ctx context.Context) error {
	return nil
}

func (e *htmlElement) SetValue(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if goquery.NodeName(e.sel) == "textarea" {
		e.sel.SetText(value)
		return nil
	}
	e.sel.SetAttr("value", value)
	return nil
}

func (e *htmlElement) SetBorder(ctx context.Context, css string) error {
	if css == "" {
		e.sel.RemoveAttr("data-border")
		return nil
	}
	e.sel.SetAttr("data-border", css)
	return nil
}

func splitSelection(sel *goquery.Selection) []*goquery.Selection {
	out := make([]*goquery.Selection, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s)
	})
	return out
}
