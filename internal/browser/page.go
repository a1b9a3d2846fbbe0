package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// setReactValueJS выставляет значение через нативный сеттер прототипа и шлет input/change:
// React отслеживает value через перехваченный сеттер и не видит прямого присваивания.
const setReactValueJS = `(el, value) => {
	el.focus();
	el.click();
	el.value = '';
	const proto = el.tagName === 'TEXTAREA'
		? window.HTMLTextAreaElement.prototype
		: window.HTMLInputElement.prototype;
	const setter = Object.getOwnPropertyDescriptor(proto, 'value').set;
	setter.call(el, value);
	el.dispatchEvent(new Event('input', { bubbles: true, cancelable: true }));
	el.dispatchEvent(new Event('change', { bubbles: true, cancelable: true }));
	el.value = value;
}`

var (
	_ Page    = (*pwPage)(nil)
	_ Element = (*pwElement)(nil)
)

type pwPage struct {
	b *PlaywrightBrowser
}

func (p *pwPage) page() (playwright.Page, error) {
	page := p.b.getPage()
	if page == nil {
		return nil, ErrBrowserNotStarted
	}
	return page, nil
}

func (p *pwPage) URL() string {
	page := p.b.getPage()
	if page == nil {
		return ""
	}
	return page.URL()
}

func (p *pwPage) Title(ctx context.Context) (string, error) {
	page, err := p.page()
	if err != nil {
		return "", err
	}
	return page.Title()
}

func (p *pwPage) Navigate(ctx context.Context, url string) error {
	return p.b.Navigate(ctx, url)
}

func (p *pwPage) Query(ctx context.Context, selector string) (Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	page, err := p.page()
	if err != nil {
		return nil, err
	}
	h, err := page.QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска %s: %w", selector, err)
	}
	return wrapHandle(h), nil
}

func (p *pwPage) QueryAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	page, err := p.page()
	if err != nil {
		return nil, err
	}
	handles, err := page.QuerySelectorAll(selector)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска %s: %w", selector, err)
	}
	return wrapHandles(handles), nil
}

type pwElement struct {
	h playwright.ElementHandle
}

func wrapHandle(h playwright.ElementHandle) Element {
	if h == nil {
		return nil
	}
	return &pwElement{h: h}
}

func wrapHandles(handles []playwright.ElementHandle) []Element {
	out := make([]Element, 0, len(handles))
	for _, h := range handles {
		if h != nil {
			out = append(out, &pwElement{h: h})
		}
	}
	return out
}

func (e *pwElement) Query(ctx context.Context, selector string) (Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	h, err := e.h.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	return wrapHandle(h), nil
}

func (e *pwElement) QueryAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	handles, err := e.h.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapHandles(handles), nil
}

func (e *pwElement) Closest(ctx context.Context, selector string) (Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	handle, err := e.h.EvaluateHandle(`(el, sel) => el.closest(sel)`, selector)
	if err != nil {
		return nil, err
	}
	return wrapHandle(handle.AsElement()), nil
}

func (e *pwElement) InnerText(ctx context.Context) (string, error) {
	return e.h.InnerText()
}

func (e *pwElement) TextContent(ctx context.Context) (string, error) {
	return e.h.TextContent()
}

func (e *pwElement) Attribute(ctx context.Context, name string) (string, error) {
	return e.h.GetAttribute(name)
}

func (e *pwElement) Value(ctx context.Context) (string, error) {
	v, err := e.h.Evaluate(`el => el.value ?? ''`)
	if err != nil {
		return "", err
	}
	return asString(v), nil
}

// IsVisible повторяет проверку offsetParent !== null, которой страница hh.ru скрывает поля.
func (e *pwElement) IsVisible(ctx context.Context) (bool, error) {
	v, err := e.h.Evaluate(`el => el.offsetParent !== null`)
	if err != nil {
		return false, err
	}
	return asBool(v), nil
}

func (e *pwElement) IsDisabled(ctx context.Context) (bool, error) {
	v, err := e.h.Evaluate(`el => !!el.disabled`)
	if err != nil {
		return false, err
	}
	return asBool(v), nil
}

func (e *pwElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.h.Click()
}

func (e *pwElement) Focus(ctx context.Context) error {
	return e.h.Focus()
}

func (e *pwElement) ScrollIntoView(ctx context.Context) error {
	err := e.h.ScrollIntoViewIfNeeded(playwright.ElementHandleScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(5000),
	})
	if err == nil {
		return nil
	}
	// Если ScrollIntoViewIfNeeded не работает, используем простой scrollIntoView
	_, err = e.h.Evaluate(`el => el.scrollIntoView({ behavior: 'smooth', block: 'center' })`)
	if err != nil {
		return fmt.Errorf("ошибка прокрутки к элементу: %w", err)
	}
	return nil
}

func (e *pwElement) SetValue(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := e.h.Evaluate(setReactValueJS, value)
	return err
}

func (e *pwElement) SetBorder(ctx context.Context, css string) error {
	_, err := e.h.Evaluate(`(el, css) => { el.style.border = css; }`, css)
	return err
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func asBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
