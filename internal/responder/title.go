package responder

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"hhResponder/internal/browser"
)

// resolver - один способ найти значение. ok=false означает "не нашлось, пробуем дальше".
type resolver[T any] func(ctx context.Context) (value T, ok bool, err error)

// firstOf возвращает результат первого сработавшего резолвера. Ошибка резолвера
// не прерывает цепочку: она возвращается, только если не сработал ни один.
func firstOf[T any](ctx context.Context, resolvers ...resolver[T]) (T, bool, error) {
	var firstErr error
	for _, r := range resolvers {
		v, ok, err := r(ctx)
		if err != nil {
			if ctx.Err() != nil {
				var zero T
				return zero, false, ctx.Err()
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return v, true, nil
		}
	}
	var zero T
	return zero, false, firstErr
}

var (
	docTitleRe  = regexp.MustCompile(`Вакансия\s+(.+?)\s+в\s+`)
	metaTitleRe = regexp.MustCompile(`Вакансия\s+(.+?)\s+в\s+|^(.+?)\s+—|^(.+?)\s+\||^(.+?)$`)
	vacancyIDRe = regexp.MustCompile(`/vacancy/(\d+)`)
)

// ResolveTitle находит название вакансии на текущей странице. cached - название,
// запомненное при выборе карточки; оно проверяется первым.
func ResolveTitle(ctx context.Context, page browser.Page, cached string) string {
	title, ok, _ := firstOf[string](ctx,
		func(ctx context.Context) (string, bool, error) {
			return cached, acceptableTitle(cached), nil
		},
		func(ctx context.Context) (string, bool, error) {
			doc, err := page.Title(ctx)
			if err != nil {
				return "", false, err
			}
			m := docTitleRe.FindStringSubmatch(doc)
			if m == nil {
				return "", false, nil
			}
			t := strings.TrimSpace(m[1])
			return t, acceptableTitle(t), nil
		},
		func(ctx context.Context) (string, bool, error) {
			for _, sel := range titleSelectors {
				elements, err := page.QueryAll(ctx, sel)
				if err != nil {
					return "", false, err
				}
				for _, el := range elements {
					text, err := el.TextContent(ctx)
					if err != nil {
						continue
					}
					if t := strings.TrimSpace(text); acceptableTitle(t) {
						return t, true, nil
					}
				}
			}
			return "", false, nil
		},
		func(ctx context.Context) (string, bool, error) {
			for _, sel := range titleMetaSelectors {
				el, err := page.Query(ctx, sel)
				if err != nil || el == nil {
					continue
				}
				content, err := el.Attribute(ctx, "content")
				if err != nil {
					continue
				}
				if t := extractMetaTitle(content); acceptableTitle(t) {
					return t, true, nil
				}
			}
			return "", false, nil
		},
	)
	if !ok {
		return titlePlaceholder
	}
	return title
}

func extractMetaTitle(content string) string {
	m := metaTitleRe.FindStringSubmatch(strings.TrimSpace(content))
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return strings.TrimSpace(g)
		}
	}
	return ""
}

// parseVacancyID достает числовой id из ссылки /vacancy/123 или параметра vacancyId.
func parseVacancyID(link string) string {
	if m := vacancyIDRe.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	if u, err := url.Parse(link); err == nil {
		return u.Query().Get("vacancyId")
	}
	return ""
}

// card - карточка вакансии в выдаче.
type card struct {
	el          browser.Element
	respond     browser.Element
	respondText string
	Title       string
	ID          string
	URL         string
	Eligible    bool
}

// readCard разбирает карточку. Отклик возможен, если у карточки есть кнопка
// отклика с текстом "Откликнуться".
func readCard(ctx context.Context, pageURL string, el browser.Element) (card, error) {
	c := card{el: el}

	respond, err := el.Query(ctx, selCardRespond)
	if err != nil {
		return c, err
	}
	if respond != nil {
		text, err := respond.InnerText(ctx)
		if err != nil {
			return c, err
		}
		c.respond = respond
		c.respondText = strings.TrimSpace(text)
		c.Eligible = strings.Contains(text, respondText)
	}

	c.Title = defaultCardTitle
	if titleEl, err := el.Query(ctx, selCardTitle); err == nil && titleEl != nil {
		if text, err := titleEl.InnerText(ctx); err == nil && strings.TrimSpace(text) != "" {
			c.Title = strings.TrimSpace(text)
		}
	}

	link, err := el.Query(ctx, selVacancyLink)
	if err != nil {
		return c, err
	}
	if link != nil {
		if IsSearchText(c.Title) || IsSystemMessage(c.Title) {
			if text, err := link.TextContent(ctx); err == nil {
				c.Title = strings.TrimSpace(text)
			}
		}
		if href, err := link.Attribute(ctx, "href"); err == nil {
			c.URL = absoluteURL(pageURL, href)
			c.ID = parseVacancyID(c.URL)
		}
	}
	return c, nil
}

func absoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
