package browser

import (
	"context"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DefaultDismissSelectors - баннеры hh.ru, которые перекрывают карточки и кнопки.
var DefaultDismissSelectors = []string{
	"[data-qa='cookies-policy-informer-accept']",
	"[data-qa='bloko-notification-close']",
	"[role='dialog'] button[aria-label*='закрыть' i]",
	"[aria-label='Закрыть']",
}

// popupClosePause - время на анимацию закрытия баннера.
const popupClosePause = 500 * time.Millisecond

// pause ждет d или отмены ctx.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (b *PlaywrightBrowser) WaitForLoadState(ctx context.Context, state string) error {
	page := b.getPage()
	if page == nil {
		return ErrBrowserNotStarted
	}

	var loadState *playwright.LoadState
	switch strings.ToLower(state) {
	case "load":
		loadState = playwright.LoadStateLoad
	case "domcontentloaded":
		loadState = playwright.LoadStateDomcontentloaded
	case "networkidle":
		loadState = playwright.LoadStateNetworkidle
	default:
		loadState = playwright.LoadStateLoad
	}

	opts := playwright.PageWaitForLoadStateOptions{
		State:   loadState,
		Timeout: playwright.Float(b.cfg.Timeout.Seconds() * 1000),
	}

	return page.WaitForLoadState(opts)
}

// ClosePopups закрывает видимые баннеры из DismissSelectors. Ошибки поиска не считаются ошибкой.
func (b *PlaywrightBrowser) ClosePopups(ctx context.Context) error {
	page := b.getPage()
	if page == nil {
		return ErrBrowserNotStarted
	}

	for _, selector := range b.cfg.DismissSelectors {
		if err := ctx.Err(); err != nil {
			return err
		}

		elements, err := page.QuerySelectorAll(selector)
		if err != nil {
			continue
		}

		for _, element := range elements {
			isVisible, err := element.IsVisible()
			if err != nil || !isVisible {
				continue
			}

			if err := element.Click(); err != nil {
				continue
			}
			if err := pause(ctx, popupClosePause); err != nil {
				return err
			}
		}
	}

	return nil
}
