package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"hhResponder/internal/cli/ui"
)

// Navigator - браузер, в котором работает цикл откликов.
type Navigator interface {
	Launch(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
}

// BrowserHandler обрабатывает команды браузера
type BrowserHandler struct {
	browser Navigator
	out     io.Writer
}

func NewBrowserHandler(br Navigator, out io.Writer) *BrowserHandler {
	return &BrowserHandler{browser: br, out: out}
}

// Open открывает URL во вкладке, с которой работает цикл; браузер остается открытым.
func (h *BrowserHandler) Open(ctx context.Context, url string) {
	if h.browser == nil {
		ui.Fail(h.out, "Браузер не инициализирован")
		return
	}
	url = strings.TrimSpace(url)
	if url == "" {
		ui.Fail(h.out, "Укажите адрес")
		return
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	if err := h.browser.Launch(ctx); err != nil {
		fmt.Fprintf(h.out, ui.ColorRed+ui.IconCross+" Ошибка запуска:"+ui.ColorReset+" %v\n", err)
		return
	}

	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconArrow+" Открытие %s..."+ui.ColorReset+"\n", url)
	if err := h.browser.Navigate(ctx, url); err != nil {
		fmt.Fprintf(h.out, ui.ColorRed+ui.IconCross+" Ошибка навигации:"+ui.ColorReset+" %v\n", err)
		return
	}
	ui.Success(h.out, "Страница открыта")
}
