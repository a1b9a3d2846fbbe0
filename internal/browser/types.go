// Package browser дает циклу откликов единый доступ к странице:
// живой браузер через playwright-go или сохраненный HTML через goquery.
package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

var ErrBrowserNotStarted = errors.New("браузер не запущен")

// Page - текущая вкладка. Query возвращает (nil, nil), если элемента нет:
// отсутствие элемента на hh.ru - обычная ситуация, а не ошибка.
type Page interface {
	URL() string
	Title(ctx context.Context) (string, error)
	Navigate(ctx context.Context, url string) error
	Query(ctx context.Context, selector string) (Element, error)
	QueryAll(ctx context.Context, selector string) ([]Element, error)
}

// Element - узел DOM на текущей странице.
type Element interface {
	Query(ctx context.Context, selector string) (Element, error)
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	Closest(ctx context.Context, selector string) (Element, error)

	InnerText(ctx context.Context) (string, error)
	TextContent(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	Value(ctx context.Context) (string, error)
	IsVisible(ctx context.Context) (bool, error)
	IsDisabled(ctx context.Context) (bool, error)

	Click(ctx context.Context) error
	Focus(ctx context.Context) error
	ScrollIntoView(ctx context.Context) error
	// SetValue выставляет значение так, чтобы его увидел реактивный фреймворк страницы.
	SetValue(ctx context.Context, value string) error
	// SetBorder меняет рамку элемента; пустая строка снимает подсветку.
	SetBorder(ctx context.Context, css string) error
}

type PlaywrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config
	mu      sync.RWMutex
}

type Config struct {
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	Display         string
	Timeout         time.Duration
	NavigateTimeout time.Duration
	// DismissSelectors - баннеры, которые закрываются после каждой навигации.
	DismissSelectors []string
}
