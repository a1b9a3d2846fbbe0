package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hhResponder/internal/browser"
	"hhResponder/internal/config"
	"hhResponder/internal/database"
	"hhResponder/internal/llm"
	"hhResponder/internal/logger"
	"hhResponder/internal/migrations"
	"hhResponder/internal/responder"
	"hhResponder/internal/settings"
	"hhResponder/internal/templates"
)

// app - собранные зависимости процесса.
type app struct {
	cfg       *config.Cfg
	log       *logger.Zap
	db        *database.Database
	browser   *browser.PlaywrightBrowser
	templates *templates.Store
	session   *responder.Session
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	if err := migrations.Run(cfg, log); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	var (
		journal responder.Journal
		storage settings.Storage
		llmLog  llm.Logger
	)
	if cfg.Database.Enabled() {
		db, err := database.New(cfg, log)
		if err != nil {
			return nil, err
		}
		a.db = db
		journal = database.NewJournalRepository(db.DB)
		storage = database.NewSettingsRepository(db.DB)
		llmLog = database.NewLlmLogRepository(db.DB)
	} else {
		log.Info("БД не настроена: журнал в памяти, настройки в файле", zap.String("path", cfg.HH.SettingsPath))
		journal = responder.NewMemoryJournal()
		storage = settings.NewFileStorage(cfg.HH.SettingsPath)
	}

	a.templates = templates.New(storage, log.Logger)
	a.templates.Load(ctx)

	profile := responder.Profile(cfg.Profile)
	var fallback responder.Fallback
	if cfg.OpenAI.KeyAI != "" {
		fallback = llm.NewClient(cfg.OpenAI.KeyAI, cfg.OpenAI.Model, llmLog, llm.Options{
			MaxTokens: cfg.OpenAI.MaxTokens,
			Profile:   profileText(profile),
		})
		log.Info("Ответы вне заготовок формирует LLM", zap.String("model", cfg.OpenAI.Model))
	}

	a.browser = browser.New(browser.Config{
		Headless:     cfg.Browser.Headless,
		UserDataDir:  cfg.Browser.UserDataDir,
		BrowsersPath: cfg.Browser.BrowsersPath,
		Display:      cfg.Browser.Display,
		Timeout:      cfg.Browser.Timeout,
	})

	a.session = responder.NewSession(
		a.browser.Page(),
		a.templates,
		responder.NewAnswerGenerator(profile, fallback, log),
		journal,
		responder.Config{
			DefaultSearchURL: cfg.StartURL(),
			AnswerQuestions:  cfg.HH.AnswerQuestions,
			SkipApplied:      cfg.HH.SkipApplied,
			MaxErrors:        cfg.HH.MaxErrors,
			DailyLimit:       cfg.HH.DailyLimit,
			PollAttempts:     cfg.HH.PollAttempts,
			PollInterval:     cfg.HH.PollInterval,
			Timings:          responder.DefaultTimings(),
		},
		log,
	)
	return a, nil
}

// openBrowser запускает Firefox и открывает url (по умолчанию - стартовую выдачу).
func (a *app) openBrowser(ctx context.Context, url string) error {
	if err := a.browser.Launch(ctx); err != nil {
		return fmt.Errorf("ошибка запуска браузера: %w", err)
	}
	if url == "" {
		url = a.cfg.StartURL()
	}
	if err := a.browser.Navigate(ctx, url); err != nil {
		return fmt.Errorf("ошибка открытия %s: %w", url, err)
	}
	if err := a.browser.WaitForLoadState(ctx, "load"); err != nil {
		a.log.Warn("Страница не догрузилась", zap.String("url", url), zap.Error(err))
	}
	a.log.Info("Браузер открыт", zap.String("url", url))
	return nil
}

func (a *app) Close() {
	if a.session != nil && a.session.Running() {
		_ = a.session.Stop()
	}
	if a.session != nil {
		a.session.Wait()
	}
	if a.browser != nil {
		if err := a.browser.Close(); err != nil {
			a.log.Warn("Ошибка закрытия браузера", zap.Error(err))
		}
	}
	if a.db != nil {
		a.db.Close(a.log)
	}
	_ = a.log.Sync()
}

// profileText - сведения о кандидате для системного промпта LLM.
func profileText(p responder.Profile) string {
	rows := []struct{ label, value string }{
		{"Имя", p.Name},
		{"Опыт", p.Experience},
		{"Навыки", p.Skills},
		{"Зарплатные ожидания", p.Salary},
		{"Город", p.Location},
		{"Формат работы", p.WorkFormat},
		{"Английский", p.English},
		{"Образование", p.Education},
		{"Готов приступить", p.StartDate},
		{"Достижения", p.Achievements},
	}
	var b strings.Builder
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", r.label, r.value)
	}
	return b.String()
}
