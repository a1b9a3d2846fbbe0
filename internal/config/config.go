package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Cfg struct {
	Database   Database
	Logger     Logger
	OpenAI     OpenAI
	Browser    Browser
	Migrations Migrations
	App        App
	HH         HH
	Profile    Profile
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled сообщает, настроено ли подключение к PostgreSQL.
// Без БД журнал откликов живет в памяти, а настройки - в JSON-файле.
func (d Database) Enabled() bool {
	return d.Host != ""
}

// DSN собирает строку подключения для gorm postgres.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// URL собирает адрес подключения в формате, который понимает golang-migrate.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string `validate:"oneof=dev prod"`
	Level string `validate:"oneof=debug info warn error"`
}

type OpenAI struct {
	KeyAI     string
	Model     string
	MaxTokens int `validate:"gte=0"`
}

type Browser struct {
	Display      string
	Headless     bool
	UserDataDir  string
	BrowsersPath string
	Timeout      time.Duration `validate:"gt=0"`
}

type App struct {
	Host string
	Port string `validate:"required,numeric"`
}

// HH описывает поведение цикла откликов.
type HH struct {
	BaseURL         string        `validate:"required,url"`
	SearchURL       string        `validate:"omitempty,url"`
	SettingsPath    string        `validate:"required"`
	AnswerQuestions bool
	SkipApplied     bool
	MaxErrors       int           `validate:"gte=1"`
	DailyLimit      int           `validate:"gte=0"`
	PollAttempts    int           `validate:"gte=1"`
	PollInterval    time.Duration `validate:"gte=0"`
}

// Profile - заготовленные ответы на вопросы работодателя.
type Profile struct {
	Name         string
	Experience   string
	Skills       string
	Salary       string
	Location     string
	WorkFormat   string
	English      string
	Education    string
	StartDate    string
	Achievements string
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		OpenAI: OpenAI{
			KeyAI:     os.Getenv("OPENAI_API_KEY"),
			Model:     env("OPENAI_MODEL", "gpt-4o"),
			MaxTokens: envInt("OPENAI_MAX_TOKENS", 300),
		},
		Browser: Browser{
			Display:      env("DISPLAY", ":0"),
			Headless:     envBool("PW_HEADLESS", false),
			UserDataDir:  env("PW_USER_DATA_DIR", "./userdata"),
			BrowsersPath: env("PLAYWRIGHT_BROWSERS_PATH", ""),
			Timeout:      envDuration("PW_TIMEOUT", 30*time.Second),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
		App: App{
			Host: env("APP_HOST", "127.0.0.1"),
			Port: env("APP_PORT", "8080"),
		},
		HH: HH{
			BaseURL:         strings.TrimRight(env("HH_BASE_URL", "https://hh.ru"), "/"),
			SearchURL:       os.Getenv("HH_SEARCH_URL"),
			SettingsPath:    env("HH_SETTINGS_PATH", "./hh_settings.json"),
			AnswerQuestions: envBool("HH_ANSWER_QUESTIONS", true),
			SkipApplied:     envBool("HH_SKIP_APPLIED", true),
			MaxErrors:       envInt("HH_MAX_ERRORS", 5),
			DailyLimit:      envInt("HH_DAILY_LIMIT", 200),
			PollAttempts:    envInt("HH_POLL_ATTEMPTS", 30),
			PollInterval:    envDuration("HH_POLL_INTERVAL", time.Second),
		},
		Profile: Profile{
			Name:         env("PROFILE_NAME", "Имя"),
			Experience:   env("PROFILE_EXPERIENCE", "Опыт работы"),
			Skills:       env("PROFILE_SKILLS", "Основные навыки"),
			Salary:       env("PROFILE_SALARY", "Желаемая зарплата"),
			Location:     env("PROFILE_LOCATION", "Город"),
			WorkFormat:   env("PROFILE_WORK_FORMAT", "Формат работы"),
			English:      env("PROFILE_ENGLISH", "Уровень английского"),
			Education:    env("PROFILE_EDUCATION", "Образование"),
			StartDate:    env("PROFILE_START_DATE", "Когда готов начать"),
			Achievements: env("PROFILE_ACHIEVEMENTS", "Достижения"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения после чтения окружения.
func (c *Cfg) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("некорректная конфигурация: %w", err)
	}
	if c.Database.Enabled() && (c.Database.Name == "" || c.Database.User == "") {
		return fmt.Errorf("некорректная конфигурация: DB_NAME и DB_USER обязательны при заданном DB_HOST")
	}
	return nil
}

// StartURL возвращает страницу, с которой начинается работа.
func (c *Cfg) StartURL() string {
	if c.HH.SearchURL != "" {
		return c.HH.SearchURL
	}
	return c.HH.BaseURL + "/search/vacancy"
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envBool(key string, defaultValue bool) bool {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
