// Package templates управляет шаблонами сопроводительных писем и выбором текущего шаблона.
package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"hhResponder/internal/settings"
)

const previewVacancy = "Frontend разработчик"

var (
	ErrUnknownTemplate = errors.New("шаблон не найден")
	ErrEmptyTemplate   = errors.New("пустой текст шаблона")
)

const namePrefix = "coverLetter_"

// Store - набор шаблонов, ровно один из которых выбран.
type Store struct {
	mu        sync.RWMutex
	templates map[string]string
	selected  string
	storage   settings.Storage
	log       *zap.Logger
}

func New(storage settings.Storage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		templates: Defaults(),
		selected:  DefaultSelected,
		storage:   storage,
		log:       log,
	}
}

// Load поверх встроенных шаблонов накладывает сохраненные. Поврежденные данные
// пропускаются с записью в лог, встроенные шаблоны остаются на месте.
func (s *Store) Load(ctx context.Context) {
	if s.storage == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(ctx, settings.KeyCoverLetters)
	switch {
	case err != nil:
		s.log.Error("Ошибка загрузки настроек", zap.String("key", settings.KeyCoverLetters), zap.Error(err))
	case ok && raw != "":
		saved := map[string]string{}
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			s.log.Error("Ошибка загрузки настроек", zap.String("key", settings.KeyCoverLetters), zap.Error(err))
			break
		}
		for name, text := range saved {
			if strings.TrimSpace(text) == "" {
				continue
			}
			s.templates[name] = text
		}
	}

	name, ok, err := s.storage.Get(ctx, settings.KeySelectedTemplate)
	if err != nil {
		s.log.Error("Ошибка загрузки настроек", zap.String("key", settings.KeySelectedTemplate), zap.Error(err))
		return
	}
	if _, exists := s.templates[name]; ok && exists {
		s.selected = name
	}
}

// Save записывает шаблоны и выбранное имя.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	raw, err := json.Marshal(s.templates)
	if err != nil {
		return fmt.Errorf("ошибка сериализации шаблонов: %w", err)
	}
	if err := s.storage.Set(ctx, settings.KeyCoverLetters, string(raw)); err != nil {
		s.log.Error("Ошибка сохранения настроек", zap.Error(err))
		return err
	}
	if err := s.storage.Set(ctx, settings.KeySelectedTemplate, s.selected); err != nil {
		s.log.Error("Ошибка сохранения настроек", zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Current возвращает имя и текст выбранного шаблона.
func (s *Store) Current() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.templates[s.selected]
}

func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.templates[name]
	return text, ok
}

// All возвращает копию всех шаблонов.
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.templates))
	for k, v := range s.templates {
		out[k] = v
	}
	return out
}

// Names возвращает имена шаблонов по порядку номеров.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool {
		ni, iok := number(names[i])
		nj, jok := number(names[j])
		if iok && jok {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return names[i] < names[j]
	})
	return names
}

// Resolve превращает "3" в "coverLetter_3"; остальные имена возвращаются как есть.
func Resolve(name string) string {
	name = strings.TrimSpace(name)
	if _, err := strconv.Atoi(name); err == nil {
		return namePrefix + name
	}
	return name
}

// Select делает шаблон текущим и сохраняет выбор.
func (s *Store) Select(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	s.selected = name
	return s.saveLocked(ctx)
}

// Update заменяет или добавляет шаблон и сохраняет набор.
func (s *Store) Update(ctx context.Context, name, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyTemplate
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: пустое имя", ErrUnknownTemplate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[name] = text
	return s.saveLocked(ctx)
}

// Preview подставляет пример названия вакансии в первое вхождение плейсхолдера.
func (s *Store) Preview(name string) (string, error) {
	text, ok := s.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	return strings.Replace(text, Placeholder, previewVacancy, 1), nil
}

func number(name string) (int, bool) {
	if !strings.HasPrefix(name, namePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name, namePrefix))
	return n, err == nil
}
