package responder

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"hhResponder/internal/browser"
	"hhResponder/internal/sanitizer"
)

// attempt собирает сведения об одном отклике для журнала.
type attempt struct {
	variant   string
	template  string
	letter    string
	analysis  Analysis
	questions int
	submitted bool
}

// answerQuestions заполняет видимые пустые поля вопросов работодателя.
func (s *Session) answerQuestions(ctx context.Context, at *attempt) error {
	if err := sleep(ctx, s.cfg.Timings.BeforeQuestions); err != nil {
		return err
	}
	textareas, err := s.page.QueryAll(ctx, selTaskTextareas)
	if err != nil {
		return err
	}

	for _, ta := range textareas {
		value, err := ta.Value(ctx)
		if err != nil {
			return err
		}
		if value != "" {
			continue
		}
		visible, err := ta.IsVisible(ctx)
		if err != nil {
			return err
		}
		if !visible {
			continue
		}

		question, err := s.questionText(ctx, ta)
		if err != nil {
			return err
		}
		if len([]rune(question)) <= 10 {
			continue
		}

		answer := s.answers.Answer(ctx, question)
		if err := ta.SetValue(ctx, answer); err != nil {
			return err
		}
		at.questions++
		s.log.Debug("Ответ на вопрос работодателя",
			zap.String("question", question),
			zap.String("answer", answer),
		)
		if err := sleep(ctx, s.cfg.Timings.QuestionPause); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) questionText(ctx context.Context, ta browser.Element) (string, error) {
	parent, _, err := firstOf[browser.Element](ctx,
		closestResolver(ta, selTaskBody),
		closestResolver(ta, selControlGroup),
	)
	if err != nil || parent == nil {
		return "", err
	}
	text, err := parent.TextContent(ctx)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	text = strings.Replace(text, questionsHeader, "", 1)
	text = strings.Replace(text, questionsIntro, "", 1)
	return strings.TrimSpace(text), nil
}

// fillCoverLetter находит поле письма и вставляет адаптированный шаблон.
// false без ошибки - поля письма на странице нет.
func (s *Session) fillCoverLetter(ctx context.Context, title string, at *attempt) (bool, error) {
	if err := sleep(ctx, s.cfg.Timings.BeforeLetter); err != nil {
		return false, err
	}

	target, found, err := firstOf[browser.Element](ctx,
		queryResolver(s.page, selLetter),
		s.letterViaToggle,
		s.anyFreeTextarea,
	)
	if err != nil {
		return false, err
	}
	if !found {
		s.log.Warn("Поле сопроводительного письма не найдено", zap.String("url", s.page.URL()))
		return false, nil
	}

	description := ""
	if el, err := s.page.Query(ctx, selDescription); err == nil && el != nil {
		description, _ = el.TextContent(ctx)
	}

	name, tmpl := s.letters.Current()
	letter, analysis := AdaptCoverLetter(tmpl, title, description)
	at.template = name
	at.letter = letter
	at.analysis = analysis

	if err := target.ScrollIntoView(ctx); err != nil {
		s.log.Debug("Не удалось прокрутить к полю письма", zap.Error(err))
	}
	if err := sleep(ctx, s.cfg.Timings.QuestionPause); err != nil {
		return false, err
	}
	if err := target.SetValue(ctx, letter); err != nil {
		return false, err
	}

	if err := sleep(ctx, s.cfg.Timings.QuestionPause); err != nil {
		return false, err
	}
	got, err := target.Value(ctx)
	if err != nil {
		return false, err
	}
	if got != letter {
		s.log.Debug("Значение письма не применилось, повторная установка")
		if err := target.Focus(ctx); err != nil {
			return false, err
		}
		if err := target.SetValue(ctx, letter); err != nil {
			return false, err
		}
	}

	s.log.Info("Сопроводительное письмо заполнено",
		zap.String("template", name),
		zap.Strings("technologies", analysis.Technologies),
		zap.String("level", analysis.Level),
		zap.String("letter", sanitizer.Sanitize(letter)),
	)
	return true, nil
}

// letterViaToggle раскрывает поле письма переключателем и ждет его появления.
func (s *Session) letterViaToggle(ctx context.Context) (browser.Element, bool, error) {
	toggle, found, err := firstOf[browser.Element](ctx,
		queryResolver(s.page, selLetterToggleTxt),
		queryResolver(s.page, selLetterToggle),
		textResolver(s.page, "button, span", letterToggleText),
	)
	if err != nil || !found {
		return nil, false, err
	}
	if err := toggle.Click(ctx); err != nil {
		return nil, false, err
	}

	var letter browser.Element
	_, err = waitUntil(ctx, s.cfg.Timings.LetterTimeout, s.cfg.Timings.PollStep, func() (bool, error) {
		el, err := s.page.Query(ctx, selLetter)
		letter = el
		return el != nil, err
	})
	return letter, letter != nil, err
}

// anyFreeTextarea - первое видимое пустое поле, не относящееся к вопросам и комментариям.
func (s *Session) anyFreeTextarea(ctx context.Context) (browser.Element, bool, error) {
	all, err := s.page.QueryAll(ctx, "textarea")
	if err != nil {
		return nil, false, err
	}
	for _, ta := range all {
		name, err := ta.Attribute(ctx, "name")
		if err != nil {
			return nil, false, err
		}
		if strings.Contains(name, "task") || strings.Contains(name, "comment") {
			continue
		}
		value, err := ta.Value(ctx)
		if err != nil || value != "" {
			continue
		}
		if visible, err := ta.IsVisible(ctx); err == nil && visible {
			return ta, true, nil
		}
	}
	return nil, false, nil
}

// clickSubmit нажимает кнопку отправки. Из всех кандидатов берется последний:
// в модалке он лежит поверх остальных.
func (s *Session) clickSubmit(ctx context.Context) (bool, error) {
	if err := sleep(ctx, s.cfg.Timings.BeforeSubmit); err != nil {
		return false, err
	}

	var candidates []browser.Element
	for _, sel := range []string{selSubmitPopup, selSubmitLetter} {
		el, err := s.page.Query(ctx, sel)
		if err != nil {
			return false, err
		}
		if el != nil {
			candidates = append(candidates, el)
		}
	}
	buttons, err := elementsWithText(ctx, s.page, "button", strings.ToLower(respondText))
	if err != nil {
		return false, err
	}
	candidates = append(candidates, buttons...)

	if len(candidates) == 0 {
		s.log.Warn("Кнопка отправки отклика не найдена", zap.String("url", s.page.URL()))
		return false, nil
	}

	btn := candidates[len(candidates)-1]
	if err := btn.ScrollIntoView(ctx); err != nil {
		s.log.Debug("Не удалось прокрутить к кнопке отправки", zap.Error(err))
	}
	if err := sleep(ctx, s.cfg.Timings.Settle); err != nil {
		return false, err
	}
	if err := btn.Click(ctx); err != nil {
		return false, err
	}
	s.log.Info("Отклик отправлен")

	// Модалка закрывается после отправки; если этого не произошло, идем дальше.
	_, err = waitUntil(ctx, s.cfg.Timings.SubmitTimeout, s.cfg.Timings.PollStep, func() (bool, error) {
		el, err := s.page.Query(ctx, selModalOverlay)
		return el == nil, err
	})
	if err != nil && ctx.Err() != nil {
		return true, err
	}
	return true, nil
}

func queryResolver(root interface {
	Query(ctx context.Context, selector string) (browser.Element, error)
}, selector string) resolver[browser.Element] {
	return func(ctx context.Context) (browser.Element, bool, error) {
		el, err := root.Query(ctx, selector)
		return el, el != nil, err
	}
}

func closestResolver(el browser.Element, selector string) resolver[browser.Element] {
	return func(ctx context.Context) (browser.Element, bool, error) {
		parent, err := el.Closest(ctx, selector)
		return parent, parent != nil, err
	}
}

// textResolver - первый элемент, чей текст содержит needle без учета регистра.
func textResolver(page browser.Page, selector, needle string) resolver[browser.Element] {
	return func(ctx context.Context) (browser.Element, bool, error) {
		els, err := elementsWithText(ctx, page, selector, needle)
		if err != nil || len(els) == 0 {
			return nil, false, err
		}
		return els[0], true, nil
	}
}

func elementsWithText(ctx context.Context, page browser.Page, selector, needle string) ([]browser.Element, error) {
	all, err := page.QueryAll(ctx, selector)
	if err != nil {
		return nil, err
	}
	var out []browser.Element
	for _, el := range all {
		text, err := el.TextContent(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(strings.TrimSpace(text)), needle) {
			out = append(out, el)
		}
	}
	return out, nil
}
