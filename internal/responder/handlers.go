package responder

import (
	"context"

	"go.uber.org/zap"
)

// processModal - отклик в модальном окне поверх выдачи.
func (s *Session) processModal(ctx context.Context, title string, at *attempt) error {
	s.log.Info("Обрабатываем модальное окно отклика", zap.String("title", title))
	at.variant = VariantModal

	if s.cfg.AnswerQuestions {
		if err := s.answerQuestions(ctx, at); err != nil {
			return stepError(StateSearchList, "questions", err)
		}
	}
	if _, err := s.fillCoverLetter(ctx, title, at); err != nil {
		return stepError(StateSearchList, "cover_letter", err)
	}
	if err := sleep(ctx, s.cfg.Timings.Settle); err != nil {
		return err
	}
	clicked, err := s.clickSubmit(ctx)
	if err != nil {
		return stepError(StateSearchList, "submit", err)
	}
	at.submitted = clicked
	return nil
}

// processResponsePage - отклик на отдельной странице. После отправки вкладка
// всегда возвращается к выдаче; результат - была ли нажата кнопка отправки.
func (s *Session) processResponsePage(ctx context.Context, at *attempt) error {
	s.log.Info("Обрабатываем страницу отклика", zap.String("url", s.page.URL()))
	at.variant = VariantPage

	title := ResolveTitle(ctx, s.page, s.Vacancy().Title)
	if err := sleep(ctx, s.cfg.Timings.BeforeResponse); err != nil {
		return err
	}

	if s.cfg.AnswerQuestions {
		if err := s.answerQuestions(ctx, at); err != nil {
			return stepError(StateResponsePage, "questions", err)
		}
	}
	if err := sleep(ctx, s.cfg.Timings.Settle); err != nil {
		return err
	}
	if _, err := s.fillCoverLetter(ctx, title, at); err != nil {
		return stepError(StateResponsePage, "cover_letter", err)
	}
	if err := sleep(ctx, s.cfg.Timings.Settle); err != nil {
		return err
	}
	clicked, err := s.clickSubmit(ctx)
	if err != nil {
		return stepError(StateResponsePage, "submit", err)
	}
	at.submitted = clicked

	s.log.Info("Принудительный возврат к поиску после отправки отклика")
	if err := s.forceReturnToSearch(ctx); err != nil {
		return stepError(StateResponsePage, "return", err)
	}
	return nil
}

// processVacancyDetail нажимает "Откликнуться" на странице вакансии и
// продолжает на странице отклика.
func (s *Session) processVacancyDetail(ctx context.Context, at *attempt) error {
	btn, err := s.page.Query(ctx, selResponseLinkTop)
	if err != nil {
		return stepError(StateVacancyDetail, "respond_link", err)
	}
	if btn == nil {
		s.log.Warn("Кнопка отклика на странице вакансии не найдена", zap.String("url", s.page.URL()))
		return nil
	}
	if err := btn.Click(ctx); err != nil {
		return stepError(StateVacancyDetail, "respond_link", err)
	}
	if err := sleep(ctx, s.cfg.Timings.BeforeSubmit); err != nil {
		return err
	}
	return s.processResponsePage(ctx, at)
}

// confirmRelocation подтверждает предупреждение об отклике на вакансию в другой стране.
func (s *Session) confirmRelocation(ctx context.Context) (bool, error) {
	btn, err := s.page.Query(ctx, selRelocationConfirm)
	if err != nil || btn == nil {
		return false, err
	}
	visible, err := btn.IsVisible(ctx)
	if err != nil || !visible {
		return false, err
	}
	s.log.Info("Подтверждаем отклик на вакансию в другой стране")
	return true, btn.Click(ctx)
}

// runSingle обрабатывает одну вакансию, когда цикл запущен не с выдачи.
func (s *Session) runSingle(ctx context.Context, res *Result, handler func(context.Context, *attempt) error) error {
	url := s.page.URL()
	title := ResolveTitle(ctx, s.page, "")
	s.setVacancy(title, parseVacancyID(url), url, "")

	at := &attempt{}
	res.Processed++
	err := handler(ctx, at)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.record(ctx, res, at, err)
	if err != nil {
		s.log.Error("Ошибка при обработке вакансии", zap.Error(err))
	}
	res.StopReason = StopDone
	return nil
}
