package responder

import (
	"context"

	"go.uber.org/zap"

	"hhResponder/internal/sanitizer"
)

// runSearchList - основной цикл по выдаче. Список карточек перечитывается на
// каждом проходе: после отклика страница может перезагрузиться.
func (s *Session) runSearchList(ctx context.Context, res *Result) error {
	searchURL := s.page.URL()
	consecutiveErrors := 0
	skipped := map[string]bool{}

	for s.running.Load() && consecutiveErrors < s.cfg.MaxErrors {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.dailyLimitReached(ctx) {
			res.StopReason = StopDailyLimit
			return nil
		}

		s.log.Debug("Цикл обработки", zap.Int("attempt", consecutiveErrors+1), zap.Int("max", s.cfg.MaxErrors))
		if err := sleep(ctx, s.cfg.Timings.LoopPause); err != nil {
			return err
		}

		cards, err := s.page.QueryAll(ctx, selVacancyCards)
		if err != nil {
			return err
		}
		s.log.Debug("Найдено вакансий на странице", zap.Int("count", len(cards)))

		if len(cards) == 0 {
			advanced, err := s.advancePager(ctx, res)
			if err != nil {
				return err
			}
			if !advanced {
				s.log.Info("Вакансии закончились")
				res.StopReason = StopExhausted
				return nil
			}
			continue
		}

		found := false
		for _, el := range cards {
			if !s.running.Load() {
				break
			}

			c, err := readCard(ctx, s.page.URL(), el)
			if err != nil {
				s.log.Debug("Не удалось разобрать карточку", zap.Error(err))
				continue
			}
			if !c.Eligible {
				continue
			}
			if s.cfg.SkipApplied {
				applied, err := s.journal.Applied(ctx, c.ID)
				if err != nil {
					s.log.Warn("Не удалось проверить журнал откликов", zap.Error(err))
				}
				if applied {
					if !skipped[c.ID] {
						skipped[c.ID] = true
						res.Skipped++
						s.log.Info("Вакансия уже в журнале откликов, пропускаем",
							zap.String("vacancy_id", c.ID), zap.String("title", c.Title))
					}
					continue
				}
			}

			found = true
			s.setVacancy(c.Title, c.ID, c.URL, searchURL)
			res.Processed++
			s.log.Info("Обрабатываем вакансию",
				zap.Int("n", res.Processed),
				zap.String("title", c.Title),
				zap.String("vacancy_id", c.ID),
			)

			at := &attempt{}
			herr := s.processCard(ctx, c, at)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.record(ctx, res, at, herr)

			if herr == nil && at.submitted {
				consecutiveErrors = 0
				s.log.Info("Ожидание возврата к поиску")
				if err := s.waitForSearchPage(ctx); err != nil {
					return err
				}
				break
			}

			// Неотправленный отклик оставляет карточку в выдаче: это тоже ошибка подряд.
			consecutiveErrors++
			if herr != nil {
				s.log.Error("Ошибка при обработке вакансии",
					zap.String("vacancy_id", c.ID),
					zap.Int("consecutive_errors", consecutiveErrors),
					zap.Stringer("error_type", classifyError(herr)),
					zap.Error(herr),
				)
			} else {
				s.log.Warn("Отклик не отправлен",
					zap.String("vacancy_id", c.ID),
					zap.Int("consecutive_errors", consecutiveErrors),
				)
			}
			// Страница отклика сама возвращается к выдаче после отправки.
			if herr != nil || at.variant != VariantPage {
				s.log.Info("Попытка восстановления")
				if err := s.forceReturnToSearch(ctx); err != nil {
					s.log.Warn("Не удалось вернуться к поиску", zap.Error(err))
				}
			}
			if err := s.waitForSearchPage(ctx); err != nil {
				return err
			}
			break
		}
		s.publish(res)

		if !found {
			if !s.running.Load() {
				break
			}
			advanced, err := s.advancePager(ctx, res)
			if err != nil {
				return err
			}
			if !advanced {
				s.log.Info("Достигнут конец списка вакансий")
				res.StopReason = StopExhausted
				return nil
			}
			consecutiveErrors = 0
		}
	}

	if consecutiveErrors >= s.cfg.MaxErrors {
		s.log.Error("Достигнут предел ошибок подряд, цикл остановлен", zap.Int("max", s.cfg.MaxErrors))
		res.StopReason = StopErrorLimit
		return nil
	}
	res.StopReason = StopStopped
	return nil
}

// processCard нажимает "Откликнуться" в карточке и проводит отклик в модалке
// или на отдельной странице, в зависимости от того, что открылось.
func (s *Session) processCard(ctx context.Context, c card, at *attempt) error {
	if err := c.el.ScrollIntoView(ctx); err != nil {
		s.log.Debug("Не удалось прокрутить к карточке", zap.Error(err))
	}
	if err := c.el.SetBorder(ctx, cardHighlight); err != nil {
		s.log.Debug("Не удалось подсветить карточку", zap.Error(err))
	}
	// После навигации карточка может исчезнуть из DOM, ошибку снятия подсветки не учитываем.
	defer func() { _ = c.el.SetBorder(context.WithoutCancel(ctx), "") }()

	if err := c.respond.Click(ctx); err != nil {
		return stepError(StateSearchList, "respond", err)
	}

	opened, err := s.waitForResponseForm(ctx)
	if err != nil {
		return stepError(StateSearchList, "respond", err)
	}
	if opened == stateRelocation {
		if _, err := s.confirmRelocation(ctx); err != nil {
			return stepError(StateSearchList, "relocation", err)
		}
		if opened, err = s.waitForResponseForm(ctx); err != nil {
			return stepError(StateSearchList, "relocation", err)
		}
	}

	if opened == stateModal {
		return s.processModal(ctx, c.Title, at)
	}
	if err := sleep(ctx, s.cfg.Timings.BeforeResponse); err != nil {
		return err
	}
	return s.processResponsePage(ctx, at)
}

type formState int

const (
	stateNone formState = iota
	stateModal
	stateRelocation
	statePage
)

// waitForResponseForm ждет, что откроется после клика по "Откликнуться".
func (s *Session) waitForResponseForm(ctx context.Context) (formState, error) {
	state := stateNone
	_, err := waitUntil(ctx, s.cfg.Timings.RespondTimeout, s.cfg.Timings.PollStep, func() (bool, error) {
		if Classify(s.page.URL()) == StateResponsePage {
			state = statePage
			return true, nil
		}
		modal, err := s.page.Query(ctx, selModalOverlay)
		if err != nil {
			return false, err
		}
		if modal != nil {
			state = stateModal
			return true, nil
		}
		reloc, err := s.page.Query(ctx, selRelocationConfirm)
		if err != nil {
			return false, err
		}
		if reloc != nil {
			state = stateRelocation
			return true, nil
		}
		return false, nil
	})
	return state, err
}

// record пишет попытку в журнал и обновляет счетчики.
func (s *Session) record(ctx context.Context, res *Result, at *attempt, herr error) {
	v := s.Vacancy()
	app := Application{
		RunID:        res.RunID,
		VacancyID:    v.ID,
		Title:        v.Title,
		URL:          v.URL,
		SearchURL:    v.SearchURL,
		Template:     at.template,
		Variant:      at.variant,
		Questions:    at.questions,
		CoverLetter:  sanitizer.Sanitize(at.letter),
		Technologies: at.analysis.Technologies,
		Level:        at.analysis.Level,
		CreatedAt:    s.now(),
	}
	switch {
	case herr != nil:
		app.Status = StatusFailed
		app.Error = herr.Error()
		res.Failed++
	case at.submitted:
		app.Status = StatusSubmitted
		res.Submitted++
	default:
		app.Status = StatusNotSubmitted
	}

	if err := s.journal.Record(ctx, app); err != nil {
		s.log.Warn("Не удалось записать отклик в журнал", zap.String("vacancy_id", v.ID), zap.Error(err))
	}
	s.publish(res)
}

func (s *Session) dailyLimitReached(ctx context.Context) bool {
	if s.cfg.DailyLimit <= 0 {
		return false
	}
	n, err := s.journal.SubmittedSince(ctx, startOfDay(s.now()))
	if err != nil {
		s.log.Warn("Не удалось посчитать отклики за сутки", zap.Error(err))
		return false
	}
	if n >= s.cfg.DailyLimit {
		s.log.Warn("Достигнут дневной лимит откликов", zap.Int("limit", s.cfg.DailyLimit), zap.Int("submitted", n))
		return true
	}
	return false
}

// advancePager переходит на следующую страницу выдачи. false - пагинатора нет или он выключен.
func (s *Session) advancePager(ctx context.Context, res *Result) (bool, error) {
	next, err := s.page.Query(ctx, selPagerNext)
	if err != nil || next == nil {
		return false, err
	}
	disabled, err := next.IsDisabled(ctx)
	if err != nil {
		return false, err
	}
	if disabled {
		return false, nil
	}

	before := s.page.URL()
	s.log.Info("Переход на следующую страницу")
	if err := next.Click(ctx); err != nil {
		return false, err
	}
	res.Pages++
	if _, err := waitUntil(ctx, s.cfg.Timings.PagerTimeout, s.cfg.Timings.PollStep, func() (bool, error) {
		return s.page.URL() != before, nil
	}); err != nil {
		return false, err
	}
	return true, nil
}

// forceReturnToSearch открывает сохраненный адрес выдачи или поиск по умолчанию.
func (s *Session) forceReturnToSearch(ctx context.Context) error {
	target := s.Vacancy().SearchURL
	if target == "" {
		target = s.cfg.DefaultSearchURL
	}
	s.log.Info("Принудительный возврат к поиску", zap.String("url", target))

	err := retryAction(ctx, 3, s.cfg.Timings.Settle, func() error {
		return s.page.Navigate(ctx, target)
	})
	if err != nil {
		return err
	}
	return sleep(ctx, s.cfg.Timings.ReturnPause)
}

// waitForSearchPage опрашивает вкладку, пока не откроется выдача с карточками.
// Если выдача не появилась, вкладка принудительно возвращается к поиску.
func (s *Session) waitForSearchPage(ctx context.Context) error {
	if err := sleep(ctx, s.cfg.Timings.FirstPoll); err != nil {
		return err
	}
	for attempt := 1; ; attempt++ {
		url := s.page.URL()
		if isSearchURL(url) {
			cards, err := s.page.QueryAll(ctx, selVacancyCards)
			if err == nil && len(cards) > 0 {
				s.log.Debug("Страница поиска загружена", zap.Int("attempt", attempt))
				return nil
			}
		}
		if attempt >= s.cfg.PollAttempts {
			s.log.Warn("Страница поиска не появилась, принудительный переход", zap.String("url", url))
			if err := s.forceReturnToSearch(ctx); err != nil && ctx.Err() != nil {
				return err
			}
			return nil
		}
		if err := sleep(ctx, s.cfg.PollInterval); err != nil {
			return err
		}
	}
}
