package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"hhResponder/internal/cli/ui"
	"hhResponder/internal/responder"
)

// Controller - цикл откликов, которым управляет консоль.
type Controller interface {
	Toggle(ctx context.Context) (bool, error)
	Stop() error
	Status() responder.Status
	Journal() responder.Journal
}

// RunHandler обрабатывает команды start, stop и status
type RunHandler struct {
	ctrl Controller
	out  io.Writer
	log  *zap.Logger
}

func NewRunHandler(ctrl Controller, out io.Writer, log *zap.Logger) *RunHandler {
	return &RunHandler{ctrl: ctrl, out: out, log: log}
}

// Toggle работает как кнопка старт/стоп.
func (h *RunHandler) Toggle(ctx context.Context) {
	running, err := h.ctrl.Toggle(ctx)
	if err != nil {
		if !errors.Is(err, responder.ErrAlreadyRunning) {
			h.log.Error("Ошибка запуска цикла", zap.Error(err))
		}
		ui.Fail(h.out, "Не удалось переключить цикл: %v", err)
		return
	}
	if running {
		fmt.Fprintln(h.out, ui.ColorCyan+ui.IconPlay+" Отклики запущены"+ui.ColorReset)
		return
	}
	fmt.Fprintln(h.out, ui.ColorYellow+ui.IconStop+" Остановка после текущего шага..."+ui.ColorReset)
}

func (h *RunHandler) Stop() {
	if err := h.ctrl.Stop(); err != nil {
		ui.Fail(h.out, "Цикл не запущен")
		return
	}
	fmt.Fprintln(h.out, ui.ColorYellow+ui.IconStop+" Остановка после текущего шага..."+ui.ColorReset)
}

func (h *RunHandler) Status() {
	st := h.ctrl.Status()

	fmt.Fprintln(h.out, "\n"+ui.ColorBold+"=== Состояние ==="+ui.ColorReset)
	if st.Running {
		fmt.Fprintln(h.out, ui.ColorCyan+ui.IconPlay+" Отклики выполняются"+ui.ColorReset)
	} else {
		fmt.Fprintln(h.out, ui.ColorGray+ui.IconStop+" Отклики остановлены"+ui.ColorReset)
	}
	if st.Vacancy.Title != "" {
		fmt.Fprintf(h.out, ui.ColorCyan+ui.IconDocument+" Вакансия:"+ui.ColorReset+" %s\n", st.Vacancy.Title)
		if st.Vacancy.URL != "" {
			fmt.Fprintf(h.out, "  "+ui.ColorGray+"%s"+ui.ColorReset+"\n", st.Vacancy.URL)
		}
	}
	if st.Current != nil {
		h.printResult("Текущий запуск", st.Current)
	}
	if st.Last != nil {
		h.printResult("Последний запуск", st.Last)
	}
	fmt.Fprintln(h.out)
}

func (h *RunHandler) printResult(title string, r *responder.Result) {
	fmt.Fprintf(h.out, "\n"+ui.ColorYellow+ui.IconChart+" %s:"+ui.ColorReset+"\n", title)
	fmt.Fprintf(h.out, "  Старт: %s (%s)\n", r.StartState, r.StartedAt.Format("15:04:05"))
	fmt.Fprintf(h.out, "  Обработано: %d, отправлено: %d, ошибок: %d, пропущено: %d, страниц: %d\n",
		r.Processed, r.Submitted, r.Failed, r.Skipped, r.Pages)
	if r.StopReason != "" {
		fmt.Fprintf(h.out, "  Причина остановки: %s\n", ui.FormatStopReason(r.StopReason))
	}
}
