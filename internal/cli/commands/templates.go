package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"hhResponder/internal/cli/ui"
	"hhResponder/internal/templates"
)

// Templates - набор шаблонов сопроводительных писем.
type Templates interface {
	Names() []string
	Get(name string) (string, bool)
	Selected() string
	Select(ctx context.Context, name string) error
	Update(ctx context.Context, name, text string) error
	Preview(name string) (string, error)
}

// editTerminator завершает многострочный ввод шаблона.
const editTerminator = "."

// TemplatesHandler обрабатывает команды templates, use, edit и preview
type TemplatesHandler struct {
	store    Templates
	readLine func() (string, error)
	out      io.Writer
	log      *zap.Logger
}

func NewTemplatesHandler(store Templates, readLine func() (string, error), out io.Writer, log *zap.Logger) *TemplatesHandler {
	return &TemplatesHandler{store: store, readLine: readLine, out: out, log: log}
}

func (h *TemplatesHandler) List() {
	selected := h.store.Selected()
	fmt.Fprintln(h.out, "\n"+ui.ColorBold+"=== "+ui.IconList+" Шаблоны писем ==="+ui.ColorReset)
	for _, name := range h.store.Names() {
		text, _ := h.store.Get(name)
		marker := "  "
		color := ui.ColorReset
		if name == selected {
			marker = ui.IconCheckmark + " "
			color = ui.ColorGreen
		}
		firstLine, _, _ := strings.Cut(text, "\n")
		fmt.Fprintf(h.out, "%s%s%s"+ui.ColorReset+" "+ui.ColorGray+"%s"+ui.ColorReset+"\n",
			color, marker, name, ui.Truncate(firstLine, 60))
	}
	fmt.Fprintln(h.out)
}

func (h *TemplatesHandler) Use(ctx context.Context, arg string) {
	name := templates.Resolve(arg)
	if err := h.store.Select(ctx, name); err != nil {
		h.fail(err)
		return
	}
	ui.Success(h.out, "Выбран шаблон %s", name)
}

// Edit читает новый текст шаблона построчно до строки ".".
func (h *TemplatesHandler) Edit(ctx context.Context, arg string) {
	name := templates.Resolve(arg)
	if name == "" {
		ui.Fail(h.out, "Укажите номер шаблона")
		return
	}

	fmt.Fprintln(h.out, ui.ColorCyan+ui.IconDocument+" Введите текст шаблона, "+templates.Placeholder+" заменяется названием вакансии."+ui.ColorReset)
	fmt.Fprintln(h.out, ui.ColorGray+"Закончите ввод строкой \""+editTerminator+"\""+ui.ColorReset)

	var lines []string
	for {
		line, err := h.readLine()
		if err != nil {
			ui.Fail(h.out, "Ввод прерван, шаблон не изменен")
			return
		}
		if strings.TrimSpace(line) == editTerminator {
			break
		}
		lines = append(lines, line)
	}

	if err := h.store.Update(ctx, name, strings.Join(lines, "\n")); err != nil {
		h.fail(err)
		return
	}
	ui.Success(h.out, "Шаблон %s сохранен", name)
}

func (h *TemplatesHandler) Preview(arg string) {
	name := templates.Resolve(arg)
	if name == "" {
		name = h.store.Selected()
	}
	text, err := h.store.Preview(name)
	if err != nil {
		h.fail(err)
		return
	}
	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== %s ==="+ui.ColorReset+"\n%s\n\n", name, text)
}

func (h *TemplatesHandler) fail(err error) {
	switch {
	case errors.Is(err, templates.ErrUnknownTemplate):
		ui.Fail(h.out, "Шаблон не найден")
	case errors.Is(err, templates.ErrEmptyTemplate):
		ui.Fail(h.out, "Шаблон не может быть пустым")
	default:
		h.log.Error("Ошибка сохранения настроек", zap.Error(err))
		ui.Fail(h.out, "Ошибка сохранения: %v", err)
	}
}
