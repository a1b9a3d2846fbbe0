package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"hhResponder/internal/cli/ui"
	"hhResponder/internal/responder"
)

const defaultApplicationsLimit = 20

// JournalHandler обрабатывает команды applications и stats
type JournalHandler struct {
	journal responder.Journal
	out     io.Writer
	log     *zap.Logger
}

func NewJournalHandler(journal responder.Journal, out io.Writer, log *zap.Logger) *JournalHandler {
	return &JournalHandler{journal: journal, out: out, log: log}
}

func (h *JournalHandler) Applications(ctx context.Context, arg string) {
	limit := defaultApplicationsLimit
	if arg = strings.TrimSpace(arg); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			ui.Fail(h.out, "Неверное количество")
			return
		}
		limit = n
	}

	apps, err := h.journal.Applications(ctx, limit)
	if err != nil {
		h.log.Error("Ошибка чтения журнала", zap.Error(err))
		ui.Fail(h.out, "Ошибка чтения журнала")
		return
	}
	if len(apps) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Откликов пока нет"+ui.ColorReset)
		return
	}

	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== "+ui.IconList+" Последние отклики (%d) ==="+ui.ColorReset+"\n", len(apps))
	for _, a := range apps {
		icon, color, text := ui.FormatStatus(a.Status)
		fmt.Fprintf(h.out, "%s%s %-13s"+ui.ColorReset+" %s %s\n",
			color, icon, text, a.CreatedAt.Format("02.01 15:04"), ui.Truncate(a.Title, 70))
		if a.Error != "" {
			fmt.Fprintf(h.out, "  "+ui.ColorRed+"%s"+ui.ColorReset+"\n", ui.Truncate(a.Error, 100))
		}
	}
	fmt.Fprintln(h.out)
}

func (h *JournalHandler) Stats(ctx context.Context) {
	stats, err := h.journal.Stats(ctx)
	if err != nil {
		h.log.Error("Ошибка чтения журнала", zap.Error(err))
		ui.Fail(h.out, "Ошибка чтения журнала")
		return
	}

	statuses := make([]string, 0, len(stats))
	total := 0
	for status, n := range stats {
		statuses = append(statuses, status)
		total += n
	}
	sort.Strings(statuses)

	fmt.Fprintln(h.out, "\n"+ui.ColorBold+"=== "+ui.IconChart+" Статистика ==="+ui.ColorReset)
	for _, status := range statuses {
		icon, color, text := ui.FormatStatus(status)
		fmt.Fprintf(h.out, "%s%s %s:"+ui.ColorReset+" %d\n", color, icon, text, stats[status])
	}
	fmt.Fprintf(h.out, "Всего: %d\n\n", total)
}
