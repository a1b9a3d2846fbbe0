package ui

import (
	"fmt"
	"io"
)

// FormatStatus возвращает иконку, цвет и текст для статуса отклика
func FormatStatus(status string) (icon, color, text string) {
	switch status {
	case "submitted":
		return IconCheckmark, ColorGreen, "отправлен"
	case "failed":
		return IconCross, ColorRed, "ошибка"
	case "not_submitted":
		return IconClock, ColorYellow, "не отправлен"
	default:
		return IconClock, ColorYellow, status
	}
}

// FormatStopReason переводит причину остановки цикла для вывода в консоль.
func FormatStopReason(reason string) string {
	switch reason {
	case "stopped":
		return "остановлен пользователем"
	case "exhausted":
		return "вакансии закончились"
	case "error_limit":
		return "превышен лимит ошибок"
	case "daily_limit":
		return "достигнут дневной лимит откликов"
	case "canceled":
		return "прерван"
	case "unknown_page":
		return "неизвестная страница"
	case "done":
		return "отклик на вакансию завершен"
	case "error":
		return "ошибка"
	case "":
		return "-"
	default:
		return reason
	}
}

// Truncate обрезает строку до n символов.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// ClearScreen очищает терминал
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ColorGreen+IconCheckmark+" "+format+ColorReset+"\n", args...)
}

func Fail(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ColorRed+IconCross+" "+format+ColorReset+"\n", args...)
}
