package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hhResponder/internal/browser"
	"hhResponder/internal/responder"
)

var inspectURL string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.html>",
	Short: "Разобрать сохраненную страницу hh.ru селекторами цикла",
	Long: "Загружает сохраненную страницу без браузера и показывает, как ее видит цикл откликов: " +
		"тип страницы, название вакансии, карточки выдачи и пагинацию.",
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectURL, "url", "https://hh.ru/search/vacancy", "Адрес, под которым была сохранена страница")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	page, err := browser.OpenFile(args[0], inspectURL)
	if err != nil {
		return err
	}
	report, err := responder.Inspect(cmd.Context(), page)
	if err != nil {
		return fmt.Errorf("ошибка разбора страницы: %w", err)
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func printReport(w io.Writer, r responder.Report) {
	fmt.Fprintf(w, "Адрес: %s\n", r.URL)
	fmt.Fprintf(w, "Тип страницы: %s\n", r.State)
	fmt.Fprintf(w, "Название вакансии: %s\n", r.Title)
	fmt.Fprintf(w, "Окно отклика: %t, поле письма: %t, вопросов без ответа: %d\n", r.Modal, r.LetterField, r.Questions)
	fmt.Fprintf(w, "Пагинация: %t (заблокирована: %t)\n", r.PagerPresent, r.PagerDisabled)
	fmt.Fprintf(w, "Карточек: %d, доступно для отклика: %d\n", len(r.Cards), r.Eligible())
	for i, c := range r.Cards {
		mark := "-"
		if c.Eligible {
			mark = "+"
		}
		fmt.Fprintf(w, "  %s %2d. %s [%s] %q\n", mark, i+1, c.Title, c.ID, c.RespondText)
	}
}
