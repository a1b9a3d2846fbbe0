package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hh-responder",
	Short: "Автоматические отклики на вакансии hh.ru",
	Long: "hhResponder открывает Firefox через Playwright, проходит по выдаче hh.ru и откликается на вакансии " +
		"с сопроводительным письмом из выбранного шаблона. Без подкоманды запускается интерактивная консоль.",
	SilenceUsage: true,
	RunE:         runConsole,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}
