package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runURL string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Пройти выдачу и откликнуться без консоли",
	Long:  "Открывает стартовую страницу (HH_SEARCH_URL или --url) и выполняет цикл откликов до исчерпания выдачи, лимита или Ctrl+C.",
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().StringVar(&runURL, "url", "", "Страница выдачи или вакансии, с которой начать")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openBrowser(ctx, runURL); err != nil {
		return err
	}

	res, err := a.session.Run(ctx)
	if err != nil {
		return err
	}
	a.log.Info("Цикл откликов завершен",
		zap.String("run_id", res.RunID),
		zap.String("stop_reason", res.StopReason),
		zap.Int("processed", res.Processed),
		zap.Int("submitted", res.Submitted),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped),
		zap.Int("pages", res.Pages),
	)
	return nil
}
