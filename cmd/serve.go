package main

import (
	"github.com/spf13/cobra"

	"hhResponder/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP API для управления откликами",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openBrowser(ctx, ""); err != nil {
		return err
	}
	return server.New(a.cfg, a.log, a.session, a.templates).Run(ctx)
}
