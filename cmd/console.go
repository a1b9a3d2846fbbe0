package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hhResponder/internal/cli"
	"hhResponder/internal/server"
)

var consoleHTTP bool

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Интерактивная консоль управления откликами",
	RunE:  runConsole,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, consoleCmd} {
		cmd.Flags().BoolVar(&consoleHTTP, "http", false, "Одновременно поднять HTTP API на APP_HOST:APP_PORT")
	}
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openBrowser(ctx, ""); err != nil {
		return err
	}

	console := cli.New(cli.Deps{
		Controller: a.session,
		Templates:  a.templates,
		Browser:    a.browser,
	}, a.log)

	if !consoleHTTP {
		console.Run(ctx)
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	srvCtx, cancel := context.WithCancel(gCtx)
	g.Go(func() error {
		return server.New(a.cfg, a.log, a.session, a.templates).Run(srvCtx)
	})
	g.Go(func() error {
		defer cancel()
		console.Run(gCtx)
		return nil
	})
	return g.Wait()
}
