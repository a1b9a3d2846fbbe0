// Package cli - интерактивная консоль: старт/стоп откликов, шаблоны писем, журнал.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"hhResponder/internal/cli/commands"
	"hhResponder/internal/cli/ui"
	"hhResponder/internal/logger"
)

// Deps - то, чем управляет консоль.
type Deps struct {
	Controller commands.Controller
	Templates  commands.Templates
	Browser    commands.Navigator
}

type CLI struct {
	log      *logger.Zap
	rl       *readline.Instance
	stdin    *bufio.Reader
	out      io.Writer
	readLine func() (string, error)

	runHandler       *commands.RunHandler
	templatesHandler *commands.TemplatesHandler
	journalHandler   *commands.JournalHandler
	browserHandler   *commands.BrowserHandler
}

func New(deps Deps, log *logger.Zap) *CLI {
	c := &CLI{log: log, out: os.Stdout}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".hh-responder-history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Warn("Не удалось инициализировать readline, будет использован fallback режим")
	} else {
		c.rl = rl
		c.out = rl.Stdout()
	}
	c.readLine = c.readTerminal
	c.init(deps)
	return c
}

func newWithIO(deps Deps, log *logger.Zap, out io.Writer, readLine func() (string, error)) *CLI {
	c := &CLI{log: log, out: out, readLine: readLine}
	c.init(deps)
	return c
}

func (c *CLI) init(deps Deps) {
	c.runHandler = commands.NewRunHandler(deps.Controller, c.out, c.log.Logger)
	c.templatesHandler = commands.NewTemplatesHandler(deps.Templates, c.readLine, c.out, c.log.Logger)
	c.journalHandler = commands.NewJournalHandler(deps.Controller.Journal(), c.out, c.log.Logger)
	c.browserHandler = commands.NewBrowserHandler(deps.Browser, c.out)
}

func (c *CLI) readTerminal() (string, error) {
	if c.rl != nil {
		return c.rl.Readline()
	}
	// Fallback для работы без readline
	if c.stdin == nil {
		c.stdin = bufio.NewReader(os.Stdin)
	}
	fmt.Fprint(c.out, ui.ColorCyan+"> "+ui.ColorReset)
	line, err := c.stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *CLI) closeReadline() {
	if c.rl != nil {
		c.rl.Close()
	}
}

// Run читает команды до exit, EOF или отмены ctx.
func (c *CLI) Run(ctx context.Context) {
	ui.PrintWelcome(c.out)
	defer c.closeReadline()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out, "\n"+ui.ColorCyan+ui.IconWave+" Получен сигнал завершения..."+ui.ColorReset)
			return
		default:
		}

		line, err := c.readLine()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		} else if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !c.handleCommand(ctx, line) {
			fmt.Fprintln(c.out, ui.ColorCyan+ui.IconWave+" До свидания!"+ui.ColorReset)
			return
		}
	}
}

// handleCommand выполняет команду; false означает выход.
func (c *CLI) handleCommand(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "exit", "quit":
		return false

	case "clear":
		ui.ClearScreen(c.out)

	case "start", "toggle":
		c.runHandler.Toggle(ctx)

	case "stop":
		c.runHandler.Stop()

	case "status":
		c.runHandler.Status()

	case "templates":
		c.templatesHandler.List()

	case "use":
		c.templatesHandler.Use(ctx, arg)

	case "edit":
		c.templatesHandler.Edit(ctx, arg)

	case "preview":
		c.templatesHandler.Preview(arg)

	case "open":
		c.browserHandler.Open(ctx, arg)

	case "applications":
		c.journalHandler.Applications(ctx, arg)

	case "stats":
		c.journalHandler.Stats(ctx)

	default:
		ui.PrintHelp(c.out)
	}
	return true
}
