package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/examprep-go/internal/cli/config"
	"github.com/yndnr/examprep-go/internal/cli/repl"
	"github.com/yndnr/examprep-go/internal/infra/confloader"
	"github.com/yndnr/examprep-go/internal/telemetry/logger"
)

// REPLCommand starts an interactive shell that keeps one session store
// and client across commands.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive shell",
		Description: "Each line runs as a command, e.g. 'exams list --difficulty easy'.\n" +
			"Credentials must be passed as flags. The configuration file is\n" +
			"reloaded when it changes.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history-file",
				Usage: "History file (default ~/.examprep/history)",
			},
		},
		Action: replRun,
	}
}

func replRun(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	ctx, stop := rt.Shutdown.NotifyContext(c.Context)
	defer stop()

	historyFile := c.String("history-file")
	if historyFile == "" {
		historyFile = config.DefaultHistoryPath()
	}
	history := repl.NewHistory(historyFile, repl.DefaultHistorySize)
	if err := history.Load(); err != nil {
		rt.Logger.Warn("load history failed", "path", historyFile, "error", err)
	}
	defer func() {
		if err := history.Save(); err != nil {
			rt.Logger.Warn("save history failed", "path", historyFile, "error", err)
		}
	}()

	watchConfig(rt)

	var names []string
	for _, cmd := range commands() {
		if cmd.Name != "repl" {
			names = append(names, cmd.Name)
		}
	}

	r := repl.New(repl.Config{
		In:        c.App.Reader,
		Out:       c.App.Writer,
		Prompt:    func() string { return prompt(rt) },
		Exec:      replExecutor(rt, c.App),
		Completer: repl.NewCompleter(names...),
		History:   history,
	})
	return r.Run(ctx)
}

// replExecutor runs each line as a fresh app sharing rt. Errors the user
// has already seen as notifications are not returned.
func replExecutor(rt *Runtime, parent *cli.App) repl.Executor {
	return func(ctx context.Context, args []string) error {
		if args[0] == "repl" {
			return errors.New("already in the interactive shell")
		}

		app := WithRuntime(App(), rt)
		app.Writer = parent.Writer
		app.ErrWriter = parent.ErrWriter
		// Input belongs to the shell; commands must not prompt.
		app.Reader = strings.NewReader("")

		err := app.RunContext(ctx, append([]string{parent.Name}, args...))
		if err != nil && Reported(err) {
			return nil
		}
		return err
	}
}

func prompt(rt *Runtime) string {
	if sess, err := rt.Store.Get(); err == nil && sess.Valid() {
		name := sess.DisplayName
		if name == "" {
			name = "signed in"
		}
		return "examprep (" + name + ")> "
	}
	return "examprep> "
}

// watchConfig reloads rt when its configuration file changes. A missing
// config directory disables the watch.
func watchConfig(rt *Runtime) {
	if _, err := os.Stat(filepath.Dir(rt.ConfigPath)); err != nil {
		return
	}
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(rt.Logger)))
	if err != nil {
		rt.Logger.Warn("config watcher unavailable", "error", err)
		return
	}
	if err := w.Watch(rt.ConfigPath); err != nil {
		w.Stop()
		return
	}
	w.OnChange(func(string) {
		if err := rt.Reload(); err != nil {
			rt.Logger.Warn("reload configuration failed", "error", err)
		}
	})
	w.StartAsync()
	rt.Shutdown.OnShutdown("config watcher", func(context.Context) error { return w.Stop() })
}
