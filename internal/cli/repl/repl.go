package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Executor runs one command line, already split into arguments.
type Executor func(ctx context.Context, args []string) error

var builtins = []string{"exit", "quit", "help", "history", "complete"}

// Config configures a REPL.
type Config struct {
	In  io.Reader
	Out io.Writer
	// Prompt is evaluated before every line, e.g. to show the signed-in user.
	Prompt    func() string
	Exec      Executor
	Completer *Completer
	History   *History
}

// REPL is the interactive loop.
type REPL struct {
	cfg Config
}

// New creates a REPL.
func New(cfg Config) *REPL {
	if cfg.Prompt == nil {
		cfg.Prompt = func() string { return "examprep> " }
	}
	if cfg.Completer == nil {
		cfg.Completer = NewCompleter()
	}
	if cfg.History == nil {
		cfg.History = NewHistory("", 0)
	}
	return &REPL{cfg: cfg}
}

// Run reads lines until EOF, exit/quit or ctx is done. Command errors
// are printed and the loop continues.
func (r *REPL) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r.cfg.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(r.cfg.Out, r.cfg.Prompt())

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.cfg.Out)
			return nil
		case err := <-readErr:
			fmt.Fprintln(r.cfg.Out)
			return err
		case line = <-lines:
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r.cfg.History.Add(line)

		args, err := SplitArgs(line)
		if err != nil {
			fmt.Fprintf(r.cfg.Out, "Error: %v\n", err)
			continue
		}

		if isBuiltin(args[0]) {
			if r.builtin(args) {
				return nil
			}
			continue
		}

		if err := r.cfg.Exec(ctx, args); err != nil && err.Error() != "" {
			fmt.Fprintf(r.cfg.Out, "Error: %v\n", err)
		}
	}
}

// builtin handles the REPL's own commands and reports whether to exit.
func (r *REPL) builtin(args []string) bool {
	switch args[0] {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprintln(r.cfg.Out, "Commands:")
		for _, cmd := range r.cfg.Completer.Commands() {
			fmt.Fprintf(r.cfg.Out, "  %s\n", cmd)
		}
		fmt.Fprintln(r.cfg.Out, "Use '<command> --help' for details.")
	case "history":
		for i, e := range r.cfg.History.Entries() {
			fmt.Fprintf(r.cfg.Out, "%4d  %s\n", i+1, e)
		}
	case "complete":
		for _, s := range r.cfg.Completer.Complete(strings.Join(args[1:], " ")) {
			fmt.Fprintln(r.cfg.Out, s)
		}
	}
	return false
}

func isBuiltin(name string) bool {
	for _, b := range builtins {
		if b == name {
			return true
		}
	}
	return false
}
