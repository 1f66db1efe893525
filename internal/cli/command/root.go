package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/examprep-go/internal/cli/connection"
	"github.com/yndnr/examprep-go/internal/cli/guard"
	"github.com/yndnr/examprep-go/internal/cli/output"
	"github.com/yndnr/examprep-go/internal/core/domain"
	"github.com/yndnr/examprep-go/internal/infra/buildinfo"
)

const runtimeKey = "runtime"

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:     buildinfo.Product,
		Usage:    "Exam practice from the command line",
		Version:  buildinfo.String(),
		Flags:    globalFlags(),
		Commands: commands(),
		Metadata: map[string]any{},
		After:    after,
		// Errors are printed by main, after reported ones are filtered.
		ExitErrHandler: func(*cli.Context, error) {},
	}
	return app
}

func commands() []*cli.Command {
	return []*cli.Command{
		LoginCommand(),
		RegisterCommand(),
		LogoutCommand(),
		StatusCommand(),
		ExamsCommand(),
		StatisticsCommand(),
		NotificationsCommand(),
		ConfigCommand(),
		VersionCommand(),
		REPLCommand(),
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default ~/.examprep/cli.yaml)",
			EnvVars: []string{"EXAMPREP_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "api-url",
			Aliases: []string{"s"},
			Usage:   "API base URL (e.g., http://localhost:3000/api)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// GlobalFlags holds the parsed global flags.
type GlobalFlags struct {
	Config  string
	APIURL  string
	Output  string
	Wide    bool
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:  c.String("config"),
		APIURL:  c.String("api-url"),
		Output:  c.String("output"),
		Wide:    c.Bool("wide"),
		Verbose: c.Bool("verbose"),
	}
}

// overrides turns the flags the user actually set into config keys.
func overrides(c *cli.Context) map[string]any {
	m := map[string]any{}
	if c.IsSet("api-url") {
		m["api.url"] = c.String("api-url")
	}
	if c.IsSet("output") {
		m["output.format"] = c.String("output")
	}
	return m
}

const ownedKey = "runtime.owned"

func after(c *cli.Context) error {
	rt, ok := c.App.Metadata[runtimeKey].(*Runtime)
	if !ok {
		return nil
	}
	if owned, _ := c.App.Metadata[ownedKey].(bool); !owned {
		return nil
	}
	delete(c.App.Metadata, runtimeKey)
	return rt.Close()
}

// GetRuntime retrieves the runtime from context.
func GetRuntime(c *cli.Context) *Runtime {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt
	}
	return nil
}

// WithRuntime presets the runtime on app. The caller keeps ownership.
func WithRuntime(app *cli.App, rt *Runtime) *cli.App {
	if app.Metadata == nil {
		app.Metadata = map[string]any{}
	}
	app.Metadata[runtimeKey] = rt
	return app
}

// runtimeFrom returns the preset runtime or creates one from the global
// flags. A created runtime is closed by the app's After hook.
func runtimeFrom(c *cli.Context) (*Runtime, error) {
	if rt := GetRuntime(c); rt != nil {
		return rt, nil
	}
	flags := ParseGlobalFlags(c)
	rt, err := NewRuntime(RuntimeOptions{
		ConfigPath: flags.Config,
		Overrides:  overrides(c),
		Verbose:    flags.Verbose,
		Stderr:     c.App.ErrWriter,
	})
	if err != nil {
		return nil, err
	}
	c.App.Metadata[runtimeKey] = rt
	c.App.Metadata[ownedKey] = true
	return rt, nil
}

// formatterFor picks the output format: the flag when set, otherwise
// the configured default.
func formatterFor(c *cli.Context, rt *Runtime) (output.Formatter, error) {
	name := rt.Config().Output.Format
	if c.IsSet("output") {
		name = c.String("output")
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(format, c.Bool("wide")), nil
}

func render(c *cli.Context, rt *Runtime, data any) error {
	f, err := formatterFor(c, rt)
	if err != nil {
		return err
	}
	return f.Format(c.App.Writer, data)
}

// Reported reports whether err has already been shown to the user as a
// notification, so printing it again would duplicate the message.
func Reported(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return connection.IsAPIError(err) ||
		errors.Is(err, guard.ErrAuthRequired) ||
		errors.Is(err, domain.ErrValidation)
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
