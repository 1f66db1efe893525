package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/examprep-go/internal/cli/output"
	"github.com/yndnr/examprep-go/internal/infra/buildinfo"
)

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Action: versionShow,
	}
}

type versionView struct {
	buildinfo.Info `yaml:",inline"`
}

func (v versionView) Tables(bool) []*output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("Version", v.Version)
	t.AddRow("Commit", v.Commit)
	t.AddRow("Built", v.BuildTime)
	t.AddRow("Go", v.GoVersion)
	t.AddRow("Platform", v.Platform)
	return []*output.Table{t}
}

func versionShow(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}
	return output.NewFormatter(format, false).Format(c.App.Writer, versionView{buildinfo.Get()})
}
