package command

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/examprep-go/internal/cli/output"
	"github.com/yndnr/examprep-go/internal/core/domain"
)

// StatisticsCommand shows the performance summary.
func StatisticsCommand() *cli.Command {
	return &cli.Command{
		Name:    "statistics",
		Aliases: []string{"stats"},
		Usage:   "Show your performance statistics",
		Action:  statisticsShow,
	}
}

type statisticsView struct {
	*domain.Statistics `yaml:",inline"`
}

func (v statisticsView) Tables(wide bool) []*output.Table {
	subjects := output.NewTable("SUBJECT", "SCORE")
	subjects.Title = "Performance by subject"
	subjects.Empty = "No data"
	for _, p := range v.Subjects {
		subjects.AddRow(output.Cell(p.Name), output.Percent(p.Score))
	}
	if len(v.Subjects) > 0 {
		subjects.AddRow("Average", output.Percent(v.AverageScore()))
	}

	progress := output.NewTable("PERIOD", "SCORE")
	progress.Title = "Progress over time"
	progress.Empty = "No data"
	for _, p := range v.Progress {
		progress.AddRow(output.Cell(p.Name), output.Percent(p.Score))
	}

	accuracy := output.NewTable("ANSWERS", "SHARE")
	accuracy.Title = "Answer accuracy"
	accuracy.Empty = "No data"
	for _, s := range v.Accuracy {
		accuracy.AddRow(output.Cell(s.Name), output.Percent(s.Value))
	}

	headers := []string{"RANK", "NAME", "SCORE", "EXAMS"}
	if wide {
		headers = append(headers, "ID")
	}
	top := output.NewTable(headers...)
	top.Title = "Top students"
	top.Empty = "No data"
	for i, s := range v.Ranked() {
		row := []string{
			strconv.Itoa(i + 1),
			output.Cell(s.Name),
			output.Percent(s.Score),
			strconv.Itoa(s.ExamsCompleted),
		}
		if wide {
			row = append(row, output.Cell(string(s.ID)))
		}
		top.AddRow(row...)
	}

	return []*output.Table{subjects, progress, accuracy, top}
}

func statisticsShow(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	var stats *domain.Statistics
	err = rt.Guard().Run(func() error {
		return rt.spin("Loading statistics...", func() error {
			stats, err = rt.Statistics().Get(c.Context)
			return err
		})
	})
	if err != nil {
		return err
	}
	return render(c, rt, statisticsView{stats})
}
