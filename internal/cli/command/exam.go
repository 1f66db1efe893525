package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/examprep-go/internal/cli/output"
	"github.com/yndnr/examprep-go/internal/core/domain"
)

// ExamsCommand returns the exams subcommand group.
func ExamsCommand() *cli.Command {
	return &cli.Command{
		Name:    "exams",
		Aliases: []string{"exam"},
		Usage:   "Browse practice exams",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List exams, optionally filtered",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"q"},
						Usage:   "Match title or description (case-insensitive)",
					},
					&cli.StringFlag{
						Name:    "difficulty",
						Aliases: []string{"d"},
						Usage:   "Filter by difficulty: easy, medium, hard or all",
						Value:   domain.FilterAll,
					},
					&cli.StringFlag{
						Name:  "subject",
						Usage: "Filter by subject",
						Value: domain.FilterAll,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Filter by category",
						Value: domain.FilterAll,
					},
				},
				Action: examsList,
			},
			{
				Name:      "get",
				Usage:     "Show one exam",
				ArgsUsage: "ID",
				Action:    examsGet,
			},
		},
	}
}

type examList []domain.Exam

func (l examList) Tables(wide bool) []*output.Table {
	headers := []string{"ID", "TITLE", "SUBJECT", "DIFFICULTY", "DURATION", "QUESTIONS"}
	if wide {
		headers = append(headers, "PARTICIPANTS", "CATEGORY", "DESCRIPTION")
	}
	t := output.NewTable(headers...)
	t.Empty = "No exams found"
	for _, e := range l {
		row := []string{
			string(e.ID),
			output.Cell(e.Title),
			output.Cell(e.Subject),
			output.Cell(string(e.Difficulty)),
			output.Cell(e.Duration),
			strconv.Itoa(e.Questions),
		}
		if wide {
			row = append(row,
				strconv.Itoa(e.Participants),
				output.Cell(e.Category),
				output.Cell(e.Description),
			)
		}
		t.AddRow(row...)
	}
	return []*output.Table{t}
}

type examDetail struct {
	*domain.Exam `yaml:",inline"`
}

func (d examDetail) Tables(bool) []*output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("ID", string(d.ID))
	t.AddRow("Title", output.Cell(d.Title))
	t.AddRow("Description", output.Cell(d.Description))
	t.AddRow("Subject", output.Cell(d.Subject))
	t.AddRow("Category", output.Cell(d.Category))
	t.AddRow("Difficulty", output.Cell(string(d.Difficulty)))
	t.AddRow("Duration", output.Cell(d.Duration))
	t.AddRow("Questions", strconv.Itoa(d.Questions))
	t.AddRow("Participants", strconv.Itoa(d.Participants))
	return []*output.Table{t}
}

func examsList(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	filter := domain.ExamFilter{
		Search:     c.String("search"),
		Difficulty: c.String("difficulty"),
		Subject:    c.String("subject"),
		Category:   c.String("category"),
	}
	if filter.Difficulty != "" && filter.Difficulty != domain.FilterAll {
		d, err := domain.ParseDifficulty(filter.Difficulty)
		if err != nil {
			return err
		}
		filter.Difficulty = string(d)
	}

	var exams []domain.Exam
	err = rt.Guard().Run(func() error {
		return rt.spin("Loading exams...", func() error {
			exams, err = rt.Exams().List(c.Context, filter)
			return err
		})
	})
	if err != nil {
		return err
	}
	return render(c, rt, examList(exams))
}

func examsGet(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("exam ID required")
	}

	var exam *domain.Exam
	err = rt.Guard().Run(func() error {
		return rt.spin("Loading exam...", func() error {
			exam, err = rt.Exams().Get(c.Context, id)
			return err
		})
	})
	if err != nil {
		return err
	}
	return render(c, rt, examDetail{exam})
}
