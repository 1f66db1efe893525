package main

import (
	"context"
	"os"

	"github.com/yndnr/examprep-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		// API and validation failures were already shown as notifications.
		if !command.Reported(err) {
			command.PrintError(os.Stderr, err)
		}
		os.Exit(1)
	}
}
