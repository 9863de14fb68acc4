package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	"github.com/urfave/cli/v2"

	_ "github.com/tliron/commonlog/simple"
)

var commands []*cli.Command

var log = commonlog.GetLogger("pifront")

func main() {
	app := &cli.App{
		Name:                   "pifront",
		Usage:                  "Parse and format pi, a contract-annotated imperative language",
		Version:                "0.1.0",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log more; repeat for debug output",
			},
		},
		Before: func(c *cli.Context) error {
			commonlog.Configure(c.Count("verbose"), nil)
			return nil
		},
		Commands: commands,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("%s", err))
		os.Exit(1)
	}
}
