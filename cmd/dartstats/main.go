package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	cliApp := &cli.App{
		Name:  "dartstats",
		Usage: "darts game statistics service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newMigrateCommand(),
			newRankingsCommand(),
			newHistoryCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
