package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var commands = cli.Commands{
	cli.Command{
		Name:    "audit",
		Aliases: []string{"a"},
		Usage:   "Run one audit over an imagery directory and write the reports",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:   "source",
				Usage:  "directory tree holding the imagery",
				EnvVar: "AUDIT_SOURCE_DIR",
			},
			cli.StringFlag{
				Name:   "out",
				Usage:  "directory for message.csv/lack.csv (defaults to the source directory)",
				EnvVar: "AUDIT_REPORT_DIR",
			},
			cli.BoolFlag{
				Name:  "store-db",
				Usage: "also store the report tables into Postgres",
			},
		},
		Action: auditAction,
	},
	cli.Command{
		Name:    "schedule",
		Aliases: []string{"s"},
		Usage:   "Run audits on a schedule, with HTTP status endpoints",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "store-db",
				Usage: "also store the report tables into Postgres",
			},
		},
		Action: scheduleAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the raster-audit CLI",
		Action:  versionAction,
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "raster-audit"
	app.Usage = "Audit a tree of satellite raster products"
	app.Commands = commands
	return
}
