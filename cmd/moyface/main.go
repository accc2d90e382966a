package main

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/moyoung/moyface"
	"github.com/urfave/cli/v2"
)

const defaultDB = "moyface.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newTool(c *cli.Context) (*moyface.Tool, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return moyface.New(c.String("db"), logger)
}

func main() {
	app := cli.NewApp()

	app.Name = "moyface"
	app.Usage = "MO YOUNG / DA FIT watch face utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"MOYFACE_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to face catalog database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "info",
			Usage:       "Print the decoded layout of a watch face file",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newTool(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Info(c.Args().First(), os.Stdout); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "dump",
			Usage:       "Write the embedded images of a watch face file to a folder",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "folder",
					Value: "dump",
					Usage: "output folder",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: "bmp",
					Usage: "output format: bmp, raw, bin or gif",
				},
				&cli.IntFlag{
					Name:  "bpp",
					Value: 32,
					Usage: "bitmap bit depth: 16, 24 or 32",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := moyface.ParseFormat(c.String("format"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				m, err := newTool(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Dump(c.Args().First(), c.String("folder"), format, c.Int("bpp")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Scan filesystem and index watch faces into the catalog",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newTool(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List the faces in the catalog",
			Description: "",
			Action: func(c *cli.Context) error {
				m, err := newTool(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				if err := m.ListFaces(os.Stdout); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
