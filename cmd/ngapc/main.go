package main

import (
	"os"

	"github.com/thebagchi/ngap-go/internal/config"
	"github.com/thebagchi/ngap-go/internal/logger"
	"github.com/urfave/cli/v2"
)

var cfg = config.Default()

func main() {
	app := &cli.App{
		Name:  "ngapc",
		Usage: "NGAP codec, capture replay and N2 test peer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "override a configuration key, as section.key=value",
			},
		},
		Before: loadConfig,
		Commands: []*cli.Command{
			decodeCommand,
			encodeCommand,
			replayCommand,
			serveCommand,
			proceduresCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.CliLog.Fatal(err)
	}
}

func loadConfig(c *cli.Context) error {
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.Override(c.StringSlice("set")...); err != nil {
		return err
	}
	cfg.Apply()
	return nil
}
