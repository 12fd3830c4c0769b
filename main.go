package main

import (
	"fmt"
	"os"

	"github.com/df07/go-tile-pathtracer/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-tile-pathtracer"
	app.Usage = "render scenes using tile-scheduled path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Split the frame into tiles and render them on a pool of workers. Progress is
reported periodically; with --preview the partially rendered frame, with
in-flight tiles outlined, is written to disk on every report.

The output format is chosen by the extension of --out: png, ppm, bmp or jpg.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
				cli.StringFlag{
					Name:  "preview",
					Usage: "png filename for periodic progress previews",
				},
			}, cmd.RenderFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "serve",
			Usage: "render a frame while serving a live preview over HTTP",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Value: "localhost:8080",
					Usage: "address to listen on",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "optional image filename for the finished frame",
				},
			}, cmd.RenderFlags...),
			Action: cmd.Serve,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
