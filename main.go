package main

import (
	"os"

	"github.com/achilleasa/go-bvh/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-bvh"
	app.Usage = "build and query spatial acceleration indices for ray tracing"
	app.Version = "0.0.1"
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
			Name:  "bench",
			Usage: "benchmark an accelerator against a yaml sphere scene",
			Description: `
Load a sphere scene description from a yaml file, build the selected
acceleration index over it and measure build time and ray throughput for
an orthographic ray grid covering the scene bounds.`,
			ArgsUsage: "scene.yaml",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "accel, a",
					Value: "bvh",
					Usage: "accelerator implementation to benchmark",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "ray grid width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "ray grid height",
				},
			},
			Action: cmd.Bench,
		},
		{
			Name:  "validate",
			Usage: "cross-validate the bvh accelerator against exhaustive search",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "prims",
					Value: 1000,
					Usage: "number of random spheres to generate",
				},
				cli.IntFlag{
					Name:  "rays",
					Value: 10000,
					Usage: "number of random rays to trace",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "random generator seed",
				},
			},
			Action: cmd.Validate,
		},
	}

	app.Run(os.Args)
}
