package main

import (
	"fmt"
	"os"

	"github.com/df07/go-progressive-core/cmd"
	"github.com/df07/go-progressive-core/pkg/renderer"
	"github.com/urfave/cli"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	defaults := renderer.DefaultOptions()

	app := cli.NewApp()
	app.Name = "progressive-core"
	app.Usage = "progressively render a scene with a path tracer"
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
			Name:  "render",
			Usage: "render the built-in sphere scene",
			Description: `
Render the scene frame after frame, adding one sample to every pixel per frame.
Rendering stops after the requested number of frames or on interrupt; the last
completed frame is written to the output file.`,
			Flags: append(renderFlags(defaults),
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "serve",
			Usage: "stream progressive renders over HTTP",
			Description: `
Serve /api/render as server-sent events, one PNG per completed frame, and
/api/inspect to report what the camera sees through a pixel. Render flags set
the defaults; query parameters override them per request.`,
			Flags: append(renderFlags(defaults),
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
			),
			Action: cmd.Serve,
		},
		{
			Name:  "filters",
			Usage: "list available pixel filters",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "width",
					Value: defaults.FilterWidth,
					Usage: "filter half width in pixels",
				},
			},
			Action: cmd.ListFilters,
		},
	}

	return app
}

// renderFlags are shared by the render and serve commands
func renderFlags(defaults renderer.Options) []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: defaults.Width,
			Usage: "output width",
		},
		cli.IntFlag{
			Name:  "height",
			Value: defaults.Height,
			Usage: "output height",
		},
		cli.IntFlag{
			Name:  "frames, f",
			Value: defaults.MaxFrames,
			Usage: "number of frames to render, 0 to render until interrupted",
		},
		cli.IntFlag{
			Name:  "workers, w",
			Value: defaults.Workers,
			Usage: "number of render workers, 0 for one per CPU",
		},
		cli.IntFlag{
			Name:  "max-depth",
			Value: 50,
			Usage: "maximum number of bounces per path",
		},
		cli.IntFlag{
			Name:  "rr-depth",
			Value: defaults.RussianRouletteDepth,
			Usage: "bounces before russian roulette can end a path",
		},
		cli.BoolFlag{
			Name:  "skip-rr",
			Usage: "disable russian roulette",
		},
		cli.BoolFlag{
			Name:  "supersample",
			Usage: "render at quality-multiplier times the output size and scale down",
		},
		cli.IntFlag{
			Name:  "quality-multiplier",
			Value: defaults.QualityMultiplier,
			Usage: "supersampling factor",
		},
		cli.IntFlag{
			Name:  "quality-divisor",
			Value: defaults.QualityDivisor,
			Usage: "render at a fraction of the output size for previews",
		},
		cli.StringFlag{
			Name:  "camera, c",
			Value: defaults.Camera,
			Usage: "camera model: pinhole, perspective, basis or ortho",
		},
		cli.Float64Flag{
			Name:  "fov",
			Value: defaults.FOV,
			Usage: "field of view in degrees across the shorter image axis",
		},
		cli.Float64Flag{
			Name:  "lens-radius",
			Value: defaults.LensRadius,
			Usage: "thin lens radius, 0 for a pinhole",
		},
		cli.Float64Flag{
			Name:  "focal-distance",
			Value: defaults.FocalDistance,
			Usage: "distance to the plane in focus",
		},
		cli.StringFlag{
			Name:  "prng",
			Value: defaults.PRNG,
			Usage: "random number generator: default, mersenne, xorshift or crypto",
		},
		cli.Int64Flag{
			Name:  "seed",
			Usage: "generator seed, 0 for a random stream",
		},
		cli.StringFlag{
			Name:  "filter",
			Usage: "pixel filter for a stratified grid of samples per pass; empty for one jittered sample",
		},
		cli.Float64Flag{
			Name:  "filter-width",
			Value: defaults.FilterWidth,
			Usage: "filter half width in pixels",
		},
		cli.IntFlag{
			Name:  "pixel-samples",
			Value: defaults.PixelSamples,
			Usage: "grid size per pixel when a filter is set",
		},
	}
}
