package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"

	"github.com/df07/go-progressive-core/pkg/renderer"
	"github.com/df07/go-progressive-core/pkg/scene"
	"github.com/df07/go-progressive-core/pkg/session"
	"github.com/urfave/cli"
)

// RenderFrame renders the built-in scene progressively and writes the last
// completed frame as a PNG. An interrupt stops rendering early and still
// saves whatever frame finished last.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := optionsFromContext(ctx)
	sceneConfig := sceneConfigFromContext(ctx)
	if opts.SkipRussianRoulette {
		logger.Notice("disabling RR for path elimination")
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := render(runCtx, opts, sceneConfig)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err := savePNG(out, img); err != nil {
		return err
	}

	logger.Noticef("frame statistics:\n%s", renderer.StatsTable(stats))
	logger.Noticef("wrote %dx%d image to %s", img.Bounds().Dx(), img.Bounds().Dy(), out)
	return nil
}

// optionsFromContext maps command flags onto render options
func optionsFromContext(ctx *cli.Context) renderer.Options {
	return renderer.Options{
		Width:                ctx.Int("width"),
		Height:               ctx.Int("height"),
		RussianRouletteDepth: ctx.Int("rr-depth"),
		SkipRussianRoulette:  ctx.Bool("skip-rr"),
		Supersample:          ctx.Bool("supersample"),
		QualityMultiplier:    ctx.Int("quality-multiplier"),
		QualityDivisor:       ctx.Int("quality-divisor"),
		Workers:              ctx.Int("workers"),
		MaxFrames:            ctx.Int("frames"),
		Camera:               ctx.String("camera"),
		FOV:                  ctx.Float64("fov"),
		LensRadius:           ctx.Float64("lens-radius"),
		FocalDistance:        ctx.Float64("focal-distance"),
		PRNG:                 ctx.String("prng"),
		Seed:                 ctx.Int64("seed"),
		Filter:               ctx.String("filter"),
		FilterWidth:          ctx.Float64("filter-width"),
		PixelSamples:         ctx.Int("pixel-samples"),
	}
}

// sceneConfigFromContext maps path termination flags onto the scene config
func sceneConfigFromContext(ctx *cli.Context) scene.Config {
	return scene.Config{
		MaxDepth:             ctx.Int("max-depth"),
		RussianRouletteDepth: ctx.Int("rr-depth"),
		SkipRussianRoulette:  ctx.Bool("skip-rr"),
	}
}

// render runs the progressive driver until it finishes or ctx is cancelled
// and returns the last completed frame scaled to the output size
func render(ctx context.Context, opts renderer.Options, sceneConfig scene.Config) (*image.RGBA, []renderer.RenderStats, error) {
	sess, err := session.New(opts, sceneConfig)
	if err != nil {
		return nil, nil, err
	}

	frames, errs := sess.Render(ctx, nil)

	var last *image.RGBA
	for result := range frames {
		last = result.Image
		logger.Debugf("frame %d: average luminance %.3f", result.Frame, renderer.CalculateAverageLuminance(result.Image))
	}

	stats := sess.Progressive.Stats()
	if err := <-errs; err != nil {
		if !errors.Is(err, context.Canceled) || last == nil {
			return nil, stats, err
		}
		logger.Warningf("rendering interrupted, keeping frame %d", len(stats))
	}
	if last == nil {
		return nil, stats, renderer.ErrInterrupted
	}

	return renderer.Resample(last, opts.Width, opts.Height), stats, nil
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}
