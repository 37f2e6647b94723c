package cmd

import (
	"github.com/df07/go-progressive-core/web/server"
	"github.com/urfave/cli"
)

// Serve starts the preview server. Render flags set the defaults that each
// request can override.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneConfig := sceneConfigFromContext(ctx)
	if err := sceneConfig.Validate(); err != nil {
		return err
	}

	srv := server.NewServer(ctx.Int("port"), optionsFromContext(ctx), sceneConfig)
	logger.Noticef("visit http://localhost:%d/api/render to start rendering", ctx.Int("port"))
	return srv.Start()
}
