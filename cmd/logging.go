package cmd

import (
	"github.com/df07/go-progressive-core/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("progressive-core")

// verbosity maps the global -v and -vv flags to a level. -vv wins when both
// are given.
func verbosity(ctx *cli.Context) log.Level {
	switch {
	case ctx.GlobalBool("vv"):
		return log.Debug
	case ctx.GlobalBool("v"):
		return log.Info
	default:
		return log.Notice
	}
}

func setupLogging(ctx *cli.Context) {
	log.SetLevel(verbosity(ctx))
}
