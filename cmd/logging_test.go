package cmd

import (
	"flag"
	"testing"

	"github.com/df07/go-progressive-core/pkg/log"
	"github.com/urfave/cli"
)

func TestVerbosity(t *testing.T) {
	tests := []struct {
		name     string
		v, vv    bool
		expected log.Level
	}{
		{"quiet", false, false, log.Notice},
		{"verbose", true, false, log.Info},
		{"very verbose", false, true, log.Debug},
		{"both flags", true, true, log.Debug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			global := flag.NewFlagSet("app", flag.ContinueOnError)
			global.Bool("v", tt.v, "")
			global.Bool("vv", tt.vv, "")
			parent := cli.NewContext(nil, global, nil)
			ctx := cli.NewContext(nil, flag.NewFlagSet("render", flag.ContinueOnError), parent)

			if got := verbosity(ctx); got != tt.expected {
				t.Errorf("Expected level %d, got %d", tt.expected, got)
			}
		})
	}
}
