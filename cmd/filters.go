package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-progressive-core/pkg/filter"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListFilters prints the reconstruction filters accepted by the render command.
func ListFilters(ctx *cli.Context) error {
	setupLogging(ctx)

	width := ctx.Float64("width")
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Filter", "Center", "Edge"})

	for _, name := range filter.Names() {
		f, err := filter.New(name, width, width)
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%.4f", f.Evaluate(0, 0)),
			fmt.Sprintf("%.4f", f.Evaluate(width, 0)),
		})
	}
	table.Render()

	logger.Noticef("available pixel filters (width %g):\n%s", width, buf.String())
	return nil
}
