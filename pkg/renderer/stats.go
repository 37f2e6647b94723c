package renderer

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats summarizes the frame buffer after a frame
type RenderStats struct {
	Frame            int           // Frame number, starting at 1
	TotalPixels      int           // Total number of pixels in the frame
	TotalSamples     int           // Sub-samples accumulated over all pixels
	AverageSamples   float64       // Average sub-samples per pixel
	MinSamples       int           // Fewest sub-samples of any pixel
	MaxSamplesUsed   int           // Most sub-samples of any pixel
	Duration         time.Duration // Wall time spent on the frame
	SamplesPerSecond float64       // Renderer throughput since the last clear
}

// Stats computes sample statistics over every pixel
func (fb *FrameBuffer) Stats() RenderStats {
	stats := RenderStats{
		TotalPixels: len(fb.pixels),
		MinSamples:  -1,
	}

	for i := range fb.pixels {
		n := fb.pixels[i].SubSamples
		stats.TotalSamples += n
		if stats.MinSamples < 0 || n < stats.MinSamples {
			stats.MinSamples = n
		}
		stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, n)
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	stats.MinSamples = max(stats.MinSamples, 0)
	return stats
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img with
// channels scaled to [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}

// StatsTable renders per-frame statistics as a text table
func StatsTable(frames []RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Samples/pixel", "Min", "Max", "Render time", "Samples/sec"})

	var total time.Duration
	for _, stat := range frames {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Frame),
			fmt.Sprintf("%.2f", stat.AverageSamples),
			fmt.Sprintf("%d", stat.MinSamples),
			fmt.Sprintf("%d", stat.MaxSamplesUsed),
			stat.Duration.String(),
			fmt.Sprintf("%.0f", stat.SamplesPerSecond),
		})
		total += stat.Duration
	}
	table.SetFooter([]string{"", "", "", "TOTAL", total.String(), ""})

	table.Render()
	return buf.String()
}
