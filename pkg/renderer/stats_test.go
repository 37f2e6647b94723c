package renderer

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-progressive-core/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0

	// Expected average: (0.2126 + 0.7152 + 0.0722 + 0.0) / 4 = 1.0 / 4 = 0.25

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})

	avgLum := CalculateAverageLuminance(img)
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestFrameBufferStats(t *testing.T) {
	fb, err := NewFrameBuffer(2, 2)
	if err != nil {
		t.Fatalf("NewFrameBuffer failed: %v", err)
	}
	counts := []int{1, 3, 2, 2}
	for i, n := range counts {
		p := fb.At(i%2, i/2)
		for range n {
			p.AddSubSample()
			p.Accumulate(core.NewVec3(1, 1, 1))
		}
	}

	stats := fb.Stats()
	if stats.TotalPixels != 4 {
		t.Errorf("Expected 4 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 8 {
		t.Errorf("Expected 8 samples, got %d", stats.TotalSamples)
	}
	if stats.AverageSamples != 2 {
		t.Errorf("Expected average 2, got %f", stats.AverageSamples)
	}
	if stats.MinSamples != 1 || stats.MaxSamplesUsed != 3 {
		t.Errorf("Expected min 1 max 3, got min %d max %d", stats.MinSamples, stats.MaxSamplesUsed)
	}
}

func TestStatsTable(t *testing.T) {
	out := StatsTable([]RenderStats{
		{Frame: 1, AverageSamples: 1, MinSamples: 1, MaxSamplesUsed: 1, Duration: 20 * time.Millisecond, SamplesPerSecond: 5000},
		{Frame: 2, AverageSamples: 2, MinSamples: 2, MaxSamplesUsed: 2, Duration: 30 * time.Millisecond, SamplesPerSecond: 4000},
	})

	for _, want := range []string{"Samples/pixel", "Render time", "20ms", "30ms", "TOTAL", "50ms", "5000"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestStatsTableTotalUnderRenderTime(t *testing.T) {
	out := StatsTable([]RenderStats{
		{Frame: 1, Duration: 20 * time.Millisecond, SamplesPerSecond: 5000},
		{Frame: 2, Duration: 30 * time.Millisecond, SamplesPerSecond: 4000},
	})

	var header, footer string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Render time") {
			header = line
		}
		if strings.Contains(line, "TOTAL") {
			footer = line
		}
	}
	if header == "" || footer == "" {
		t.Fatalf("Expected header and footer rows, got:\n%s", out)
	}

	title := strings.Index(header, "Render time")
	start := strings.LastIndex(header[:title], "|")
	end := title + strings.Index(header[title:], "|")
	if at := strings.Index(footer, "50ms"); at < start || at > end {
		t.Errorf("Expected total duration under Render time (columns %d-%d), got column %d:\n%s", start, end, at, out)
	}
	if at := strings.Index(footer, "TOTAL"); at > start {
		t.Errorf("Expected TOTAL left of the Render time column, got column %d:\n%s", at, out)
	}
}
