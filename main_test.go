package main

import (
	"strings"
	"testing"
)

func TestNewApp_Commands(t *testing.T) {
	app := newApp()

	tests := []struct {
		name  string
		flags []string
	}{
		{"render", []string{"width", "height", "frames", "camera", "fov", "prng", "filter", "rr-depth", "skip-rr", "out"}},
		{"serve", []string{"width", "camera", "port"}},
		{"filters", []string{"width"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command := app.Command(tt.name)
			if command == nil {
				t.Fatalf("Expected command %q", tt.name)
			}
			if command.Action == nil {
				t.Errorf("Expected command %q to have an action", tt.name)
			}
			for _, want := range tt.flags {
				found := false
				for _, f := range command.Flags {
					for _, name := range strings.Split(f.GetName(), ",") {
						if strings.TrimSpace(name) == want {
							found = true
						}
					}
				}
				if !found {
					t.Errorf("Expected flag %q on command %q", want, tt.name)
				}
			}
		})
	}
}

func TestApp_RejectsInvalidRender(t *testing.T) {
	app := newApp()
	err := app.Run([]string{"progressive-core", "render", "--width", "0", "--out", t.TempDir() + "/frame.png"})
	if err == nil {
		t.Error("Expected error for zero width")
	}
}
