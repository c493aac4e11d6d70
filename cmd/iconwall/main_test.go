package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"1920x1080", 1920, 1080, false},
		{" 3840X2160 ", 3840, 2160, false},
		{"800", 0, 0, true},
		{"0x10", 0, 0, true},
		{"axb", 0, 0, true},
		{"10x-4", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %dx%d, expected %dx%d", tt.in, w, h, tt.w, tt.h)
		}
	}
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	defer func() { configFile, width, height, clusters = "", 0, 0, -1 }()

	configFile, width, height, clusters = "", 640, 480, 0
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Canvas.Width != 640 || cfg.Canvas.Height != 480 {
		t.Errorf("Expected canvas 640x480, got %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Clustering.Count != 0 {
		t.Errorf("Expected cluster count 0, got %d", cfg.Clustering.Count)
	}
}

func TestRegenerateKeepsImageOnBadConfig(t *testing.T) {
	defer func() {
		configFile, outDir, dpr, seed = "", ".", 1, 0
		width, height, clusters = 0, 0, -1
	}()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wall.yaml")
	writeConfig := func(data string) {
		t.Helper()
		if err := os.WriteFile(cfgPath, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}

	writeConfig("canvas:\n  width: 64\n  height: 48\n")
	configFile, outDir, dpr, seed = cfgPath, dir, 1, 3
	width, height, clusters = 0, 0, -1

	gen, _, err := newGenerator()
	if err != nil {
		t.Fatalf("newGenerator failed: %v", err)
	}
	path, err := writePrimary(gen)
	if err != nil {
		t.Fatalf("writePrimary failed: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, bad := range []string{
		"canvas:\n  width: 64\n  height: 48\nsymbols:\n  density: 5\n",
		"canvas: [",
	} {
		writeConfig(bad)
		regenerate(gen)

		after, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(before, after) {
			t.Errorf("Expected the image to be kept for config %q", bad)
		}
		if got := gen.Config().Symbols.Density; got == 5 {
			t.Error("Expected the invalid config not to be applied")
		}
	}

	writeConfig("canvas:\n  width: 80\n  height: 48\n")
	regenerate(gen)
	if _, err := os.Stat(filepath.Join(dir, "iconwall_80x48.png")); err != nil {
		t.Errorf("Expected a new image after a valid change: %v", err)
	}
	if got := gen.Config().Canvas.Width; got != 80 {
		t.Errorf("Expected canvas width 80, got %d", got)
	}
}
