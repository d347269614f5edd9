package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"orbit/motion"
	"orbit/scene"
)

func TestSamplePaths(t *testing.T) {
	p := motion.Params{LayerCount: 5, MaxRadius: 10}
	paths := samplePaths(p, 25, 7, 100)
	if len(paths) != 7 {
		t.Fatalf("paths=%d want 7", len(paths))
	}
	for i, pts := range paths {
		if len(pts) != 101 {
			t.Fatalf("path %d has %d points", i, len(pts))
		}
		start := motion.Position(0, motion.PhaseOffset(i, 25), p)
		if pts[0].X != start.X || pts[0].Y != start.Y {
			t.Fatalf("path %d starts at %v want %v", i, pts[0], start)
		}
		last := pts[len(pts)-1]
		if math.Abs(last.X-pts[0].X) > 1e-9 || math.Abs(last.Y-pts[0].Y) > 1e-9 {
			t.Fatalf("path %d does not close: %v vs %v", i, last, pts[0])
		}
		for _, pt := range pts {
			if math.Hypot(pt.X, pt.Y) > p.MaxRadius+1e-9 {
				t.Fatalf("path %d leaves the radius: %v", i, pt)
			}
		}
	}
}

func TestRunWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "paths.png")
	if err := run(out, scene.DefaultCatalog(), scene.DefaultConfig(), 64, 10); err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) < 8 || string(b[1:4]) != "PNG" {
		t.Fatalf("output is not a PNG (%d bytes)", len(b))
	}
}

func TestRunRejectsMismatch(t *testing.T) {
	cat := scene.DefaultCatalog()
	cat.Shapes = cat.Shapes[:3]
	err := run(filepath.Join(t.TempDir(), "x.png"), cat, scene.DefaultConfig(), 64, 0)
	if err == nil {
		t.Fatal("mismatched catalog accepted")
	}
}
