// Command orbitplot samples the shared orbit over one loop and plots every
// roster path, projected onto the XY plane, to a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"orbit/motion"
	"orbit/scene"
)

const (
	defaultOutPath = "orbit.png"
	defaultSamples = 720
)

func main() {
	cfg := scene.DefaultConfig()
	var outPath string
	var samples, objects int
	flag.StringVar(&outPath, "out", defaultOutPath, "Output PNG path.")
	flag.IntVar(&samples, "samples", defaultSamples, "Samples per loop.")
	flag.IntVar(&cfg.LayerCount, "layers", cfg.LayerCount, "Number of layers in the roster.")
	flag.Float64Var(&cfg.MaxRadius, "radius", cfg.MaxRadius, "Maximum orbit radius.")
	flag.IntVar(&objects, "objects", 0, "Plot only the first N roster entries (0 = all).")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}

	if err := run(outPath, scene.DefaultCatalog(), cfg, samples, objects); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(outPath string, cat scene.Catalog, cfg scene.Config, samples, objects int) error {
	if err := cat.Validate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if samples < 2 {
		return errors.New("samples must be at least 2")
	}

	total := cfg.LayerCount * cat.Len()
	if objects <= 0 || objects > total {
		objects = total
	}
	paths := samplePaths(cfg.Params(), total, objects, samples)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("orbit paths: %d objects, %d layers, radius %g", objects, cfg.LayerCount, cfg.MaxRadius)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	starts := make(plotter.XYs, 0, objects)
	for i, pts := range paths {
		shape := i % cat.Len()
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
		line.Color = toColor(cat, shape)
		line.Width = vg.Points(1)
		p.Add(line)
		if i < cat.Len() {
			p.Legend.Add(cat.Shapes[shape].Kind.String(), line)
		}
		starts = append(starts, pts[0])
	}

	sc, err := plotter.NewScatter(starts)
	if err != nil {
		return fmt.Errorf("start points: %w", err)
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Radius = vg.Points(2.5)
	sc.GlyphStyle.Color = color.Black
	p.Add(sc)
	p.Legend.Add("t=0", sc)

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(8*vg.Inch, 8*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save %q: %w", outPath, err)
	}
	fmt.Printf("wrote %s (%d paths, %d samples)\n", outPath, len(paths), samples)
	return nil
}

// samplePaths returns the XY projection of the first n of total roster
// entries over one loop. Each path has samples+1 points so it closes on
// itself.
func samplePaths(p motion.Params, total, n, samples int) []plotter.XYs {
	paths := make([]plotter.XYs, n)
	for i := range paths {
		phase := motion.PhaseOffset(i, total)
		pts := make(plotter.XYs, samples+1)
		for s := range pts {
			t := float64(s) / float64(samples) * motion.FullRotation
			pos := motion.Position(t, phase, p)
			pts[s] = plotter.XY{X: pos.X, Y: pos.Y}
		}
		paths[i] = pts
	}
	return paths
}

func toColor(cat scene.Catalog, shape int) color.Color {
	c := cat.Colors[shape]
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
