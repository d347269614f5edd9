package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"orbit/app"
	"orbit/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var win hal.WindowConfig
	var hud, wireframe, light bool
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Frame rate (headless ticker and window TPS).")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.BoolVar(&cfg.FixedStep, "fixed-step", false, "Advance time by exactly one frame per tick in headless mode.")
	flag.StringVar(&cfg.SnapshotDir, "snapshot-dir", "", "Write PNG frames to this directory in headless mode.")
	flag.Uint64Var(&cfg.SnapshotEvery, "snapshot-every", 1, "Write every Nth frame when -snapshot-dir is set.")
	flag.IntVar(&cfg.Width, "width", hal.DefaultWidth, "Framebuffer width in pixels.")
	flag.IntVar(&cfg.Height, "height", hal.DefaultHeight, "Framebuffer height in pixels.")
	flag.IntVar(&win.Scale, "scale", 1, "Initial window scale factor.")
	flag.BoolVar(&hud, "hud", true, "Draw the build id, loop phase and frame counter.")
	flag.BoolVar(&wireframe, "wireframe", false, "Draw mesh triangle edges instead of filled faces.")
	flag.BoolVar(&light, "light", false, "Shade faces with ambient and directional light.")
	flag.Parse()

	newApp := func(h hal.HAL) (func() error, error) {
		c := app.DefaultConfig()
		c.HUD = hud
		c.Wireframe = wireframe
		c.Scene.Lighting = light
		return app.NewWithConfig(h, c)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	win.Width, win.Height, win.TPS = cfg.Width, cfg.Height, cfg.Hz
	if err := hal.RunWindow(newApp, win); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
