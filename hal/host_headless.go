package hal

import (
	"context"
	"fmt"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64

	// Width and Height size the framebuffer. Zero means the host default.
	Width  int
	Height int

	// FixedStep advances host time by exactly one frame interval per tick
	// instead of following the wall clock, which makes frames reproducible.
	FixedStep bool

	// SnapshotDir, when set, receives a PNG of the framebuffer every
	// SnapshotEvery presented frames (default 1).
	SnapshotDir   string
	SnapshotEvery uint64
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	return runHeadless(ctx, newHost(cfg.Width, cfg.Height, os.Stdout), newApp, cfg)
}

func runHeadless(ctx context.Context, h *hostHAL, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.SnapshotEvery == 0 {
		cfg.SnapshotEvery = 1
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	step, err := newApp(h)
	if err != nil {
		return err
	}

	var snaps *snapshotWriter
	if cfg.SnapshotDir != "" {
		snaps, err = newSnapshotWriter(cfg.SnapshotDir)
		if err != nil {
			return err
		}
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick, lastSnap uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cfg.FixedStep {
				h.t.advance(d)
			} else {
				h.t.step()
			}
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			if snaps != nil {
				if n := h.fb.presented(); n != lastSnap && n%cfg.SnapshotEvery == 0 {
					if err := snaps.write(h.fb, n); err != nil {
						return err
					}
					lastSnap = n
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
