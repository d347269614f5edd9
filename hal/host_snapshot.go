package hal

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

type snapshotWriter struct {
	dir string
	enc png.Encoder
}

func newSnapshotWriter(dir string) (*snapshotWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot dir: %w", err)
	}
	return &snapshotWriter{dir: dir, enc: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

func (w *snapshotWriter) path(frame uint64) string {
	return filepath.Join(w.dir, fmt.Sprintf("frame-%06d.png", frame))
}

func (w *snapshotWriter) write(fb *hostFramebuffer, frame uint64) error {
	f, err := os.Create(w.path(frame))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := w.enc.Encode(f, fb.image()); err != nil {
		f.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	return f.Close()
}
