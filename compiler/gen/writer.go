package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Writer lands rendered files on disk. Files are written concurrently,
// bounded by the configured worker count; each enum yields exactly one file.
type Writer struct {
	cfg *Config

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks what a generation run produced.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a new Writer. A nil config gets the defaults.
func NewWriter(cfg *Config) *Writer {
	return &Writer{cfg: cfg.normalize()}
}

// Metrics returns the metrics accumulated so far.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// WriteAll renders and writes the file of every enum.
func (w *Writer) WriteAll(ctx context.Context, enums ...*Enum) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.cfg.Workers)
	for _, e := range enums {
		e := e
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return w.writeFile(e)
		})
	}
	return eg.Wait()
}

// writeFile renders the file for e into its target directory. Rendering goes
// through a buffer first, so a render failure cannot leave a truncated file
// behind.
func (w *Writer) writeFile(e *Enum) error {
	var buf bytes.Buffer
	if err := (&Generator{cfg: w.cfg}).File(e).Render(&buf); err != nil {
		return NewGenerationError(e.Name, e.FileName(), "render", err)
	}
	dir := e.TargetDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewGenerationError(e.Name, dir, "create output directory", err)
	}
	name := filepath.Join(dir, e.FileName())
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return NewGenerationError(e.Name, name, "write output file", err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(buf.Len())
	w.mu.Unlock()
	w.cfg.Logger.Debug("generated file",
		zap.String("enum", e.Name),
		zap.String("path", name),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}
