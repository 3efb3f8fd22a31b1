package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWriteAll(t *testing.T) {
	target := t.TempDir()
	cfg := MustNewConfig(WithTarget(target))

	kind, err := NewEnum(cfg, kindEnum())
	require.NoError(t, err)
	status, err := NewEnum(cfg, enumDef("Status", "int", variant("StatusActive")))
	require.NoError(t, err)

	w := NewWriter(cfg)
	require.NoError(t, w.WriteAll(context.Background(), kind, status))

	m := w.Metrics()
	assert.Equal(t, 2, m.FilesWritten)
	assert.Positive(t, m.TotalBytes)

	var total int64
	for _, name := range []string{"kind_multiver.go", "status_multiver.go"} {
		info, err := os.Stat(filepath.Join(target, name))
		require.NoError(t, err)
		total += info.Size()
	}
	assert.Equal(t, total, m.TotalBytes)
}

func TestWriterCreatesTargetDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "wire")
	cfg := MustNewConfig(WithTarget(target))

	e, err := NewEnum(cfg, kindEnum())
	require.NoError(t, err)
	require.NoError(t, NewWriter(cfg).WriteAll(context.Background(), e))

	assert.FileExists(t, filepath.Join(target, "kind_multiver.go"))
}

func TestWriterCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target := t.TempDir()
	cfg := MustNewConfig(WithTarget(target))
	e, err := NewEnum(cfg, kindEnum())
	require.NoError(t, err)

	w := NewWriter(cfg)
	require.ErrorIs(t, w.WriteAll(ctx, e), context.Canceled)
	assert.NoFileExists(t, filepath.Join(target, "kind_multiver.go"))
	assert.Zero(t, w.Metrics().FilesWritten)
}

func TestWriterTargetNotADirectory(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(blocked, []byte("in the way"), 0o644))

	cfg := MustNewConfig(WithTarget(blocked))
	e, err := NewEnum(cfg, kindEnum())
	require.NoError(t, err)

	err = NewWriter(cfg).WriteAll(context.Background(), e)
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "create output directory")
}
