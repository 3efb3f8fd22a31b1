// Package compiler ties the front-end and the generator together: one call
// loads the annotated declarations of a package and writes their version
// metadata files.
package compiler

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/multiver-io/multiver/compiler/gen"
	"github.com/multiver-io/multiver/compiler/load"
)

// Config describes one generation run.
type Config struct {
	// Path is the package to scan, as a directory or an import path. Empty
	// means the package in the current directory.
	Path string

	// Types are the enum type names to generate for. Empty generates for
	// every type in the package carrying at least one multi_version
	// directive.
	Types []string

	// BuildFlags are passed through to the package loader.
	BuildFlags []string

	// CachePath, when non-empty, persists parsed declarations between runs.
	CachePath string

	// Cache is an already-open parse cache. It takes precedence over
	// CachePath, and saving it stays with the caller.
	Cache *load.Cache

	// Options configure the generator.
	Options []gen.Option

	// Logger reports progress. Nop when nil.
	Logger *zap.Logger
}

// Result reports what one run produced.
type Result struct {
	// Types are the generated enum names, in load order.
	Types []string
	// Files are the written file paths, aligned with Types.
	Files []string
	// Metrics aggregates the writer counters of the run.
	Metrics gen.WriterMetrics
}

// Generate loads the annotated enums of the configured package and writes
// one version metadata file per enum. A load or annotation failure aborts
// the whole run before anything is written. Errors carry source positions;
// render them with gen.Diagnose.
func Generate(ctx context.Context, c *Config) (*Result, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := c.Options
	if c.Logger != nil {
		opts = append([]gen.Option{gen.WithLogger(c.Logger)}, opts...)
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	cache := c.Cache
	if cache == nil && c.CachePath != "" {
		if cache, err = load.OpenCache(c.CachePath); err != nil {
			return nil, err
		}
	}
	defs, err := (&load.Config{
		Path:       c.Path,
		Names:      c.Types,
		BuildFlags: c.BuildFlags,
		Cache:      cache,
		Logger:     logger,
	}).Load(ctx)
	if err != nil {
		return nil, err
	}
	enums := make([]*gen.Enum, 0, len(defs))
	for _, def := range defs {
		e, err := gen.NewEnum(cfg, def)
		if err != nil {
			return nil, err
		}
		enums = append(enums, e)
	}
	w := gen.NewWriter(cfg)
	if err := w.WriteAll(ctx, enums...); err != nil {
		return nil, err
	}
	if c.Cache == nil && cache != nil {
		if err := cache.Save(); err != nil {
			return nil, err
		}
	}
	res := &Result{Metrics: w.Metrics()}
	for _, e := range enums {
		res.Types = append(res.Types, e.Name)
		res.Files = append(res.Files, filepath.Join(e.TargetDir(), e.FileName()))
	}
	logger.Debug("generation finished",
		zap.Int("types", len(res.Types)),
		zap.Int64("bytes", res.Metrics.TotalBytes),
	)
	return res, nil
}
