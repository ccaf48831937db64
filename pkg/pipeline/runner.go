package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treeamps/treeamps/pkg/basisio"
	"github.com/treeamps/treeamps/pkg/cache"
	"github.com/treeamps/treeamps/pkg/observability"
	"github.com/treeamps/treeamps/pkg/tensor"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Generate
	genStart := time.Now()
	structures, basisHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Structures = structures
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.StructureCount = len(structures)
	result.Stats.CatalogCounts = tensor.BuildCatalog(opts.TensorConfig()).Counts()
	result.CacheInfo.BasisHit = basisHit

	// Content hash of the basis for artifact cache keys and API responses.
	if data, err := marshalBasis(opts, structures); err == nil {
		result.BasisHash = cache.Hash(data)
	}

	r.Logger.Info("generated basis",
		"legs", opts.Legs,
		"degree", opts.Degree,
		"ee", opts.EE,
		"structures", len(structures),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, structures, result.BasisHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo enumerates the basis with caching and returns
// cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) ([]tensor.TensorStructure, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.BasisKey(opts.BasisKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if structures, err := unmarshalBasis(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "basis")
				return structures, true, nil
			}
			// A corrupt entry falls through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "basis")
	}

	cfg := opts.TensorConfig()
	observability.Generator().OnGenerateStart(ctx, opts.Legs, opts.Degree, opts.EE)
	start := time.Now()
	structures := tensor.Generate(cfg, opts.Degree, opts.EE)
	observability.Generator().OnGenerateComplete(ctx, opts.Legs, opts.Degree, opts.EE, len(structures), time.Since(start))

	if data, err := marshalBasis(opts, structures); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLBasis)
		observability.Cache().OnCacheSet(ctx, "basis", len(data))
	}

	return structures, false, nil
}

// Generate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) ([]tensor.TensorStructure, error) {
	structures, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return structures, err
}

// RenderWithCacheInfo renders the requested formats with caching and
// returns cache hit info. basisHash keys the artifact cache; pass the
// hash from the generate stage.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, structures []tensor.TensorStructure, basisHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache.
	allCached := basisHash != "" && !opts.Refresh
	artifacts := make(map[string][]byte)
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(basisHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}

	observability.Generator().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderBasis(ctx, structures, opts)
	observability.Generator().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if basisHash != "" {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(basisHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// marshalBasis serializes a basis for caching and hashing.
func marshalBasis(opts Options, structures []tensor.TensorStructure) ([]byte, error) {
	var buf bytes.Buffer
	if err := basisio.WriteJSON(basisio.New(opts.TensorConfig(), opts.Degree, opts.EE, structures), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshalBasis restores cached structures.
func unmarshalBasis(data []byte) ([]tensor.TensorStructure, error) {
	b, err := basisio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return b.Decode()
}
