package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gaugekit/pkg/cache"
	"github.com/matzehuels/gaugekit/pkg/config"
	"github.com/matzehuels/gaugekit/pkg/fonts"
	"github.com/matzehuels/gaugekit/pkg/gauge"
	"github.com/matzehuels/gaugekit/pkg/gfx/scene"
	"github.com/matzehuels/gaugekit/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Execute validates the options, serves what it can from the cache, and
// builds and renders the remaining formats.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	hash, err := HashConfig(opts.Config)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
		ConfigHash: hash,
	}

	for _, format := range opts.Formats {
		if !opts.Refresh {
			if data, ok := r.lookup(ctx, r.key(hash, format, opts), format); ok {
				result.Artifacts[format] = data
				result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
				continue
			}
		}
		result.CacheInfo.Misses = append(result.CacheInfo.Misses, format)
	}
	if len(result.CacheInfo.Misses) == 0 {
		logger.Debug("served from cache", "gauge", opts.Config.Name, "formats", opts.Formats)
		return result, nil
	}

	sc, g, err := r.build(ctx, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.Scales = len(g.Elements())
	result.Stats.Nodes = sc.Count()
	logger.Info("built gauge",
		"gauge", g.Name(),
		"scales", result.Stats.Scales,
		"nodes", result.Stats.Nodes)

	missing := result.CacheInfo.Misses
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	for _, format := range missing {
		data, err := Encode(sc, g, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		r.store(ctx, r.key(hash, format, opts), format, data)
	}
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, missing, result.Stats.RenderTime, nil)

	logger.Info("rendered outputs",
		"formats", missing,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Build creates a scene for cfg and a refreshed gauge drawing into it. cfg
// should be validated.
func Build(cfg *config.Gauge) (*scene.Scene, *gauge.Gauge, error) {
	sc := scene.New(cfg.Width, cfg.Height, scene.WithDefaultFont(fonts.Default()))
	g, err := cfg.Build(sc)
	if err != nil {
		return nil, nil, err
	}
	if _, err := g.Refresh(); err != nil {
		return nil, nil, err
	}
	return sc, g, nil
}

func (r *Runner) build(ctx context.Context, cfg *config.Gauge) (*scene.Scene, *gauge.Gauge, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, cfg.Name, len(cfg.Scales))
	start := time.Now()
	sc, g, err := Build(cfg)
	hooks.OnBuildComplete(ctx, cfg.Name, time.Since(start), err)
	return sc, g, err
}

// HashConfig returns the content hash of a description.
func HashConfig(cfg *config.Gauge) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("serialize config for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

func (r *Runner) key(hash, format string, opts Options) string {
	if format == FormatJSON {
		return r.Keyer.TicksKey(hash)
	}
	return r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
}

// lookup reads a cache entry; read errors count as misses.
func (r *Runner) lookup(ctx context.Context, key, format string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "format", format, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, format string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
