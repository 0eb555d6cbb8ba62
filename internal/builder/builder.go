// Package builder produces the icon patch dataset from upstream data-mining
// sources: a patch list, and per category a source table plus an entity id to
// patch id mapping.
package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/a1hena/IconBrowser/internal/config"
	"github.com/a1hena/IconBrowser/pkg/patchdata"
)

// ErrOutputLocked is returned when another build holds the output lock.
var ErrOutputLocked = errors.New("output is locked by another build")

// Builder assembles a dataset from configured sources.
type Builder struct {
	cfg     config.BuilderConfig
	fetcher Fetcher
	log     *zap.Logger
	now     func() time.Time
}

// New creates a builder. A nil logger discards output.
func New(cfg config.BuilderConfig, fetcher Fetcher, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		cfg:     cfg,
		fetcher: fetcher,
		log:     log,
		now:     time.Now,
	}
}

// NewFetcher returns the fetcher the config asks for.
func NewFetcher(cfg config.BuilderConfig) Fetcher {
	if cfg.SourceDir != "" {
		return DirFetcher{Root: cfg.SourceDir}
	}
	return NewHTTPFetcher(cfg.Timeout)
}

// Build fetches every source and compresses each category. A category whose
// sources cannot be fetched or decoded is logged and left out; only a
// missing patch list or a cancelled context fails the build.
func (b *Builder) Build(ctx context.Context) (*patchdata.Dataset, error) {
	b.log.Info("fetching patch list", zap.String("url", b.cfg.PatchListURL))
	data, err := b.fetcher.Fetch(ctx, b.cfg.PatchListURL)
	if err != nil {
		return nil, fmt.Errorf("fetching patch list %s: %w", b.cfg.PatchListURL, err)
	}
	patches, err := ParsePatchList(data)
	if err != nil {
		return nil, err
	}
	if len(patches) == 0 {
		return nil, fmt.Errorf("patch list %s is empty", b.cfg.PatchListURL)
	}

	fallback := b.fallbackPatch(patches)

	results := make([][]patchdata.Interval, len(b.cfg.Categories))
	g, gctx := errgroup.WithContext(ctx)
	if b.cfg.Concurrency > 0 {
		g.SetLimit(b.cfg.Concurrency)
	}
	for i, cat := range b.cfg.Categories {
		i, cat := i, cat
		g.Go(func() error {
			intervals, err := b.buildCategory(gctx, cat, fallback)
			if err != nil {
				b.log.Warn("skipping category", zap.String("category", cat.Name), zap.Error(err))
				return nil
			}
			results[i] = intervals
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build cancelled: %w", err)
	}

	ds := &patchdata.Dataset{
		Generated: b.now().UTC(),
		Patches:   patches,
	}
	for i, cat := range b.cfg.Categories {
		if len(results[i]) == 0 {
			b.log.Debug("omitting empty category", zap.String("category", cat.Name))
			continue
		}
		if ds.Categories.Has(cat.Name) {
			b.log.Warn("category configured twice, keeping the first", zap.String("category", cat.Name))
			continue
		}
		ds.Categories.Set(cat.Name, results[i])
	}

	b.checkPatchRefs(ds)
	return ds, nil
}

// fallbackPatch returns the configured fallback patch id, deriving the highest
// known id when none is configured.
func (b *Builder) fallbackPatch(patches []patchdata.Patch) int {
	if b.cfg.FallbackPatchID > 0 {
		for _, p := range patches {
			if p.ID == b.cfg.FallbackPatchID {
				return p.ID
			}
		}
		b.log.Warn("fallback patch not in patch list", zap.Int("fallback", b.cfg.FallbackPatchID))
		return b.cfg.FallbackPatchID
	}

	latest := patches[len(patches)-1]
	b.log.Warn("no fallback patch configured, using latest known patch",
		zap.Int("fallback", latest.ID), zap.String("version", latest.Version))
	return latest.ID
}

func (b *Builder) buildCategory(ctx context.Context, cat config.CategoryConfig, fallback int) ([]patchdata.Interval, error) {
	mapURL := expandURL(b.cfg.PatchMapURL, cat.Name)
	mapData, err := b.fetcher.Fetch(ctx, mapURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", mapURL, err)
	}
	entityPatch, err := ParseEntityPatches(mapData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mapURL, err)
	}

	tableURL := expandURL(b.cfg.TableURL, cat.Name)
	tableData, err := b.fetcher.Fetch(ctx, tableURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", tableURL, err)
	}
	rows, err := ReadTable(bytes.NewReader(tableData))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tableURL, err)
	}

	icons, stats := ResolveIcons(rows, cat.IconColumn, entityPatch, fallback)
	intervals := patchdata.Compress(icons)

	b.log.Info("category built",
		zap.String("category", cat.Name),
		zap.Int("rows", stats.Rows),
		zap.Int("skipped", stats.Skipped),
		zap.Int("fallback", stats.Fallback),
		zap.Int("icons", len(icons)),
		zap.Int("intervals", len(intervals)),
	)
	return intervals, nil
}

// checkPatchRefs warns about intervals attributed to patches missing from the
// patch list. Such intervals are kept; lookups of their version report not found.
func (b *Builder) checkPatchRefs(ds *patchdata.Dataset) {
	known := make(map[int]bool, len(ds.Patches))
	for _, p := range ds.Patches {
		known[p.ID] = true
	}
	for _, name := range ds.Categories.Names() {
		unknown, icons := 0, 0
		for _, iv := range ds.Categories.Get(name) {
			if !known[iv.PatchID] {
				unknown++
				icons += iv.Len()
			}
		}
		if unknown > 0 {
			b.log.Warn("intervals reference unknown patches",
				zap.String("category", name), zap.Int("intervals", unknown), zap.Int("icons", icons))
		}
	}
}

// Emit writes the dataset to the configured output, plus the pretty copy when
// configured, while holding an exclusive lock next to the output.
func (b *Builder) Emit(ds *patchdata.Dataset) error {
	out := b.cfg.Output
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	lock := flock.New(out + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring output lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrOutputLocked, lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	if err := patchdata.Write(out, ds, patchdata.WriteOptions{PrettyPath: b.cfg.PrettyOutput}); err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("path", out),
		zap.Int("patches", len(ds.Patches)),
		zap.Int("categories", ds.Categories.Len()),
	}
	if st, err := os.Stat(out); err == nil {
		fields = append(fields, zap.String("size", humanize.Bytes(uint64(st.Size()))))
	}
	b.log.Info("dataset written", fields...)
	if b.cfg.PrettyOutput != "" {
		b.log.Info("pretty copy written", zap.String("path", b.cfg.PrettyOutput))
	}
	return nil
}
