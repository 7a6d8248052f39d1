package vectorvault

import (
	"context"
	"time"

	"github.com/Sant0-9/VectorVault/distance"
	"github.com/Sant0-9/VectorVault/hnsw"
)

// Metric re-exports the distance package's metric codes so callers never
// need to import the distance package directly for ordinary use.
type Metric = distance.Metric

const (
	L2      = distance.L2
	Angular = distance.Angular
)

// Index is the public, logging-instrumented facade over the hnsw package's
// graph. It exists to translate internal error types into the package's
// exported kinds at the API boundary and never holds the graph lock itself.
type Index struct {
	core   *hnsw.Index
	logger *Logger
}

// New creates an empty Index for vectors of the given dimension, starting
// from sensible defaults and applying optFns in order.
func New(dim int, optFns ...Option) (*Index, error) {
	opts := applyOptions(optFns)

	core, err := hnsw.New(dim, func(o *hnsw.Options) {
		o.M = opts.m
		o.EfConstruction = opts.efConstruction
		o.MaxM = opts.maxM
		o.MaxM0 = opts.maxM0
		o.Seed = opts.seed
		o.Metric = distance.Metric(opts.metric)
	})
	if err != nil {
		return nil, translateCoreError(err)
	}

	return &Index{core: core, logger: opts.logger}, nil
}

// Reserve hints at the number of vectors the caller expects to insert.
func (idx *Index) Reserve(n int) { idx.core.Reserve(n) }

// Dimension returns the configured vector dimension.
func (idx *Index) Dimension() int { return idx.core.Dimension() }

// Size returns the number of vectors currently stored.
func (idx *Index) Size() int { return idx.core.Size() }

// Add inserts vec under id (spec §4.5, §6 "add").
func (idx *Index) Add(ctx context.Context, id int32, vec []float32) error {
	err := idx.core.Add(id, vec)
	err = translateCoreError(err)
	idx.logger.LogAdd(ctx, id, len(vec), err)
	return err
}

// Result is a single (id, distance) pair returned by Search.
type Result struct {
	ID       int32
	Distance float32
}

// Search runs the query algorithm of spec §4.6 and returns up to k results
// ordered by ascending distance.
func (idx *Index) Search(ctx context.Context, query []float32, k int, ef int) ([]Result, error) {
	if k <= 0 {
		return nil, &ErrInvalidParameter{Name: "k", Value: k}
	}
	if ef <= 0 {
		return nil, &ErrInvalidParameter{Name: "ef", Value: ef}
	}
	if len(query) != idx.core.Dimension() {
		err := &ErrDimensionMismatch{Expected: idx.core.Dimension(), Actual: len(query)}
		idx.logger.LogSearch(ctx, k, ef, 0, 0, err)
		return nil, err
	}

	start := time.Now()
	raw := idx.core.Search(query, k, ef)
	latency := time.Since(start).Microseconds()

	out := make([]Result, len(raw))
	for i, r := range raw {
		out[i] = Result{ID: r.ID, Distance: r.Distance}
	}
	idx.logger.LogSearch(ctx, k, ef, len(out), latency, nil)
	return out, nil
}

// Save writes a snapshot of the index to path (spec §4.7, §6 "save").
func (idx *Index) Save(ctx context.Context, path string) error {
	err := translateCoreError(idx.core.Save(path))
	idx.logger.LogSave(ctx, path, err)
	return err
}

// Load replaces the index's contents with the snapshot at path (spec §4.8,
// §6 "load"). On any failure the index is left exactly as it was.
func (idx *Index) Load(ctx context.Context, path string) error {
	err := translateCoreError(idx.core.Load(path))
	idx.logger.LogLoad(ctx, path, err)
	return err
}

// Stats reports the current size and shape of the index (spec §6, "stats").
func (idx *Index) Stats() hnsw.Stats {
	return idx.core.Stats()
}
