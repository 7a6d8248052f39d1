// Package benchmark drives synthetic load against an Index: random vector
// insertion and querying, latency percentiles, and an optional recall@k
// figure computed against a brute-force ground truth. It supplements the
// Go-test benchmarks a library would normally ship with a standalone driver
// a CLI can invoke directly.
package benchmark

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/time/rate"

	vectorvault "github.com/Sant0-9/VectorVault"
)

// Config controls one benchmark run.
type Config struct {
	Dim        int
	NumVectors int
	NumQueries int
	K          int
	Ef         int
	Seed       int64

	// QueriesPerSecond paces query issuance; <= 0 means unlimited.
	QueriesPerSecond float64

	// ComputeRecall runs a brute-force scan per query to report recall@k.
	// This is O(NumQueries * NumVectors * Dim) and should be skipped for
	// large runs.
	ComputeRecall bool
}

// Result summarizes one run.
type Result struct {
	NumVectors  int
	NumQueries  int
	InsertTotal time.Duration
	QueryTotal  time.Duration
	LatencyP50  time.Duration
	LatencyP90  time.Duration
	LatencyP99  time.Duration
	RecallAtK   float64 // -1 if not computed
}

// randomVectors generates n uniformly distributed vectors of the given
// dimension from rng.
func randomVectors(rng *rand.Rand, n, dim int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		v := make([]float32, dim)
		for j := range v {
			v[j] = rng.Float32()*2 - 1
		}
		out[i] = v
	}
	return out
}

// Run builds a fresh index, inserts Config.NumVectors random vectors, then
// issues Config.NumQueries random queries against it, reporting latency
// percentiles and, if requested, recall@k against a brute-force baseline.
func Run(ctx context.Context, cfg Config) (Result, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	idx, err := vectorvault.New(cfg.Dim, vectorvault.WithM(16))
	if err != nil {
		return Result{}, fmt.Errorf("benchmark: new index: %w", err)
	}
	idx.Reserve(cfg.NumVectors)

	corpus := randomVectors(rng, cfg.NumVectors, cfg.Dim)

	insertStart := time.Now()
	for i, v := range corpus {
		if err := idx.Add(ctx, int32(i), v); err != nil {
			return Result{}, fmt.Errorf("benchmark: add %d: %w", i, err)
		}
	}
	insertTotal := time.Since(insertStart)

	queries := randomVectors(rng, cfg.NumQueries, cfg.Dim)

	var limiter *rate.Limiter
	if cfg.QueriesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.QueriesPerSecond), 1)
	}

	latencies := make([]time.Duration, 0, cfg.NumQueries)
	var hits, total int

	queryStart := time.Now()
	for _, q := range queries {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return Result{}, fmt.Errorf("benchmark: rate limiter: %w", err)
			}
		}

		start := time.Now()
		got, err := idx.Search(ctx, q, cfg.K, cfg.Ef)
		latencies = append(latencies, time.Since(start))
		if err != nil {
			return Result{}, fmt.Errorf("benchmark: search: %w", err)
		}

		if cfg.ComputeRecall {
			want := bruteForceTopK(corpus, q, cfg.K)
			hits += overlap(got, want)
			total += cfg.K
		}
	}
	queryTotal := time.Since(queryStart)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	recall := -1.0
	if cfg.ComputeRecall && total > 0 {
		recall = float64(hits) / float64(total)
	}

	return Result{
		NumVectors:  cfg.NumVectors,
		NumQueries:  cfg.NumQueries,
		InsertTotal: insertTotal,
		QueryTotal:  queryTotal,
		LatencyP50:  percentile(latencies, 0.50),
		LatencyP90:  percentile(latencies, 0.90),
		LatencyP99:  percentile(latencies, 0.99),
		RecallAtK:   recall,
	}, nil
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// bruteForceTopK scans the full corpus for the ids whose squared L2
// distance to q is smallest, as a ground truth for recall@k.
func bruteForceTopK(corpus [][]float32, q []float32, k int) map[int32]struct{} {
	type scored struct {
		id   int32
		dist float32
	}
	all := make([]scored, len(corpus))
	for i, v := range corpus {
		var d float32
		for j := range v {
			diff := v[j] - q[j]
			d += diff * diff
		}
		all[i] = scored{id: int32(i), dist: d}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })

	if k > len(all) {
		k = len(all)
	}
	out := make(map[int32]struct{}, k)
	for i := 0; i < k; i++ {
		out[all[i].id] = struct{}{}
	}
	return out
}

func overlap(got []vectorvault.Result, want map[int32]struct{}) int {
	n := 0
	for _, r := range got {
		if _, ok := want[r.ID]; ok {
			n++
		}
	}
	return n
}
