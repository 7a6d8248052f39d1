package workerpool

import (
	"context"
	"sync"

	vectorvault "github.com/Sant0-9/VectorVault"
)

// BatchQuery is one query within a BatchSearch call.
type BatchQuery struct {
	Vector []float32
	K      int
	Ef     int
}

// BatchResult pairs a BatchQuery's results with any error it produced.
type BatchResult struct {
	Results []vectorvault.Result
	Err     error
}

// BatchSearch fans a set of independent queries out across the pool and
// collects their results. Since Search only takes the index's shared lock,
// queries run fully in parallel up to the pool's inflight bound.
func BatchSearch(ctx context.Context, pool *Pool, index *vectorvault.Index, queries []BatchQuery) ([]BatchResult, error) {
	results := make([]BatchResult, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		i, q := i, q
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			res, err := index.Search(ctx, q.Vector, q.K, q.Ef)
			results[i] = BatchResult{Results: res, Err: err}
		})
		if err != nil {
			wg.Done()
			results[i] = BatchResult{Err: err}
		}
	}
	wg.Wait()

	return results, nil
}
