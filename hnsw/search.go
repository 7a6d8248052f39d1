package hnsw

import (
	"github.com/Sant0-9/VectorVault/internal/queue"
	"github.com/Sant0-9/VectorVault/internal/visited"
)

// searchLayer is the beam search of spec §4.5.2. It returns up to ef
// candidates at layer, sorted ascending by distance to query. The caller
// must hold at least a read lock on idx.
func (idx *Index) searchLayer(query []float32, entryID int32, ef int, layer int) []queue.Item {
	seen := visited.New(ef * 4)

	candidates := queue.NewMin(ef) // frontier to explore, nearest first
	results := queue.NewMax(ef)    // best-ef so far, worst on top

	entryDist := idx.dist(query, entryID)
	seen.Visit(entryID)
	candidates.Push(queue.Item{Node: entryID, Distance: entryDist})
	results.Push(queue.Item{Node: entryID, Distance: entryDist})

	for candidates.Len() > 0 {
		curr, _ := candidates.Pop()

		if results.Len() >= ef {
			worst, _ := results.Top()
			if curr.Distance > worst.Distance {
				break
			}
		}

		n, ok := idx.nodeByID(curr.Node)
		if !ok || layer >= len(n.Neighbors) {
			continue
		}

		for _, nbID := range n.Neighbors[layer] {
			if seen.Visited(nbID) {
				continue
			}
			seen.Visit(nbID)

			nbDist := idx.dist(query, nbID)

			worstOK := results.Len() < ef
			if !worstOK {
				worst, _ := results.Top()
				worstOK = nbDist < worst.Distance
			}
			if worstOK {
				candidates.Push(queue.Item{Node: nbID, Distance: nbDist})
				results.Push(queue.Item{Node: nbID, Distance: nbDist})
				if results.Len() > ef {
					results.Pop()
				}
			}
		}
	}

	return results.Sorted()
}

// Result is a single (id, distance) pair returned by Search.
type Result struct {
	ID       int32
	Distance float32
}

// Search performs the query algorithm of spec §4.6: greedy single-neighbor
// descent to layer 1, then an ef-beam search at layer 0, truncated to k.
func (idx *Index) Search(query []float32, k int, efSearch int) []Result {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.nodes) == 0 {
		return nil
	}

	ef := efSearch
	if ef < k {
		ef = k
	}

	ep := idx.entry
	for level := int(idx.maxLevel); level > 0; level-- {
		ep = idx.greedyStep(query, ep, level)
	}

	results := idx.searchLayer(query, ep, ef, 0)
	if len(results) > k {
		results = results[:k]
	}

	out := make([]Result, len(results))
	for i, it := range results {
		out[i] = Result{ID: it.Node, Distance: it.Distance}
	}
	return out
}

// greedyStep performs one layer's single-candidate walk: starting at ep,
// repeatedly move to the closest neighbor at layer until no neighbor
// improves on the current distance (spec §4.5 step "Descent" and §4.6 step
// 3). It is search_layer with ef=1 specialized to avoid queue overhead on
// the hottest path.
func (idx *Index) greedyStep(query []float32, ep int32, layer int) int32 {
	curr := ep
	currDist := idx.dist(query, curr)

	for {
		n, ok := idx.nodeByID(curr)
		if !ok || layer >= len(n.Neighbors) {
			return curr
		}
		moved := false
		for _, nbID := range n.Neighbors[layer] {
			d := idx.dist(query, nbID)
			if d < currDist {
				curr = nbID
				currDist = d
				moved = true
			}
		}
		if !moved {
			return curr
		}
	}
}
