package hnsw

import (
	"sort"

	"github.com/Sant0-9/VectorVault/internal/queue"
)

// Add inserts a new vector under id (spec §4.5). It returns
// *DimensionMismatchError and *DuplicateIDError for the two precondition
// failures; the root package translates both at the API boundary.
func (idx *Index) Add(id int32, vec []float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(vec) != idx.dim {
		return &DimensionMismatchError{Expected: idx.dim, Actual: len(vec)}
	}
	if _, dup := idx.idToSlot[id]; dup {
		return &DuplicateIDError{ID: id}
	}

	level := idx.sampleLevel()
	n := newNode(id, int32(level), vec)

	// Bootstrap: the first node in an empty index becomes the entry point at
	// its own level, with no linking to do.
	if len(idx.nodes) == 0 {
		idx.installNode(n)
		idx.entry = id
		idx.maxLevel = int32(level)
		return nil
	}

	ep := idx.entry

	// Descent: walk down from the current top layer to one above the new
	// node's level using the single-candidate greedy walk (spec §4.5 step
	// "Descent").
	for l := int(idx.maxLevel); l > level; l-- {
		ep = idx.greedyStep(vec, ep, l)
	}

	// Linking: from min(level, maxLevel) down to 0, beam-search for
	// candidates and keep the top-M by distance at each layer.
	top := level
	if int(idx.maxLevel) < top {
		top = int(idx.maxLevel)
	}

	ef := idx.params.EfConstruction
	if idx.params.M > ef {
		ef = idx.params.M
	}

	for l := top; l >= 0; l-- {
		candidates := idx.searchLayer(vec, ep, ef, l)
		if len(candidates) == 0 {
			continue
		}
		ep = candidates[0].Node

		maxDegree := idx.maxMForLevel(l)
		n.Neighbors[l] = selectNeighbors(candidates, maxDegree)
	}

	idx.installNode(n)

	// Back-edges: every neighbor the new node selected also gets the new
	// node appended to its own list at that layer, pruned back to the cap by
	// the same top-M heuristic if it overflows (spec §4.5 step "Back-edges").
	for l := top; l >= 0; l-- {
		maxDegree := idx.maxMForLevel(l)
		for _, nbID := range n.Neighbors[l] {
			nb, ok := idx.nodeByID(nbID)
			if !ok || l >= len(nb.Neighbors) {
				continue
			}
			nb.Neighbors[l] = append(nb.Neighbors[l], id)
			if len(nb.Neighbors[l]) > maxDegree {
				nb.Neighbors[l] = idx.pruneNeighbors(nb, l, maxDegree)
			}
		}
	}

	if level > int(idx.maxLevel) {
		idx.maxLevel = int32(level)
		idx.entry = id
	}

	return nil
}

// installNode appends n to the backing store and registers its id->slot
// mapping. Callers must hold the exclusive lock.
func (idx *Index) installNode(n *node) {
	idx.idToSlot[n.ID] = len(idx.nodes)
	idx.nodes = append(idx.nodes, n)
}

// selectNeighbors implements spec §4.5.1: despite the name, this is plain
// top-cap by distance, not a diversity-aware heuristic. candidates must
// already be sorted ascending by distance (searchLayer guarantees this).
func selectNeighbors(candidates []queue.Item, maxDegree int) []int32 {
	n := len(candidates)
	if n > maxDegree {
		n = maxDegree
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[i].Node
	}
	return out
}

// pruneNeighbors rebuilds nb's neighbor list at layer when it has grown past
// cap after a back-edge insertion. Distances are recomputed from nb's own
// vector to each current member, not from the vector that triggered the
// insertion (spec §9's open question on the pruning loop's distance base).
func (idx *Index) pruneNeighbors(nb *node, layer int, maxDegree int) []int32 {
	members := nb.Neighbors[layer]
	scored := make([]queue.Item, len(members))
	for i, mID := range members {
		scored[i] = queue.Item{Node: mID, Distance: idx.dist(nb.Vector, mID)}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Distance < scored[j].Distance })

	n := len(scored)
	if n > maxDegree {
		n = maxDegree
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = scored[i].Node
	}
	return out
}
