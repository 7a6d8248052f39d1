package hnsw

// Stats is a snapshot of the index's shape, returned by the core API's
// stats operation (spec §6).
type Stats struct {
	Dim              int
	Size             int
	MaxLevel         int
	Params           Params
	NodeCountByLevel []int
}

// Stats reports the current size and parameters of the index. NodeCountByLevel
// is a supplemented diagnostic: NodeCountByLevel[l] counts nodes present at
// layer l or above.
func (idx *Index) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var byLevel []int
	if idx.maxLevel >= 0 {
		byLevel = make([]int, idx.maxLevel+1)
		for _, n := range idx.nodes {
			for l := int32(0); l <= n.Level; l++ {
				byLevel[l]++
			}
		}
	}

	return Stats{
		Dim:              idx.dim,
		Size:             len(idx.nodes),
		MaxLevel:         int(idx.maxLevel),
		Params:           idx.params,
		NodeCountByLevel: byLevel,
	}
}
