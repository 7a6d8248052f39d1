package hnsw

// node is the logical record for one inserted vector (spec §3).
//
// Neighbors[l] holds the ordered neighbor ids at layer l, for l in
// [0, Level]. Neighbor lists are stored by client id, not slot index: the
// wire format and the in-memory representation both reference nodes by id
// and resolve through idToSlot, so a snapshot stays valid across any
// reshuffling of slot order (spec §4.4).
type node struct {
	ID        int32
	Level     int32
	Vector    []float32
	Neighbors [][]int32
}

func newNode(id int32, level int32, vec []float32) *node {
	n := &node{
		ID:        id,
		Level:     level,
		Vector:    vec,
		Neighbors: make([][]int32, level+1),
	}
	for l := range n.Neighbors {
		n.Neighbors[l] = nil
	}
	return n
}
