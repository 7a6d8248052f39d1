package hnsw

import (
	"fmt"

	"github.com/Sant0-9/VectorVault/codec"
	"github.com/Sant0-9/VectorVault/distance"
	"github.com/Sant0-9/VectorVault/snapshot"
)

// magic identifies a VectorVault snapshot: ASCII "VVLT" read most significant
// byte first; written little-endian, a snapshot file starts with the bytes
// "TLVV" (spec §4.2).
const magic uint32 = 0x56564C54

// formatVersion is the current snapshot layout version.
const formatVersion uint32 = 1

// FormatError and CrcMismatchError are returned as plain errors from this
// package; the root vectorvault package wraps them into its typed error
// kinds (§7 of the spec) at the API boundary.
type FormatError struct{ Reason string }

func (e *FormatError) Error() string { return fmt.Sprintf("hnsw: format error: %s", e.Reason) }

type CrcMismatchError struct{ Got, Want uint32 }

func (e *CrcMismatchError) Error() string {
	return fmt.Sprintf("hnsw: crc mismatch: got 0x%08x, want 0x%08x", e.Got, e.Want)
}

// encode serializes the full index into the layout of spec §4.2. Callers
// must hold at least a read lock.
func (idx *Index) encode() []byte {
	w := codec.NewWriter(1 << 16)

	w.WriteU32(magic)
	w.WriteU32(formatVersion)
	w.WriteI32(int32(idx.dim))
	w.WriteI32(int32(idx.params.M))
	w.WriteI32(int32(idx.params.EfConstruction))
	w.WriteI32(int32(idx.params.MaxM))
	w.WriteI32(int32(idx.params.MaxM0))
	w.WriteU32(uint32(idx.params.Metric))
	w.WriteI32(idx.entry)
	w.WriteI32(idx.maxLevel)
	w.WriteU64(uint64(len(idx.nodes)))

	for _, n := range idx.nodes {
		w.WriteI32(n.ID)
		w.WriteI32(n.Level)
		w.WriteVectorF32(n.Vector)
		w.WriteU64(uint64(len(n.Neighbors)))
		for _, layer := range n.Neighbors {
			w.WriteVectorI32(layer)
		}
	}

	crc := codec.Checksum(w.Bytes())
	w.WriteU32(crc)

	return w.Bytes()
}

// stagedIndex holds a fully-validated, not-yet-installed snapshot load.
// decode never mutates idx; Load only swaps idx's live fields in after every
// validation in spec §4.8 has passed.
type stagedIndex struct {
	dim      int
	params   Params
	entry    int32
	maxLevel int32
	nodes    []*node
	idToSlot map[int32]int
}

// decode parses and validates buf against the snapshot layout and the
// consistency rules of spec §4.8, steps 1-7. It never touches the live
// index.
func decode(buf []byte, liveDim int) (*stagedIndex, error) {
	r := codec.NewReader(buf)

	gotMagic, err := r.ReadU32()
	if err != nil {
		return nil, &FormatError{"truncated header"}
	}
	if gotMagic != magic {
		return nil, &FormatError{fmt.Sprintf("bad magic 0x%08x", gotMagic)}
	}

	version, err := r.ReadU32()
	if err != nil {
		return nil, &FormatError{"truncated header"}
	}
	if version != formatVersion {
		return nil, &FormatError{fmt.Sprintf("unsupported format version %d", version)}
	}

	dim, err := r.ReadI32()
	if err != nil {
		return nil, &FormatError{"truncated header"}
	}
	if int(dim) != liveDim {
		return nil, &FormatError{fmt.Sprintf("dimension mismatch: file has %d, index has %d", dim, liveDim)}
	}

	m, err1 := r.ReadI32()
	efc, err2 := r.ReadI32()
	maxM, err3 := r.ReadI32()
	maxM0, err4 := r.ReadI32()
	metricRaw, err5 := r.ReadU32()
	entry, err6 := r.ReadI32()
	maxLevel, err7 := r.ReadI32()
	nodeCount, err8 := r.ReadU64()
	for _, e := range []error{err1, err2, err3, err4, err5, err6, err7, err8} {
		if e != nil {
			return nil, &FormatError{"truncated header"}
		}
	}

	metric := distance.Metric(metricRaw)
	if metric != distance.L2 && metric != distance.Angular {
		return nil, &FormatError{fmt.Sprintf("unknown metric code %d", metricRaw)}
	}
	if nodeCount > uint64(r.Remaining()) {
		return nil, &FormatError{fmt.Sprintf("node count %d exceeds remaining %d bytes", nodeCount, r.Remaining())}
	}

	staged := &stagedIndex{
		dim: int(dim),
		params: Params{
			M:              int(m),
			EfConstruction: int(efc),
			MaxM:           int(maxM),
			MaxM0:          int(maxM0),
			Metric:         metric,
		},
		entry:    entry,
		maxLevel: maxLevel,
		nodes:    make([]*node, 0, nodeCount),
		idToSlot: make(map[int32]int, nodeCount),
	}

	for i := uint64(0); i < nodeCount; i++ {
		id, err := r.ReadI32()
		if err != nil {
			return nil, &FormatError{"truncated node"}
		}
		level, err := r.ReadI32()
		if err != nil {
			return nil, &FormatError{"truncated node"}
		}
		if level < 0 {
			return nil, &FormatError{fmt.Sprintf("node %d has negative level %d", id, level)}
		}

		vec, err := r.ReadVectorF32()
		if err != nil {
			return nil, &FormatError{"truncated vector"}
		}
		if len(vec) != int(dim) {
			return nil, &FormatError{fmt.Sprintf("node %d vector length %d != dim %d", id, len(vec), dim)}
		}

		layerCount, err := r.ReadU64()
		if err != nil {
			return nil, &FormatError{"truncated layer count"}
		}
		if layerCount != uint64(level+1) {
			return nil, &FormatError{fmt.Sprintf("node %d layer_count %d != level+1 %d", id, layerCount, level+1)}
		}

		neighbors := make([][]int32, layerCount)
		for l := uint64(0); l < layerCount; l++ {
			ns, err := r.ReadVectorI32()
			if err != nil {
				return nil, &FormatError{"truncated neighbor list"}
			}
			neighbors[l] = ns
		}

		if _, dup := staged.idToSlot[id]; dup {
			return nil, &FormatError{fmt.Sprintf("duplicate id %d", id)}
		}
		staged.idToSlot[id] = len(staged.nodes)
		staged.nodes = append(staged.nodes, &node{ID: id, Level: level, Vector: vec, Neighbors: neighbors})
	}

	if r.Remaining() != 4 {
		return nil, &FormatError{fmt.Sprintf("expected 4 trailing bytes for crc, found %d", r.Remaining())}
	}
	storedCRC, _ := r.ReadU32()
	computedCRC := codec.Checksum(buf[:len(buf)-4])
	if computedCRC != storedCRC {
		return nil, &CrcMismatchError{Got: computedCRC, Want: storedCRC}
	}

	if len(staged.nodes) == 0 {
		if staged.entry != noEntry || staged.maxLevel != noMaxLevel {
			return nil, &FormatError{"empty index must have entry=-1 and max_level=-1"}
		}
	} else {
		if _, ok := staged.idToSlot[staged.entry]; !ok {
			return nil, &FormatError{fmt.Sprintf("entry id %d is not a known node", staged.entry)}
		}
		if staged.maxLevel < 0 {
			return nil, &FormatError{"non-empty index must have max_level >= 0"}
		}
	}

	for _, n := range staged.nodes {
		for _, layer := range n.Neighbors {
			for _, nb := range layer {
				if _, ok := staged.idToSlot[nb]; !ok {
					return nil, &FormatError{fmt.Sprintf("node %d references unknown neighbor %d", n.ID, nb)}
				}
			}
		}
	}

	return staged, nil
}

// Save serializes the index and writes it to path (spec §4.7): under a
// shared read lock, encode header and nodes into a buffer, append the CRC32
// trailer, then write the buffer to path in one shot. Concurrent queries
// may still proceed during the write; concurrent inserts block for its
// duration.
func (idx *Index) Save(path string) error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	buf := idx.encode()
	return snapshot.WriteFile(path, buf)
}

// Load atomically replaces the live index with the contents of path (spec
// §4.8). On any validation failure, the live index is left completely
// untouched.
func (idx *Index) Load(path string) error {
	data, closeFn, err := snapshot.ReadFile(path)
	if err != nil {
		return err
	}
	defer closeFn()

	idx.mu.Lock()
	defer idx.mu.Unlock()

	staged, err := decode(data, idx.dim)
	if err != nil {
		return err
	}

	distFunc, err := distance.New(staged.params.Metric)
	if err != nil {
		return err
	}

	idx.params = staged.params
	idx.entry = staged.entry
	idx.maxLevel = staged.maxLevel
	idx.nodes = staged.nodes
	idx.idToSlot = staged.idToSlot
	idx.distFunc = distFunc

	return nil
}
