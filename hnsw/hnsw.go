// Package hnsw implements the Hierarchical Navigable Small World graph: the
// core ANN engine described in spec §4. Everything outside this package
// (the HTTP facade, CLI, benchmark driver) is plumbing around it.
package hnsw

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Sant0-9/VectorVault/distance"
)

const (
	// noEntry is the wire-format sentinel for "index is empty" (spec §4.2).
	// A client id of exactly -1 is indistinguishable from "no entry point";
	// the spec's own snapshot layout defines the sentinel this way, so we
	// carry the quirk rather than invent a side channel.
	noEntry    = -1
	noMaxLevel = -1

	// mmax0Multiplier is the conventional doubling of the neighbor cap at
	// layer 0 versus the layers above it when MaxM0 isn't configured
	// explicitly.
	mmax0Multiplier = 2

	minimumM = 1
)

// Params holds an Index's construction parameters (spec §3, "params").
// It is the stored/reported form; New is configured through Options instead.
type Params struct {
	M              int
	EfConstruction int
	MaxM           int
	MaxM0          int
	Seed           int64
	Metric         distance.Metric
}

// Options configures a new Index. New starts from DefaultOptions and applies
// the caller's functions; fields left at zero are then resolved in New:
// MaxM becomes M, MaxM0 becomes 2*M, EfConstruction becomes M, and Seed is
// derived from the current time. M must be at least 1.
type Options struct {
	M              int
	EfConstruction int
	MaxM           int
	MaxM0          int
	Seed           int64
	Metric         distance.Metric
}

// DefaultOptions are the conventional defaults; MaxM/MaxM0 derive from M in
// New the way the teacher's hnsw.New does (max_M0 = 2*M).
var DefaultOptions = Options{
	M:              16,
	EfConstruction: 200,
	Metric:         distance.L2,
}

// InvalidParamError, DimensionMismatchError, and DuplicateIDError are this
// package's own error kinds, exported so the root vectorvault package can
// recognize them with errors.As and re-raise its public error types (§7 of
// the spec) without this package importing the root package.
type InvalidParamError struct {
	Name  string
	Value int
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("hnsw: invalid parameter %s=%d", e.Name, e.Value)
}

type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("hnsw: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

type DuplicateIDError struct {
	ID int32
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("hnsw: duplicate id %d", e.ID)
}

// Index is the HNSW graph: node storage, id->slot mapping, entry pointer,
// and the single reader-writer lock that guards all of it (spec §5).
type Index struct {
	mu sync.RWMutex

	dim    int
	params Params

	nodes    []*node
	idToSlot map[int32]int
	entry    int32
	maxLevel int32

	distFunc distance.Func

	rng   *rand.Rand
	rngMu sync.Mutex

	layerMultiplier float64
}

// New creates an empty Index for vectors of dimension dim, starting from
// DefaultOptions and applying optFns in order (mirrors the teacher's
// hnsw.New(dimension, optFns ...func(*Options))).
func New(dim int, optFns ...func(*Options)) (*Index, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	if dim <= 0 {
		return nil, &InvalidParamError{"dim", dim}
	}
	if opts.M < minimumM {
		return nil, &InvalidParamError{"M", opts.M}
	}
	if opts.MaxM <= 0 {
		opts.MaxM = opts.M
	}
	if opts.MaxM0 <= 0 {
		opts.MaxM0 = mmax0Multiplier * opts.M
	}
	if opts.EfConstruction <= 0 {
		opts.EfConstruction = opts.M
	}

	distFunc, err := distance.New(opts.Metric)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	params := Params{
		M:              opts.M,
		EfConstruction: opts.EfConstruction,
		MaxM:           opts.MaxM,
		MaxM0:          opts.MaxM0,
		Seed:           opts.Seed,
		Metric:         opts.Metric,
	}

	return &Index{
		dim:             dim,
		params:          params,
		idToSlot:        make(map[int32]int),
		entry:           noEntry,
		maxLevel:        noMaxLevel,
		distFunc:        distFunc,
		rng:             rand.New(rand.NewSource(seed)),
		layerMultiplier: 1.0 / math.Log(2), // spec §4.5 step 1: mL = 1/ln(2), not the usual 1/ln(M).
	}, nil
}

// Reserve is a best-effort capacity hint against the backing node slice and
// id map (spec §6). It never fails and never shrinks existing capacity.
func (idx *Index) Reserve(n int) {
	if n <= 0 {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if cap(idx.nodes) < n {
		grown := make([]*node, len(idx.nodes), n)
		copy(grown, idx.nodes)
		idx.nodes = grown

		grownMap := make(map[int32]int, n)
		for id, slot := range idx.idToSlot {
			grownMap[id] = slot
		}
		idx.idToSlot = grownMap
	}
}

// Dimension returns the configured vector dimension.
func (idx *Index) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dim
}

// Size returns the number of nodes currently stored (live count; spec never
// deletes, so this is monotonically non-decreasing absent a Load).
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.nodes)
}

// MaxLevel returns the current highest populated level, or -1 when empty.
func (idx *Index) MaxLevel() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return int(idx.maxLevel)
}

// Params returns a copy of the index's construction parameters.
func (idx *Index) Params() Params {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.params
}

// sampleLevel draws L = floor(-ln(r) * mL) for r uniform in (0,1] (spec
// §4.5 step 1). The shared rng is guarded by its own mutex, separate from
// the graph lock, since the caller already holds the exclusive graph lock
// during Add and we want the RNG critical section to be as small as
// possible.
func (idx *Index) sampleLevel() int {
	idx.rngMu.Lock()
	r := idx.rng.Float64()
	idx.rngMu.Unlock()
	if r <= 0 {
		r = math.SmallestNonzeroFloat64
	}
	return int(math.Floor(-math.Log(r) * idx.layerMultiplier))
}

func (idx *Index) maxMForLevel(level int) int {
	if level == 0 {
		return idx.params.MaxM0
	}
	return idx.params.MaxM
}

// dist computes the configured metric's distance between a query vector and
// a node's stored vector. Callers must hold at least a read lock.
func (idx *Index) dist(q []float32, nodeID int32) float32 {
	slot, ok := idx.idToSlot[nodeID]
	if !ok {
		return float32(math.MaxFloat32)
	}
	return idx.distFunc(q, idx.nodes[slot].Vector)
}

func (idx *Index) nodeByID(id int32) (*node, bool) {
	slot, ok := idx.idToSlot[id]
	if !ok {
		return nil, false
	}
	return idx.nodes[slot], true
}
