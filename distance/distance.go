// Package distance provides the vector distance kernels used by the HNSW
// graph: squared Euclidean (L2) and angular (1 - cosine similarity).
//
// Each metric binds a Func at construction time. The Func dispatches to an
// 8-lane unrolled kernel (mirroring a 256-bit f32 SIMD lane width) when the
// CPU advertises AVX2, and falls back to a plain scalar loop otherwise. The
// two paths must agree within the tolerances exercised in the test suite.
package distance

import (
	"fmt"
	"math"

	"golang.org/x/sys/cpu"
)

// Metric selects the distance function bound to an index at construction.
type Metric uint32

const (
	// L2 is squared Euclidean distance. The square root is intentionally
	// omitted: it is monotonic and does not change the ordering of results.
	L2 Metric = 0
	// Angular is 1 - cosine similarity, clamped into [0, 2] for non-zero
	// vectors.
	Angular Metric = 1
)

func (m Metric) String() string {
	switch m {
	case L2:
		return "L2"
	case Angular:
		return "ANGULAR"
	default:
		return fmt.Sprintf("Metric(%d)", uint32(m))
	}
}

// Func computes the distance between two equal-length vectors. Callers are
// responsible for ensuring a and b have matching lengths.
type Func func(a, b []float32) float32

// hasAVX2 is evaluated once; both kernels are pure Go so the dispatch only
// changes which unrolled loop runs, not the arithmetic's correctness.
var hasAVX2 = cpu.X86.HasAVX2

// New returns the Func bound to metric m.
func New(m Metric) (Func, error) {
	switch m {
	case L2:
		return SquaredL2, nil
	case Angular:
		return AngularDistance, nil
	default:
		return nil, fmt.Errorf("distance: unsupported metric %v", m)
	}
}

// SquaredL2 returns sum((a[i]-b[i])^2).
func SquaredL2(a, b []float32) float32 {
	if hasAVX2 {
		return squaredL2SIMD(a, b)
	}
	return squaredL2Scalar(a, b)
}

func squaredL2Scalar(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// squaredL2SIMD processes 8 lanes per iteration (the width of a 256-bit f32
// register) with a scalar tail for the remainder, the way a hand-vectorized
// fused-multiply-add loop would.
func squaredL2SIMD(a, b []float32) float32 {
	n := len(a)
	var acc [8]float32
	i := 0
	for ; i+8 <= n; i += 8 {
		for lane := 0; lane < 8; lane++ {
			d := a[i+lane] - b[i+lane]
			acc[lane] += d * d
		}
	}
	var sum float32
	for _, v := range acc {
		sum += v
	}
	for ; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// dot returns the dot product of a and b, dispatching the same way as
// SquaredL2.
func dot(a, b []float32) float32 {
	if hasAVX2 {
		return dotSIMD(a, b)
	}
	return dotScalar(a, b)
}

func dotScalar(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func dotSIMD(a, b []float32) float32 {
	n := len(a)
	var acc [8]float32
	i := 0
	for ; i+8 <= n; i += 8 {
		for lane := 0; lane < 8; lane++ {
			acc[lane] += a[i+lane] * b[i+lane]
		}
	}
	var sum float32
	for _, v := range acc {
		sum += v
	}
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// norm2 returns the squared L2 norm of v.
func norm2(v []float32) float32 {
	return dot(v, v)
}

// AngularDistance returns 1 - cosine(a, b). If either vector's norm is below
// 1e-10, it returns 1.0 (the midpoint of the valid [0, 2] range), since
// direction is undefined for a near-zero vector.
func AngularDistance(a, b []float32) float32 {
	na2 := norm2(a)
	nb2 := norm2(b)
	const minNorm = 1e-10
	if na2 < minNorm*minNorm || nb2 < minNorm*minNorm {
		return 1.0
	}
	na := float32(math.Sqrt(float64(na2)))
	nb := float32(math.Sqrt(float64(nb2)))
	if na < minNorm || nb < minNorm {
		return 1.0
	}
	cos := dot(a, b) / (na * nb)
	d := 1 - cos
	if d < 0 {
		d = 0
	}
	if d > 2 {
		d = 2
	}
	return d
}
