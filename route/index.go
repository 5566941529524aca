package route

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/kdtree"
)

var ErrIndexBuild = errors.New("could not build route index")

// Index is a read-only 2D k-d tree over the (x, y) positions of exactly one
// Route. It is safe for concurrent queries.
type Index struct {
	tree *kdtree.Tree
	n    int
}

// NewIndex builds the spatial index for r. Construction only fails when the
// tree can not be allocated; callers treat that as fatal.
func NewIndex(r Route) (idx *Index, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			idx = nil
			err = errors.Wrapf(ErrIndexBuild, "%d points: %v", len(r), rec)
		}
	}()

	idx = &Index{n: len(r)}
	if len(r) == 0 {
		return idx, nil
	}
	points := make(indexedPoints, len(r))
	for i, p := range r {
		points[i] = indexedPoint{x: p.X, y: p.Y, i: i}
	}
	idx.tree = kdtree.New(points, false)
	return idx, nil
}

func (idx *Index) Len() int {
	return idx.n
}

// Nearest returns the index of the route point closest to (x, y) and its
// euclidean distance. An empty index returns None and +Inf.
func (idx *Index) Nearest(x, y float64) (int, float64) {
	if idx == nil || idx.tree == nil {
		return None, math.Inf(1)
	}
	c, d := idx.tree.Nearest(indexedPoint{x: x, y: y, i: None})
	p, ok := c.(indexedPoint)
	if !ok {
		return None, math.Inf(1)
	}
	return p.i, math.Sqrt(d)
}

// indexedPoint is a kdtree.Comparable that remembers its route index, the
// tree reorders its backing slice while building.
type indexedPoint struct {
	x, y float64
	i    int
}

func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	switch d {
	case 0:
		return p.x - q.x
	case 1:
		return p.y - q.y
	default:
		panic("illegal dimension")
	}
}

func (p indexedPoint) Dims() int {
	return 2
}

// Distance is the squared euclidean distance, as kdtree expects.
func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(indexedPoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p indexedPoints) Len() int                      { return len(p) }
func (p indexedPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return plane{points: p, dim: d}.Pivot()
}

type plane struct {
	points indexedPoints
	dim    kdtree.Dim
}

func (p plane) Len() int { return len(p.points) }
func (p plane) Less(i, j int) bool {
	return p.points[i].Compare(p.points[j], p.dim) < 0
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{points: p.points[start:end], dim: p.dim}
}
func (p plane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}
