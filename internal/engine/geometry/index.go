package geometry

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Index answers nearest-position queries over every playable placement of
// a layout. It is built once per board configuration and is read-only.
type Index struct {
	placements []Placement
	points     []Point
	tree       *kdtree.Tree
}

func newIndex(l *Layout, placements []Placement) *Index {
	idx := &Index{
		placements: placements,
		points:     make([]Point, len(placements)),
	}
	nodes := make(indexPoints, len(placements))
	for i, pl := range placements {
		pt := Point{X: l.CenterX(pl.Fret), Y: l.StringToY(pl.String)}
		idx.points[i] = pt
		nodes[i] = indexPoint{pt: pt, idx: i}
	}
	if len(nodes) > 0 {
		idx.tree = kdtree.New(nodes, false)
	}
	return idx
}

// Len returns the number of indexed placements.
func (x *Index) Len() int {
	return len(x.placements)
}

// Placements returns the indexed placements with their layout points.
func (x *Index) Placements() ([]Placement, []Point) {
	return x.placements, x.points
}

// Nearest returns the placement whose indexed point is closest to p.
func (x *Index) Nearest(p Point) (Placement, bool) {
	if x == nil || x.tree == nil {
		return Placement{}, false
	}
	got, _ := x.tree.Nearest(indexPoint{pt: p, idx: -1})
	if got == nil {
		return Placement{}, false
	}
	return x.placements[got.(indexPoint).idx], true
}

// indexPoint is a kdtree.Comparable carrying the placement it stands for.
type indexPoint struct {
	pt  Point
	idx int
}

func (p indexPoint) coord(d kdtree.Dim) float64 {
	if d == 0 {
		return p.pt.X
	}
	return p.pt.Y
}

func (p indexPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coord(d) - c.(indexPoint).coord(d)
}

func (p indexPoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance.
func (p indexPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(indexPoint)
	dx := p.pt.X - q.pt.X
	dy := p.pt.Y - q.pt.Y
	return dx*dx + dy*dy
}

type indexPoints []indexPoint

func (p indexPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p indexPoints) Len() int                      { return len(p) }
func (p indexPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p indexPoints) Pivot(d kdtree.Dim) int {
	return indexPlane{Dim: d, points: p}.Pivot()
}

// indexPlane sorts points along one dimension for median partitioning.
type indexPlane struct {
	kdtree.Dim
	points indexPoints
}

func (p indexPlane) Less(i, j int) bool {
	return p.points[i].coord(p.Dim) < p.points[j].coord(p.Dim)
}
func (p indexPlane) Len() int      { return len(p.points) }
func (p indexPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p indexPlane) Pivot() int    { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p indexPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
