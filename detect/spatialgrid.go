// Package detect is the ambient broad/narrow-phase contact detector: it
// turns a list of bodies into the []*resolve.Contact the resolution core
// consumes. None of it is part of the core; a caller may always build
// Contacts by hand and skip this package entirely.
package detect

import (
	"math"
	"sort"

	"github.com/akmonengine/impulse2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

// CellKey identifies one cell of the uniform spatial grid.
type CellKey struct {
	X, Y int
}

// Cell holds the indices (into the body slice a query was run against) of
// every body whose AABB overlaps it.
type Cell struct {
	bodyIndices []int
}

// Pair is a candidate pair of bodies whose AABBs overlap: a broad-phase
// result still awaiting narrow-phase confirmation.
type Pair struct {
	BodyA *body.Body
	BodyB *body.Body
}

// SpatialGrid is a uniform grid with power-of-two hashing, used to cut
// broad-phase pair finding from O(n^2) down to roughly O(n) for bodies
// that are not all clustered in one cell.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid of square cells of the given size, backed
// by a hash table of at least numCells buckets (rounded up to a power of
// two).
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds bodyIndex to every cell b's AABB overlaps.
func (sg *SpatialGrid) Insert(bodyIndex int, b *body.Body) {
	aabb := b.Shape.GetAABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			idx := sg.hashCell(CellKey{x, y})
			sg.cells[idx].bodyIndices = append(sg.cells[idx].bodyIndices, bodyIndex)
		}
	}
}

// Clear empties every cell without releasing its backing array.
func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

// SortCells orders each cell's body indices ascending, so FindPairs visits
// candidates in a deterministic order regardless of insertion order.
func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// Rebuild clears the grid and reinserts every body, in index order, ready
// for a FindPairs call.
func (sg *SpatialGrid) Rebuild(bodies []*body.Body) {
	sg.Clear()
	for i, b := range bodies {
		sg.Insert(i, b)
	}
	sg.SortCells()
}

// FindPairs returns every candidate pair (bodyIdx < otherIdx, so no pair
// appears twice) whose AABBs overlap, skipping static-static pairs and
// pairs where both bodies are asleep.
func (sg *SpatialGrid) FindPairs(bodies []*body.Body) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)

	seen := make(map[int]bool)
	for bodyIdx, bodyA := range bodies {
		minCell := sg.worldToCell(bodyA.Shape.GetAABB().Min)
		maxCell := sg.worldToCell(bodyA.Shape.GetAABB().Max)
		clear(seen)

		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				idx := sg.hashCell(CellKey{x, y})

				for _, otherIdx := range sg.cells[idx].bodyIndices {
					// bodyA's AABB spans more than one cell whenever it's
					// larger than cellSize, so the same otherIdx can turn up
					// in several of the cells visited above; dedupe so each
					// pair is only considered once per bodyA.
					if otherIdx <= bodyIdx || seen[otherIdx] {
						continue
					}
					seen[otherIdx] = true

					bodyB := bodies[otherIdx]
					if bodyA.Kind == body.Static && bodyB.Kind == body.Static {
						continue
					}
					if bodyA.IsSleeping && bodyB.IsSleeping {
						continue
					}
					if bodyA.Shape.GetAABB().Overlaps(bodyB.Shape.GetAABB()) {
						pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
					}
				}
			}
		}
	}

	return pairs
}

func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
