package colshape

import "math"

// DefaultCellSize covers a 1000x1000 area per grid cell.
const DefaultCellSize = 1000.0

type cellKey struct {
	cx int
	cy int
}

// Grid is a uniform cell index over the XY plane. Each cell holds the
// handles of the bounded shapes whose bounding box overlaps it. Not
// goroutine-safe; the Manager serializes access.
type Grid struct {
	cellSize float64
	cells    map[cellKey]map[Handle]struct{} // cellKey → set of shape handles
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey]map[Handle]struct{}),
	}
}

// CellSize returns the side of one cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

func (g *Grid) toCellCoord(v float64) int {
	return int(math.Floor(v / g.cellSize))
}

// CellOf returns the cell coordinates containing the world point (x, y).
func (g *Grid) CellOf(x, y float64) (cx, cy int) {
	return g.toCellCoord(x), g.toCellCoord(y)
}

// CellRange returns the inclusive range of cells spanned by the shape's
// bounding box.
func (g *Grid) CellRange(s *Shape) (minCX, maxCX, minCY, maxCY int) {
	return g.toCellCoord(s.MinX), g.toCellCoord(s.MaxX), g.toCellCoord(s.MinY), g.toCellCoord(s.MaxY)
}

// Insert adds the shape to every cell its bounding box covers and records
// those cells on the shape for Remove.
func (g *Grid) Insert(s *Shape) {
	minCX, maxCX, minCY, maxCY := g.CellRange(s)

	s.cells = s.cells[:0]
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			k := cellKey{cx: cx, cy: cy}
			cell := g.cells[k]
			if cell == nil {
				cell = make(map[Handle]struct{})
				g.cells[k] = cell
			}
			cell[s.handle] = struct{}{}
			s.cells = append(s.cells, k)
		}
	}
}

// Remove takes the shape out of every cell recorded by Insert.
func (g *Grid) Remove(s *Shape) {
	for _, k := range s.cells {
		cell := g.cells[k]
		if cell == nil {
			continue
		}
		delete(cell, s.handle)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
	s.cells = nil
}

// QueryCell returns the handles registered in cell (cx, cy). The returned
// set belongs to the grid and must not be modified.
func (g *Grid) QueryCell(cx, cy int) map[Handle]struct{} {
	return g.cells[cellKey{cx: cx, cy: cy}]
}

// Query returns the handles registered in the single cell containing
// (x, y). Neighbouring cells are never consulted; Insert already placed
// every shape in all cells it overlaps.
func (g *Grid) Query(x, y float64) map[Handle]struct{} {
	cx, cy := g.CellOf(x, y)
	return g.QueryCell(cx, cy)
}

// CellCount returns the number of non-empty cells.
func (g *Grid) CellCount() int {
	return len(g.cells)
}
