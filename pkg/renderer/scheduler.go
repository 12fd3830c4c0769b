package renderer

import (
	"image"
	"sync"
	"sync/atomic"
)

// Tile is a rectangular block of buffer pixels. Bounds use buffer
// coordinates, so Min.Y = 0 is the bottom row.
type Tile struct {
	ID     int
	Col    int
	Row    int
	Bounds image.Rectangle
}

// Scheduler hands out tiles to workers in snake order: the bottom tile row
// left to right, the next row right to left, and so on. Each tile is handed
// out exactly once.
type Scheduler struct {
	cols, rows int
	tiles      []Tile // indexed by row*cols+col
	order      []int  // tile indices in hand-out order

	mu        sync.Mutex
	claimed   [][]bool // [row][col]
	cursor    int
	active    map[int]Tile
	completed int

	workersDone atomic.Int32
}

// NewScheduler splits a width×height image into tileSize square tiles.
// Tiles on the right and top edges are clipped to the image.
func NewScheduler(width, height, tileSize int) *Scheduler {
	cols := (width + tileSize - 1) / tileSize
	rows := (height + tileSize - 1) / tileSize

	s := &Scheduler{
		cols:    cols,
		rows:    rows,
		tiles:   make([]Tile, 0, cols*rows),
		claimed: make([][]bool, rows),
		active:  make(map[int]Tile),
	}

	for row := 0; row < rows; row++ {
		s.claimed[row] = make([]bool, cols)
		for col := 0; col < cols; col++ {
			bounds := image.Rect(
				col*tileSize,
				row*tileSize,
				min((col+1)*tileSize, width),
				min((row+1)*tileSize, height),
			)
			s.tiles = append(s.tiles, Tile{ID: row*cols + col, Col: col, Row: row, Bounds: bounds})
		}
	}

	s.order = snakeOrder(cols, rows)
	return s
}

// snakeOrder lists tile indices row by row from the bottom, alternating
// direction on every row
func snakeOrder(cols, rows int) []int {
	order := make([]int, 0, cols*rows)
	for row := 0; row < rows; row++ {
		if row%2 == 0 {
			for col := 0; col < cols; col++ {
				order = append(order, row*cols+col)
			}
		} else {
			for col := cols - 1; col >= 0; col-- {
				order = append(order, row*cols+col)
			}
		}
	}
	return order
}

// Next claims the next unclaimed tile. It returns false once every tile has
// been handed out.
func (s *Scheduler) Next() (Tile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.cursor < len(s.order) {
		tile := s.tiles[s.order[s.cursor]]
		s.cursor++
		if s.claimed[tile.Row][tile.Col] {
			continue
		}
		s.claimed[tile.Row][tile.Col] = true
		s.active[tile.ID] = tile
		return tile, true
	}
	return Tile{}, false
}

// Complete marks a claimed tile as finished
func (s *Scheduler) Complete(tile Tile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[tile.ID]; ok {
		delete(s.active, tile.ID)
		s.completed++
	}
}

// WorkerDone records that one worker found no more tiles and exited
func (s *Scheduler) WorkerDone() {
	s.workersDone.Add(1)
}

// WorkersDone returns how many workers have exited
func (s *Scheduler) WorkersDone() int {
	return int(s.workersDone.Load())
}

// TileCount returns the total number of tiles
func (s *Scheduler) TileCount() int {
	return len(s.tiles)
}

// Completed returns the number of finished tiles
func (s *Scheduler) Completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Progress returns the fraction of tiles completed in [0, 1]
func (s *Scheduler) Progress() float64 {
	if len(s.tiles) == 0 {
		return 1
	}
	return float64(s.Completed()) / float64(len(s.tiles))
}

// ActiveTiles returns the tiles that are claimed but not yet completed,
// in hand-out order
func (s *Scheduler) ActiveTiles() []Tile {
	s.mu.Lock()
	defer s.mu.Unlock()

	tiles := make([]Tile, 0, len(s.active))
	for _, index := range s.order[:s.cursor] {
		if tile, ok := s.active[index]; ok {
			tiles = append(tiles, tile)
		}
	}
	return tiles
}
