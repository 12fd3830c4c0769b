package renderer

import (
	"image"
	"reflect"
	"sync"
	"testing"
)

func TestSnakeOrder(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		expected   []int
	}{
		{"Single tile", 1, 1, []int{0}},
		{"Single row", 3, 1, []int{0, 1, 2}},
		{"Three by two", 3, 2, []int{0, 1, 2, 5, 4, 3}},
		{"Two by three", 2, 3, []int{0, 1, 3, 2, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := snakeOrder(tt.cols, tt.rows); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestScheduler_ClipsEdgeTiles(t *testing.T) {
	s := NewScheduler(70, 40, 32)

	if s.TileCount() != 6 {
		t.Fatalf("Expected 3x2 tiles, got %d", s.TileCount())
	}

	var tiles []Tile
	for {
		tile, ok := s.Next()
		if !ok {
			break
		}
		tiles = append(tiles, tile)
	}

	expected := []image.Rectangle{
		image.Rect(0, 0, 32, 32),
		image.Rect(32, 0, 64, 32),
		image.Rect(64, 0, 70, 32),
		image.Rect(64, 32, 70, 40),
		image.Rect(32, 32, 64, 40),
		image.Rect(0, 32, 32, 40),
	}
	if len(tiles) != len(expected) {
		t.Fatalf("Expected %d tiles, got %d", len(expected), len(tiles))
	}
	for i, tile := range tiles {
		if tile.Bounds != expected[i] {
			t.Errorf("tile %d: expected bounds %v, got %v", i, expected[i], tile.Bounds)
		}
	}
}

func TestScheduler_ProgressAndActiveTiles(t *testing.T) {
	s := NewScheduler(64, 64, 32)

	first, _ := s.Next()
	second, _ := s.Next()

	active := s.ActiveTiles()
	if len(active) != 2 || active[0].ID != first.ID || active[1].ID != second.ID {
		t.Fatalf("Expected active tiles [%d %d], got %+v", first.ID, second.ID, active)
	}
	if s.Progress() != 0 {
		t.Errorf("Expected progress 0, got %f", s.Progress())
	}

	s.Complete(first)
	s.Complete(first) // completing twice is ignored
	if s.Progress() != 0.25 {
		t.Errorf("Expected progress 0.25, got %f", s.Progress())
	}
	if active := s.ActiveTiles(); len(active) != 1 || active[0].ID != second.ID {
		t.Errorf("Expected only tile %d active, got %+v", second.ID, active)
	}
}

// Every pixel must be covered by exactly one handed-out tile, for any
// number of concurrent claimers.
func TestScheduler_Coverage(t *testing.T) {
	const width, height, tileSize = 203, 97, 16

	for _, workers := range []int{1, 4, 16} {
		s := NewScheduler(width, height, tileSize)
		coverage := make([]int, width*height)
		var mu sync.Mutex
		var wg sync.WaitGroup

		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer s.WorkerDone()
				for {
					tile, ok := s.Next()
					if !ok {
						return
					}
					mu.Lock()
					for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
						for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
							coverage[y*width+x]++
						}
					}
					mu.Unlock()
					s.Complete(tile)
				}
			}()
		}
		wg.Wait()

		for i, count := range coverage {
			if count != 1 {
				t.Fatalf("workers=%d: pixel (%d,%d) covered %d times", workers, i%width, i/width, count)
			}
		}
		if s.WorkersDone() != workers {
			t.Errorf("workers=%d: expected %d workers done, got %d", workers, workers, s.WorkersDone())
		}
		if s.Progress() != 1 {
			t.Errorf("workers=%d: expected progress 1, got %f", workers, s.Progress())
		}
		if _, ok := s.Next(); ok {
			t.Errorf("workers=%d: exhausted scheduler handed out a tile", workers)
		}
	}
}
