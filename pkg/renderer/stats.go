package renderer

import "time"

// WorkerStats contains the work done by a single worker
type WorkerStats struct {
	ID      int           // Worker index
	Tiles   int           // Tiles rendered
	Pixels  int           // Pixels rendered
	Samples int           // Camera rays traced
	Busy    time.Duration // Time spent rendering tiles
}

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Tiles           int
	TotalPixels     int
	TotalSamples    int
	Duration        time.Duration
	Workers         []WorkerStats
}

// SamplesPerSecond returns the camera ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

func newRenderStats(config Config, tiles int, duration time.Duration, workers []WorkerStats) RenderStats {
	stats := RenderStats{
		Width:           config.Width,
		Height:          config.Height,
		SamplesPerPixel: config.SamplesPerPixel,
		Tiles:           tiles,
		Duration:        duration,
		Workers:         workers,
	}
	for _, w := range workers {
		stats.TotalPixels += w.Pixels
		stats.TotalSamples += w.Samples
	}
	return stats
}
