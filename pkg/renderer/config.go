package renderer

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config contains the render settings
type Config struct {
	Width           int   `json:"width"`
	Height          int   `json:"height"`
	TileSize        int   `json:"tile_size"`
	SamplesPerPixel int   `json:"samples_per_pixel"`
	MaxDepth        int   `json:"max_depth"`
	NumWorkers      int   `json:"num_workers"` // 0 = one less than the CPU count
	Seed            int64 `json:"seed"`
}

// DefaultConfig returns the default render settings
func DefaultConfig() Config {
	return Config{
		Width:           1024,
		Height:          512,
		TileSize:        32,
		SamplesPerPixel: 64,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %q: %w", path, err)
	}
	return config, config.Validate()
}

// Validate checks that the settings describe a renderable image
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTileSize, c.TileSize)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.NumWorkers)
	}
	return nil
}

// Workers returns the number of workers to start
func (c Config) Workers() int {
	if c.NumWorkers > 0 {
		return c.NumWorkers
	}
	return max(runtime.NumCPU()-1, 1)
}
