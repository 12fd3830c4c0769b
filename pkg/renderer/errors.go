package renderer

import "errors"

var (
	ErrInvalidDimensions = errors.New("renderer: width and height must be positive")
	ErrInvalidTileSize   = errors.New("renderer: tile size must be positive")
	ErrInvalidSamples    = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidDepth      = errors.New("renderer: max depth must not be negative")
	ErrInvalidWorkers    = errors.New("renderer: worker count must not be negative")
	ErrAlreadyStarted    = errors.New("renderer: render already started")
)
