package scene

import "errors"

var (
	ErrUnknownScene       = errors.New("scene: unknown scene")
	ErrUnknownAccelerator = errors.New("scene: unknown accelerator")
	ErrInvalidMesh        = errors.New("scene: invalid mesh")
)
