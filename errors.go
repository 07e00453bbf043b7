package rectbatch

import "errors"

// Errors returned by the instance model and wire encoder.
var (
	// ErrNegativeSize is returned by Batch.Add when a rectangle has a
	// negative width or height. Zero-area rectangles are legal.
	ErrNegativeSize = errors.New("rectbatch: rectangle size must be non-negative")

	// ErrInvalidTextureIndex is returned when an instance carries a
	// texture index below the solid-fill sentinel (-1). Such a value can
	// only come from a construction bug on the host side, so it is
	// rejected before it reaches the GPU.
	ErrInvalidTextureIndex = errors.New("rectbatch: texture index below -1")

	// ErrTruncatedWire is returned by DecodeInstances when the buffer
	// length is not a multiple of the instance stride.
	ErrTruncatedWire = errors.New("rectbatch: wire buffer is not a whole number of instances")

	// ErrPoolFull is returned by SoftwarePool.Add when the pool is at
	// capacity.
	ErrPoolFull = errors.New("rectbatch: texture pool is full")

	// ErrNilTarget is returned when a render target is nil.
	ErrNilTarget = errors.New("rectbatch: nil render target")
)
