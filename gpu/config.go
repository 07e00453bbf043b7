package gpu

import "github.com/gogpu/rectbatch"

// Default texture pool geometry. Every pool entry occupies one layer of
// a texture_2d_array with these dimensions; uploaded images are scaled
// to fit.
const (
	DefaultPoolLayerSize = 256
	DefaultPoolCapacity  = 16
)

// Config holds renderer settings. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// Width and Height are the offscreen target dimensions in pixels.
	// Ignored while a surface target is set.
	Width  uint32
	Height uint32

	// ClearColor is the color the render pass clears to each frame.
	ClearColor rectbatch.RGBA

	// PoolLayerWidth and PoolLayerHeight are the texture pool layer
	// dimensions.
	PoolLayerWidth  uint32
	PoolLayerHeight uint32

	// PoolCapacity is the number of layers in the texture pool.
	PoolCapacity uint32

	// MaxInstances caps the batch size per frame. Zero means unlimited;
	// the instance buffer grows as needed.
	MaxInstances int
}

// DefaultConfig returns a config for the given target size with the
// default clear color and pool geometry.
func DefaultConfig(width, height uint32) Config {
	return Config{
		Width:           width,
		Height:          height,
		ClearColor:      rectbatch.DefaultClearColor,
		PoolLayerWidth:  DefaultPoolLayerSize,
		PoolLayerHeight: DefaultPoolLayerSize,
		PoolCapacity:    DefaultPoolCapacity,
	}
}
