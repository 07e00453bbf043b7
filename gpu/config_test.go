package gpu

import (
	"testing"

	"github.com/gogpu/rectbatch"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig(800, 600)
	if c.Width != 800 || c.Height != 600 {
		t.Errorf("size = (%d, %d), want (800, 600)", c.Width, c.Height)
	}
	if c.ClearColor != rectbatch.DefaultClearColor {
		t.Errorf("ClearColor = %+v, want %+v", c.ClearColor, rectbatch.DefaultClearColor)
	}
	if c.PoolLayerWidth != DefaultPoolLayerSize || c.PoolLayerHeight != DefaultPoolLayerSize {
		t.Errorf("pool layer size = (%d, %d), want %d", c.PoolLayerWidth, c.PoolLayerHeight, DefaultPoolLayerSize)
	}
	if c.PoolCapacity != DefaultPoolCapacity {
		t.Errorf("PoolCapacity = %d, want %d", c.PoolCapacity, DefaultPoolCapacity)
	}
	if c.MaxInstances != 0 {
		t.Errorf("MaxInstances = %d, want 0 (unlimited)", c.MaxInstances)
	}
}
