//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// DeviceProvider supplies GPU device access from a host application.
//
// Host frameworks implement gpucontext.DeviceProvider and hand it to
// libraries, so the whole stack shares one GPU device. DeviceProvider is
// an alias for that interface, giving it a package-local name while
// staying fully compatible with the gpucontext ecosystem.
//
// For the renderer to use the shared device, the provider must also
// expose the underlying wgpu/hal handles via HalDevice() any and
// HalQueue() any.
type DeviceProvider = gpucontext.DeviceProvider

// NewRendererFromProvider creates a Renderer on the device shared by the
// given provider. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue; otherwise
// ErrNoHALProvider is returned.
func NewRendererFromProvider(provider DeviceProvider, config Config) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALProvider)
	}
	return NewRenderer(device, queue, config)
}
