//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rectbatch"
)

// OpenDevice opens the first adapter of the given HAL API with default
// limits and returns its device and queue, plus a cleanup function that
// releases both the device and the instance.
//
// This is the standalone acquisition path; applications embedding the
// renderer in a larger GPU stack should pass their existing device via
// NewRenderer or NewRendererFromProvider instead. Tests use it with the
// noop backend.
func OpenDevice(api hal.Backend) (hal.Device, hal.Queue, func(), error) {
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, ErrNoAdapter
	}

	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, fmt.Errorf("open adapter: %w", err)
	}

	rectbatch.Logger().Info("GPU device opened")

	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup, nil
}
