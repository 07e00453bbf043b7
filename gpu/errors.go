package gpu

import "errors"

// Errors returned by the GPU renderer.
var (
	// ErrNoAdapter is returned by OpenDevice when the API reports no
	// usable adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapter available")

	// ErrNoHALProvider is returned by NewRendererFromProvider when the
	// provider does not expose wgpu/hal device and queue handles.
	ErrNoHALProvider = errors.New("gpu: provider does not expose HAL types")

	// ErrShaderSourceEmpty indicates the embedded WGSL source is missing,
	// which can only happen on a broken build.
	ErrShaderSourceEmpty = errors.New("gpu: rect shader source is empty")

	// ErrPoolFull is returned by TexturePool.Add when all layers are in
	// use.
	ErrPoolFull = errors.New("gpu: texture pool is full")

	// ErrTooManyInstances is returned when a batch exceeds the configured
	// instance capacity.
	ErrTooManyInstances = errors.New("gpu: batch exceeds instance capacity")

	// ErrNilTarget is returned by RenderInto for a nil readback target.
	ErrNilTarget = errors.New("gpu: nil render target")

	// ErrNoSurfaceTarget is returned by Render when no surface target is
	// set and no offscreen size is configured.
	ErrNoSurfaceTarget = errors.New("gpu: no render target configured")
)
