// Package gpu renders rectangle batches with a single wgpu/hal draw call.
//
// The renderer owns one render pipeline, a layered texture pool, and the
// per-frame buffers behind it. Each frame the encoded instance buffer and
// the projection matrix are written to the GPU, a render pass clears the
// target, and one Draw covers six vertices per instance; the vertex shader
// derives rectangle corners from the instance storage buffer and the
// vertex index alone.
//
// The package receives its hal.Device and hal.Queue from the host. Use
// OpenDevice for a standalone setup, or NewRendererFromProvider to share
// a device with a gpucontext-based application.
package gpu
