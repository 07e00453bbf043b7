//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rectbatch"
)

// projectionUniformSize is the byte size of the projection uniform:
// one column-major mat4x4<f32>.
const projectionUniformSize = 64

// gpuTimeout bounds fence waits after submission.
const gpuTimeout = 5 * time.Second

// RenderMode controls how the Renderer outputs frames.
type RenderMode int

const (
	// RenderModeOffscreen renders to an internal texture. RenderInto
	// additionally reads pixels back to the CPU through a staging buffer.
	RenderModeOffscreen RenderMode = iota

	// RenderModeSurface renders directly to a caller-provided surface
	// texture view. No readback occurs.
	RenderModeSurface
)

// Renderer draws rectangle batches with one draw call per frame.
//
// It owns the pipeline, the texture pool, the projection uniform buffer,
// and the instance storage buffer. The storage buffer grows as batches
// grow and is rewritten in place otherwise; the group-0 bind group is
// rebuilt only when the buffer is reallocated.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	config Config

	pipeline *rectPipeline
	pool     *TexturePool

	uniformBuf  hal.Buffer
	instanceBuf hal.Buffer
	instanceCap uint64
	frameBind   hal.BindGroup
	poolBind    hal.BindGroup

	// Offscreen target, created lazily at the configured size.
	colorTex  hal.Texture
	colorView hal.TextureView
	width     uint32
	height    uint32

	// Surface mode. The caller owns the view; the renderer never
	// destroys it.
	surfaceView   hal.TextureView
	surfaceWidth  uint32
	surfaceHeight uint32
}

// NewRenderer creates a renderer on the given device and queue. The
// pipeline, texture pool, and uniform buffer are created eagerly;
// offscreen target textures are created on first use.
func NewRenderer(device hal.Device, queue hal.Queue, config Config) (*Renderer, error) {
	r := &Renderer{
		device:   device,
		queue:    queue,
		config:   config,
		pipeline: newRectPipeline(device, queue),
	}

	if err := r.pipeline.create(); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("create pipeline: %w", err)
	}

	pool, err := NewTexturePool(device, queue,
		config.PoolLayerWidth, config.PoolLayerHeight, config.PoolCapacity)
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("create texture pool: %w", err)
	}
	r.pool = pool

	uniformBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rect_projection_uniform",
		Size:  projectionUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	r.uniformBuf = uniformBuf

	poolBind, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "rect_pool_bind",
		Layout: r.pipeline.poolLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: pool.view.NativeHandle(),
			}},
		},
	})
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("create pool bind group: %w", err)
	}
	r.poolBind = poolBind

	// A minimal storage buffer so the frame bind group exists even for
	// clear-only frames.
	if err := r.ensureInstanceBuffer(rectbatch.InstanceStride); err != nil {
		r.Destroy()
		return nil, err
	}

	rectbatch.Logger().Info("rect renderer created",
		"width", config.Width, "height", config.Height,
		"pool_capacity", config.PoolCapacity)
	return r, nil
}

// Pool returns the renderer's texture pool.
func (r *Renderer) Pool() *TexturePool {
	return r.pool
}

// SetSurfaceTarget configures the renderer to draw directly into the
// given surface texture view instead of the offscreen texture. Call with
// a nil view to return to offscreen mode. The caller retains ownership
// of the view.
func (r *Renderer) SetSurfaceTarget(view hal.TextureView, width, height uint32) {
	r.surfaceView = view
	r.surfaceWidth = width
	r.surfaceHeight = height
}

// Mode returns the current render mode.
func (r *Renderer) Mode() RenderMode {
	if r.surfaceView != nil {
		return RenderModeSurface
	}
	return RenderModeOffscreen
}

// Resize changes the offscreen target size. The target textures are
// dropped and recreated on the next frame; callers typically pass a
// recomputed projection (e.g. rectbatch.Ortho2D) with that frame.
func (r *Renderer) Resize(width, height uint32) {
	if width == r.config.Width && height == r.config.Height {
		return
	}
	r.config.Width = width
	r.config.Height = height
	r.destroyOffscreen()
	rectbatch.Logger().Info("rect renderer resized", "width", width, "height", height)
}

// Render draws the batch to the current target: the surface view when
// one is set, the offscreen texture otherwise. The pass always clears;
// an empty batch produces a clear-only frame.
func (r *Renderer) Render(batch *rectbatch.Batch, projection rectbatch.Mat4) error {
	if r.surfaceView != nil {
		return r.submitFrame(r.surfaceView, nil, r.surfaceWidth, r.surfaceHeight, batch, projection, nil)
	}
	if r.config.Width == 0 || r.config.Height == 0 {
		return ErrNoSurfaceTarget
	}
	if err := r.ensureOffscreen(r.config.Width, r.config.Height); err != nil {
		return err
	}
	return r.submitFrame(r.colorView, nil, r.width, r.height, batch, projection, nil)
}

// RenderInto draws the batch offscreen at the target's dimensions and
// reads the frame back into target.Pix as RGBA8.
func (r *Renderer) RenderInto(target *rectbatch.RenderTarget, batch *rectbatch.Batch, projection rectbatch.Mat4) error {
	if target == nil {
		return ErrNilTarget
	}
	w, h := uint32(target.Width), uint32(target.Height)
	if err := r.ensureOffscreen(w, h); err != nil {
		return err
	}
	return r.submitFrame(r.colorView, r.colorTex, w, h, batch, projection, target)
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times. The surface view is owned by the caller and is left
// untouched.
func (r *Renderer) Destroy() {
	r.destroyOffscreen()
	if r.frameBind != nil {
		r.device.DestroyBindGroup(r.frameBind)
		r.frameBind = nil
	}
	if r.poolBind != nil {
		r.device.DestroyBindGroup(r.poolBind)
		r.poolBind = nil
	}
	if r.instanceBuf != nil {
		r.device.DestroyBuffer(r.instanceBuf)
		r.instanceBuf = nil
		r.instanceCap = 0
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.pool != nil {
		r.pool.Destroy()
		r.pool = nil
	}
	if r.pipeline != nil {
		r.pipeline.destroy()
		r.pipeline = nil
	}
	r.surfaceView = nil
}

// ensureOffscreen creates or recreates the offscreen color texture at
// the given size.
func (r *Renderer) ensureOffscreen(w, h uint32) error {
	if r.width == w && r.height == h && r.colorTex != nil {
		return nil
	}
	r.destroyOffscreen()

	colorTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "rect_offscreen_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	r.colorTex = colorTex

	colorView, err := r.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label:         "rect_offscreen_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.destroyOffscreen()
		return fmt.Errorf("create offscreen view: %w", err)
	}
	r.colorView = colorView

	r.width = w
	r.height = h
	return nil
}

// destroyOffscreen releases the offscreen textures and resets dimensions.
func (r *Renderer) destroyOffscreen() {
	if r.colorView != nil {
		r.device.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		r.device.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
	r.width = 0
	r.height = 0
}

// ensureInstanceBuffer guarantees the storage buffer holds at least
// size bytes, reallocating with doubling growth and rebuilding the
// frame bind group when it does.
func (r *Renderer) ensureInstanceBuffer(size int) error {
	need := uint64(size)
	if r.instanceBuf != nil && need <= r.instanceCap {
		return nil
	}

	newCap := r.instanceCap * 2
	if newCap < need {
		newCap = need
	}
	if newCap < rectbatch.InstanceStride {
		newCap = rectbatch.InstanceStride
	}

	instanceBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rect_instances",
		Size:  newCap,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create instance buffer: %w", err)
	}

	frameBind, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "rect_frame_bind",
		Layout: r.pipeline.frameLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: projectionUniformSize,
			}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: instanceBuf.NativeHandle(), Offset: 0, Size: newCap,
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: r.pipeline.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(instanceBuf)
		return fmt.Errorf("create frame bind group: %w", err)
	}

	if r.frameBind != nil {
		r.device.DestroyBindGroup(r.frameBind)
	}
	if r.instanceBuf != nil {
		r.device.DestroyBuffer(r.instanceBuf)
	}
	r.instanceBuf = instanceBuf
	r.instanceCap = newCap
	r.frameBind = frameBind

	rectbatch.Logger().Debug("instance buffer grown", "capacity_bytes", newCap)
	return nil
}

// submitFrame encodes and submits one frame: write instance and uniform
// data, clear, draw, and optionally copy the offscreen texture into
// target for CPU readback (readbackTex non-nil).
func (r *Renderer) submitFrame(
	view hal.TextureView, readbackTex hal.Texture, w, h uint32,
	batch *rectbatch.Batch, projection rectbatch.Mat4,
	target *rectbatch.RenderTarget,
) error {
	var instances []rectbatch.Instance
	if batch != nil {
		instances = batch.Instances()
	}
	if r.config.MaxInstances > 0 && len(instances) > r.config.MaxInstances {
		return ErrTooManyInstances
	}

	data, err := rectbatch.EncodeInstances(instances)
	if err != nil {
		return fmt.Errorf("encode instances: %w", err)
	}
	vertexCount := uint32(len(instances)) * rectbatch.VerticesPerInstance

	if len(data) > 0 {
		if err := r.ensureInstanceBuffer(len(data)); err != nil {
			return err
		}
		r.queue.WriteBuffer(r.instanceBuf, 0, data)
	}
	r.queue.WriteBuffer(r.uniformBuf, 0, rectbatch.EncodeMat4(projection))

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "rect_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rect_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	clear := r.config.ClearColor
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "rect_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear.R), G: float64(clear.G), B: float64(clear.B), A: float64(clear.A),
			},
		}},
	})
	if vertexCount > 0 {
		rp.SetPipeline(r.pipeline.pipeline)
		rp.SetBindGroup(0, r.frameBind, nil)
		rp.SetBindGroup(1, r.poolBind, nil)
		rp.Draw(vertexCount, 1, 0, 0)
	}
	rp.End()

	var stagingBuf hal.Buffer
	var alignedBytesPerRow, bytesPerRow uint32
	if readbackTex != nil {
		// VK-LAYOUT-001: the color attachment must transition to a copy
		// source before CopyTextureToBuffer. No-op on Metal, GLES,
		// software, and noop backends.
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: readbackTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})

		// WebGPU (and DX12) requires BytesPerRow aligned to 256 bytes.
		bytesPerRow = w * 4
		const copyPitchAlignment = 256
		alignedBytesPerRow = (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
		stagingSize := uint64(alignedBytesPerRow) * uint64(h)

		stagingBuf, err = r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "rect_staging",
			Size:  stagingSize,
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			encoder.DiscardEncoding()
			return fmt.Errorf("create staging buffer: %w", err)
		}
		defer r.device.DestroyBuffer(stagingBuf)

		encoder.CopyTextureToBuffer(readbackTex, stagingBuf, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: readbackTex, MipLevel: 0},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})

		// Return the texture to RenderAttachment so the next frame's
		// pass finds it in the expected state.
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: readbackTex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if readbackTex == nil {
		return nil
	}

	readback := make([]byte, uint64(alignedBytesPerRow)*uint64(h))
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}

	// Strip row padding (if any) and convert BGRA → RGBA.
	if alignedBytesPerRow == bytesPerRow {
		convertBGRAToRGBA(readback, target.Pix, int(w)*int(h))
	} else {
		tight := make([]byte, uint64(bytesPerRow)*uint64(h))
		for row := uint32(0); row < h; row++ {
			srcOff := int(row) * int(alignedBytesPerRow)
			dstOff := int(row) * int(bytesPerRow)
			copy(tight[dstOff:dstOff+int(bytesPerRow)], readback[srcOff:srcOff+int(bytesPerRow)])
		}
		convertBGRAToRGBA(tight, target.Pix, int(w)*int(h))
	}
	return nil
}

// convertBGRAToRGBA swaps the B and R channels of count pixels from src
// into dst.
func convertBGRAToRGBA(src, dst []byte, count int) {
	for i := 0; i < count; i++ {
		off := i * 4
		dst[off] = src[off+2]
		dst[off+1] = src[off+1]
		dst[off+2] = src[off]
		dst[off+3] = src[off+3]
	}
}
