//go:build !nogpu

package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/rectbatch"
)

// TexturePool is the GPU texture pool: a texture_2d_array with one
// RGBA8 layer per entry. Instances reference entries by layer index via
// their texture index; the fragment shader samples the array with that
// index.
//
// Layers have fixed dimensions. Uploaded images are scaled to fit with
// bilinear filtering and premultiplied for the pipeline's blend state.
// Entries cannot be removed individually; the pool grows until capacity
// and is released as a whole.
type TexturePool struct {
	device hal.Device
	queue  hal.Queue

	texture hal.Texture
	view    hal.TextureView

	width    uint32
	height   uint32
	capacity uint32
	count    int32
}

// NewTexturePool creates the pool texture and its array view. All
// layers are allocated up front and start as transparent black.
func NewTexturePool(device hal.Device, queue hal.Queue, width, height, capacity uint32) (*TexturePool, error) {
	texture, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: "rect_pool_array",
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: capacity,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create pool texture: %w", err)
	}

	view, err := device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label:         "rect_pool_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2DArray,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(texture)
		return nil, fmt.Errorf("create pool view: %w", err)
	}

	return &TexturePool{
		device:   device,
		queue:    queue,
		texture:  texture,
		view:     view,
		width:    width,
		height:   height,
		capacity: capacity,
	}, nil
}

// Add scales img to the layer dimensions, uploads it to the next free
// layer, and returns that layer's index for use as an instance texture
// index. Returns ErrPoolFull when all layers are in use.
func (p *TexturePool) Add(img image.Image) (int32, error) {
	if uint32(p.count) >= p.capacity {
		return 0, ErrPoolFull
	}
	layer := p.count

	// image.RGBA carries premultiplied alpha, matching the pipeline's
	// premultiplied blend state.
	scaled := image.NewRGBA(image.Rect(0, 0, int(p.width), int(p.height)))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	p.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  p.texture,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: uint32(layer)},
		},
		scaled.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  p.width * 4,
			RowsPerImage: p.height,
		},
		&hal.Extent3D{Width: p.width, Height: p.height, DepthOrArrayLayers: 1},
	)

	p.count++
	rectbatch.Logger().Debug("texture pool upload",
		"layer", layer, "width", p.width, "height", p.height)
	return layer, nil
}

// Layers returns the number of layers currently in use.
func (p *TexturePool) Layers() int32 {
	return p.count
}

// Capacity returns the total layer count of the pool.
func (p *TexturePool) Capacity() uint32 {
	return p.capacity
}

// LayerSize returns the fixed layer dimensions.
func (p *TexturePool) LayerSize() (uint32, uint32) {
	return p.width, p.height
}

// Destroy releases the pool texture and view. Safe to call multiple
// times.
func (p *TexturePool) Destroy() {
	if p.view != nil {
		p.device.DestroyTextureView(p.view)
		p.view = nil
	}
	if p.texture != nil {
		p.device.DestroyTexture(p.texture)
		p.texture = nil
	}
	p.count = 0
}
