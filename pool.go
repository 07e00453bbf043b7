package rectbatch

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// SoftwarePool is a CPU texture pool: a fixed-size stack of RGBA8 layers
// implementing TextureSampler. It backs the software reference renderer
// and mirrors the GPU pool's behavior (fixed layer dimensions, images
// scaled to fit on upload).
type SoftwarePool struct {
	width, height int
	capacity      int
	layers        [][]uint8
}

// NewSoftwarePool creates a pool with the given layer dimensions and
// capacity.
func NewSoftwarePool(width, height, capacity int) *SoftwarePool {
	return &SoftwarePool{width: width, height: height, capacity: capacity}
}

// Add scales img to the layer dimensions, stores it, and returns the
// layer index to use as an instance texture index. Returns ErrPoolFull
// when the pool is at capacity.
func (p *SoftwarePool) Add(img image.Image) (int32, error) {
	if len(p.layers) >= p.capacity {
		return 0, ErrPoolFull
	}
	// NRGBA keeps straight alpha; the software blend multiplies by
	// alpha itself.
	dst := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	p.layers = append(p.layers, dst.Pix)
	return int32(len(p.layers) - 1), nil
}

// Layers returns the number of layers currently in the pool.
func (p *SoftwarePool) Layers() int32 {
	return int32(len(p.layers))
}

// Sample returns the bilinearly filtered texel of layer at (u, v) with
// clamp-to-edge addressing, matching the pipeline's sampler state.
func (p *SoftwarePool) Sample(layer int32, u, v float32) RGBA {
	if layer < 0 || int(layer) >= len(p.layers) {
		return RGBA{}
	}
	pix := p.layers[layer]

	// Texel-center convention: uv 0..1 spans the layer, texel centers at
	// (i+0.5)/w.
	x := u*float32(p.width) - 0.5
	y := v*float32(p.height) - 0.5
	x0 := int(floor32(x))
	y0 := int(floor32(y))
	fx := x - float32(x0)
	fy := y - float32(y0)

	c00 := p.texel(pix, x0, y0)
	c10 := p.texel(pix, x0+1, y0)
	c01 := p.texel(pix, x0, y0+1)
	c11 := p.texel(pix, x0+1, y0+1)

	return RGBA{
		R: lerp(lerp(c00.R, c10.R, fx), lerp(c01.R, c11.R, fx), fy),
		G: lerp(lerp(c00.G, c10.G, fx), lerp(c01.G, c11.G, fx), fy),
		B: lerp(lerp(c00.B, c10.B, fx), lerp(c01.B, c11.B, fx), fy),
		A: lerp(lerp(c00.A, c10.A, fx), lerp(c01.A, c11.A, fx), fy),
	}
}

// texel reads one texel with clamp-to-edge addressing.
func (p *SoftwarePool) texel(pix []uint8, x, y int) RGBA {
	if x < 0 {
		x = 0
	} else if x >= p.width {
		x = p.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= p.height {
		y = p.height - 1
	}
	off := (y*p.width + x) * 4
	return RGBA{
		R: float32(pix[off]) / 255,
		G: float32(pix[off+1]) / 255,
		B: float32(pix[off+2]) / 255,
		A: float32(pix[off+3]) / 255,
	}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func floor32(v float32) float32 {
	i := float32(int(v))
	if v < i {
		return i - 1
	}
	return i
}
