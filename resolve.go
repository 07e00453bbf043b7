package rectbatch

// TextureSampler provides filtered reads from an indexable set of
// texture layers, the CPU counterpart of the GPU texture pool binding.
// Sample must apply linear filtering with clamp-to-edge addressing, the
// fixed sampler state of the pipeline.
type TextureSampler interface {
	// Sample returns the filtered texel of the given layer at (u, v),
	// with (0,0) the layer's top-left and (1,1) its bottom-right.
	Sample(layer int32, u, v float32) RGBA

	// Layers returns the number of layers in the pool.
	Layers() int32
}

// ResolveFragment mirrors the GPU fragment stage for one fragment.
//
// A texture index of -1 resolves to the interpolated instance color with
// alpha 1; the pool is not consulted. A non-negative index samples the
// pool at the interpolated UV and ignores the instance color entirely,
// taking alpha from the texture.
//
// An index at or past the layer count clamps to the last layer, matching
// WebGPU array-layer clamping. Per-draw bounds validation is deliberately
// absent on the GPU path, so the mirror does not reject it either.
func ResolveFragment(texIndex int32, uv Vec2, color Color, pool TextureSampler) RGBA {
	if texIndex == SolidTextureIndex {
		return color.Opaque()
	}
	if pool == nil || pool.Layers() == 0 {
		return RGBA{}
	}
	if texIndex >= pool.Layers() {
		texIndex = pool.Layers() - 1
	}
	return pool.Sample(texIndex, uv.X, uv.Y)
}
