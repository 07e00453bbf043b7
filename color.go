package rectbatch

// Color represents a solid fill color with red, green, and blue
// components, nominally in [0, 1]. Out-of-range values are passed to the
// GPU unmodified; the instance model does not validate color ranges.
//
// Solid fills are always opaque. Alpha only enters the pipeline through
// the texture pool.
type Color struct {
	R, G, B float32
}

// RGB creates a Color from components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA represents a resolved fragment color with alpha, as produced by
// the fragment stage: opaque for solid fills, texture alpha for sprites.
type RGBA struct {
	R, G, B, A float32
}

// Opaque returns the color extended with alpha 1, the fixed alpha of a
// solid fill.
func (c Color) Opaque() RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: 1}
}
