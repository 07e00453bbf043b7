package rectbatch

// RenderTarget is a CPU-side RGBA8 pixel buffer. The GPU session's
// offscreen mode reads frames back into one; the software renderer
// writes it directly.
type RenderTarget struct {
	// Pix holds RGBA pixel data, 4 bytes per pixel, row-major.
	Pix []uint8

	// Width and Height are the dimensions in pixels.
	Width  int
	Height int

	// Stride is the byte distance between rows (Width*4 when packed).
	Stride int
}

// NewRenderTarget allocates a packed target of the given size.
func NewRenderTarget(width, height int) *RenderTarget {
	return &RenderTarget{
		Pix:    make([]uint8, width*height*4),
		Width:  width,
		Height: height,
		Stride: width * 4,
	}
}

// DefaultClearColor is the frame clear color used when a config does not
// override it.
var DefaultClearColor = RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1}

// RenderSoftware rasterizes a batch on the CPU using the same stage
// semantics as the GPU path: each instance expands to six vertices via
// ExpandVertex, the two triangles are filled in submission order, and
// every covered pixel is shaded with ResolveFragment and composited
// source-over. It is the executable reference for the pipeline and the
// oracle for end-to-end tests; it makes no attempt to be fast.
//
// pool may be nil when the batch contains only solid fills.
func RenderSoftware(target *RenderTarget, instances []Instance, projection Mat4, pool TextureSampler, clear RGBA) error {
	if target == nil {
		return ErrNilTarget
	}
	for _, in := range instances {
		if err := in.validate(); err != nil {
			return err
		}
	}

	clearTarget(target, clear)

	for i := range instances {
		verts := ExpandInstance(i, instances, projection)
		color, texIndex := instances[i].Fill.lower()
		rasterTriangle(target, verts[0], verts[1], verts[2], color, texIndex, pool)
		rasterTriangle(target, verts[3], verts[4], verts[5], color, texIndex, pool)
	}
	return nil
}

func clearTarget(t *RenderTarget, c RGBA) {
	for y := 0; y < t.Height; y++ {
		row := t.Pix[y*t.Stride:]
		for x := 0; x < t.Width; x++ {
			putPixel(row[x*4:], c)
		}
	}
}

// screenVert is a vertex mapped from clip space to pixel space.
type screenVert struct {
	x, y float32
	uv   Vec2
}

// toScreen maps clip space to pixel coordinates: NDC x right, y up
// becomes pixel x right, y down.
func toScreen(v Vertex, w, h int) screenVert {
	ndcX := v.ClipPosition[0] / v.ClipPosition[3]
	ndcY := v.ClipPosition[1] / v.ClipPosition[3]
	return screenVert{
		x:  (ndcX + 1) / 2 * float32(w),
		y:  (1 - ndcY) / 2 * float32(h),
		uv: v.UV,
	}
}

// rasterTriangle fills one triangle, shading each covered pixel center
// through ResolveFragment. Coverage follows the top-left fill rule, so a
// pixel center on an edge shared by two triangles lands in exactly one
// of them and is never blended twice. Attribute interpolation is affine,
// which is exact for the 2D projections this pipeline uses (w is
// constant 1 across a rectangle).
func rasterTriangle(t *RenderTarget, v0, v1, v2 Vertex, color Color, texIndex int32, pool TextureSampler) {
	a := toScreen(v0, t.Width, t.Height)
	b := toScreen(v1, t.Width, t.Height)
	c := toScreen(v2, t.Width, t.Height)

	area := edge(a, b, c.x, c.y)
	if area == 0 {
		return // degenerate (zero-area instance)
	}
	if area < 0 {
		// Normalize winding so the interior is on the positive side of
		// every edge.
		b, c = c, b
		area = -area
	}

	minX := clampInt(int(floor32(min3(a.x, b.x, c.x))), 0, t.Width)
	maxX := clampInt(int(floor32(max3(a.x, b.x, c.x)))+1, 0, t.Width)
	minY := clampInt(int(floor32(min3(a.y, b.y, c.y))), 0, t.Height)
	maxY := clampInt(int(floor32(max3(a.y, b.y, c.y)))+1, 0, t.Height)

	for py := minY; py < maxY; py++ {
		cy := float32(py) + 0.5
		row := t.Pix[py*t.Stride:]
		for px := minX; px < maxX; px++ {
			cx := float32(px) + 0.5

			w0 := edge(b, c, cx, cy)
			w1 := edge(c, a, cx, cy)
			w2 := edge(a, b, cx, cy)
			if !covers(w0, b, c) || !covers(w1, c, a) || !covers(w2, a, b) {
				continue
			}

			l0 := w0 / area
			l1 := w1 / area
			l2 := w2 / area
			uv := Vec2{
				X: a.uv.X*l0 + b.uv.X*l1 + c.uv.X*l2,
				Y: a.uv.Y*l0 + b.uv.Y*l1 + c.uv.Y*l2,
			}

			src := ResolveFragment(texIndex, uv, color, pool)
			blendPixel(row[px*4:], src)
		}
	}
}

// edge is the signed parallelogram area of (b-a) × (p-a).
func edge(a, b screenVert, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// covers applies the top-left fill rule for the directed edge from a to
// b: a pixel strictly inside passes, a pixel exactly on the edge passes
// only when the edge is a top or left edge. This matches the hardware
// rasterization rule, leaving no gaps and no double coverage between
// triangles that share an edge.
func covers(w float32, a, b screenVert) bool {
	if w > 0 {
		return true
	}
	if w < 0 {
		return false
	}
	dy := b.y - a.y
	return dy < 0 || (dy == 0 && b.x > a.x)
}

// blendPixel composites src over dst with straight alpha.
func blendPixel(dst []uint8, src RGBA) {
	if src.A >= 1 {
		putPixel(dst, src)
		return
	}
	if src.A <= 0 {
		return
	}
	inv := 1 - src.A
	d := RGBA{
		R: src.R*src.A + float32(dst[0])/255*inv,
		G: src.G*src.A + float32(dst[1])/255*inv,
		B: src.B*src.A + float32(dst[2])/255*inv,
		A: src.A + float32(dst[3])/255*inv,
	}
	putPixel(dst, d)
}

func putPixel(dst []uint8, c RGBA) {
	dst[0] = clamp255(c.R)
	dst[1] = clamp255(c.G)
	dst[2] = clamp255(c.B)
	dst[3] = clamp255(c.A)
}

func clamp255(v float32) uint8 {
	s := v * 255
	if s <= 0 {
		return 0
	}
	if s >= 255 {
		return 255
	}
	return uint8(s + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
