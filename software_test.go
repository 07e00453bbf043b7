package rectbatch

import (
	"errors"
	"image/color"
	"testing"
)

func pixelAt(t *RenderTarget, x, y int) [4]uint8 {
	off := y*t.Stride + x*4
	return [4]uint8{t.Pix[off], t.Pix[off+1], t.Pix[off+2], t.Pix[off+3]}
}

func TestRenderSoftwareClearOnly(t *testing.T) {
	target := NewRenderTarget(8, 8)
	if err := RenderSoftware(target, nil, Ortho2D(8, 8), nil, DefaultClearColor); err != nil {
		t.Fatalf("RenderSoftware: %v", err)
	}
	want := [4]uint8{26, 51, 77, 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := pixelAt(target, x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want clear %v", x, y, got, want)
			}
		}
	}
}

func TestRenderSoftwareSolidRect(t *testing.T) {
	target := NewRenderTarget(64, 64)
	instances := []Instance{{
		Position: Vec2{10, 30},
		Size:     Vec2{10, 15},
		Fill:     SolidFill(Color{R: 1}),
	}}
	if err := RenderSoftware(target, instances, Ortho2D(64, 64), nil, DefaultClearColor); err != nil {
		t.Fatalf("RenderSoftware: %v", err)
	}

	red := [4]uint8{255, 0, 0, 255}
	clear := [4]uint8{26, 51, 77, 255}

	tests := []struct {
		name string
		x, y int
		want [4]uint8
	}{
		{"interior", 15, 35, red},
		{"top_left_pixel", 10, 30, red},
		{"bottom_right_pixel", 19, 44, red},
		{"left_of_rect", 9, 35, clear},
		{"right_of_rect", 20, 35, clear},
		{"above_rect", 15, 29, clear},
		{"below_rect", 15, 45, clear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pixelAt(target, tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderSoftwareSubmissionOrder(t *testing.T) {
	target := NewRenderTarget(32, 32)
	instances := []Instance{
		{Position: Vec2{4, 4}, Size: Vec2{16, 16}, Fill: SolidFill(Color{R: 1})},
		{Position: Vec2{12, 12}, Size: Vec2{16, 16}, Fill: SolidFill(Color{B: 1})},
	}
	if err := RenderSoftware(target, instances, Ortho2D(32, 32), nil, DefaultClearColor); err != nil {
		t.Fatalf("RenderSoftware: %v", err)
	}

	// Overlap region gets the later instance.
	if got := pixelAt(target, 14, 14); got != ([4]uint8{0, 0, 255, 255}) {
		t.Errorf("overlap pixel = %v, want blue", got)
	}
	// Non-overlapping part of the first instance stays red.
	if got := pixelAt(target, 6, 6); got != ([4]uint8{255, 0, 0, 255}) {
		t.Errorf("first-instance pixel = %v, want red", got)
	}
}

func TestRenderSoftwareTexturedRect(t *testing.T) {
	pool := NewSoftwarePool(4, 4, 1)
	idx, err := pool.Add(uniformImage(4, 4, color.NRGBA{G: 255, A: 255}))
	if err != nil {
		t.Fatalf("pool Add: %v", err)
	}

	target := NewRenderTarget(32, 32)
	instances := []Instance{{
		Position: Vec2{8, 8},
		Size:     Vec2{16, 16},
		Fill:     TextureFill(idx),
	}}
	if err := RenderSoftware(target, instances, Ortho2D(32, 32), pool, DefaultClearColor); err != nil {
		t.Fatalf("RenderSoftware: %v", err)
	}

	if got := pixelAt(target, 16, 16); got != ([4]uint8{0, 255, 0, 255}) {
		t.Errorf("textured pixel = %v, want green", got)
	}
	if got := pixelAt(target, 2, 2); got != ([4]uint8{26, 51, 77, 255}) {
		t.Errorf("outside pixel = %v, want clear", got)
	}
}

func TestRenderSoftwareTranslucentDiagonal(t *testing.T) {
	// A translucent texture makes double blending visible: if a pixel on
	// the diagonal shared by the rectangle's two triangles were shaded by
	// both, source-over would apply twice and darken a seam.
	pool := NewSoftwarePool(4, 4, 1)
	idx, err := pool.Add(uniformImage(4, 4, color.NRGBA{R: 255, A: 128}))
	if err != nil {
		t.Fatalf("pool Add: %v", err)
	}

	target := NewRenderTarget(8, 8)
	instances := []Instance{{
		Position: Vec2{0, 0},
		Size:     Vec2{8, 8},
		Fill:     TextureFill(idx),
	}}
	black := RGBA{A: 1}
	if err := RenderSoftware(target, instances, Ortho2D(8, 8), pool, black); err != nil {
		t.Fatalf("RenderSoftware: %v", err)
	}

	// Pixel (1,6) has its center on the diagonal from bottom-left to
	// top-right; it must match an interior pixel exactly.
	interior := pixelAt(target, 3, 3)
	if interior != ([4]uint8{128, 0, 0, 255}) {
		t.Fatalf("interior pixel = %v, want single source-over result {128 0 0 255}", interior)
	}
	for _, p := range []struct{ x, y int }{{1, 6}, {3, 4}, {6, 1}, {0, 7}} {
		if got := pixelAt(target, p.x, p.y); got != interior {
			t.Errorf("diagonal pixel (%d,%d) = %v, want %v", p.x, p.y, got, interior)
		}
	}
}

func TestRenderSoftwareMixedBatch(t *testing.T) {
	// One solid and one textured instance in the same draw: the solid
	// rect keeps its instance color and the textured rect gets the pool
	// layer, with no cross-contamination.
	pool := NewSoftwarePool(4, 4, 1)
	idx, err := pool.Add(uniformImage(4, 4, color.NRGBA{G: 255, A: 255}))
	if err != nil {
		t.Fatalf("pool Add: %v", err)
	}

	target := NewRenderTarget(32, 32)
	instances := []Instance{
		{Position: Vec2{2, 2}, Size: Vec2{10, 10}, Fill: SolidFill(Color{R: 1})},
		{Position: Vec2{18, 18}, Size: Vec2{10, 10}, Fill: TextureFill(idx)},
	}
	if err := RenderSoftware(target, instances, Ortho2D(32, 32), pool, DefaultClearColor); err != nil {
		t.Fatalf("RenderSoftware: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want [4]uint8
	}{
		{"solid_rect", 6, 6, [4]uint8{255, 0, 0, 255}},
		{"textured_rect", 22, 22, [4]uint8{0, 255, 0, 255}},
		{"between_rects", 15, 15, [4]uint8{26, 51, 77, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pixelAt(target, tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderSoftwareZeroSizeInstance(t *testing.T) {
	target := NewRenderTarget(16, 16)
	instances := []Instance{{Position: Vec2{8, 8}, Size: Vec2{0, 0}, Fill: SolidFill(Color{R: 1})}}
	if err := RenderSoftware(target, instances, Ortho2D(16, 16), nil, DefaultClearColor); err != nil {
		t.Fatalf("RenderSoftware: %v", err)
	}
	clear := [4]uint8{26, 51, 77, 255}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if got := pixelAt(target, x, y); got != clear {
				t.Fatalf("pixel (%d,%d) = %v, want clear (degenerate instance draws nothing)", x, y, got)
			}
		}
	}
}

func TestRenderSoftwareErrors(t *testing.T) {
	if err := RenderSoftware(nil, nil, Identity(), nil, DefaultClearColor); !errors.Is(err, ErrNilTarget) {
		t.Errorf("nil target error = %v, want %v", err, ErrNilTarget)
	}

	target := NewRenderTarget(4, 4)
	bad := []Instance{{Size: Vec2{-1, 1}, Fill: SolidFill(Color{})}}
	if err := RenderSoftware(target, bad, Identity(), nil, DefaultClearColor); !errors.Is(err, ErrNegativeSize) {
		t.Errorf("invalid instance error = %v, want %v", err, ErrNegativeSize)
	}
}
