package rectbatch

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSoftwarePoolAdd(t *testing.T) {
	p := NewSoftwarePool(4, 4, 2)
	if p.Layers() != 0 {
		t.Fatalf("new pool Layers = %d, want 0", p.Layers())
	}

	img := uniformImage(8, 8, color.NRGBA{R: 255, A: 255})
	for want := int32(0); want < 2; want++ {
		idx, err := p.Add(img)
		if err != nil {
			t.Fatalf("Add %d: %v", want, err)
		}
		if idx != want {
			t.Errorf("Add returned index %d, want %d", idx, want)
		}
	}
	if p.Layers() != 2 {
		t.Errorf("Layers = %d, want 2", p.Layers())
	}

	if _, err := p.Add(img); !errors.Is(err, ErrPoolFull) {
		t.Errorf("Add past capacity error = %v, want %v", err, ErrPoolFull)
	}
}

func TestSoftwarePoolSampleUniform(t *testing.T) {
	p := NewSoftwarePool(4, 4, 1)
	idx, err := p.Add(uniformImage(16, 16, color.NRGBA{G: 255, A: 255}))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// A uniform layer samples to its color everywhere, including the
	// clamp-to-edge region outside [0,1].
	uvs := []Vec2{{0.5, 0.5}, {0, 0}, {1, 1}, {-0.2, 0.3}, {0.3, 1.4}}
	for _, uv := range uvs {
		got := p.Sample(idx, uv.X, uv.Y)
		if !approxEq(got.G, 1) || !approxEq(got.R, 0) || !approxEq(got.A, 1) {
			t.Errorf("Sample(%v) = %+v, want green", uv, got)
		}
	}
}

func TestSoftwarePoolSampleFilters(t *testing.T) {
	// Two-tone layer, left half white, right half black; sampling the
	// midpoint must blend them.
	p := NewSoftwarePool(4, 4, 1)
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.NRGBA{A: 255}
			if x < 2 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	idx, err := p.Add(img)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got := p.Sample(idx, 0.5, 0.5)
	if !approxEq(got.R, 0.5) {
		t.Errorf("midpoint sample R = %v, want 0.5", got.R)
	}
	if left := p.Sample(idx, 0.125, 0.5); !approxEq(left.R, 1) {
		t.Errorf("left texel center R = %v, want 1", left.R)
	}
	if right := p.Sample(idx, 0.875, 0.5); !approxEq(right.R, 0) {
		t.Errorf("right texel center R = %v, want 0", right.R)
	}
}

func TestSoftwarePoolSampleBadLayer(t *testing.T) {
	p := NewSoftwarePool(4, 4, 1)
	if got := p.Sample(0, 0.5, 0.5); got != (RGBA{}) {
		t.Errorf("empty pool sample = %+v, want transparent black", got)
	}
}
