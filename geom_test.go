package rectbatch

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestIdentityTransform(t *testing.T) {
	m := Identity()
	got := m.MulVec4([4]float32{3, -7, 2, 1})
	want := [4]float32{3, -7, 2, 1}
	if got != want {
		t.Errorf("Identity transform = %v, want %v", got, want)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Ortho2D(800, 600)
	left := Identity().Mul(m)
	right := m.Mul(Identity())
	for i := range m {
		if !approxEq(left[i], m[i]) || !approxEq(right[i], m[i]) {
			t.Fatalf("identity multiplication changed element %d: %v / %v, want %v",
				i, left[i], right[i], m[i])
		}
	}
}

func TestOrtho2DCorners(t *testing.T) {
	const w, h = 800, 600
	proj := Ortho2D(w, h)

	tests := []struct {
		name         string
		point        Vec2
		wantX, wantY float32
	}{
		{"top_left", Vec2{0, 0}, -1, 1},
		{"top_right", Vec2{w, 0}, 1, 1},
		{"bottom_left", Vec2{0, h}, -1, -1},
		{"bottom_right", Vec2{w, h}, 1, -1},
		{"center", Vec2{w / 2, h / 2}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := proj.TransformPoint(tt.point)
			if !approxEq(clip[0], tt.wantX) || !approxEq(clip[1], tt.wantY) {
				t.Errorf("TransformPoint(%v) = (%v, %v), want (%v, %v)",
					tt.point, clip[0], clip[1], tt.wantX, tt.wantY)
			}
			if !approxEq(clip[3], 1) {
				t.Errorf("clip w = %v, want 1", clip[3])
			}
		})
	}
}

func TestOrtho2DDepthRange(t *testing.T) {
	// Points at z=0 must land at depth 0.5: the GL [-1,1] range remapped
	// to WebGPU's [0,1].
	clip := Ortho2D(100, 100).TransformPoint(Vec2{50, 50})
	if !approxEq(clip[2], 0.5) {
		t.Errorf("clip z = %v, want 0.5", clip[2])
	}
}

func TestVec2Scale(t *testing.T) {
	got := Vec2{2, 3}.Scale(Vec2{4, -1})
	want := Vec2{8, -3}
	if got != want {
		t.Errorf("Scale = %v, want %v", got, want)
	}
}
