package rectbatch

import "testing"

func TestBatchVertexCount(t *testing.T) {
	b := NewBatch()
	for i := 0; i < 5; i++ {
		if got, want := b.VertexCount(), uint32(i*VerticesPerInstance); got != want {
			t.Fatalf("VertexCount with %d instances = %d, want %d", i, got, want)
		}
		if err := b.Add(Instance{Size: Vec2{1, 1}, Fill: SolidFill(Color{})}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
}

func TestExpandVertexCorners(t *testing.T) {
	instances := []Instance{{
		Position: Vec2{10, 30},
		Size:     Vec2{10, 15},
		Fill:     SolidFill(Color{R: 1}),
	}}

	// With an identity projection, clip xy is the pixel-space corner.
	wants := [VerticesPerInstance]Vec2{
		{10, 30}, {20, 30}, {10, 45},
		{10, 45}, {20, 45}, {20, 30},
	}
	for k := uint32(0); k < VerticesPerInstance; k++ {
		v := ExpandVertex(k, instances, Identity())
		if v.ClipPosition[0] != wants[k].X || v.ClipPosition[1] != wants[k].Y {
			t.Errorf("vertex %d position = (%v, %v), want %v",
				k, v.ClipPosition[0], v.ClipPosition[1], wants[k])
		}
		if v.UV != CornerOffsets[k] {
			t.Errorf("vertex %d UV = %v, want selector %v", k, v.UV, CornerOffsets[k])
		}
		if v.Color != (Color{R: 1}) || v.TextureIndex != SolidTextureIndex {
			t.Errorf("vertex %d attributes = %+v", k, v)
		}
	}
}

func TestExpandVertexInstanceSelection(t *testing.T) {
	instances := []Instance{
		{Position: Vec2{0, 0}, Size: Vec2{1, 1}, Fill: SolidFill(Color{})},
		{Position: Vec2{100, 200}, Size: Vec2{1, 1}, Fill: TextureFill(4)},
	}
	// Vertex 6 is the first vertex of the second instance.
	v := ExpandVertex(6, instances, Identity())
	if v.ClipPosition[0] != 100 || v.ClipPosition[1] != 200 {
		t.Errorf("vertex 6 position = (%v, %v), want (100, 200)",
			v.ClipPosition[0], v.ClipPosition[1])
	}
	if v.TextureIndex != 4 {
		t.Errorf("vertex 6 texture index = %d, want 4", v.TextureIndex)
	}
}

func TestExpandZeroSizeInstance(t *testing.T) {
	instances := []Instance{{Position: Vec2{5, 7}, Size: Vec2{0, 0}, Fill: SolidFill(Color{})}}
	verts := ExpandInstance(0, instances, Identity())
	for k, v := range verts {
		if v.ClipPosition[0] != 5 || v.ClipPosition[1] != 7 {
			t.Errorf("vertex %d of zero-size instance = (%v, %v), want (5, 7)",
				k, v.ClipPosition[0], v.ClipPosition[1])
		}
	}
}

func TestCornerOffsetsCoverRectangle(t *testing.T) {
	seen := map[Vec2]int{}
	for _, sel := range CornerOffsets {
		seen[sel]++
	}
	// Shared diagonal corners appear twice, the others once.
	wants := map[Vec2]int{
		{0, 0}: 1, {1, 0}: 2, {0, 1}: 2, {1, 1}: 1,
	}
	for corner, n := range wants {
		if seen[corner] != n {
			t.Errorf("corner %v appears %d times, want %d", corner, seen[corner], n)
		}
	}
}
