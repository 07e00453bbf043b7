package rectbatch

// VerticesPerInstance is the number of vertices the vertex stage derives
// from each instance: two triangles covering the rectangle.
const VerticesPerInstance = 6

// CornerOffsets is the constant corner-selector table shared by position
// and UV derivation. Entry k selects the corner for vertex k within an
// instance, as a (0..1, 0..1) factor of the rectangle's size:
//
//	0 top-left, 1 top-right, 2 bottom-left   (first triangle)
//	3 bottom-left, 4 bottom-right, 5 top-right (second triangle)
//
// The shader carries the identical table; because one selector drives
// both the corner position and the UV, their correspondence cannot
// drift.
var CornerOffsets = [VerticesPerInstance]Vec2{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: 0},
}

// Vertex is the expanded output of the vertex stage for one vertex:
// clip-space position plus the attributes interpolated (UV) or passed
// flat (color, texture index) to the fragment stage.
type Vertex struct {
	ClipPosition [4]float32
	UV           Vec2
	Color        Color
	TextureIndex int32
}

// ExpandVertex mirrors the GPU vertex stage for vertex vertexIndex of a
// batch: instance = index/6, corner = index%6, position = instance
// position plus selector times size, transformed by the projection. The
// UV is the selector itself.
//
// The GPU derives everything below from the storage buffer and the
// vertex index alone; this mirror exists so the expansion arithmetic is
// testable without a device.
func ExpandVertex(vertexIndex uint32, instances []Instance, projection Mat4) Vertex {
	in := instances[vertexIndex/VerticesPerInstance]
	sel := CornerOffsets[vertexIndex%VerticesPerInstance]
	corner := in.Position.Add(sel.Scale(in.Size))
	color, texIndex := in.Fill.lower()
	return Vertex{
		ClipPosition: projection.TransformPoint(corner),
		UV:           sel,
		Color:        color,
		TextureIndex: texIndex,
	}
}

// ExpandInstance expands all six vertices of instance i.
func ExpandInstance(i int, instances []Instance, projection Mat4) [VerticesPerInstance]Vertex {
	var out [VerticesPerInstance]Vertex
	base := uint32(i) * VerticesPerInstance
	for k := uint32(0); k < VerticesPerInstance; k++ {
		out[k] = ExpandVertex(base+k, instances, projection)
	}
	return out
}
