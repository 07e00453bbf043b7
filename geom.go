package rectbatch

// Vec2 represents a 2D vector or point in logical (pixel) space.
// Components are float32 to match the GPU wire format exactly.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Scale returns the component-wise product of two vectors.
// Used by vertex expansion: corner = position + selector * size.
func (v Vec2) Scale(w Vec2) Vec2 {
	return Vec2{X: v.X * w.X, Y: v.Y * w.Y}
}

// Mat4 is a 4×4 matrix stored column-major, matching the memory layout
// of a WGSL mat4x4<f32>. Element (row, col) lives at index col*4+row.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns the matrix product m × n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 transforms a 4-component vector by the matrix.
func (m Mat4) MulVec4(v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[0*4+row]*v[0] + m[1*4+row]*v[1] + m[2*4+row]*v[2] + m[3*4+row]*v[3]
	}
	return out
}

// TransformPoint transforms a 2D point (z=0, w=1) and returns the full
// clip-space result. This is exactly what the vertex stage computes.
func (m Mat4) TransformPoint(p Vec2) [4]float32 {
	return m.MulVec4([4]float32{p.X, p.Y, 0, 1})
}

// Ortho returns an orthographic projection matrix with OpenGL clip-space
// depth conventions (z in [-1, 1]).
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return Mat4{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, -2 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -(far + near) / fn, 1,
	}
}

// openGLToWGPU converts OpenGL clip-space depth ([-1, 1]) to the WebGPU
// convention ([0, 1]). X and Y pass through unchanged.
func openGLToWGPU() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0.5, 0,
		0, 0, 0.5, 1,
	}
}

// Ortho2D returns the projection for a pixel-space viewport of the given
// size: origin at the top-left, x right, y down, mapped to WebGPU clip
// space. This is the matrix a typical 2D application uploads to the
// projection uniform, recomputed on every resize.
func Ortho2D(width, height float32) Mat4 {
	return openGLToWGPU().Mul(Ortho(0, width, height, 0, -1, 1))
}
