// Package rectbatch provides a GPU-driven 2D rectangle batch renderer for Go.
//
// # Overview
//
// rectbatch draws large batches of axis-aligned rectangles in a single draw
// call. The host submits a flat buffer of compact instance records; the GPU
// expands each record into two triangles procedurally in the vertex stage,
// so no per-vertex geometry ever crosses the bus. Each rectangle is either a
// solid color or a sprite sampled from a shared texture pool, selected per
// fragment by a sentinel texture index.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/rectbatch"
//	    "github.com/gogpu/rectbatch/gpu"
//	)
//
//	batch := rectbatch.NewBatch()
//	batch.Add(rectbatch.Instance{
//	    Position: rectbatch.Vec2{X: 10, Y: 30},
//	    Size:     rectbatch.Vec2{X: 10, Y: 15},
//	    Fill:     rectbatch.SolidFill(rectbatch.Color{R: 1}),
//	})
//
//	renderer, _ := gpu.NewRenderer(device, queue, gpu.DefaultConfig(800, 600))
//	err := renderer.Render(batch, rectbatch.Ortho2D(800, 600))
//
// # Architecture
//
// The library is organized into:
//   - Public API: Instance, Fill, Batch, Vec2, Color, Mat4
//   - CPU reference: vertex expansion and fragment resolution mirrors of
//     the shader stages, plus a software rasterizer for verification
//   - gpu: the wgpu/hal pipeline, texture pool, and render session
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - UV (0,0) at a rectangle's top-left corner, (1,1) at its bottom-right
//
// # Rendering Model
//
// One frame is one draw call of 6×N vertices over N instances. Instances
// draw in submission order; later rectangles paint over earlier ones.
// There is no depth buffer and no per-instance transform.
package rectbatch

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
