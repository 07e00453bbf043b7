package rectbatch

// Instance describes one rectangle in a batch.
//
// Position is the top-left corner in logical units; Size is the extent.
// Size must be non-negative; a zero-area instance is legal and produces
// degenerate triangles that rasterize to nothing.
type Instance struct {
	Position Vec2
	Size     Vec2
	Fill     Fill
}

// validate checks the instance contract: non-negative size and a texture
// index not below the solid sentinel.
func (in Instance) validate() error {
	if in.Size.X < 0 || in.Size.Y < 0 {
		return ErrNegativeSize
	}
	if idx, ok := in.Fill.TextureIndex(); ok && idx < 0 {
		return ErrInvalidTextureIndex
	}
	return nil
}

// Batch accumulates rectangle instances for one frame. Instances keep
// their submission order; with no depth buffer, later instances paint
// over earlier ones.
//
// A Batch is not safe for concurrent use.
type Batch struct {
	instances []Instance
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Add appends an instance to the batch. It returns ErrNegativeSize if
// the size has a negative component and ErrInvalidTextureIndex if a
// textured fill carries a negative index.
func (b *Batch) Add(in Instance) error {
	if err := in.validate(); err != nil {
		return err
	}
	b.instances = append(b.instances, in)
	return nil
}

// Len returns the number of instances in the batch.
func (b *Batch) Len() int {
	return len(b.instances)
}

// Clear removes all instances, keeping the allocation for reuse across
// frames.
func (b *Batch) Clear() {
	b.instances = b.instances[:0]
}

// Instances returns the instances in submission order. The slice is
// owned by the batch; callers must not retain it past the next Add or
// Clear.
func (b *Batch) Instances() []Instance {
	return b.instances
}

// Encode marshals the batch into the GPU wire format.
func (b *Batch) Encode() ([]byte, error) {
	return EncodeInstances(b.instances)
}

// VertexCount returns the number of vertices the GPU draw call covers:
// six per instance.
func (b *Batch) VertexCount() uint32 {
	return uint32(len(b.instances)) * VerticesPerInstance
}
