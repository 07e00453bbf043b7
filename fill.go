package rectbatch

// SolidTextureIndex is the sentinel written to the wire format for solid
// fills. The fragment stage routes on it: -1 means "use the instance
// color", any non-negative value means "sample pool layer N".
const SolidTextureIndex int32 = -1

// FillKind discriminates the two fill variants.
type FillKind uint8

const (
	// FillSolid paints the rectangle with the instance color.
	FillSolid FillKind = iota

	// FillTexture samples a texture pool layer across the rectangle.
	FillTexture
)

// Fill describes how a rectangle is painted: either a solid color or a
// texture pool entry, never both. The zero value is an opaque black
// solid fill.
//
// Keeping this a tagged union makes the invalid state (color and texture
// index both set) unrepresentable on the host side; the wire encoder
// lowers it to the flat sentinel encoding the shader reads.
type Fill struct {
	kind  FillKind
	color Color
	index int32
}

// SolidFill returns a solid-color fill.
func SolidFill(c Color) Fill {
	return Fill{kind: FillSolid, color: c}
}

// TextureFill returns a fill that samples the texture pool layer at the
// given index. The index is validated when the instance is added to a
// batch or encoded.
func TextureFill(index int32) Fill {
	return Fill{kind: FillTexture, index: index}
}

// Kind returns the fill variant.
func (f Fill) Kind() FillKind {
	return f.kind
}

// Color returns the solid color and true for solid fills, or a zero
// color and false for textured fills.
func (f Fill) Color() (Color, bool) {
	if f.kind != FillSolid {
		return Color{}, false
	}
	return f.color, true
}

// TextureIndex returns the pool index and true for textured fills, or
// zero and false for solid fills.
func (f Fill) TextureIndex() (int32, bool) {
	if f.kind != FillTexture {
		return 0, false
	}
	return f.index, true
}

// lower flattens the union into the wire representation: the color that
// goes on the wire and the texture index (SolidTextureIndex for solid).
// Textured instances carry a zero color; the shader ignores it.
func (f Fill) lower() (Color, int32) {
	if f.kind == FillSolid {
		return f.color, SolidTextureIndex
	}
	return Color{}, f.index
}
