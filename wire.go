package rectbatch

import (
	"encoding/binary"
	"math"
)

// Wire layout of one instance record, matching the Rect struct in the
// WGSL storage buffer:
//
//	position: vec2<f32>  offset  0
//	size:     vec2<f32>  offset  8
//	color:    vec3<f32>  offset 16 (vec3 aligns to 16)
//	tex:      i32        offset 28
//
// Stride is 32 bytes; instance i occupies bytes [32i, 32i+32).
const (
	// InstanceStride is the size in bytes of one encoded instance.
	InstanceStride = 32

	instOffPosition = 0
	instOffSize     = 8
	instOffColor    = 16
	instOffTexIndex = 28
)

// EncodeInstances marshals instances into the storage-buffer wire format,
// preserving order. This is the boundary where host-side invariants are
// enforced: a textured fill with a negative index or a negative size is
// rejected here even if the caller bypassed Batch.Add.
//
// An empty slice encodes to an empty buffer.
func EncodeInstances(instances []Instance) ([]byte, error) {
	buf := make([]byte, len(instances)*InstanceStride)
	for i, in := range instances {
		if err := in.validate(); err != nil {
			return nil, err
		}
		putInstance(buf[i*InstanceStride:], in)
	}
	return buf, nil
}

// putInstance writes one 32-byte record into buf.
func putInstance(buf []byte, in Instance) {
	color, texIndex := in.Fill.lower()

	putF32(buf[instOffPosition:], in.Position.X)
	putF32(buf[instOffPosition+4:], in.Position.Y)
	putF32(buf[instOffSize:], in.Size.X)
	putF32(buf[instOffSize+4:], in.Size.Y)
	putF32(buf[instOffColor:], color.R)
	putF32(buf[instOffColor+4:], color.G)
	putF32(buf[instOffColor+8:], color.B)
	binary.LittleEndian.PutUint32(buf[instOffTexIndex:], uint32(texIndex))
}

// DecodeInstances is the inverse of EncodeInstances, reconstructing the
// fill union from the sentinel. Used to verify the wire round trip; the
// GPU never needs it.
func DecodeInstances(buf []byte) ([]Instance, error) {
	if len(buf)%InstanceStride != 0 {
		return nil, ErrTruncatedWire
	}
	n := len(buf) / InstanceStride
	out := make([]Instance, n)
	for i := 0; i < n; i++ {
		rec := buf[i*InstanceStride:]
		texIndex := int32(binary.LittleEndian.Uint32(rec[instOffTexIndex:]))
		if texIndex < SolidTextureIndex {
			return nil, ErrInvalidTextureIndex
		}
		var fill Fill
		if texIndex == SolidTextureIndex {
			fill = SolidFill(Color{
				R: getF32(rec[instOffColor:]),
				G: getF32(rec[instOffColor+4:]),
				B: getF32(rec[instOffColor+8:]),
			})
		} else {
			fill = TextureFill(texIndex)
		}
		out[i] = Instance{
			Position: Vec2{X: getF32(rec[instOffPosition:]), Y: getF32(rec[instOffPosition+4:])},
			Size:     Vec2{X: getF32(rec[instOffSize:]), Y: getF32(rec[instOffSize+4:])},
			Fill:     fill,
		}
	}
	return out, nil
}

// EncodeMat4 marshals a projection matrix into the 64-byte uniform
// layout (column-major, little-endian floats).
func EncodeMat4(m Mat4) []byte {
	buf := make([]byte, 64)
	for i, v := range m {
		putF32(buf[i*4:], v)
	}
	return buf
}

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func getF32(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}
