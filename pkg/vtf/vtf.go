// Package vtf implements the Valve Texture Format, the compiled texture
// container consumed by Source engine games.
//
// A container is an 80-byte little-endian header followed by an optional
// low-resolution thumbnail and the high-resolution image data: every
// mipmap level from smallest to largest, each level holding one plane per
// animation frame. Planes are stored in one of the format's declared
// pixel layouts, most commonly the DXT block-compressed family.
//
// Parse reads a container and exposes any (frame, mip) plane as RGBA8888.
// Encoder builds new containers from RGBA8888 input, optionally
// generating a box-filtered mipmap chain. The package registers itself
// with the standard image package, so image.Decode recognizes VTF data by
// its magic bytes.
//
// All operations work on in-memory byte buffers; the package performs no
// I/O and keeps no state between calls.
package vtf

// ParseHeader reads and validates the fixed header without touching the
// image data. Use Parse to access pixel planes.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.UnmarshalBinary(data); err != nil {
		return Header{}, err
	}
	return h, nil
}

// DecodeToRGBA parses a container and decodes its base image (frame 0,
// mip 0) to RGBA8888. On ErrUnsupportedPixelFormat the returned buffer is
// valid but filled with opaque magenta; see Texture.RGBA.
func DecodeToRGBA(data []byte) (width, height int, hasAlpha bool, pix []byte, err error) {
	t, err := Parse(data)
	if err != nil {
		return 0, 0, false, nil, err
	}
	pix, err = t.RGBA(0, 0)
	return t.Width(), t.Height(), t.HasAlpha(), pix, err
}

// EncodeFromRGBA serializes an RGBA8888 raster as a single-frame
// container in the given format. hasAlpha declares whether the input
// carries meaningful alpha; an opaque image requested as DXT5 is stored
// as DXT1 instead.
func EncodeFromRGBA(pix []byte, width, height int, hasAlpha bool, format ImageFormat, flags TextureFlags, generateMipmaps bool) ([]byte, error) {
	enc := NewEncoder(WithFormat(format), WithFlags(flags), WithMipmaps(generateMipmaps))
	return enc.Encode(pix, width, height, hasAlpha)
}

// EstimateEncodedSize returns the exact size of a single-frame container
// holding a full mip chain at the given format: the fixed header plus
// every level from width x height down to 1x1. Unknown formats contribute
// nothing per level.
func EstimateEncodedSize(width, height int, format ImageFormat) int {
	size := HeaderSize
	w, h := width, height
	for {
		size += format.ImageSize(w, h)
		if w <= 1 && h <= 1 {
			break
		}
		w, h = mipHalve(w), mipHalve(h)
	}
	return size
}
