package vtf

import "fmt"

// Encoder serializes RGBA8888 rasters as version 7.2 containers. The
// zero value is not ready to use; NewEncoder applies the defaults (DXT5,
// full mip chain, neutral reflectivity, bump scale 1).
type Encoder struct {
	format       ImageFormat
	flags        TextureFlags
	mipmaps      bool
	reflectivity [3]float32
	bumpScale    float32
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithFormat selects the stored pixel format. The writer supports the
// DXT family plus RGBA8888, BGRA8888, RGB888 and BGR888.
func WithFormat(f ImageFormat) EncoderOption {
	return func(e *Encoder) { e.format = f }
}

// WithFlags stores the header flag bitset verbatim.
func WithFlags(f TextureFlags) EncoderOption {
	return func(e *Encoder) { e.flags = f }
}

// WithMipmaps controls generation of the mip chain. Disabled, the
// container stores only the base level.
func WithMipmaps(generate bool) EncoderOption {
	return func(e *Encoder) { e.mipmaps = generate }
}

// WithReflectivity overrides the default (0.5, 0.5, 0.5) reflectivity.
func WithReflectivity(r, g, b float32) EncoderOption {
	return func(e *Encoder) { e.reflectivity = [3]float32{r, g, b} }
}

// WithBumpScale overrides the default bump scale of 1.
func WithBumpScale(s float32) EncoderOption {
	return func(e *Encoder) { e.bumpScale = s }
}

// NewEncoder returns an Encoder with opts applied over the defaults.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{
		format:       FormatDXT5,
		mipmaps:      true,
		reflectivity: [3]float32{0.5, 0.5, 0.5},
		bumpScale:    1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode serializes pix (RGBA8888, width*height*4 bytes) as a
// single-frame container without a thumbnail. hasAlpha declares whether
// the input carries meaningful alpha: an opaque image requested as DXT5
// is stored as DXT1, halving its size. Mip levels are written smallest
// first, the base image last.
func (e *Encoder) Encode(pix []byte, width, height int, hasAlpha bool) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("vtf: invalid dimensions %dx%d", width, height)
	}
	if width > 0xFFFF || height > 0xFFFF {
		return nil, fmt.Errorf("vtf: dimensions %dx%d exceed 16-bit limit", width, height)
	}
	if need := width * height * 4; len(pix) < need {
		return nil, fmt.Errorf("vtf: short pixel buffer: %d bytes, need %d", len(pix), need)
	}

	format := e.format
	if !hasAlpha && format == FormatDXT5 {
		format = FormatDXT1
	}
	if !encodable(format) {
		return nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedPixelFormat, format)
	}

	chain := generateMipChain(pix, width, height, e.mipmaps)

	h := Header{
		Signature:    Signature,
		VersionMajor: VersionMajor,
		VersionMinor: 2,
		HeaderLength: HeaderSize,
		Width:        uint16(width),
		Height:       uint16(height),
		Flags:        e.flags,
		Frames:       1,
		Reflectivity: e.reflectivity,
		BumpScale:    e.bumpScale,
		Format:       format,
		MipmapCount:  uint8(len(chain)),
		LowResFormat: FormatNone,
		Depth:        1,
	}

	size := HeaderSize
	for _, level := range chain {
		size += format.ImageSize(level.width, level.height)
	}
	out := make([]byte, HeaderSize, size)
	h.EncodeTo(out)

	for mip := len(chain) - 1; mip >= 0; mip-- {
		level := chain[mip]
		plane, err := convertFromRGBA(level.pix, level.width, level.height, format)
		if err != nil {
			return nil, err
		}
		out = append(out, plane...)
	}
	return out, nil
}

// encodable reports whether the writer has a conversion for f.
func encodable(f ImageFormat) bool {
	switch f {
	case FormatRGBA8888, FormatBGRA8888, FormatRGB888, FormatBGR888,
		FormatDXT1, FormatDXT1OneBitAlpha, FormatDXT3, FormatDXT5:
		return true
	}
	return false
}
