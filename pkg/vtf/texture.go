package vtf

import (
	"fmt"
	"image"
)

// Texture is a parsed container. It borrows the buffer it was parsed
// from and decodes planes on demand into fresh RGBA8888 buffers; the
// caller must not mutate the buffer while the Texture is in use.
type Texture struct {
	header     Header
	resources  []Resource
	data       []byte
	frames     int
	mips       int
	dataOffset int
}

// Parse validates a container and prepares (frame, mip) plane access.
// The whole high-res payload must be present in data; a header that
// describes more image data than the buffer holds is rejected with
// ErrInsufficientData.
func Parse(data []byte) (*Texture, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedInput, len(data), HeaderSize)
	}
	var h Header
	h.DecodeFrom(data)
	if err := h.Validate(); err != nil {
		return nil, err
	}

	t := &Texture{
		header: h,
		data:   data,
		frames: int(h.Frames),
		mips:   int(h.MipmapCount),
	}
	// Zero counts occur in the wild and mean "one".
	if t.frames < 1 {
		t.frames = 1
	}
	if t.mips < 1 {
		t.mips = 1
	}

	if h.VersionMinor >= 3 && h.ResourceCount > 0 {
		need := HeaderSize + 8*int(h.ResourceCount)
		if int(h.HeaderLength) < need {
			return nil, fmt.Errorf("%w: %d resources do not fit declared header size %d",
				ErrInvalidHeader, h.ResourceCount, h.HeaderLength)
		}
		if len(data) < need {
			return nil, fmt.Errorf("%w: resource dictionary needs %d bytes, have %d",
				ErrTruncatedInput, need, len(data))
		}
		t.resources = parseResources(data, int(h.ResourceCount))
	}

	// Image data follows the declared header and the thumbnail, if any.
	t.dataOffset = int(h.HeaderLength)
	if h.LowResFormat != FormatNone && h.LowResWidth > 0 && h.LowResHeight > 0 {
		thumb := h.LowResFormat.ImageSize(int(h.LowResWidth), int(h.LowResHeight))
		if thumb == 0 {
			return nil, fmt.Errorf("%w: thumbnail format %s", ErrUnsupportedPixelFormat, h.LowResFormat)
		}
		t.dataOffset += thumb
	}

	total := 0
	for mip := 0; mip < t.mips; mip++ {
		mw, mh := t.MipSize(mip)
		total += h.Format.ImageSize(mw, mh) * t.frames
	}
	if t.dataOffset+total > len(data) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrInsufficientData, t.dataOffset+total, len(data))
	}
	return t, nil
}

// Header returns a copy of the parsed header.
func (t *Texture) Header() Header { return t.header }

// Resources returns the 7.3+ resource dictionary, or nil for older
// containers.
func (t *Texture) Resources() []Resource { return t.resources }

// Width returns the base image width in pixels.
func (t *Texture) Width() int { return int(t.header.Width) }

// Height returns the base image height in pixels.
func (t *Texture) Height() int { return int(t.header.Height) }

// Frames returns the number of animation frames, at least 1.
func (t *Texture) Frames() int { return t.frames }

// MipmapCount returns the number of stored mip levels, at least 1.
func (t *Texture) MipmapCount() int { return t.mips }

// Format returns the high-res image data format.
func (t *Texture) Format() ImageFormat { return t.header.Format }

// Flags returns the header flag bitset.
func (t *Texture) Flags() TextureFlags { return t.header.Flags }

// HasAlpha reports whether the stored format carries an alpha channel.
func (t *Texture) HasAlpha() bool { return t.header.Format.HasAlpha() }

// MipSize returns the pixel dimensions of a mip level. Level 0 is the
// base image; each level halves both dimensions with a floor of 1.
func (t *Texture) MipSize(mip int) (width, height int) {
	width = int(t.header.Width) >> mip
	height = int(t.header.Height) >> mip
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// planeOffset locates one (frame, mip) plane inside the payload. Levels
// are stored smallest to largest with frames consecutive within a level,
// so the walk skips every level below mip, then frame planes within it.
func (t *Texture) planeOffset(frame, mip int) int {
	offset := t.dataOffset
	for m := t.mips - 1; m > mip; m-- {
		mw, mh := t.MipSize(m)
		offset += t.header.Format.ImageSize(mw, mh) * t.frames
	}
	mw, mh := t.MipSize(mip)
	return offset + frame*t.header.Format.ImageSize(mw, mh)
}

// RGBA decodes one plane to RGBA8888, four bytes per pixel, rows top to
// bottom. When the stored format has no decoder the buffer comes back
// filled with opaque magenta alongside ErrUnsupportedPixelFormat, so
// callers that ignore the error still get a visibly wrong image instead
// of garbage.
func (t *Texture) RGBA(frame, mip int) ([]byte, error) {
	if frame < 0 || frame >= t.frames {
		return nil, fmt.Errorf("vtf: frame %d out of range [0,%d)", frame, t.frames)
	}
	if mip < 0 || mip >= t.mips {
		return nil, fmt.Errorf("vtf: mip %d out of range [0,%d)", mip, t.mips)
	}

	w, h := t.MipSize(mip)
	dst := make([]byte, w*h*4)

	size := t.header.Format.ImageSize(w, h)
	if size == 0 {
		fillMagenta(dst)
		return dst, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, t.header.Format)
	}
	off := t.planeOffset(frame, mip)
	if err := convertToRGBA(dst, t.data[off:off+size], w, h, t.header.Format); err != nil {
		return dst, err
	}
	return dst, nil
}

// Image decodes one plane as an image.NRGBA.
func (t *Texture) Image(frame, mip int) (*image.NRGBA, error) {
	pix, err := t.RGBA(frame, mip)
	if err != nil {
		return nil, err
	}
	w, h := t.MipSize(mip)
	return &image.NRGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}, nil
}
