package vtf

import "fmt"

// ImageFormat identifies one of the pixel data layouts a container can
// declare. The numeric values are part of the file format.
type ImageFormat int32

const (
	FormatRGBA8888 ImageFormat = iota
	FormatABGR8888
	FormatRGB888
	FormatBGR888
	FormatRGB565
	FormatI8
	FormatIA88
	FormatP8
	FormatA8
	FormatRGB888Bluescreen
	FormatBGR888Bluescreen
	FormatARGB8888
	FormatBGRA8888
	FormatDXT1
	FormatDXT3
	FormatDXT5
	FormatBGRX8888
	FormatBGR565
	FormatBGRX5551
	FormatBGRA4444
	FormatDXT1OneBitAlpha
	FormatBGRA5551
	FormatUV88
	FormatUVWQ8888
	FormatRGBA16161616F
	FormatRGBA16161616
	FormatUVLX8888
	formatCount

	// FormatNone marks an absent image, serialized as 0xFFFFFFFF. The
	// thumbnail slot uses it when no thumbnail is stored.
	FormatNone ImageFormat = -1
)

// formatInfo is one registry row. Exactly one of bytesPerPixel and
// blockBytes is nonzero for every declared format.
type formatInfo struct {
	name          string
	bytesPerPixel int
	blockBytes    int
	alpha         bool
}

var formats = [formatCount]formatInfo{
	FormatRGBA8888:         {"RGBA8888", 4, 0, true},
	FormatABGR8888:         {"ABGR8888", 4, 0, true},
	FormatRGB888:           {"RGB888", 3, 0, false},
	FormatBGR888:           {"BGR888", 3, 0, false},
	FormatRGB565:           {"RGB565", 2, 0, false},
	FormatI8:               {"I8", 1, 0, false},
	FormatIA88:             {"IA88", 2, 0, true},
	FormatP8:               {"P8", 1, 0, false},
	FormatA8:               {"A8", 1, 0, true},
	FormatRGB888Bluescreen: {"RGB888_BLUESCREEN", 3, 0, false},
	FormatBGR888Bluescreen: {"BGR888_BLUESCREEN", 3, 0, false},
	FormatARGB8888:         {"ARGB8888", 4, 0, true},
	FormatBGRA8888:         {"BGRA8888", 4, 0, true},
	FormatDXT1:             {"DXT1", 0, 8, false},
	FormatDXT3:             {"DXT3", 0, 16, true},
	FormatDXT5:             {"DXT5", 0, 16, true},
	FormatBGRX8888:         {"BGRX8888", 4, 0, false},
	FormatBGR565:           {"BGR565", 2, 0, false},
	FormatBGRX5551:         {"BGRX5551", 2, 0, false},
	FormatBGRA4444:         {"BGRA4444", 2, 0, true},
	FormatDXT1OneBitAlpha:  {"DXT1_ONEBITALPHA", 0, 8, true},
	FormatBGRA5551:         {"BGRA5551", 2, 0, true},
	FormatUV88:             {"UV88", 2, 0, false},
	FormatUVWQ8888:         {"UVWQ8888", 4, 0, false},
	FormatRGBA16161616F:    {"RGBA16161616F", 8, 0, true},
	FormatRGBA16161616:     {"RGBA16161616", 8, 0, true},
	FormatUVLX8888:         {"UVLX8888", 4, 0, false},
}

func (f ImageFormat) valid() bool { return f >= 0 && f < formatCount }

// String returns the format's conventional name.
func (f ImageFormat) String() string {
	if f == FormatNone {
		return "NONE"
	}
	if !f.valid() {
		return fmt.Sprintf("ImageFormat(%d)", int32(f))
	}
	return formats[f].name
}

// BytesPerPixel returns the per-pixel byte width of an uncompressed
// format, or 0 for block-compressed and unknown formats.
func (f ImageFormat) BytesPerPixel() int {
	if !f.valid() {
		return 0
	}
	return formats[f].bytesPerPixel
}

// BlockBytes returns the byte size of one 4x4 block of a compressed
// format, or 0 for uncompressed and unknown formats.
func (f ImageFormat) BlockBytes() int {
	if !f.valid() {
		return 0
	}
	return formats[f].blockBytes
}

// IsCompressed reports whether f is one of the DXT block formats.
func (f ImageFormat) IsCompressed() bool { return f.BlockBytes() != 0 }

// HasAlpha reports whether the format carries an alpha channel.
func (f ImageFormat) HasAlpha() bool {
	if !f.valid() {
		return false
	}
	return formats[f].alpha
}

// ImageSize returns the byte size of a single width x height plane in
// this format. Compressed formats round both dimensions up to whole 4x4
// blocks; dimensions below 1 are clamped to 1. Unknown formats yield 0,
// which callers must treat as "cannot compute" and fail upstream.
func (f ImageFormat) ImageSize(width, height int) int {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if !f.valid() {
		return 0
	}
	if bb := formats[f].blockBytes; bb != 0 {
		return ((width + 3) / 4) * ((height + 3) / 4) * bb
	}
	return width * height * formats[f].bytesPerPixel
}
