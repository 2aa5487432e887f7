package vtf

import (
	"fmt"

	"github.com/cmg-divined/vtf/pkg/dxt"
)

// blockFormat maps the container's compressed formats onto the dxt codec.
func blockFormat(f ImageFormat) (dxt.Format, bool) {
	switch f {
	case FormatDXT1:
		return dxt.DXT1, true
	case FormatDXT1OneBitAlpha:
		return dxt.DXT1OneBitAlpha, true
	case FormatDXT3:
		return dxt.DXT3, true
	case FormatDXT5:
		return dxt.DXT5, true
	}
	return 0, false
}

// convertToRGBA decodes one stored plane into dst as RGBA8888. dst must
// hold width*height*4 bytes and src exactly the plane size the format
// registry reports. Formats without a decoder fill dst with opaque
// magenta and return ErrUnsupportedPixelFormat.
func convertToRGBA(dst, src []byte, width, height int, format ImageFormat) error {
	if bf, ok := blockFormat(format); ok {
		return dxt.DecodeImage(dst, src, width, height, bf)
	}

	n := width * height
	switch format {
	case FormatRGBA8888:
		copy(dst, src[:n*4])
	case FormatABGR8888:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*4+3]
			dst[i*4+1] = src[i*4+2]
			dst[i*4+2] = src[i*4+1]
			dst[i*4+3] = src[i*4+0]
		}
	case FormatARGB8888:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*4+1]
			dst[i*4+1] = src[i*4+2]
			dst[i*4+2] = src[i*4+3]
			dst[i*4+3] = src[i*4+0]
		}
	case FormatBGRA8888:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*4+2]
			dst[i*4+1] = src[i*4+1]
			dst[i*4+2] = src[i*4+0]
			dst[i*4+3] = src[i*4+3]
		}
	case FormatBGRX8888:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*4+2]
			dst[i*4+1] = src[i*4+1]
			dst[i*4+2] = src[i*4+0]
			dst[i*4+3] = 255
		}
	case FormatRGB888:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*3+0]
			dst[i*4+1] = src[i*3+1]
			dst[i*4+2] = src[i*3+2]
			dst[i*4+3] = 255
		}
	case FormatBGR888:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*3+2]
			dst[i*4+1] = src[i*3+1]
			dst[i*4+2] = src[i*3+0]
			dst[i*4+3] = 255
		}
	case FormatI8:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i]
			dst[i*4+1] = src[i]
			dst[i*4+2] = src[i]
			dst[i*4+3] = 255
		}
	case FormatIA88:
		for i := 0; i < n; i++ {
			dst[i*4+0] = src[i*2+0]
			dst[i*4+1] = src[i*2+0]
			dst[i*4+2] = src[i*2+0]
			dst[i*4+3] = src[i*2+1]
		}
	case FormatA8:
		// Alpha-only renders as white with alpha.
		for i := 0; i < n; i++ {
			dst[i*4+0] = 255
			dst[i*4+1] = 255
			dst[i*4+2] = 255
			dst[i*4+3] = src[i]
		}
	default:
		fillMagenta(dst)
		return fmt.Errorf("%w: cannot decode %s", ErrUnsupportedPixelFormat, format)
	}
	return nil
}

// fillMagenta paints the sentinel color for undecodable content.
func fillMagenta(dst []byte) {
	for i := 0; i+3 < len(dst); i += 4 {
		dst[i+0] = 255
		dst[i+1] = 0
		dst[i+2] = 255
		dst[i+3] = 255
	}
}

// convertFromRGBA encodes an RGBA8888 raster into the target format,
// allocating the output plane. Only formats the writer supports are
// accepted; everything else returns ErrUnsupportedPixelFormat.
func convertFromRGBA(src []byte, width, height int, format ImageFormat) ([]byte, error) {
	if bf, ok := blockFormat(format); ok {
		return dxt.EncodeImage(src, width, height, bf)
	}

	n := width * height
	switch format {
	case FormatRGBA8888:
		out := make([]byte, n*4)
		copy(out, src[:n*4])
		return out, nil
	case FormatBGRA8888:
		out := make([]byte, n*4)
		for i := 0; i < n; i++ {
			out[i*4+0] = src[i*4+2]
			out[i*4+1] = src[i*4+1]
			out[i*4+2] = src[i*4+0]
			out[i*4+3] = src[i*4+3]
		}
		return out, nil
	case FormatRGB888:
		out := make([]byte, n*3)
		for i := 0; i < n; i++ {
			out[i*3+0] = src[i*4+0]
			out[i*3+1] = src[i*4+1]
			out[i*3+2] = src[i*4+2]
		}
		return out, nil
	case FormatBGR888:
		out := make([]byte, n*3)
		for i := 0; i < n; i++ {
			out[i*3+0] = src[i*4+2]
			out[i*3+1] = src[i*4+1]
			out[i*3+2] = src[i*4+0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedPixelFormat, format)
}
