package vtf

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("vtf", "VTF\x00", Decode, DecodeConfig)
}

// Decode reads a container from r and returns its base image (frame 0,
// mip 0). It participates in image.Decode via the magic registered at
// package init.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return t.Image(0, 0)
}

// DecodeConfig returns dimensions and color model without decoding any
// pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return image.Config{}, fmt.Errorf("%w: %v", ErrTruncatedInput, err)
	}
	var h Header
	if err := h.UnmarshalBinary(buf[:]); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(h.Width),
		Height:     int(h.Height),
	}, nil
}

// Encode writes m to w as a single-frame container, converting through
// RGBA8888 first. Alpha is declared from the image's own opacity, so an
// opaque image encodes as DXT1 under the default options.
func Encode(w io.Writer, m image.Image, opts ...EncoderOption) error {
	bounds := m.Bounds()
	pix, hasAlpha := rasterize(m)
	data, err := NewEncoder(opts...).Encode(pix, bounds.Dx(), bounds.Dy(), hasAlpha)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// rasterize flattens any image into a top-left-origin RGBA8888 buffer
// and reports whether any pixel is less than fully opaque.
func rasterize(m image.Image) ([]byte, bool) {
	bounds := m.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, w*h*4)

	if n, ok := m.(*image.NRGBA); ok && n.Stride == w*4 {
		copy(pix, n.Pix)
		return pix, !n.Opaque()
	}

	hasAlpha := false
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			pix[i+0] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
			if c.A != 255 {
				hasAlpha = true
			}
			i += 4
		}
	}
	return pix, hasAlpha
}
