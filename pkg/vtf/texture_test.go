package vtf

import (
	"bytes"
	"errors"
	"testing"
)

// testHeader returns a minimal valid 7.2 header.
func testHeader(w, h uint16, format ImageFormat) Header {
	return Header{
		Signature:    Signature,
		VersionMajor: 7,
		VersionMinor: 2,
		HeaderLength: HeaderSize,
		Width:        w,
		Height:       h,
		Frames:       1,
		Format:       format,
		MipmapCount:  1,
		LowResFormat: FormatNone,
		Depth:        1,
	}
}

// buildContainer serializes a header followed by raw payload chunks.
func buildContainer(h Header, payload ...[]byte) []byte {
	buf := make([]byte, h.HeaderLength)
	h.EncodeTo(buf)
	for _, p := range payload {
		buf = append(buf, p...)
	}
	return buf
}

func TestParseErrors(t *testing.T) {
	t.Run("Truncated", func(t *testing.T) {
		if _, err := Parse(make([]byte, 10)); !errors.Is(err, ErrTruncatedInput) {
			t.Errorf("got %v, want ErrTruncatedInput", err)
		}
	})

	t.Run("BadSignature", func(t *testing.T) {
		h := testHeader(4, 4, FormatRGBA8888)
		h.Signature = [4]byte{'V', 'T', 'X', 0}
		if _, err := Parse(buildContainer(h, make([]byte, 64))); !errors.Is(err, ErrBadSignature) {
			t.Errorf("got %v, want ErrBadSignature", err)
		}
	})

	t.Run("InsufficientData", func(t *testing.T) {
		h := testHeader(4, 4, FormatDXT1)
		if _, err := Parse(buildContainer(h)); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("got %v, want ErrInsufficientData", err)
		}
	})

	t.Run("UnknownThumbnailFormat", func(t *testing.T) {
		h := testHeader(1, 1, FormatRGBA8888)
		h.LowResFormat = ImageFormat(99)
		h.LowResWidth = 4
		h.LowResHeight = 4
		if _, err := Parse(buildContainer(h, make([]byte, 64))); !errors.Is(err, ErrUnsupportedPixelFormat) {
			t.Errorf("got %v, want ErrUnsupportedPixelFormat", err)
		}
	})
}

// TestConversionVectors pins one pixel of every decodable uncompressed
// layout against its RGBA8888 expansion.
func TestConversionVectors(t *testing.T) {
	cases := []struct {
		format ImageFormat
		src    []byte
		want   []byte
	}{
		{FormatRGBA8888, []byte{1, 2, 3, 4}, []byte{1, 2, 3, 4}},
		{FormatABGR8888, []byte{4, 3, 2, 1}, []byte{1, 2, 3, 4}},
		{FormatARGB8888, []byte{4, 1, 2, 3}, []byte{1, 2, 3, 4}},
		{FormatBGRA8888, []byte{3, 2, 1, 4}, []byte{1, 2, 3, 4}},
		{FormatBGRX8888, []byte{3, 2, 1, 99}, []byte{1, 2, 3, 255}},
		{FormatRGB888, []byte{1, 2, 3}, []byte{1, 2, 3, 255}},
		{FormatBGR888, []byte{3, 2, 1}, []byte{1, 2, 3, 255}},
		{FormatI8, []byte{7}, []byte{7, 7, 7, 255}},
		{FormatIA88, []byte{7, 9}, []byte{7, 7, 7, 9}},
		{FormatA8, []byte{9}, []byte{255, 255, 255, 9}},
	}
	for _, c := range cases {
		t.Run(c.format.String(), func(t *testing.T) {
			data := buildContainer(testHeader(1, 1, c.format), c.src)
			tex, err := Parse(data)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			pix, err := tex.RGBA(0, 0)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !bytes.Equal(pix, c.want) {
				t.Errorf("got %v, want %v", pix, c.want)
			}
		})
	}
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	t.Run("KnownButUndecodable", func(t *testing.T) {
		// P8 sizes fine (1 byte per pixel) but has no decoder.
		data := buildContainer(testHeader(2, 2, FormatP8), make([]byte, 4))
		tex, err := Parse(data)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		pix, err := tex.RGBA(0, 0)
		if !errors.Is(err, ErrUnsupportedPixelFormat) {
			t.Fatalf("got %v, want ErrUnsupportedPixelFormat", err)
		}
		for i := 0; i < 4; i++ {
			if !bytes.Equal(pix[i*4:i*4+4], []byte{255, 0, 255, 255}) {
				t.Fatalf("pixel %d = %v, want opaque magenta", i, pix[i*4:i*4+4])
			}
		}
	})

	t.Run("UnknownValue", func(t *testing.T) {
		data := buildContainer(testHeader(2, 2, ImageFormat(99)))
		tex, err := Parse(data)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		pix, err := tex.RGBA(0, 0)
		if !errors.Is(err, ErrUnsupportedPixelFormat) {
			t.Fatalf("got %v, want ErrUnsupportedPixelFormat", err)
		}
		if !bytes.Equal(pix[0:4], []byte{255, 0, 255, 255}) {
			t.Errorf("pixel 0 = %v, want opaque magenta", pix[0:4])
		}
	})
}

// TestFrameMipLayout pins the payload walk: mip levels smallest to
// largest, frames consecutive within a level.
func TestFrameMipLayout(t *testing.T) {
	h := testHeader(2, 2, FormatRGBA8888)
	h.Frames = 2
	h.MipmapCount = 2

	plane := func(first byte, n int) []byte {
		p := make([]byte, n)
		p[0] = first
		return p
	}
	data := buildContainer(h,
		plane(10, 4),  // mip 1, frame 0 (1x1)
		plane(20, 4),  // mip 1, frame 1
		plane(30, 16), // mip 0, frame 0 (2x2)
		plane(40, 16), // mip 0, frame 1
	)

	tex, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tex.Frames() != 2 || tex.MipmapCount() != 2 {
		t.Fatalf("frames=%d mips=%d, want 2 and 2", tex.Frames(), tex.MipmapCount())
	}

	cases := []struct {
		frame, mip int
		first      byte
	}{
		{0, 1, 10},
		{1, 1, 20},
		{0, 0, 30},
		{1, 0, 40},
	}
	for _, c := range cases {
		pix, err := tex.RGBA(c.frame, c.mip)
		if err != nil {
			t.Fatalf("RGBA(%d, %d): %v", c.frame, c.mip, err)
		}
		if pix[0] != c.first {
			t.Errorf("RGBA(%d, %d)[0] = %d, want %d", c.frame, c.mip, pix[0], c.first)
		}
	}

	if _, err := tex.RGBA(2, 0); err == nil {
		t.Error("expected error for frame out of range")
	}
	if _, err := tex.RGBA(0, 2); err == nil {
		t.Error("expected error for mip out of range")
	}
	if _, err := tex.RGBA(-1, 0); err == nil {
		t.Error("expected error for negative frame")
	}
}

func TestThumbnailOffset(t *testing.T) {
	// A 4x4 DXT1 thumbnail pushes the image data back 8 bytes.
	h := testHeader(1, 1, FormatRGBA8888)
	h.LowResFormat = FormatDXT1
	h.LowResWidth = 4
	h.LowResHeight = 4

	data := buildContainer(h, make([]byte, 8), []byte{5, 6, 7, 8})
	tex, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	pix, err := tex.RGBA(0, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(pix, []byte{5, 6, 7, 8}) {
		t.Errorf("got %v, want [5 6 7 8]", pix)
	}
}

func TestDeclaredHeaderLength(t *testing.T) {
	// Image data follows the declared header size, not the struct size.
	h := testHeader(1, 1, FormatRGBA8888)
	h.HeaderLength = 96

	data := buildContainer(h, []byte{5, 6, 7, 8})
	if len(data) != 100 {
		t.Fatalf("container length = %d, want 100", len(data))
	}
	tex, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	pix, err := tex.RGBA(0, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(pix, []byte{5, 6, 7, 8}) {
		t.Errorf("got %v, want [5 6 7 8]", pix)
	}
}

func TestResources(t *testing.T) {
	t.Run("Parse", func(t *testing.T) {
		h := testHeader(1, 1, FormatRGBA8888)
		h.VersionMinor = 3
		h.ResourceCount = 2
		h.HeaderLength = HeaderSize + 16

		entries := []byte{
			'C', 'R', 'C', 0x02, 0x78, 0x56, 0x34, 0x12, // inline CRC value
			0x30, 0x00, 0x00, 0x00, 0x60, 0x00, 0x00, 0x00, // high-res image at 0x60
		}
		data := buildContainer(h)
		copy(data[HeaderSize:], entries)
		data = append(data, 5, 6, 7, 8)

		tex, err := Parse(data)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		res := tex.Resources()
		if len(res) != 2 {
			t.Fatalf("resource count = %d, want 2", len(res))
		}
		if res[0].Tag != TagCRC || res[0].Flags != ResourceFlagNoData || res[0].Offset != 0x12345678 {
			t.Errorf("resource 0 = %+v", res[0])
		}
		if res[0].Name() != "CRC" {
			t.Errorf("resource 0 name = %q", res[0].Name())
		}
		if res[1].Tag != TagHighResImage || res[1].Offset != 0x60 {
			t.Errorf("resource 1 = %+v", res[1])
		}
		if res[1].Name() != "high-res image" {
			t.Errorf("resource 1 name = %q", res[1].Name())
		}

		// Image data still follows the legacy arithmetic.
		pix, err := tex.RGBA(0, 0)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !bytes.Equal(pix, []byte{5, 6, 7, 8}) {
			t.Errorf("got %v, want [5 6 7 8]", pix)
		}
	})

	t.Run("TruncatedDictionary", func(t *testing.T) {
		h := testHeader(1, 1, FormatRGBA8888)
		h.VersionMinor = 3
		h.ResourceCount = 2
		h.HeaderLength = HeaderSize + 16

		data := make([]byte, HeaderSize+5)
		h.EncodeTo(data)
		if _, err := Parse(data); !errors.Is(err, ErrTruncatedInput) {
			t.Errorf("got %v, want ErrTruncatedInput", err)
		}
	})

	t.Run("CountBeyondDeclaredHeader", func(t *testing.T) {
		h := testHeader(1, 1, FormatRGBA8888)
		h.VersionMinor = 3
		h.ResourceCount = 2
		// HeaderLength stays 80, too small for two entries.

		data := buildContainer(h, make([]byte, 64))
		if _, err := Parse(data); !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("got %v, want ErrInvalidHeader", err)
		}
	})
}

func TestZeroCountsClampToOne(t *testing.T) {
	h := testHeader(1, 1, FormatRGBA8888)
	h.Frames = 0
	h.MipmapCount = 0

	tex, err := Parse(buildContainer(h, []byte{1, 2, 3, 4}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tex.Frames() != 1 || tex.MipmapCount() != 1 {
		t.Errorf("frames=%d mips=%d, want 1 and 1", tex.Frames(), tex.MipmapCount())
	}
	if _, err := tex.RGBA(0, 0); err != nil {
		t.Errorf("decode: %v", err)
	}
}

func TestMipSize(t *testing.T) {
	h := testHeader(20, 5, FormatRGBA8888)
	h.MipmapCount = 5
	tex := &Texture{header: h, mips: 5, frames: 1}

	cases := []struct {
		mip  int
		w, h int
	}{
		{0, 20, 5},
		{1, 10, 2},
		{2, 5, 1},
		{3, 2, 1},
		{4, 1, 1},
	}
	for _, c := range cases {
		w, hh := tex.MipSize(c.mip)
		if w != c.w || hh != c.h {
			t.Errorf("MipSize(%d) = %dx%d, want %dx%d", c.mip, w, hh, c.w, c.h)
		}
	}
}

func TestParseHeaderOp(t *testing.T) {
	h := testHeader(64, 32, FormatDXT5)
	h.Flags = FlagEightBitAlpha
	h.MipmapCount = 7

	got, err := ParseHeader(buildContainer(h))
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if got != h {
		t.Errorf("mismatch: got %+v, want %+v", got, h)
	}

	if _, err := ParseHeader(make([]byte, 16)); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("got %v, want ErrTruncatedInput", err)
	}
}

func TestDecodeToRGBA(t *testing.T) {
	src := []byte{9, 8, 7, 6}
	data := buildContainer(testHeader(1, 1, FormatRGBA8888), src)

	w, h, hasAlpha, pix, err := DecodeToRGBA(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w != 1 || h != 1 {
		t.Errorf("dimensions = %dx%d, want 1x1", w, h)
	}
	if !hasAlpha {
		t.Error("hasAlpha = false for RGBA8888")
	}
	if !bytes.Equal(pix, src) {
		t.Errorf("got %v, want %v", pix, src)
	}
}

func TestImageAccessor(t *testing.T) {
	data := buildContainer(testHeader(2, 1, FormatRGBA8888), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	tex, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	img, err := tex.Image(0, 0)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if img.Rect.Dx() != 2 || img.Rect.Dy() != 1 {
		t.Errorf("bounds = %v, want 2x1", img.Rect)
	}
	if !bytes.Equal(img.Pix, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("pix = %v", img.Pix)
	}
}
