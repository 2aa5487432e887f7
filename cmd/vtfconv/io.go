package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// zstdMagic is the zstd frame header. Compressed containers are detected
// by content, not extension.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// readContainer loads a VTF file, unpacking it first when the content is
// a zstd frame.
func readContainer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) >= len(zstdMagic) && bytes.Equal(data[:len(zstdMagic)], zstdMagic) {
		data, err = zstd.Decompress(nil, data)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}
	return data, nil
}

// writeContainer stores an encoded VTF, compressing it when the output
// path ends in .zst.
func writeContainer(path string, data []byte, level int) error {
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		compressed, err := zstd.CompressLevel(nil, data, level)
		if err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
		data = compressed
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// resample applies -resize and -pow2 before encoding. An explicit WxH
// wins over pow2 rounding.
func resample(img image.Image, spec string, pow2 bool) (image.Image, error) {
	if spec != "" {
		var w, h int
		if _, err := fmt.Sscanf(spec, "%dx%d", &w, &h); err != nil || w < 1 || h < 1 {
			return nil, fmt.Errorf("bad -resize value %q, want WxH", spec)
		}
		return resize.Resize(uint(w), uint(h), img, resize.Lanczos3), nil
	}
	if pow2 {
		b := img.Bounds()
		w, h := nextPow2(b.Dx()), nextPow2(b.Dy())
		if w != b.Dx() || h != b.Dy() {
			return resize.Resize(uint(w), uint(h), img, resize.Lanczos3), nil
		}
	}
	return img, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// replaceExt swaps the file extension, collapsing a trailing .zst first
// so foo.vtf.zst becomes foo.png rather than foo.vtf.png.
func replaceExt(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func isContainerPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".vtf") || strings.HasSuffix(lower, ".vtf.zst")
}

func isRasterPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return true
	}
	return false
}

// imageHasAlpha reports whether the raster carries any transparency.
func imageHasAlpha(img image.Image) bool {
	if op, ok := img.(interface{ Opaque() bool }); ok {
		return !op.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xFFFF {
				return true
			}
		}
	}
	return false
}
