// Package dxt implements the S3TC block compression family used by GPU
// texture containers: DXT1 (opaque or 1-bit alpha), DXT3 (explicit 4-bit
// alpha) and DXT5 (interpolated alpha).
//
// Images are tiled into 4x4 blocks, row-major. Decoding writes RGBA8888
// into a caller-supplied buffer; encoding allocates and returns the block
// stream. Both directions are deterministic.
package dxt

import (
	"fmt"
	"runtime"
	"sync"
)

// Format selects a block compression variant.
type Format int

const (
	DXT1            Format = iota // opaque, 8-byte blocks
	DXT1OneBitAlpha               // DXT1 honoring the transparent mode on decode
	DXT3                          // explicit 4-bit alpha, 16-byte blocks
	DXT5                          // interpolated alpha, 16-byte blocks
)

// BlockBytes returns the compressed size of one 4x4 block.
func (f Format) BlockBytes() int {
	if f == DXT1 || f == DXT1OneBitAlpha {
		return 8
	}
	return 16
}

func (f Format) String() string {
	switch f {
	case DXT1:
		return "DXT1"
	case DXT1OneBitAlpha:
		return "DXT1A"
	case DXT3:
		return "DXT3"
	case DXT5:
		return "DXT5"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) valid() bool {
	return f >= DXT1 && f <= DXT5
}

// EncodedSize returns the byte length of a width x height image compressed
// with f: whole 4x4 tiles, dimensions rounded up.
func EncodedSize(width, height int, f Format) int {
	return ((width + 3) / 4) * ((height + 3) / 4) * f.BlockBytes()
}

// DecodeImage decompresses src into dst as RGBA8888, top-left origin,
// width*4 row stride. dst must hold at least width*height*4 bytes; bytes
// past that are left untouched. Partial edge tiles go through a scratch
// block so only in-bounds pixels are written.
func DecodeImage(dst, src []byte, width, height int, f Format) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("dxt: invalid dimensions %dx%d", width, height)
	}
	if !f.valid() {
		return fmt.Errorf("dxt: unknown format %d", int(f))
	}
	bs := f.BlockBytes()
	blocksX := (width + 3) / 4
	blocksY := (height + 3) / 4
	if need := blocksX * blocksY * bs; len(src) < need {
		return fmt.Errorf("dxt: short source: %d bytes, need %d", len(src), need)
	}
	if need := width * height * 4; len(dst) < need {
		return fmt.Errorf("dxt: short destination: %d bytes, need %d", len(dst), need)
	}

	stride := width * 4
	var scratch [64]byte

	offset := 0
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			block := src[offset : offset+bs]
			offset += bs

			copyW := min(width-bx*4, 4)
			copyH := min(height-by*4, 4)
			if copyW == 4 && copyH == 4 {
				decodeBlock(dst[(by*4*width+bx*4)*4:], stride, block, f)
				continue
			}

			// Edge tile: decode at scratch pitch, copy the in-bounds rows.
			decodeBlock(scratch[:], 16, block, f)
			for y := 0; y < copyH; y++ {
				di := ((by*4+y)*width + bx*4) * 4
				copy(dst[di:di+copyW*4], scratch[y*16:y*16+copyW*4])
			}
		}
	}
	return nil
}

func decodeBlock(dst []byte, stride int, src []byte, f Format) {
	switch f {
	case DXT1:
		decodeBlockDXT1(dst, stride, src, false)
	case DXT1OneBitAlpha:
		decodeBlockDXT1(dst, stride, src, true)
	case DXT3:
		decodeBlockDXT3(dst, stride, src)
	case DXT5:
		decodeBlockDXT5(dst, stride, src)
	}
}

// EncodeImage compresses an RGBA8888 raster and returns the block stream.
// Pixels outside the image within an edge tile are gathered as zero. Block
// rows are independent, so they are striped across the available CPUs.
func EncodeImage(src []byte, width, height int, f Format) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("dxt: invalid dimensions %dx%d", width, height)
	}
	if !f.valid() {
		return nil, fmt.Errorf("dxt: unknown format %d", int(f))
	}
	if need := width * height * 4; len(src) < need {
		return nil, fmt.Errorf("dxt: short source: %d bytes, need %d", len(src), need)
	}

	blocksY := (height + 3) / 4
	out := make([]byte, EncodedSize(width, height, f))

	workers := min(runtime.NumCPU(), blocksY)
	if workers <= 1 {
		encodeRows(out, src, width, height, f, 0, blocksY)
		return out, nil
	}

	rowsPerWorker := (blocksY + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		row0 := i * rowsPerWorker
		if row0 >= blocksY {
			break
		}
		row1 := min(row0+rowsPerWorker, blocksY)
		wg.Add(1)
		go func(row0, row1 int) {
			defer wg.Done()
			encodeRows(out, src, width, height, f, row0, row1)
		}(row0, row1)
	}
	wg.Wait()
	return out, nil
}

// encodeRows compresses block rows [row0, row1). Each block writes a
// disjoint output range, so concurrent stripes need no locking.
func encodeRows(out, src []byte, width, height int, f Format, row0, row1 int) {
	bs := f.BlockBytes()
	blocksX := (width + 3) / 4

	var px [64]byte
	for by := row0; by < row1; by++ {
		for bx := 0; bx < blocksX; bx++ {
			gatherBlock(&px, src, width, height, bx, by)
			dst := out[(by*blocksX+bx)*bs:]
			switch f {
			case DXT1, DXT1OneBitAlpha:
				encodeBlockDXT1(dst, &px)
			case DXT3:
				encodeBlockDXT3(dst, &px)
			case DXT5:
				encodeBlockDXT5(dst, &px)
			}
		}
	}
}

// gatherBlock copies the 4x4 tile at (bx, by) into px, zero-filling pixels
// outside the image.
func gatherBlock(px *[64]byte, src []byte, width, height, bx, by int) {
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			di := (y*4 + x) * 4
			sx := bx*4 + x
			sy := by*4 + y
			if sx >= width || sy >= height {
				px[di+0], px[di+1], px[di+2], px[di+3] = 0, 0, 0, 0
				continue
			}
			si := (sy*width + sx) * 4
			copy(px[di:di+4], src[si:si+4])
		}
	}
}
