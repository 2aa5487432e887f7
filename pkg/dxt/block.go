package dxt

import "math"

// decodeColor565 expands a packed 5:6:5 color to 8-bit channels, replicating
// the high bits into the low bits so full white stays full white.
func decodeColor565(c uint16) (r, g, b uint8) {
	r = uint8(c>>11) << 3
	g = uint8((c>>5)&0x3F) << 2
	b = uint8(c&0x1F) << 3
	r |= r >> 5
	g |= g >> 6
	b |= b >> 5
	return
}

// decodeBlockDXT1 decodes one 8-byte color block into dst at the given row
// stride. With oneBitAlpha set and color0 <= color1 (compared as the raw
// packed values) the block is in three-color mode and index 3 is transparent
// black; in every other case all four palette entries are opaque.
func decodeBlockDXT1(dst []byte, stride int, src []byte, oneBitAlpha bool) {
	c0 := uint16(src[0]) | uint16(src[1])<<8
	c1 := uint16(src[2]) | uint16(src[3])<<8

	r0, g0, b0 := decodeColor565(c0)
	r1, g1, b1 := decodeColor565(c1)

	var palette [4][4]uint8
	palette[0] = [4]uint8{r0, g0, b0, 255}
	palette[1] = [4]uint8{r1, g1, b1, 255}

	if c0 > c1 || !oneBitAlpha {
		// Four-color mode. The opaque format always lands here.
		palette[2] = [4]uint8{
			uint8((2*int(r0) + int(r1)) / 3),
			uint8((2*int(g0) + int(g1)) / 3),
			uint8((2*int(b0) + int(b1)) / 3),
			255,
		}
		palette[3] = [4]uint8{
			uint8((int(r0) + 2*int(r1)) / 3),
			uint8((int(g0) + 2*int(g1)) / 3),
			uint8((int(b0) + 2*int(b1)) / 3),
			255,
		}
	} else {
		palette[2] = [4]uint8{
			uint8((int(r0) + int(r1)) / 2),
			uint8((int(g0) + int(g1)) / 2),
			uint8((int(b0) + int(b1)) / 2),
			255,
		}
		palette[3] = [4]uint8{0, 0, 0, 0}
	}

	indices := uint32(src[4]) | uint32(src[5])<<8 | uint32(src[6])<<16 | uint32(src[7])<<24

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := palette[(indices>>(2*(y*4+x)))&3]
			di := y*stride + x*4
			dst[di+0] = p[0]
			dst[di+1] = p[1]
			dst[di+2] = p[2]
			dst[di+3] = p[3]
		}
	}
}

// decodeBlockDXT3 decodes one 16-byte block: 8 bytes of explicit 4-bit alpha
// (even pixel in the low nibble) followed by a color block.
func decodeBlockDXT3(dst []byte, stride int, src []byte) {
	decodeBlockDXT1(dst, stride, src[8:], false)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			i := y*4 + x
			a := src[i/2] & 0x0F
			if i&1 != 0 {
				a = src[i/2] >> 4
			}
			a |= a << 4
			dst[y*stride+x*4+3] = a
		}
	}
}

// decodeBlockDXT5 decodes one 16-byte block: two alpha endpoints, 48 bits of
// 3-bit alpha indices, then a color block.
func decodeBlockDXT5(dst []byte, stride int, src []byte) {
	alpha0 := src[0]
	alpha1 := src[1]

	var alphas [8]uint8
	alphas[0] = alpha0
	alphas[1] = alpha1
	if alpha0 > alpha1 {
		// 8-alpha mode: six interpolated steps.
		for i := 2; i < 8; i++ {
			alphas[i] = uint8(((8-i)*int(alpha0) + (i-1)*int(alpha1)) / 7)
		}
	} else {
		// 6-alpha mode plus literal 0 and 255.
		for i := 2; i < 6; i++ {
			alphas[i] = uint8(((6-i)*int(alpha0) + (i-1)*int(alpha1)) / 5)
		}
		alphas[6] = 0
		alphas[7] = 255
	}

	bits := uint64(0)
	for i := 0; i < 6; i++ {
		bits |= uint64(src[2+i]) << (8 * i)
	}

	decodeBlockDXT1(dst, stride, src[8:], false)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			idx := (bits >> (3 * (y*4 + x))) & 7
			dst[y*stride+x*4+3] = alphas[idx]
		}
	}
}

// encodeBlockDXT1 compresses a gathered 4x4 RGBA tile into an 8-byte color
// block. Endpoints are the componentwise extremes; the packed values are
// swapped if needed so color0 > color1, which keeps decoders in four-color
// mode (the transparent mode is never emitted).
func encodeBlockDXT1(dst []byte, px *[64]byte) {
	minC := [3]uint8{255, 255, 255}
	maxC := [3]uint8{0, 0, 0}
	for i := 0; i < 16; i++ {
		for c := 0; c < 3; c++ {
			v := px[i*4+c]
			if v < minC[c] {
				minC[c] = v
			}
			if v > maxC[c] {
				maxC[c] = v
			}
		}
	}

	color0 := uint16(maxC[0]>>3)<<11 | uint16(maxC[1]>>2)<<5 | uint16(maxC[2]>>3)
	color1 := uint16(minC[0]>>3)<<11 | uint16(minC[1]>>2)<<5 | uint16(minC[2]>>3)
	if color0 < color1 {
		color0, color1 = color1, color0
		minC, maxC = maxC, minC
	}

	dst[0] = uint8(color0)
	dst[1] = uint8(color0 >> 8)
	dst[2] = uint8(color1)
	dst[3] = uint8(color1 >> 8)

	// Palette built from the 8-bit endpoints, not the requantized 565 values.
	var palette [4][3]int
	for c := 0; c < 3; c++ {
		palette[0][c] = int(maxC[c])
		palette[1][c] = int(minC[c])
		palette[2][c] = (2*int(maxC[c]) + int(minC[c])) / 3
		palette[3][c] = (int(maxC[c]) + 2*int(minC[c])) / 3
	}

	indices := uint32(0)
	for i := 0; i < 16; i++ {
		best := 0
		bestDist := math.MaxInt
		for j := 0; j < 4; j++ {
			dist := 0
			for c := 0; c < 3; c++ {
				d := int(px[i*4+c]) - palette[j][c]
				dist += d * d
			}
			if dist < bestDist {
				bestDist = dist
				best = j
			}
		}
		indices |= uint32(best) << (2 * i)
	}

	dst[4] = uint8(indices)
	dst[5] = uint8(indices >> 8)
	dst[6] = uint8(indices >> 16)
	dst[7] = uint8(indices >> 24)
}

// encodeBlockDXT3 compresses a tile with explicit 4-bit alpha, two pixels per
// byte with the even pixel in the low nibble. (a+8)/17 inverts the decoder's
// nibble replication exactly.
func encodeBlockDXT3(dst []byte, px *[64]byte) {
	for i := 0; i < 8; i++ {
		lo := (uint16(px[i*8+3]) + 8) / 17
		hi := (uint16(px[i*8+7]) + 8) / 17
		dst[i] = uint8(lo) | uint8(hi)<<4
	}
	encodeBlockDXT1(dst[8:], px)
}

// encodeBlockDXT5 compresses a tile with interpolated alpha. The block max
// is stored as the first endpoint, so equal endpoints select the 6-alpha
// branch and distinct ones the 8-alpha branch, mirroring the decoder.
func encodeBlockDXT5(dst []byte, px *[64]byte) {
	minA, maxA := uint8(255), uint8(0)
	for i := 0; i < 16; i++ {
		a := px[i*4+3]
		if a < minA {
			minA = a
		}
		if a > maxA {
			maxA = a
		}
	}

	dst[0] = maxA
	dst[1] = minA

	var alphas [8]uint8
	alphas[0] = maxA
	alphas[1] = minA
	if maxA > minA {
		for i := 2; i < 8; i++ {
			alphas[i] = uint8(((8-i)*int(maxA) + (i-1)*int(minA)) / 7)
		}
	} else {
		for i := 2; i < 6; i++ {
			alphas[i] = uint8(((6-i)*int(maxA) + (i-1)*int(minA)) / 5)
		}
		alphas[6] = 0
		alphas[7] = 255
	}

	bits := uint64(0)
	for i := 0; i < 16; i++ {
		a := int(px[i*4+3])
		best := 0
		bestDist := math.MaxInt
		for j := 0; j < 8; j++ {
			dist := a - int(alphas[j])
			if dist < 0 {
				dist = -dist
			}
			if dist < bestDist {
				bestDist = dist
				best = j
			}
		}
		bits |= uint64(best) << (3 * i)
	}
	for i := 0; i < 6; i++ {
		dst[2+i] = uint8(bits >> (8 * i))
	}

	encodeBlockDXT1(dst[8:], px)
}
