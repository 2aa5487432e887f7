package vtf

// MipmapCount returns the length of a full mip chain for the given base
// dimensions: both are halved (floor, minimum 1) until the level is 1x1.
func MipmapCount(width, height int) int {
	count := 1
	for width > 1 || height > 1 {
		width = mipHalve(width)
		height = mipHalve(height)
		count++
	}
	return count
}

func mipHalve(n int) int {
	if n <= 1 {
		return 1
	}
	return n / 2
}

// mipLevel is one rung of the writer's scratch chain.
type mipLevel struct {
	width  int
	height int
	pix    []byte // RGBA8888, width*height*4
}

// generateMipChain builds the chain from src down to 1x1 with a 2x2 box
// filter. Level 0 references src unmodified; derived levels own fresh
// buffers. With generate false the chain is just the source level.
func generateMipChain(src []byte, width, height int, generate bool) []mipLevel {
	chain := []mipLevel{{width, height, src}}
	if !generate {
		return chain
	}
	for width > 1 || height > 1 {
		nw, nh := mipHalve(width), mipHalve(height)
		prev := chain[len(chain)-1]
		chain = append(chain, mipLevel{nw, nh, downsample(prev.pix, width, height, nw, nh)})
		width, height = nw, nh
	}
	return chain
}

// downsample box-filters one level into the next. Each destination pixel
// is the integer mean of the up-to-2x2 source pixels under it; at odd
// edges the divisor shrinks to the number of samples actually taken, so
// border pixels are never diluted with black.
func downsample(src []byte, srcW, srcH, dstW, dstH int) []byte {
	dst := make([]byte, dstW*dstH*4)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			sx, sy := x*2, y*2
			for c := 0; c < 4; c++ {
				sum, count := 0, 0
				for dy := 0; dy < 2 && sy+dy < srcH; dy++ {
					for dx := 0; dx < 2 && sx+dx < srcW; dx++ {
						sum += int(src[((sy+dy)*srcW+sx+dx)*4+c])
						count++
					}
				}
				dst[(y*dstW+x)*4+c] = uint8(sum / count)
			}
		}
	}
	return dst
}
