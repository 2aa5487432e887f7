package vtf

import "testing"

func TestMipmapCount(t *testing.T) {
	cases := []struct {
		w, h, want int
	}{
		{1, 1, 1},
		{2, 2, 2},
		{4, 4, 3},
		{5, 3, 3},
		{7, 5, 3},
		{256, 256, 9},
		{256, 1, 9},
		{1, 16, 5},
	}
	for _, c := range cases {
		if got := MipmapCount(c.w, c.h); got != c.want {
			t.Errorf("MipmapCount(%d, %d) = %d, want %d", c.w, c.h, got, c.want)
		}
	}
}

func TestGenerateMipChain(t *testing.T) {
	t.Run("FullChain", func(t *testing.T) {
		src := make([]byte, 4*2*4)
		chain := generateMipChain(src, 4, 2, true)
		wantDims := [][2]int{{4, 2}, {2, 1}, {1, 1}}
		if len(chain) != len(wantDims) {
			t.Fatalf("chain length = %d, want %d", len(chain), len(wantDims))
		}
		for i, d := range wantDims {
			if chain[i].width != d[0] || chain[i].height != d[1] {
				t.Errorf("level %d = %dx%d, want %dx%d", i, chain[i].width, chain[i].height, d[0], d[1])
			}
			if len(chain[i].pix) != d[0]*d[1]*4 {
				t.Errorf("level %d buffer = %d bytes, want %d", i, len(chain[i].pix), d[0]*d[1]*4)
			}
		}
		if len(chain) != MipmapCount(4, 2) {
			t.Error("chain length disagrees with MipmapCount")
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		src := make([]byte, 8*8*4)
		chain := generateMipChain(src, 8, 8, false)
		if len(chain) != 1 {
			t.Fatalf("chain length = %d, want 1", len(chain))
		}
	})

	t.Run("OnePixel", func(t *testing.T) {
		chain := generateMipChain(make([]byte, 4), 1, 1, true)
		if len(chain) != 1 {
			t.Fatalf("chain length = %d, want 1", len(chain))
		}
	})
}

func TestDownsample(t *testing.T) {
	t.Run("MeanTruncates", func(t *testing.T) {
		// Red channel 1+2+2+2 = 7, truncated mean 1.
		src := []byte{
			1, 0, 0, 255, 2, 0, 0, 255,
			2, 0, 0, 255, 2, 0, 0, 255,
		}
		dst := downsample(src, 2, 2, 1, 1)
		if dst[0] != 1 {
			t.Errorf("mean = %d, want 1", dst[0])
		}
		if dst[3] != 255 {
			t.Errorf("alpha = %d, want 255", dst[3])
		}
	})

	t.Run("OddEdgeDivisor", func(t *testing.T) {
		// A 3x1 row shrinks to 1x1. Only two pixels fall under the box,
		// so the third must not dilute the mean.
		src := []byte{
			10, 0, 0, 255, 30, 0, 0, 255, 250, 0, 0, 255,
		}
		dst := downsample(src, 3, 1, 1, 1)
		if dst[0] != 20 {
			t.Errorf("mean = %d, want 20", dst[0])
		}
	})

	t.Run("OddColumn", func(t *testing.T) {
		// 1x3 shrinks to 1x1 sampling only the first two rows.
		src := []byte{
			0, 100, 0, 255,
			0, 50, 0, 255,
			0, 250, 0, 255,
		}
		dst := downsample(src, 1, 3, 1, 1)
		if dst[1] != 75 {
			t.Errorf("mean = %d, want 75", dst[1])
		}
	})
}
