package extract

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func testPage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// light paper background with a dark "text" band
			c := color.RGBA{R: 220, G: 215, B: 210, A: 255}
			if y > h/3 && y < h/2 {
				c = color.RGBA{R: 40, G: 35, B: 30, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPreprocessUpscalesNarrowPages(t *testing.T) {
	out := PreprocessForOCR(testPage(800, 1000))
	require.Equal(t, minOCRWidth, out.Bounds().Dx())
}

func TestPreprocessKeepsWidePages(t *testing.T) {
	out := PreprocessForOCR(testPage(2400, 600))
	require.Equal(t, 2400, out.Bounds().Dx())
}

func TestPreprocessBinarizes(t *testing.T) {
	out := PreprocessForOCR(testPage(2100, 300))
	for _, px := range out.Pix {
		require.Contains(t, []uint8{0, 255}, px, "output must be binary")
	}
	// both classes must survive: paper stays white, text stays black
	var black, white int
	for _, px := range out.Pix {
		if px == 0 {
			black++
		} else {
			white++
		}
	}
	require.Positive(t, black)
	require.Positive(t, white)
}

func TestPreprocessDoesNotMutateInput(t *testing.T) {
	in := testPage(500, 500)
	before := make([]uint8, len(in.Pix))
	copy(before, in.Pix)

	_ = PreprocessForOCR(in)
	require.Equal(t, before, in.Pix)
}

func TestAutocontrastStretchesHistogram(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for i := range img.Pix {
		img.Pix[i] = uint8(100 + i%50) // narrow mid-range band
	}
	autocontrast(img, 0.01)

	var lo, hi uint8 = 255, 0
	for _, px := range img.Pix {
		if px < lo {
			lo = px
		}
		if px > hi {
			hi = px
		}
	}
	require.Less(t, lo, uint8(10))
	require.Greater(t, hi, uint8(245))
}
