package extract

import (
	"image"

	"github.com/disintegration/imaging"
)

// minOCRWidth approximates a 300-DPI scan of an A4/letter page. Pages
// narrower than this are upscaled before recognition.
const minOCRWidth = 2000

const binarizeThreshold = 180

// PreprocessForOCR runs the fixed preprocessing pipeline that improves
// tesseract accuracy on scanned COA documents:
// grayscale → upscale → autocontrast → sharpen → binarize.
// The input image is never mutated.
func PreprocessForOCR(src image.Image) *image.Gray {
	img := toGray(imaging.Grayscale(src))

	if img.Bounds().Dx() < minOCRWidth {
		img = toGray(imaging.Resize(img, minOCRWidth, 0, imaging.Lanczos))
	}

	autocontrast(img, 0.01)

	img = toGray(imaging.Sharpen(img, 1.0))

	// Global threshold; works well after autocontrast has normalized
	// scan exposure.
	for i, px := range img.Pix {
		if px > binarizeThreshold {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 0
		}
	}
	return img
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return out
}

// autocontrast stretches the histogram to the full 0-255 range, clipping
// the given fraction of darkest and brightest pixels first.
func autocontrast(img *image.Gray, cutoff float64) {
	var hist [256]int
	for _, px := range img.Pix {
		hist[px]++
	}
	total := len(img.Pix)
	if total == 0 {
		return
	}
	clip := int(float64(total) * cutoff)

	lo := 0
	for sum := 0; lo < 255; lo++ {
		sum += hist[lo]
		if sum > clip {
			break
		}
	}
	hi := 255
	for sum := 0; hi > 0; hi-- {
		sum += hist[hi]
		if sum > clip {
			break
		}
	}
	if hi <= lo {
		return
	}

	scale := 255.0 / float64(hi-lo)
	var lut [256]uint8
	for i := range lut {
		v := float64(i-lo) * scale
		switch {
		case v < 0:
			lut[i] = 0
		case v > 255:
			lut[i] = 255
		default:
			lut[i] = uint8(v)
		}
	}
	for i, px := range img.Pix {
		img.Pix[i] = lut[px]
	}
}
