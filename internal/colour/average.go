package colour

import "image"

// DefaultPixelSpacing is the sampling stride used by AverageColour when none is given.
const DefaultPixelSpacing = 5

// AverageColour returns the mean opaque colour of every pixelSpacing-th pixel,
// walking the image in raster order. A spacing of 1 yields the exact mean;
// larger values trade accuracy for speed. Values below 1 are treated as 1.
func AverageColour(img image.Image, pixelSpacing int) Colour {
	if pixelSpacing < 1 {
		pixelSpacing = 1
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	total := w * h
	if total <= 0 {
		return Black
	}

	var r, g, b, n uint64
	for i := 0; i < total; i += pixelSpacing {
		x := bounds.Min.X + i%w
		y := bounds.Min.Y + i/w
		rgb := ToRGB(img.At(x, y))
		r += uint64(rgb.R)
		g += uint64(rgb.G)
		b += uint64(rgb.B)
		n++
	}

	// Integer mean per channel, matching an 8-bit accumulator.
	return Colour{
		R: float64(r/n) / 255.0,
		G: float64(g/n) / 255.0,
		B: float64(b/n) / 255.0,
		A: 1,
	}
}
