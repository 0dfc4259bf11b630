package colour

import (
	"image"
	"image/color"
	"testing"
)

func TestAverageColour(t *testing.T) {
	// Alternating black and white columns on an odd-width image.
	stripes := image.NewNRGBA(image.Rect(0, 0, 5, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 5; x++ {
			c := black
			if x%2 == 1 {
				c = white
			}
			stripes.SetNRGBA(x, y, c)
		}
	}

	tests := []struct {
		name    string
		img     image.Image
		spacing int
		want    string
	}{
		{name: "solid", img: solidImage(7, 3, magenta), spacing: DefaultPixelSpacing, want: HexOf(magenta)},
		{name: "exact mean", img: stripes, spacing: 1, want: "#666666"},
		{name: "zero spacing treated as one", img: stripes, spacing: 0, want: "#666666"},
		// Indices 0,2,4,6,8 land on x=0,2,4,1,3: three black, two white.
		{name: "stride two", img: stripes, spacing: 2, want: "#666666"},
		// Indices 0 and 5 are both x=0.
		{name: "stride five", img: stripes, spacing: 5, want: "#000000"},
		{name: "empty", img: image.NewNRGBA(image.Rect(0, 0, 0, 0)), spacing: 1, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageColour(tt.img, tt.spacing).Hex(); got != tt.want {
				t.Errorf("AverageColour() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAverageColourIgnoresAlpha(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{R: 200, G: 100, B: 50, A: 64})
	if got := AverageColour(img, 1); got.A != 1 {
		t.Errorf("AverageColour() alpha = %v, want opaque", got.A)
	}
}
