// Package colour provides utility functions for color manipulation and analysis.
package colour

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	cc := FromColor(c)
	return 0.2126*gammaCorrect(cc.R) + 0.7152*gammaCorrect(cc.G) + 0.0722*gammaCorrect(cc.B)
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 color.Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// Saturation returns the HSL saturation of a colour in [0, 1].
func Saturation(c color.Color) float64 {
	_, s, _ := toColorful(FromColor(c)).Hsl()
	return s
}

// Lightness returns the CIE L* lightness of a colour in [0, 1].
func Lightness(c color.Color) float64 {
	l, _, _ := toColorful(FromColor(c)).Lab()
	return l
}

// IsDark reports whether text on this colour reads better in white than in black.
func IsDark(c color.Color) bool {
	return ContrastRatio(White, c) >= ContrastRatio(Black, c)
}

// ContrastingMonochrome returns black or white, whichever contrasts more with c.
func ContrastingMonochrome(c color.Color) Colour {
	if IsDark(c) {
		return White
	}
	return Black
}

func toColorful(c Colour) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}
