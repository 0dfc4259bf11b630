// Package colour provides palette extraction from still images and camera frames.
package colour

import (
	"fmt"
	"image/color"
)

// Colour is a straight (non-premultiplied) colour with channels normalised to [0, 1].
// Bucket means are kept at full precision so that hex formatting sees the
// unquantised channel values.
type Colour struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Black and White are the synthesized fallbacks for the detail slot.
var (
	Black = Colour{R: 0, G: 0, B: 0, A: 1}
	White = Colour{R: 1, G: 1, B: 1, A: 1}
)

// FromColor converts any color.Color into a straight-alpha Colour.
func FromColor(c color.Color) Colour {
	if own, ok := c.(Colour); ok {
		return own
	}
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Colour{
		R: float64(n.R) / 0xffff,
		G: float64(n.G) / 0xffff,
		B: float64(n.B) / 0xffff,
		A: float64(n.A) / 0xffff,
	}
}

// RGBA implements color.Color. Values are alpha-premultiplied as the interface requires.
func (c Colour) RGBA() (r, g, b, a uint32) {
	a = uint32(clampUnit(c.A)*0xffff + 0.5)
	r = uint32(clampUnit(c.R)*clampUnit(c.A)*0xffff + 0.5)
	g = uint32(clampUnit(c.G)*clampUnit(c.A)*0xffff + 0.5)
	b = uint32(clampUnit(c.B)*clampUnit(c.A)*0xffff + 0.5)
	return
}

// Opaque reports whether the colour has full alpha.
func (c Colour) Opaque() bool {
	return c.A >= 1.0
}

// Hex returns the canonical hex form, see FormatHex.
func (c Colour) Hex() string {
	return FormatHex(c.R, c.G, c.B, c.A)
}

// RGB returns the 8-bit channels using the same conversion as Hex.
func (c Colour) RGB() RGB {
	return RGB{R: channelByte(c.R), G: channelByte(c.G), B: channelByte(c.B)}
}

// NRGBA returns the 8-bit straight-alpha form of the colour.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: channelByte(c.R), G: channelByte(c.G), B: channelByte(c.B), A: channelByte(c.A)}
}

// String returns the colour as its hex form.
func (c Colour) String() string {
	return c.Hex()
}

// RGB represents an opaque colour in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to opaque 8-bit RGB, ignoring alpha.
func ToRGB(c color.Color) RGB {
	return FromColor(c).RGB()
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
