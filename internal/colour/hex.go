package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// hexMultiplier maps a normalised channel onto 0..255. It sits just below 256
// so that 1.0 lands on 0xFF instead of overflowing to 0x100.
const hexMultiplier = 255.999999

// FormatHex formats normalised channels as "#RRGGBB" when alpha is 1.0, or
// "#RRGGBBAA" otherwise. Channel bytes are int(v * 255.999999), uppercase.
func FormatHex(r, g, b, a float64) string {
	if a >= 1.0 {
		return fmt.Sprintf("#%02X%02X%02X", channelByte(r), channelByte(g), channelByte(b))
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", channelByte(r), channelByte(g), channelByte(b), channelByte(a))
}

// HexOf returns the canonical hex form of any color.Color.
func HexOf(c color.Color) string {
	return FromColor(c).Hex()
}

// channelByte converts a normalised channel using the truncating 255.999999 rule.
func channelByte(v float64) uint8 {
	n := int(clampUnit(v) * hexMultiplier)
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" (the leading '#' is optional).
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q: want 6 or 8 hex digits", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}

	if len(h) == 6 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
