// Package colour provides color extraction and palette generation functionality.
package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Slot names the four palette positions.
type Slot string

const (
	SlotPrimary    Slot = "primary"
	SlotSecondary  Slot = "secondary"
	SlotBackground Slot = "background"
	SlotDetail     Slot = "detail"
)

// Slots returns the slot names in display order.
func Slots() []Slot {
	return []Slot{SlotPrimary, SlotSecondary, SlotBackground, SlotDetail}
}

// Palette is the four-colour summary of an image. All slots are always set
// on a palette returned by Extract.
type Palette struct {
	Primary    Colour
	Secondary  Colour
	Background Colour
	Detail     Colour
}

// NewUniformPalette returns a palette with every slot set to c.
func NewUniformPalette(c Colour) *Palette {
	return &Palette{Primary: c, Secondary: c, Background: c, Detail: c}
}

// DefaultPalette is the neutral grey palette shown before any frame succeeds.
func DefaultPalette() *Palette {
	grey := 128.0 / 255.0
	return NewUniformPalette(Colour{R: grey, G: grey, B: grey, A: 1})
}

// Get returns the colour stored in a slot.
func (p *Palette) Get(slot Slot) (Colour, error) {
	switch slot {
	case SlotPrimary:
		return p.Primary, nil
	case SlotSecondary:
		return p.Secondary, nil
	case SlotBackground:
		return p.Background, nil
	case SlotDetail:
		return p.Detail, nil
	default:
		return Colour{}, fmt.Errorf("unknown palette slot: %s", slot)
	}
}

// All returns an iterator over the slots in display order.
func (p *Palette) All() func(func(Slot, Colour) bool) {
	return func(yield func(Slot, Colour) bool) {
		for _, slot := range Slots() {
			c, _ := p.Get(slot)
			if !yield(slot, c) {
				return
			}
		}
	}
}

// HexPalette is the canonical external form of a palette.
type HexPalette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Detail     string `json:"detail"`
}

// Hex formats every slot with FormatHex.
func (p *Palette) Hex() HexPalette {
	return HexPalette{
		Primary:    p.Primary.Hex(),
		Secondary:  p.Secondary.Hex(),
		Background: p.Background.Hex(),
		Detail:     p.Detail.Hex(),
	}
}

// ToJSON converts the palette to indented JSON in its hex form.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.Hex(), "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	return p.StringWithPreview(false)
}

// StringWithPreview renders one line per slot, optionally with an ANSI swatch.
func (p *Palette) StringWithPreview(showPreview bool) string {
	var sb strings.Builder
	for slot, c := range p.All() {
		if showPreview {
			sb.WriteString(FormatColourWithLabel(c, string(slot), defaultWidth))
		} else {
			fmt.Fprintf(&sb, "%-10s %s", slot, c.Hex())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
