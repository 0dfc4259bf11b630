package colour

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	for slot, c := range p.All() {
		if got := c.Hex(); got != "#808080" {
			t.Errorf("%s = %s, want #808080", slot, got)
		}
	}
}

func TestPaletteGet(t *testing.T) {
	p := &Palette{Primary: White, Secondary: Black, Background: Colour{R: 1, A: 1}, Detail: Colour{B: 1, A: 1}}

	want := map[Slot]string{
		SlotPrimary:    "#FFFFFF",
		SlotSecondary:  "#000000",
		SlotBackground: "#FF0000",
		SlotDetail:     "#0000FF",
	}
	for slot, hex := range want {
		c, err := p.Get(slot)
		if err != nil {
			t.Fatalf("Get(%s) error: %v", slot, err)
		}
		if c.Hex() != hex {
			t.Errorf("Get(%s) = %s, want %s", slot, c.Hex(), hex)
		}
	}

	if _, err := p.Get(Slot("accent")); err == nil {
		t.Error("Get() should fail for an unknown slot")
	}
}

func TestPaletteToJSON(t *testing.T) {
	p := &Palette{Primary: White, Secondary: Black, Background: Colour{R: 1, A: 0.5}, Detail: Black}

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	want := map[string]string{
		"primary":    "#FFFFFF",
		"secondary":  "#000000",
		"background": "#FF00007F",
		"detail":     "#000000",
	}
	if len(got) != len(want) {
		t.Errorf("ToJSON() keys = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ToJSON()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestPaletteString(t *testing.T) {
	p := NewUniformPalette(Colour{R: 1, A: 1})

	plain := p.String()
	lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("String() has %d lines, want 4:\n%s", len(lines), plain)
	}
	for i, slot := range Slots() {
		if !strings.HasPrefix(lines[i], string(slot)) || !strings.HasSuffix(lines[i], "#FF0000") {
			t.Errorf("line %d = %q, want %s ... #FF0000", i, lines[i], slot)
		}
	}
	if strings.Contains(plain, "\033[") {
		t.Error("String() should not contain ANSI escapes")
	}

	preview := p.StringWithPreview(true)
	if !strings.Contains(preview, "\033[48;2;255;0;0m") {
		t.Errorf("StringWithPreview(true) missing swatch escape:\n%q", preview)
	}
}

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 1, G: 2, B: 3}, 0)
	want := "\033[48;2;1;2;3m" + strings.Repeat(" ", defaultWidth) + "\033[0m"
	if got != want {
		t.Errorf("ColourPreview() = %q, want %q", got, want)
	}
}
