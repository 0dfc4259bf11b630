package colour

import "testing"

func testBucket(weight int, c Colour, border bool) *bucket {
	b := &bucket{weight: weight, border: border, mean: c}
	b.saturation = Saturation(c)
	b.vivid = b.saturation >= DefaultExtractorConfig().VividSaturation
	return b
}

func TestSelectBackground(t *testing.T) {
	grey := testBucket(50, Colour{R: 0.5, G: 0.5, B: 0.5, A: 1}, false)
	teal := testBucket(30, Colour{R: 0, G: 0.5, B: 0.5, A: 1}, true)
	pink := testBucket(10, Colour{R: 1, G: 0.7, B: 0.8, A: 1}, true)

	if got := selectBackground([]*bucket{grey, teal, pink}); got != teal {
		t.Errorf("selectBackground() = %v, want heaviest border bucket %v", got.mean, teal.mean)
	}
	if got := selectBackground([]*bucket{grey, testBucket(5, White, false)}); got != grey {
		t.Errorf("selectBackground() without border = %v, want heaviest %v", got.mean, grey.mean)
	}
}

func TestSelectAccent(t *testing.T) {
	dull := Colour{R: 0.45, G: 0.42, B: 0.4, A: 1}
	vivid := Colour{R: 0.9, G: 0.1, B: 0.1, A: 1}
	alsoVivid := Colour{R: 0.1, G: 0.2, B: 0.9, A: 1}

	tests := []struct {
		name   string
		ranked []*bucket
		want   int
	}{
		{
			name:   "vivid leader wins",
			ranked: []*bucket{testBucket(100, vivid, false), testBucket(99, alsoVivid, false)},
			want:   0,
		},
		{
			name:   "vivid within tolerance beats dull leader",
			ranked: []*bucket{testBucket(100, dull, false), testBucket(86, vivid, false)},
			want:   1,
		},
		{
			name:   "vivid outside tolerance loses",
			ranked: []*bucket{testBucket(100, dull, false), testBucket(84, vivid, false)},
			want:   0,
		},
		{
			name: "first vivid in band wins",
			ranked: []*bucket{
				testBucket(100, dull, false),
				testBucket(95, dull, false),
				testBucket(90, alsoVivid, false),
				testBucket(90, vivid, false),
			},
			want: 2,
		},
		{
			name:   "no vivid keeps leader",
			ranked: []*bucket{testBucket(100, dull, false), testBucket(100, White, false)},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectAccent(tt.ranked, map[*bucket]bool{}, DefaultExtractorConfig().VividTolerance)
			if got != tt.ranked[tt.want] {
				t.Errorf("selectAccent() = %v, want %v", got.mean, tt.ranked[tt.want].mean)
			}
		})
	}
}

func TestSelectAccentSkipsUsed(t *testing.T) {
	a := testBucket(10, Colour{R: 1, A: 1}, false)
	b := testBucket(5, Colour{B: 1, A: 1}, false)
	ranked := []*bucket{a, b}

	if got := selectAccent(ranked, map[*bucket]bool{a: true}, 0.15); got != b {
		t.Errorf("selectAccent() = %v, want the only unused bucket", got)
	}
	if got := selectAccent(ranked, map[*bucket]bool{a: true, b: true}, 0.15); got != nil {
		t.Errorf("selectAccent() = %v, want nil when all buckets are used", got)
	}
}

func TestSelectDetail(t *testing.T) {
	bg := testBucket(50, White, true)
	yellow := testBucket(20, Colour{R: 1, G: 0.9, A: 1}, false)
	navy := testBucket(5, Colour{B: 0.3, A: 1}, false)
	ranked := []*bucket{bg, yellow, navy}

	got, ok := selectDetail(ranked, map[*bucket]bool{bg: true}, bg)
	if !ok || got != navy {
		t.Errorf("selectDetail() = %v, %v; want highest-contrast bucket %v", got, ok, navy.mean)
	}

	if _, ok := selectDetail(ranked, map[*bucket]bool{bg: true, yellow: true, navy: true}, bg); ok {
		t.Error("selectDetail() reported a bucket when all are used")
	}
}

func TestSyntheticDetail(t *testing.T) {
	tests := []struct {
		bg   Colour
		want Colour
	}{
		{bg: White, want: Black},
		{bg: Black, want: White},
		{bg: Colour{R: 1, A: 1}, want: Black},
		{bg: Colour{B: 1, A: 1}, want: White},
		{bg: Colour{R: 1, G: 1, A: 1}, want: Black},
	}

	for _, tt := range tests {
		t.Run(tt.bg.Hex(), func(t *testing.T) {
			if got := syntheticDetail(tt.bg); got != tt.want {
				t.Errorf("syntheticDetail(%s) = %s, want %s", tt.bg, got, tt.want)
			}
		})
	}
}

func TestGridSharedAndDense(t *testing.T) {
	cfg := DefaultExtractorConfig()
	g := gridFor(cfg.LightnessStep, cfg.ChromaStep)
	if gridFor(cfg.LightnessStep, cfg.ChromaStep) != g {
		t.Error("gridFor() should return the shared grid")
	}
	if g.count == 0 || g.count > len(g.cells) {
		t.Fatalf("grid has %d cells", g.count)
	}
	for i, id := range g.cells {
		if int(id) >= g.count {
			t.Fatalf("cell %d has id %d outside [0, %d)", i, id, g.count)
		}
	}

	if g.cells[gridIndex(255, 0, 0)] == g.cells[gridIndex(0, 0, 255)] {
		t.Error("red and blue share a cell")
	}
	if g.cells[gridIndex(128, 128, 128)] != g.cells[gridIndex(129, 129, 129)] {
		t.Error("near-identical greys should share a cell")
	}
}
