// Package colour provides detail color selection logic.
package colour

// selectDetail picks the colour for the detail slot.
//
// Design Theory (WCAG Accessibility Standards):.
// - Detail is used for TEXT and icons drawn on the background.
// - Selects the unused bucket with the HIGHEST contrast against background.
// - Hue is NOT considered - only contrast matters for readability.
//
// The second return value is false when no unused bucket exists.
func selectDetail(ranked []*bucket, used map[*bucket]bool, bg *bucket) (*bucket, bool) {
	var best *bucket
	maxContrast := 0.0
	for _, b := range ranked {
		if used[b] {
			continue
		}
		contrast := ContrastRatio(b.mean, bg.mean)
		if best == nil || contrast > maxContrast {
			best = b
			maxContrast = contrast
		}
	}
	return best, best != nil
}

// syntheticDetail creates a detail colour when every bucket is already
// assigned: black on light backgrounds, white on dark ones.
func syntheticDetail(bg Colour) Colour {
	return ContrastingMonochrome(bg)
}
