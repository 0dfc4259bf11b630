// Package colour provides background color selection logic.
package colour

// selectBackground picks the bucket for the background slot.
//
// Pixels on the image border best approximate what a viewer calls the
// backdrop, so the heaviest bucket touching the border wins. When no bucket
// touches the border the heaviest bucket overall is used.
//
// ranked must be non-empty and sorted heaviest first.
func selectBackground(ranked []*bucket) *bucket {
	for _, b := range ranked {
		if b.border && b.weight > 0 {
			return b
		}
	}
	return ranked[0]
}
