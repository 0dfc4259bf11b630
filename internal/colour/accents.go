// Package colour provides primary and secondary color selection logic.
package colour

// selectAccent picks the heaviest bucket not yet in use, preferring a vivid
// bucket over a heavier desaturated leader.
//
// Design Theory:.
// - Primary and secondary are the colours a viewer remembers from the frame.
// - Weight (coverage) is the main signal.
// - A saturated colour reads as the subject, so a vivid bucket whose weight is
//   within tolerance of the desaturated leader takes its place.
// - Ties resolve by rank, which is weight then discovery order.
//
// Returns nil when every bucket is in use.
func selectAccent(ranked []*bucket, used map[*bucket]bool, tolerance float64) *bucket {
	var leader *bucket
	for _, b := range ranked {
		if used[b] {
			continue
		}
		if leader == nil {
			leader = b
			if leader.vivid {
				return leader
			}
			continue
		}

		if float64(b.weight) < float64(leader.weight)*(1.0-tolerance) {
			break
		}
		if b.vivid {
			return b
		}
	}
	return leader
}
