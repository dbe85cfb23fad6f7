// Package sequence allocates RMA numbers over the values currently present
// in the register.
package sequence

// Next returns max(existing)+1, or 1 when no values exist. Gaps in the
// existing values are never reused: issued numbers stay unique even after
// rows are removed from the register.
//
// Next has no hidden state. Correctness under the single-writer assumption
// requires the caller to re-scan the live store immediately before each
// allocation instead of caching a previous result.
func Next(existing []int) int {
	max := 0
	for _, v := range existing {
		if v > max {
			max = v
		}
	}
	return max + 1
}
