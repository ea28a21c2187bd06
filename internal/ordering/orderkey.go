// Package ordering implements the ordering engine: position key math,
// deterministic ordered reads, reorder operations, consistency auditing,
// and repair.
package ordering

// Gap is the spacing between consecutive position keys. Appends land Gap
// apart so the common case (adding to the end) never forces a reindex.
const Gap int32 = 10

// BootstrapKey is the sentinel assigned to entities discovered without a
// position key. It sorts after normally-keyed items and is expected to be
// superseded by a real reindex.
const BootstrapKey int32 = 9999

// Append returns the key for a new entity appended to a scope whose current
// maximum key is max (nil when the scope is empty or wholly unkeyed).
func Append(max *int32) int32 {
	if max == nil {
		return 0
	}
	return *max + Gap
}

// Sequence returns the full key rewrite for a scope of n items:
// 0, Gap, 2*Gap, ... Every move rewrites the whole scope rather than
// splitting gaps, so key precision can never be exhausted by repeated
// inserts at the same spot.
func Sequence(n int) []int32 {
	keys := make([]int32, n)
	for i := range keys {
		keys[i] = int32(i) * Gap
	}
	return keys
}
