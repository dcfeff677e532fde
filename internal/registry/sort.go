package registry

// selectionSort orders items in place so that before(items[i], items[j]) never
// holds for i < j. Each pass swaps the extremal element of the unsorted suffix
// into place, so equal keys may change relative order.
func selectionSort[T any](items []T, before func(a, b T) bool) {
	for i := 0; i < len(items)-1; i++ {
		best := i
		for j := i + 1; j < len(items); j++ {
			if before(items[j], items[best]) {
				best = j
			}
		}
		if best != i {
			items[i], items[best] = items[best], items[i]
		}
	}
}
