package dictionary

import "cmp"

// Search runs a binary search over a sorted slice. compare reports the
// target's order relative to the element: 0 on a match, negative when the
// target sorts before it. When found is false, index is where the target
// would be inserted.
func Search[E any](items []E, compare func(E) int) (index int, found bool) {
	low, high := 0, len(items)
	for low < high {
		mid := low + (high-low)/2
		switch result := compare(items[mid]); {
		case result == 0:
			return mid, true
		case result < 0:
			high = mid
		default:
			low = mid + 1
		}
	}
	return low, false
}

func SearchValue[E cmp.Ordered](items []E, target E) (int, bool) {
	return Search(items, func(e E) int { return cmp.Compare(target, e) })
}
