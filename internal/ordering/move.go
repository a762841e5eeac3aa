// Package ordering implements pure list reordering with dense positions.
// Lessons within a course and blocks within a lesson both hold a position
// in [0, N); every move rewrites positions so the invariant holds with no
// gaps and no duplicates.
package ordering

import "fmt"

// Positioned is a list element that can be re-stamped with a position.
type Positioned[T any] interface {
	WithPosition(int) T
}

// Move removes the element at from and reinserts it so that it ends up at
// index to, where to is interpreted against the list after removal. All
// positions are rewritten to match the new indices. from == to returns the
// input unchanged. Out-of-range indices are a programming error and panic.
func Move[T Positioned[T]](list []T, from, to int) ([]T, int) {
	n := len(list)
	if from < 0 || from >= n || to < 0 || to >= n {
		panic(fmt.Sprintf("ordering: move %d -> %d out of range for %d items", from, to, n))
	}
	if from == to {
		return list, from
	}

	out := make([]T, 0, n)
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	// Insert the moved element at its post-removal index.
	out = append(out, list[from])
	copy(out[to+1:], out[to:])
	out[to] = list[from]

	for i := range out {
		out[i] = out[i].WithPosition(i)
	}
	return out, to
}
