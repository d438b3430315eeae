package mining

import "gonum.org/v1/gonum/floats/scalar"

// Epsilon absorbs floating-point error accumulated while summing expected
// utilities and supports.
const Epsilon = 1e-8

// Equal reports whether a and b differ by less than Epsilon.
func Equal(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Epsilon)
}

// Greater reports whether a exceeds b by more than Epsilon.
func Greater(a, b float64) bool {
	return a > b+Epsilon
}

// GreaterOrEqual is the threshold test used for pruning (utility >= minUtil).
func GreaterOrEqual(a, b float64) bool {
	return a > b-Epsilon
}

// Less reports whether a is below b by more than Epsilon.
func Less(a, b float64) bool {
	return a < b-Epsilon
}

// LessOrEqual reports whether a is below b or within Epsilon of it.
func LessOrEqual(a, b float64) bool {
	return a < b+Epsilon
}

// IsSubsetSorted reports whether every element of sub appears in super.
// Both slices must be sorted ascending without duplicates.
func IsSubsetSorted(sub, super []int) bool {
	if len(sub) > len(super) {
		return false
	}
	if len(sub) == 0 {
		return true
	}
	if sub[0] < super[0] || sub[len(sub)-1] > super[len(super)-1] {
		return false
	}
	i, j := 0, 0
	for i < len(sub) && j < len(super) {
		switch {
		case sub[i] < super[j]:
			return false
		case sub[i] == super[j]:
			i++
			j++
		default:
			j++
		}
	}
	return i == len(sub)
}
