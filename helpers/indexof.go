package helpers

import (
	"slices"
)

// IndexOfAny1 returns the index of the first occurrence of find in in, or -1.
func IndexOfAny1(in []rune, find rune) int {
	return slices.Index(in, find)
}

// IndexOf returns the index of the first occurrence of the sequence find in in, or -1.
func IndexOf(in []rune, find []rune) int {
	if len(find) == 0 {
		return 0
	}
	if len(find) == 1 {
		return IndexOfAny1(in, find[0])
	}

	first := find[0]
	for i := 0; i+len(find) <= len(in); {
		j := IndexOfAny1(in[i:len(in)-len(find)+1], first)
		if j < 0 {
			return -1
		}
		i += j
		if Equals(in, i, len(find), find) {
			return i
		}
		i++
	}
	return -1
}

// Equals reports whether in[start:start+length] equals find.
func Equals(in []rune, start int, length int, find []rune) bool {
	if start < 0 || start+length > len(in) || length != len(find) {
		return false
	}
	return slices.Equal(in[start:start+length], find)
}
