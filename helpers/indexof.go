package helpers

import "slices"

func IndexOfAny1(in []rune, find rune) int {
	return slices.Index(in, find)
}

func StartsWith(in []rune, find []rune) bool {
	// if text is less than our "begin" then can't find it
	if len(in) < len(find) {
		return false
	}

	return slices.Equal(in[:len(find)], find)
}
