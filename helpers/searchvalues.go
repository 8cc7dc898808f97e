package helpers

import (
	"fmt"
	"unicode"
)

type AsciiSearchValues struct {
	// each ascii byte is represented by a bit in this array
	// there are 128bits here and ascii has 128 possible chars
	set [2]uint64
}

func NewAsciiSearchValues(vals string) AsciiSearchValues {
	// pre-calc ascii table stuff to make this go faster
	sv := AsciiSearchValues{}
	for i := 0; i < len(vals); i++ {
		c := vals[i]
		if c > unicode.MaxASCII {
			// a bug got us here. that's bad.
			panic(fmt.Errorf("non-ascii value found in ascii search values: %s", vals))
		}
		idx := c / 64
		shift := c % 64
		sv.set[idx] |= 1 << shift
	}

	return sv
}

// Contains reports whether c is one of our original vals values
func (s AsciiSearchValues) Contains(c rune) bool {
	if c < 0 || c > unicode.MaxASCII {
		return false
	}
	return s.set[c/64]&(1<<(c%64)) != 0
}

// return the first index of our original vals values within the slice given
func (s AsciiSearchValues) IndexOfAny(chars []rune) int {
	for i, c := range chars {
		if s.Contains(c) {
			return i
		}
	}
	return -1
}

// return the first index of anything except our original vals values within the slice given
func (s AsciiSearchValues) IndexOfAnyExcept(chars []rune) int {
	for i, c := range chars {
		if !s.Contains(c) {
			return i
		}
	}
	return -1
}
