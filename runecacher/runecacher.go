package runecacher

import (
	"unicode/utf8"
)

const cachePrimeSize = 10

// RuneCacher reads runes from a pattern string on demand and caches the
// results, so the parser can peek ahead and step back by rune index without
// decoding the input more than once.
type RuneCacher struct {
	runes  []rune
	inpStr string

	// start of uncached position in our input
	inpUncachedPos int
}

func NewFromString(str string) *RuneCacher {
	r := &RuneCacher{
		runes:  make([]rune, 0, len(str)),
		inpStr: str,
	}
	// prime cache with some runes
	r.cachedNext(cachePrimeSize)
	return r
}

// Has reports whether the input holds a rune at textPos.
func (r *RuneCacher) Has(textPos int) bool {
	if textPos < 0 {
		return false
	}
	if textPos >= len(r.runes) {
		r.cachedNext(textPos - len(r.runes) + 1)
	}
	return textPos < len(r.runes)
}

// RuneAt returns the rune at textPos. It panics past the end of the input;
// check with Has first.
func (r *RuneCacher) RuneAt(textPos int) rune {
	if textPos < len(r.runes) {
		return r.runes[textPos]
	}
	// not in our cache - populate cache
	want := textPos - len(r.runes) + 1
	r.cachedNext(want)

	return r.runes[textPos]
}

// Peek returns the rune at textPos, or false past the end of the input.
func (r *RuneCacher) Peek(textPos int) (rune, bool) {
	if !r.Has(textPos) {
		return 0, false
	}
	return r.runes[textPos], true
}

// RunesFrom returns all remaining runes from the input starting at a specific rune index
func (r *RuneCacher) RunesFrom(textPos int) []rune {
	if r.hasUncached() {
		// make sure our cache is fully populated
		r.cachedNext(len(r.inpStr))
	}
	if textPos >= len(r.runes) {
		return nil
	}
	return r.runes[textPos:]
}

func (r *RuneCacher) hasUncached() bool {
	// if we're not passed the end then we have more to cache
	return r.inpUncachedPos < len(r.inpStr)
}

func (r *RuneCacher) cachedNext(count int) {
	// calculate our next runes and pre-populate the cache
	// stop if we've cached everything OR if we've decoded count runes
	for r.hasUncached() && count > 0 {
		// decode bytes
		newRune, newLen := utf8.DecodeRuneInString(r.inpStr[r.inpUncachedPos:])
		r.runes = append(r.runes, newRune)
		r.inpUncachedPos += newLen
		count--
	}
}
