package helpers

import "unicode"

func IsBetween(val rune, first, last rune) bool {
	if val > last {
		return false
	}
	if val >= first {
		return true
	}
	return false
}

// IsIdentStart reports whether r may begin a group name: a letter or an
// underscore.
func IsIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentChar reports whether r may continue a group name.
func IsIdentChar(r rune) bool {
	//"L", "Mn", "Mc", "Nd", "Pc"
	return unicode.In(r,
		unicode.Categories["L"], unicode.Categories["Mn"], unicode.Categories["Mc"],
		unicode.Categories["Nd"], unicode.Categories["Pc"])
}

func IsOctalDigit(r rune) bool {
	return IsBetween(r, '0', '7')
}

func IsDigit(r rune) bool {
	return IsBetween(r, '0', '9')
}

// HexValue returns the value of the hexadecimal digit r.
func HexValue(r rune) (int, bool) {
	switch {
	case IsBetween(r, '0', '9'):
		return int(r - '0'), true
	case IsBetween(r, 'a', 'f'):
		return int(r-'a') + 10, true
	case IsBetween(r, 'A', 'F'):
		return int(r-'A') + 10, true
	}
	return 0, false
}
