package syntax

import "strings"

// Flags is the set of pattern-wide options. The letters are the inline
// spellings accepted in a leading (?aiLmsux) group.
type Flags uint16

const (
	ASCII      Flags = 0x0001 // "a"
	IgnoreCase Flags = 0x0002 // "i"
	Locale     Flags = 0x0004 // "L"
	Multiline  Flags = 0x0008 // "m"
	DotAll     Flags = 0x0010 // "s"
	Unicode    Flags = 0x0020 // "u"
	Verbose    Flags = 0x0040 // "x"
	Debug      Flags = 0x0080 // no inline spelling; dumps the tree after parsing

	// a, L and u pick the character semantics and are mutually exclusive
	typeFlags   = ASCII | Locale | Unicode
	inlineFlags = ASCII | IgnoreCase | Locale | Multiline | DotAll | Unicode | Verbose
)

// canonical rendering order
var flagLetters = []struct {
	f  Flags
	ch rune
}{
	{ASCII, 'a'},
	{IgnoreCase, 'i'},
	{Locale, 'L'},
	{Multiline, 'm'},
	{DotAll, 's'},
	{Unicode, 'u'},
	{Verbose, 'x'},
}

// FlagFromChar returns the flag spelled by ch in an inline flag group.
func FlagFromChar(ch rune) (Flags, bool) {
	for _, fl := range flagLetters {
		if fl.ch == ch {
			return fl.f, true
		}
	}
	return 0, false
}

func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// String returns the inline letters of f in canonical order. Debug has no
// letter and is omitted.
func (f Flags) String() string {
	b := &strings.Builder{}
	for _, fl := range flagLetters {
		if f&fl.f != 0 {
			b.WriteRune(fl.ch)
		}
	}
	return b.String()
}

// Validate reports whether f is a legal pattern-wide flag set.
func (f Flags) Validate() error {
	if f&^(inlineFlags|Debug) != 0 {
		return newError(ErrInvalidFlag, nil, "unknown flag bits")
	}
	if countTypeFlags(f) > 1 {
		return newError(ErrIncompatibleFlags, nil, "flags 'a', 'L' and 'u' are mutually exclusive")
	}
	return nil
}

func countTypeFlags(f Flags) int {
	n := 0
	for _, t := range []Flags{ASCII, Locale, Unicode} {
		if f&t != 0 {
			n++
		}
	}
	return n
}

// InlineFlags are the flags a group turns on and off for its body,
// rendered as (?on-off:...).
type InlineFlags struct {
	On  Flags
	Off Flags
}

func (f InlineFlags) IsEmpty() bool {
	return f.On == 0 && f.Off == 0
}

// String renders f as it appears between "(?" and ":".
func (f InlineFlags) String() string {
	s := f.On.String()
	if f.Off != 0 {
		s += "-" + f.Off.String()
	}
	return s
}

// Validate applies the dialect's rules for scoped flags.
func (f InlineFlags) Validate() error {
	if (f.On|f.Off)&^inlineFlags != 0 {
		return newError(ErrInvalidFlag, nil, "flag has no inline spelling")
	}
	if f.On&f.Off != 0 {
		return newError(ErrInvalidFlag, nil, "flag turned on and off: "+(f.On&f.Off).String())
	}
	if f.Off&typeFlags != 0 {
		return newError(ErrInvalidFlag, nil, "cannot turn off flags 'a', 'u' and 'L'")
	}
	if countTypeFlags(f.On) > 1 {
		return newError(ErrIncompatibleFlags, nil, "flags 'a', 'L' and 'u' are mutually exclusive")
	}
	return nil
}
