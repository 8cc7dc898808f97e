package syntax

import (
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/reggie-regex/reggie/helpers"
	"github.com/reggie-regex/reggie/runecacher"
)

type parseState int

const (
	scanningLiteral parseState = iota
	scanningRange
	done
	failed
)

type parser struct {
	pattern string
	src     *runecacher.RuneCacher
	pos     int
	state   parseState
	options Flags

	root    *RegexNode
	pending []rune // literal text not yet added to root

	set      *CharSet
	setStart int
	setFirst bool // no item read yet, so ']' is literal

	err *Error
}

// Parse converts a pattern into a tree. It reads literal text, escapes,
// '.', shorthand classes, character sets and a leading (?aiLmsux) flag
// group; any other construct fails with ErrUnsupportedSyntax naming it.
func Parse(re string, op Flags) (*RegexTree, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	p := parser{
		pattern: re,
		src:     runecacher.NewFromString(re),
		options: op,
		root:    newRegexNode(NtConcatenate),
	}

	p.scanGlobalFlags()
	for p.state != done && p.state != failed {
		switch p.state {
		case scanningLiteral:
			p.scanLiteral()
		case scanningRange:
			p.scanRange()
		}
	}
	if p.state == failed {
		return nil, p.err
	}

	tree := &RegexTree{Root: p.root, Options: p.options}
	if tree.Options&Debug != 0 {
		os.Stdout.WriteString(tree.Dump())
		os.Stdout.WriteString("\n")
	}
	return tree, nil
}

func (p *parser) fail(code ErrorCode, pos int, detail string) {
	p.err = newParseError(code, p.pattern, pos, detail)
	p.state = failed
}

func (p *parser) text(from, to int) string {
	rest := p.src.RunesFrom(from)
	if to-from > len(rest) {
		to = from + len(rest)
	}
	return string(rest[:to-from])
}

var flagGroupOpen = []rune("(?")

// scanGlobalFlags consumes leading (?aiLmsux) groups. Anything else that
// starts with "(?" is left for scanLiteral to reject as a group.
func (p *parser) scanGlobalFlags() {
	for helpers.StartsWith(p.src.RunesFrom(p.pos), flagGroupOpen) {
		i := p.pos + len(flagGroupOpen)
		var f Flags
		for {
			ch, ok := p.src.Peek(i)
			if !ok {
				return
			}
			if ch == ')' {
				break
			}
			fl, ok := FlagFromChar(ch)
			if !ok {
				return
			}
			f |= fl
			i++
		}
		if f == 0 {
			return
		}
		if err := (p.options | f).Validate(); err != nil {
			p.fail(ErrIncompatibleFlags, p.pos, p.text(p.pos, i+1))
			return
		}
		p.options |= f
		p.pos = i + 1
	}
}

// Characters that end a run of plain literal text.
var (
	literalStops = helpers.NewAsciiSearchValues("\\[.()|*+?{^$")
	verboseStops = helpers.NewAsciiSearchValues("\\[.()|*+?{^$# \t\n\r\v\f")
	verboseSpace = helpers.NewAsciiSearchValues(" \t\n\r\v\f")
)

func (p *parser) scanLiteral() {
	ch, ok := p.src.Peek(p.pos)
	if !ok {
		p.flushLiteral()
		p.state = done
		return
	}

	switch ch {
	case '[':
		p.flushLiteral()
		p.setStart = p.pos
		p.pos++
		p.set = &CharSet{}
		if c, ok := p.src.Peek(p.pos); ok && c == '^' {
			p.set.negate = true
			p.pos++
		}
		p.setFirst = true
		p.state = scanningRange

	case '\\':
		p.scanLiteralEscape()

	case '.':
		p.flushLiteral()
		p.root.addChild(NewAny())
		p.pos++

	case '(', ')':
		p.fail(ErrUnsupportedSyntax, p.pos, "group")

	case '|':
		p.fail(ErrUnsupportedSyntax, p.pos, "alternation")

	case '*', '+', '?':
		p.fail(ErrUnsupportedSyntax, p.pos, "quantifier")

	case '{':
		if p.isRepeat(p.pos) {
			p.fail(ErrUnsupportedSyntax, p.pos, "quantifier")
			return
		}
		p.pending = append(p.pending, ch)
		p.pos++

	case '^', '$':
		p.fail(ErrUnsupportedSyntax, p.pos, "anchor")

	default:
		stops := literalStops
		if p.options&Verbose != 0 {
			if p.skipVerbose(ch) {
				return
			}
			stops = verboseStops
		}
		// take the whole run of ordinary characters
		rest := p.src.RunesFrom(p.pos)
		n := stops.IndexOfAny(rest)
		if n < 0 {
			n = len(rest)
		}
		p.pending = append(p.pending, rest[:n]...)
		p.pos += n
	}
}

// skipVerbose steps over whitespace and '#' comments in verbose patterns.
func (p *parser) skipVerbose(ch rune) bool {
	if verboseSpace.Contains(ch) {
		rest := p.src.RunesFrom(p.pos)
		if n := verboseSpace.IndexOfAnyExcept(rest); n >= 0 {
			p.pos += n
		} else {
			p.pos += len(rest)
		}
		return true
	}
	if ch != '#' {
		return false
	}
	rest := p.src.RunesFrom(p.pos)
	if eol := helpers.IndexOfAny1(rest, '\n'); eol >= 0 {
		p.pos += eol + 1
	} else {
		p.pos += len(rest)
	}
	return true
}

// isRepeat reports whether the '{' at pos opens {m}, {m,}, {,n} or {m,n};
// otherwise the brace is a literal.
func (p *parser) isRepeat(pos int) bool {
	i := pos + 1
	if ch, ok := p.src.Peek(i); !ok || ch == '}' {
		return false
	}
	for {
		ch, ok := p.src.Peek(i)
		if !ok || !helpers.IsDigit(ch) {
			break
		}
		i++
	}
	if ch, ok := p.src.Peek(i); ok && ch == ',' {
		i++
		for {
			ch, ok := p.src.Peek(i)
			if !ok || !helpers.IsDigit(ch) {
				break
			}
			i++
		}
	}
	ch, ok := p.src.Peek(i)
	return ok && ch == '}'
}

func (p *parser) flushLiteral() {
	if len(p.pending) == 0 {
		return
	}
	p.root.addChild(newRegexNodeStr(NtLiteral, p.pending))
	p.pending = nil
}

func (p *parser) scanLiteralEscape() {
	ch, cat, isCat, ok := p.scanEscape(false)
	if !ok {
		return
	}
	if isCat {
		p.flushLiteral()
		p.root.addChild(&RegexNode{T: NtSet, Set: NewCategorySet(false, cat)})
		return
	}
	p.pending = append(p.pending, ch)
}

// scanEscape reads the escape at p.pos. It returns either a rune or a
// shorthand category, and ok is false when the parser has failed.
func (p *parser) scanEscape(inClass bool) (r rune, cat Category, isCat bool, ok bool) {
	start := p.pos
	p.pos++
	ch, ok := p.src.Peek(p.pos)
	if !ok {
		p.fail(ErrTrailingBackslash, start, "")
		return 0, 0, false, false
	}
	p.pos++

	if c, found := CategoryFromEscape(ch); found {
		return 0, c, true, true
	}

	switch ch {
	case 'a':
		return '\a', 0, false, true
	case 'f':
		return '\f', 0, false, true
	case 'n':
		return '\n', 0, false, true
	case 'r':
		return '\r', 0, false, true
	case 't':
		return '\t', 0, false, true
	case 'v':
		return '\v', 0, false, true
	case 'b':
		if inClass {
			return '\b', 0, false, true
		}
		p.fail(ErrUnsupportedSyntax, start, `anchor \b`)
		return 0, 0, false, false
	case 'A', 'B', 'Z':
		if inClass {
			p.fail(ErrInvalidEscape, start, `\`+string(ch))
		} else {
			p.fail(ErrUnsupportedSyntax, start, `anchor \`+string(ch))
		}
		return 0, 0, false, false
	case 'x':
		return p.scanHex(start, 2)
	case 'u':
		return p.scanHex(start, 4)
	case 'U':
		return p.scanHex(start, 8)
	case 'N':
		p.fail(ErrUnsupportedSyntax, start, `named character escape \N`)
		return 0, 0, false, false
	case '0':
		return p.scanOctal(start, ch, 2)
	}

	if helpers.IsBetween(ch, '1', '9') {
		// three octal digits spell a character even outside a set
		d1, ok1 := p.src.Peek(p.pos)
		d2, ok2 := p.src.Peek(p.pos + 1)
		if helpers.IsOctalDigit(ch) && ok1 && helpers.IsOctalDigit(d1) && ok2 && helpers.IsOctalDigit(d2) {
			return p.scanOctal(start, ch, 2)
		}
		if !inClass {
			p.fail(ErrUnsupportedSyntax, start, "backreference")
			return 0, 0, false, false
		}
		if helpers.IsOctalDigit(ch) {
			return p.scanOctal(start, ch, 2)
		}
	}

	if ch < utf8.RuneSelf && (unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
		p.fail(ErrInvalidEscape, start, `\`+string(ch))
		return 0, 0, false, false
	}
	return ch, 0, false, true
}

// scanHex reads exactly digits hex digits following \x, \u or \U.
func (p *parser) scanHex(start, digits int) (rune, Category, bool, bool) {
	var v int64
	for i := 0; i < digits; i++ {
		ch, ok := p.src.Peek(p.pos)
		h, isHex := helpers.HexValue(ch)
		if !ok || !isHex {
			p.fail(ErrInvalidEscape, start, "incomplete escape "+p.text(start, p.pos))
			return 0, 0, false, false
		}
		v = v*16 + int64(h)
		p.pos++
	}
	if v > unicode.MaxRune {
		p.fail(ErrInvalidEscape, start, p.text(start, p.pos))
		return 0, 0, false, false
	}
	return rune(v), 0, false, true
}

// scanOctal reads up to more further octal digits after first.
func (p *parser) scanOctal(start int, first rune, more int) (rune, Category, bool, bool) {
	v := first - '0'
	for i := 0; i < more; i++ {
		ch, ok := p.src.Peek(p.pos)
		if !ok || !helpers.IsOctalDigit(ch) {
			break
		}
		v = v*8 + ch - '0'
		p.pos++
	}
	if v > 0o377 {
		p.fail(ErrInvalidEscape, start, "octal escape value "+p.text(start, p.pos)+" outside of range 0-0o377")
		return 0, 0, false, false
	}
	return v, 0, false, true
}

func (p *parser) scanRange() {
	ch, ok := p.src.Peek(p.pos)
	if !ok {
		p.fail(ErrUnterminatedRange, p.setStart, "")
		return
	}
	if ch == ']' && !p.setFirst {
		p.pos++
		p.root.addChild(&RegexNode{T: NtSet, Set: p.set})
		p.set = nil
		p.state = scanningLiteral
		return
	}
	p.setFirst = false

	itemStart := p.pos
	lo, cat, isCat, ok := p.scanClassItem()
	if !ok {
		return
	}

	// a '-' followed by anything but ']' makes a range
	if c, ok := p.src.Peek(p.pos); ok && c == '-' {
		next, ok := p.src.Peek(p.pos + 1)
		if !ok {
			p.fail(ErrUnterminatedRange, p.setStart, "")
			return
		}
		if next != ']' {
			p.pos++
			hi, _, hiCat, ok := p.scanClassItem()
			if !ok {
				return
			}
			if isCat || hiCat || lo > hi {
				p.fail(ErrInvalidSubrange, itemStart, p.text(itemStart, p.pos))
				return
			}
			p.set.ranges = append(p.set.ranges, SingleRange{lo, hi})
			p.set.canonicalize()
			return
		}
	}

	if isCat {
		p.set.addCategory(cat)
	} else {
		p.set.addChar(lo)
	}
}

func (p *parser) scanClassItem() (rune, Category, bool, bool) {
	ch := p.src.RuneAt(p.pos)
	if ch == '\\' {
		return p.scanEscape(true)
	}
	p.pos++
	return ch, 0, false, true
}
