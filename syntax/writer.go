package syntax

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/reggie-regex/reggie/helpers"
)

// Dialect selects the concrete syntax the writer produces.
type Dialect int

const (
	// Python is the syntax of Python's re module.
	Python Dialect = iota
	// RegexpTwo is the .NET-style syntax accepted by github.com/dlclark/regexp2.
	RegexpTwo
)

func (d Dialect) String() string {
	if d == RegexpTwo {
		return "regexp2"
	}
	return "python"
}

// Write renders the tree rooted at root, prefixed by the whole-pattern
// flags, in the given dialect. Rendering is deterministic: equal trees
// produce identical text.
func Write(root *RegexNode, opt Flags, d Dialect) (string, error) {
	w := newWriter(d)

	if err := w.writeFlags(opt); err != nil {
		return "", err
	}
	w.writeTree(root)
	if w.err != nil {
		return "", w.err
	}
	return w.buf.String(), nil
}

// String renders the subtree rooted at n as Python syntax.
func (n *RegexNode) String() string {
	w := newWriter(Python)
	w.writeTree(n)
	return w.buf.String()
}

type writer struct {
	buf      *bytes.Buffer
	dialect  Dialect
	intStack []int
	root     *RegexNode
	err      error
}

const (
	BeforeChild NodeType = 64
	AfterChild  NodeType = 128
)

func newWriter(d Dialect) *writer {
	return &writer{
		buf:      &bytes.Buffer{},
		dialect:  d,
		intStack: make([]int, 0, 32),
	}
}

func (w *writer) fail(code ErrorCode, n *RegexNode, detail string) {
	if w.err == nil {
		w.err = &Error{Code: code, Pos: -1, Node: n, Detail: detail + " in " + w.dialect.String() + " syntax"}
	}
}

func (w *writer) writeFlags(opt Flags) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	inline := opt &^ Debug
	if w.dialect == RegexpTwo {
		if inline&(ASCII|Locale) != 0 {
			return &Error{Code: ErrUnsupportedSyntax, Pos: -1, Detail: "flag " + (inline & (ASCII | Locale)).String() + " in " + w.dialect.String() + " syntax"}
		}
		// unicode semantics are the default there
		inline &^= Unicode
	}
	if inline != 0 {
		w.buf.WriteString("(?")
		w.buf.WriteString(inline.String())
		w.buf.WriteString(")")
	}
	return nil
}

// writeTree does a depth-first walk through the tree and calls emitFragment
// before and after each child of an interior node, and at each leaf.
func (w *writer) writeTree(root *RegexNode) {
	curNode := root
	curChild := 0
	w.root = root

	for {
		if len(curNode.Children) == 0 {
			w.emitFragment(curNode.T, curNode, 0)
		} else if curChild < len(curNode.Children) {
			w.emitFragment(curNode.T|BeforeChild, curNode, curChild)

			curNode = curNode.Children[curChild]

			w.pushInt(curChild)
			curChild = 0
			continue
		}

		if w.emptyStack() {
			break
		}

		curChild = w.popInt()
		curNode = curNode.parent

		w.emitFragment(curNode.T|AfterChild, curNode, curChild)
		curChild++
	}
}

// The main RegexCode generator. It writes the text for a leaf, or the text
// that goes before or after child curIndex of an interior node.
func (w *writer) emitFragment(nodetype NodeType, node *RegexNode, curIndex int) {
	switch nodetype {
	case NtConcatenate | BeforeChild, NtConcatenate | AfterChild, NtConcatenate:
		// nothing of its own

	case NtAlternate | BeforeChild:
		if curIndex > 0 {
			w.buf.WriteRune('|')
		}

	case NtAlternate | AfterChild:

	case NtGroup | BeforeChild:
		w.writeGroupOpen(node)

	case NtGroup | AfterChild:
		if node.Group != GroupNonCapturing && !w.groupFlags(node).IsEmpty() {
			w.buf.WriteRune(')')
		}

	case NtQuantified | BeforeChild:
		if node.Mode == Possessive && w.dialect == RegexpTwo {
			w.fail(ErrUnsupportedSyntax, node, "possessive quantifier")
		}

	case NtQuantified | AfterChild:

	case NtConditional | BeforeChild:
		if curIndex == 0 {
			w.buf.WriteString("(?(")
			if node.Name != "" {
				w.buf.WriteString(node.Name)
			} else {
				w.buf.WriteString(strconv.Itoa(node.Index))
			}
			w.buf.WriteRune(')')
		} else {
			w.buf.WriteRune('|')
		}

	case NtConditional | AfterChild:

	case NtLiteral:
		for _, ch := range node.Str {
			w.writeLiteralRune(ch)
		}

	case NtSet:
		w.writeSet(node.Set)

	case NtAny:
		w.buf.WriteRune('.')

	case NtBackref:
		w.writeBackref(node)

	case NtAssertion:
		w.writeAnchor(node)

	case NtComment:
		w.buf.WriteString("(?#")
		w.buf.WriteString(string(node.Str))
		w.buf.WriteRune(')')

	default:
		if nodetype&(BeforeChild|AfterChild) == 0 && node.IsContainer() {
			// a container left without children by direct field edits
			w.fail(ErrInvalidChildIndex, node, typeName(node.T)+" without children")
			return
		}
		if nodetype&(BeforeChild|AfterChild) == 0 {
			w.fail(ErrWrongNodeType, node, fmt.Sprintf("node type %d", node.T))
		}
	}

	if nodetype&BeforeChild != 0 {
		if w.needsWrap(node, curIndex) {
			w.buf.WriteString("(?:")
		}
		return
	}
	if nodetype&AfterChild == 0 {
		return
	}
	if w.needsWrap(node, curIndex) {
		w.buf.WriteRune(')')
	}
	if curIndex == len(node.Children)-1 {
		w.closeNode(node)
	}
}

// closeNode writes what follows the last child of an interior node.
func (w *writer) closeNode(node *RegexNode) {
	switch node.T {
	case NtGroup, NtConditional:
		w.buf.WriteRune(')')
	case NtQuantified:
		w.writeQuantifier(node)
	}
}

func (w *writer) writeGroupOpen(node *RegexNode) {
	flags := w.groupFlags(node)
	switch node.Group {
	case GroupCapturing:
		w.buf.WriteRune('(')
	case GroupNonCapturing:
		w.buf.WriteString("(?")
		w.buf.WriteString(flags.String())
		w.buf.WriteRune(':')
		return
	case GroupNamed:
		if w.dialect == RegexpTwo {
			w.buf.WriteString("(?<")
		} else {
			w.buf.WriteString("(?P<")
		}
		w.buf.WriteString(node.Name)
		w.buf.WriteRune('>')
	case GroupAtomic:
		w.buf.WriteString("(?>")
	case GroupLookahead:
		w.buf.WriteString("(?=")
	case GroupNegativeLookahead:
		w.buf.WriteString("(?!")
	case GroupLookbehind:
		w.buf.WriteString("(?<=")
	case GroupNegativeLookbehind:
		w.buf.WriteString("(?<!")
	default:
		w.fail(ErrWrongNodeType, node, node.Group.String())
	}
	// only (?flags:...) carries flags itself; other groups get an inner one
	if !flags.IsEmpty() {
		w.buf.WriteString("(?")
		w.buf.WriteString(flags.String())
		w.buf.WriteRune(':')
	}
}

// groupFlags returns the scoped flags of node as the dialect spells them.
func (w *writer) groupFlags(node *RegexNode) InlineFlags {
	f := node.Flags
	if w.dialect == RegexpTwo {
		if f.On&(ASCII|Locale) != 0 {
			w.fail(ErrUnsupportedSyntax, node, "flag "+(f.On&(ASCII|Locale)).String())
		}
		f.On &^= ASCII | Locale | Unicode
	}
	return f
}

func (w *writer) writeQuantifier(node *RegexNode) {
	m, n := node.M, node.N
	switch {
	case m == 0 && n == Infinite:
		w.buf.WriteRune('*')
	case m == 1 && n == Infinite:
		w.buf.WriteRune('+')
	case m == 0 && n == 1:
		w.buf.WriteRune('?')
	case m == n:
		fmt.Fprintf(w.buf, "{%d}", m)
	case n == Infinite:
		fmt.Fprintf(w.buf, "{%d,}", m)
	case m == 0 && w.dialect == Python:
		fmt.Fprintf(w.buf, "{,%d}", n)
	default:
		fmt.Fprintf(w.buf, "{%d,%d}", m, n)
	}
	switch node.Mode {
	case Lazy:
		w.buf.WriteRune('?')
	case Possessive:
		w.buf.WriteRune('+')
	}
}

func (w *writer) writeBackref(node *RegexNode) {
	if node.Name == "" {
		w.buf.WriteRune('\\')
		w.buf.WriteString(strconv.Itoa(node.Index))
		return
	}
	if w.dialect == RegexpTwo {
		w.buf.WriteString(`\k<` + node.Name + ">")
	} else {
		w.buf.WriteString("(?P=" + node.Name + ")")
	}
}

func (w *writer) writeAnchor(node *RegexNode) {
	switch node.Anchor {
	case AnchorStart:
		w.buf.WriteString(`\A`)
	case AnchorEnd:
		if w.dialect == RegexpTwo {
			// \Z there also matches before a final newline
			w.buf.WriteString(`\z`)
		} else {
			w.buf.WriteString(`\Z`)
		}
	case AnchorWordBoundary:
		w.buf.WriteString(`\b`)
	case AnchorNonWordBoundary:
		w.buf.WriteString(`\B`)
	case AnchorLineStart:
		w.buf.WriteRune('^')
	case AnchorLineEnd:
		w.buf.WriteRune('$')
	default:
		w.fail(ErrWrongNodeType, node, node.Anchor.String())
	}
}

// needsWrap reports whether child i of node must be enclosed in (?:...) to
// keep its meaning once rendered next to its neighbours.
func (w *writer) needsWrap(node *RegexNode, i int) bool {
	if i < 0 || i >= len(node.Children) {
		return false
	}
	child := node.Children[i]

	switch node.T {
	case NtQuantified:
		switch child.T {
		case NtLiteral:
			return len(child.Str) > 1
		case NtConcatenate, NtAlternate, NtQuantified:
			return true
		}
	case NtAlternate, NtConditional:
		return child.T == NtAlternate
	case NtConcatenate:
		switch child.T {
		case NtAlternate:
			return len(node.Children) > 1 || !w.bounded(node)
		case NtBackref:
			return child.Name == "" && i+1 < len(node.Children) && w.startsWithDigit(node.Children[i+1])
		}
	}
	return false
}

// bounded is true when nothing can be rendered next to node, so an
// alternation directly inside it needs no group of its own.
func (w *writer) bounded(node *RegexNode) bool {
	if node == w.root || node.parent == nil {
		return true
	}
	// a quantifier wraps a sequence child itself
	return node.parent.T == NtGroup || node.parent.T == NtQuantified
}

// startsWithDigit reports whether the rendering of n begins with a decimal
// digit, which would extend a preceding numeric backreference.
func (w *writer) startsWithDigit(n *RegexNode) bool {
	for {
		switch n.T {
		case NtLiteral:
			return len(n.Str) > 0 && n.Str[0] >= '0' && n.Str[0] <= '9'
		case NtQuantified:
			if w.needsWrap(n, 0) {
				return false
			}
			n = n.Children[0]
		case NtConcatenate:
			if len(n.Children) == 0 {
				return false
			}
			n = n.Children[0]
		default:
			return false
		}
	}
}

// Characters escaped outside a set (Python's re.escape), and inside one.
var (
	literalSpecials = helpers.NewAsciiSearchValues("()[]{}?*+-|^$\\.&~# \t\n\r\v\f")
	classSpecials   = helpers.NewAsciiSearchValues("\\]-^[&~|\t\n\r\v\f")
)

func (w *writer) writeLiteralRune(ch rune) {
	writeRune(w.buf, ch, literalSpecials, w.dialect)
}

func (w *writer) writeSet(set *CharSet) {
	if set == nil {
		w.fail(ErrEmptyRange, nil, "set node without a set")
		return
	}
	writeSet(w.buf, set, w.dialect)
}

func writeSet(buf *bytes.Buffer, set *CharSet, d Dialect) {
	if cat, ok := set.Shorthand(); ok {
		buf.WriteString(cat.String())
		return
	}
	buf.WriteRune('[')
	if set.negate {
		buf.WriteRune('^')
	}
	for _, r := range set.ranges {
		writeRune(buf, r.First, classSpecials, d)
		if r.First == r.Last {
			continue
		}
		if r.Last != r.First+1 {
			buf.WriteRune('-')
		}
		writeRune(buf, r.Last, classSpecials, d)
	}
	for _, cat := range set.categories {
		buf.WriteString(cat.String())
	}
	buf.WriteRune(']')
}

// writeRune writes ch escaped as needed. The output is printable ASCII in
// the Python dialect.
func writeRune(buf *bytes.Buffer, ch rune, specials helpers.AsciiSearchValues, d Dialect) {
	switch ch {
	case '\t':
		buf.WriteString(`\t`)
		return
	case '\n':
		buf.WriteString(`\n`)
		return
	case '\r':
		buf.WriteString(`\r`)
		return
	case '\v':
		buf.WriteString(`\v`)
		return
	case '\f':
		buf.WriteString(`\f`)
		return
	}

	switch {
	case specials.Contains(ch):
		buf.WriteRune('\\')
		buf.WriteRune(ch)
	case ch < ' ' || ch == 0x7f:
		fmt.Fprintf(buf, `\x%02x`, ch)
	case ch < 0x7f:
		buf.WriteRune(ch)
	case ch <= 0xffff:
		fmt.Fprintf(buf, `\u%04x`, ch)
	case d == RegexpTwo:
		// no escape spells an astral rune there; the engine reads the rune itself
		buf.WriteRune(ch)
	default:
		fmt.Fprintf(buf, `\U%08x`, ch)
	}
}

func (w *writer) pushInt(i int) {
	w.intStack = append(w.intStack, i)
}

// Returns true if the stack is empty.
func (w *writer) emptyStack() bool {
	return len(w.intStack) == 0
}

// This is the pop.
func (w *writer) popInt() int {
	//get our item
	idx := len(w.intStack) - 1
	i := w.intStack[idx]
	//trim our slice
	w.intStack = w.intStack[:idx]
	return i
}
