package reggie

import "github.com/reggie-regex/reggie/syntax"

// Node is one component of a pattern tree.
type Node = syntax.RegexNode

type (
	Flags          = syntax.Flags
	InlineFlags    = syntax.InlineFlags
	GroupKind      = syntax.GroupKind
	AnchorKind     = syntax.AnchorKind
	QuantifierMode = syntax.QuantifierMode
	Category       = syntax.Category
	Span           = syntax.SingleRange
)

const (
	ASCII      = syntax.ASCII      // "a"
	IgnoreCase = syntax.IgnoreCase // "i"
	Locale     = syntax.Locale     // "L"
	Multiline  = syntax.Multiline  // "m"
	DotAll     = syntax.DotAll     // "s"
	Unicode    = syntax.Unicode    // "u"
	Verbose    = syntax.Verbose    // "x"
	Debug      = syntax.Debug
)

const (
	Capturing          = syntax.GroupCapturing
	NonCapturing       = syntax.GroupNonCapturing
	Atomic             = syntax.GroupAtomic
	Lookahead          = syntax.GroupLookahead
	NegativeLookahead  = syntax.GroupNegativeLookahead
	Lookbehind         = syntax.GroupLookbehind
	NegativeLookbehind = syntax.GroupNegativeLookbehind
)

const (
	StartOfString   = syntax.AnchorStart           // \A
	EndOfString     = syntax.AnchorEnd             // \Z
	WordBoundary    = syntax.AnchorWordBoundary    // \b
	NonWordBoundary = syntax.AnchorNonWordBoundary // \B
	StartOfLine     = syntax.AnchorLineStart       // ^
	EndOfLine       = syntax.AnchorLineEnd         // $
)

const (
	Greedy     = syntax.Greedy
	Lazy       = syntax.Lazy
	Possessive = syntax.Possessive

	// Infinite is the max of an unbounded quantifier.
	Infinite = syntax.Infinite
)

const (
	Digit    = syntax.CatDigit    // \d
	NotDigit = syntax.CatNotDigit // \D
	Space    = syntax.CatSpace    // \s
	NotSpace = syntax.CatNotSpace // \S
	Word     = syntax.CatWord     // \w
	NotWord  = syntax.CatNotWord  // \W
)

// Builders return free nodes. A node passed to a builder or mutator becomes
// owned by its new parent and cannot be attached anywhere else.

// Must panics if err is non-nil and returns n otherwise, so builders can be
// nested: Quantify(Must(Literal("ab")), 1, Infinite, Greedy).
func Must(n *Node, err error) *Node {
	if err != nil {
		panic(`reggie: ` + err.Error())
	}
	return n
}

// Literal matches text exactly. The text is stored unescaped.
func Literal(text string) (*Node, error) {
	return syntax.NewLiteral(text)
}

// Range matches one rune from the given spans, or one rune outside them if
// negate is set.
func Range(negate bool, spans ...Span) (*Node, error) {
	set, err := syntax.NewCharSet(negate, spans...)
	if err != nil {
		return nil, err
	}
	return syntax.NewSet(set)
}

// Class matches one rune of a shorthand class such as \d.
func Class(cat Category) (*Node, error) {
	return syntax.NewCategory(cat)
}

// Any matches any rune ('.').
func Any() *Node {
	return syntax.NewAny()
}

// Anchor matches the empty string at a position.
func Anchor(kind AnchorKind) (*Node, error) {
	return syntax.NewAssertion(kind)
}

func Group(kind GroupKind, child *Node) (*Node, error) {
	return syntax.NewGroup(kind, child)
}

// NamedGroup is a capturing group addressable by name.
func NamedGroup(name string, child *Node) (*Node, error) {
	return syntax.NewNamedGroup(name, child)
}

// FlagGroup applies flags to child only: (?on-off:child).
func FlagGroup(flags InlineFlags, child *Node) (*Node, error) {
	return syntax.NewFlagGroup(flags, child)
}

// Alternate matches the first of children that matches.
func Alternate(children ...*Node) (*Node, error) {
	return syntax.NewAlternate(children...)
}

// Sequence matches children one after another. Adjacent literals are
// merged, and a sequence of one node is that node.
func Sequence(children ...*Node) (*Node, error) {
	return syntax.NewConcatenate(children...)
}

// Quantify repeats child at least min and at most max times.
func Quantify(child *Node, min, max int, mode QuantifierMode) (*Node, error) {
	return syntax.NewQuantified(child, min, max, mode)
}

// Star is child*.
func Star(child *Node) (*Node, error) {
	return syntax.NewQuantified(child, 0, Infinite, Greedy)
}

// Plus is child+.
func Plus(child *Node) (*Node, error) {
	return syntax.NewQuantified(child, 1, Infinite, Greedy)
}

// Optional is child?.
func Optional(child *Node) (*Node, error) {
	return syntax.NewQuantified(child, 0, 1, Greedy)
}

// Backreference refers to the group numbered index. Whether the group
// exists is checked when the node is added to a Regex; see also
// (*Regex).Backreference.
func Backreference(index int) (*Node, error) {
	return syntax.NewBackref(index)
}

func NamedBackreference(name string) (*Node, error) {
	return syntax.NewNamedBackref(name)
}

// Conditional matches yes if group index took part in the match and no
// otherwise. no may be nil.
func Conditional(index int, yes, no *Node) (*Node, error) {
	return syntax.NewConditional(index, yes, no)
}

func NamedConditional(name string, yes, no *Node) (*Node, error) {
	return syntax.NewNamedConditional(name, yes, no)
}

// Comment is an inline (?#...) comment.
func Comment(text string) (*Node, error) {
	return syntax.NewComment(text)
}

// Backreference returns a reference to group index of re, failing with
// syntax.ErrDanglingBackreference if re has no such group yet.
func (re *Regex) Backreference(index int) (*Node, error) {
	n, err := syntax.NewBackref(index)
	if err != nil {
		return nil, err
	}
	if index > len(re.groups) {
		return nil, syntax.NewError(syntax.ErrDanglingBackreference, n, refString(n))
	}
	return n, nil
}

// NamedBackreference returns a reference to the group of re called name.
func (re *Regex) NamedBackreference(name string) (*Node, error) {
	n, err := syntax.NewNamedBackref(name)
	if err != nil {
		return nil, err
	}
	if _, ok := re.capnames[name]; !ok {
		return nil, syntax.NewError(syntax.ErrDanglingBackreference, n, refString(n))
	}
	return n, nil
}
