package syntax

import (
	"strconv"

	"github.com/reggie-regex/reggie/helpers"
)

// Constructors validate their arguments and take ownership of the children
// they are handed. A child that already has a parent is refused.

// NewLiteral returns a node matching text exactly.
func NewLiteral(text string) (*RegexNode, error) {
	return NewLiteralRunes([]rune(text))
}

func NewLiteralRunes(str []rune) (*RegexNode, error) {
	if len(str) == 0 {
		return nil, newError(ErrEmptyLiteral, nil, "")
	}
	return newRegexNodeStr(NtLiteral, append([]rune(nil), str...)), nil
}

// NewSet returns a node matching one rune of set. The node takes ownership
// of set.
func NewSet(set *CharSet) (*RegexNode, error) {
	if set == nil || set.IsEmpty() {
		return nil, newError(ErrEmptyRange, nil, "")
	}
	return &RegexNode{T: NtSet, Set: set}, nil
}

// NewCategory returns a node for a shorthand class such as \d.
func NewCategory(cat Category) (*RegexNode, error) {
	if !cat.valid() {
		return nil, newError(ErrWrongNodeType, nil, cat.String())
	}
	return &RegexNode{T: NtSet, Set: NewCategorySet(false, cat)}, nil
}

func NewAny() *RegexNode {
	return newRegexNode(NtAny)
}

func NewAssertion(kind AnchorKind) (*RegexNode, error) {
	if !kind.valid() {
		return nil, newError(ErrWrongNodeType, nil, kind.String())
	}
	return &RegexNode{T: NtAssertion, Anchor: kind}, nil
}

// NewGroup wraps child in a group of the given kind. Named groups are made
// with NewNamedGroup.
func NewGroup(kind GroupKind, child *RegexNode) (*RegexNode, error) {
	if !kind.valid() {
		return nil, newError(ErrWrongNodeType, nil, kind.String())
	}
	if kind == GroupNamed {
		return nil, newError(ErrInvalidGroupName, nil, `""`)
	}
	return newGroup(kind, "", InlineFlags{}, child)
}

func NewNamedGroup(name string, child *RegexNode) (*RegexNode, error) {
	if err := CheckGroupName(name); err != nil {
		return nil, err
	}
	return newGroup(GroupNamed, name, InlineFlags{}, child)
}

// NewFlagGroup returns a non-capturing group that turns flags on and off
// for child: (?i-s:child).
func NewFlagGroup(flags InlineFlags, child *RegexNode) (*RegexNode, error) {
	if err := flags.Validate(); err != nil {
		return nil, err
	}
	return newGroup(GroupNonCapturing, "", flags, child)
}

func newGroup(kind GroupKind, name string, flags InlineFlags, child *RegexNode) (*RegexNode, error) {
	if err := checkAdoptable(child); err != nil {
		return nil, err
	}
	if name != "" {
		if err := checkNamesDisjoint(map[string]bool{name: true}, child); err != nil {
			return nil, err
		}
	} else if err := checkNamesDisjoint(nil, child); err != nil {
		return nil, err
	}
	n := &RegexNode{T: NtGroup, Group: kind, Name: name, Flags: flags}
	n.addChild(child)
	return n, nil
}

// NewAlternate returns a node matching any one of children, tried in order.
func NewAlternate(children ...*RegexNode) (*RegexNode, error) {
	if len(children) == 0 {
		return nil, newError(ErrEmptyAlternation, nil, "")
	}
	if err := checkSiblings(children); err != nil {
		return nil, err
	}
	n := newRegexNode(NtAlternate)
	for _, c := range children {
		n.addChild(c)
	}
	return n, nil
}

// NewConcatenate returns the sequence of children. Nested sequences are
// flattened and adjacent literals merged; a sequence of one node is that
// node.
func NewConcatenate(children ...*RegexNode) (*RegexNode, error) {
	if err := checkSiblings(children); err != nil {
		return nil, err
	}
	n := newRegexNode(NtConcatenate)
	for _, c := range children {
		n.addChild(c)
	}
	n.reduceConcatenation()
	if len(n.Children) == 1 {
		only := n.Children[0]
		only.parent = nil
		return only, nil
	}
	return n, nil
}

// NewQuantified repeats child between min and max times; max may be
// Infinite.
func NewQuantified(child *RegexNode, min, max int, mode QuantifierMode) (*RegexNode, error) {
	if err := checkAdoptable(child); err != nil {
		return nil, err
	}
	if err := checkQuantifier(child, min, max, mode); err != nil {
		return nil, err
	}
	if err := checkNamesDisjoint(nil, child); err != nil {
		return nil, err
	}
	n := newRegexNodeMN(NtQuantified, min, max)
	n.Mode = mode
	n.addChild(child)
	return n, nil
}

func checkQuantifier(child *RegexNode, min, max int, mode QuantifierMode) error {
	if !mode.valid() {
		return newError(ErrWrongNodeType, nil, mode.String())
	}
	if min < 0 || min >= Infinite || max < 0 || max > Infinite || min > max {
		return newError(ErrInvalidRepeat, child, "{"+strconv.Itoa(min)+","+repeatMaxString(max)+"}")
	}
	if !child.IsQuantifiable() {
		return newError(ErrInvalidQuantifierTarget, child, "zero-width "+typeName(child.T))
	}
	if mode == Possessive && child.T == NtQuantified && child.Mode == Possessive {
		return newError(ErrInvalidQuantifierTarget, child, "possessive quantifier")
	}
	return nil
}

func repeatMaxString(max int) string {
	if max == Infinite {
		return "inf"
	}
	return strconv.Itoa(max)
}

// maximum group number a numeric reference can spell
const maxGroupRef = 99

// NewBackref returns a reference to the group numbered index.
func NewBackref(index int) (*RegexNode, error) {
	if err := checkGroupIndex(index); err != nil {
		return nil, err
	}
	return &RegexNode{T: NtBackref, Index: index}, nil
}

// NewNamedBackref returns a reference to the group called name.
func NewNamedBackref(name string) (*RegexNode, error) {
	if err := CheckGroupName(name); err != nil {
		return nil, err
	}
	return &RegexNode{T: NtBackref, Name: name}, nil
}

func checkGroupIndex(index int) error {
	if index < 1 || index > maxGroupRef {
		return newError(ErrInvalidBackreference, nil, strconv.Itoa(index))
	}
	return nil
}

// NewConditional matches yes if group index has matched, no otherwise. no
// may be nil.
func NewConditional(index int, yes, no *RegexNode) (*RegexNode, error) {
	if err := checkGroupIndex(index); err != nil {
		return nil, err
	}
	return newConditional(&RegexNode{T: NtConditional, Index: index}, yes, no)
}

func NewNamedConditional(name string, yes, no *RegexNode) (*RegexNode, error) {
	if err := CheckGroupName(name); err != nil {
		return nil, err
	}
	return newConditional(&RegexNode{T: NtConditional, Name: name}, yes, no)
}

func newConditional(n, yes, no *RegexNode) (*RegexNode, error) {
	branches := []*RegexNode{yes}
	if no != nil {
		branches = append(branches, no)
	}
	if err := checkSiblings(branches); err != nil {
		return nil, err
	}
	for _, b := range branches {
		n.addChild(b)
	}
	return n, nil
}

// NewComment returns an inline comment. The text may not contain ')'.
func NewComment(text string) (*RegexNode, error) {
	if helpers.IndexOfAny1([]rune(text), ')') >= 0 {
		return nil, newError(ErrInvalidComment, nil, strconv.Quote(text))
	}
	return newRegexNodeStr(NtComment, []rune(text)), nil
}

// CheckGroupName reports whether name is a valid group name: an identifier
// starting with a letter or underscore.
func CheckGroupName(name string) error {
	if name == "" {
		return newError(ErrInvalidGroupName, nil, `""`)
	}
	for i, r := range name {
		if i == 0 && !helpers.IsIdentStart(r) || !helpers.IsIdentChar(r) {
			return newError(ErrInvalidGroupName, nil, strconv.Quote(name))
		}
	}
	return nil
}

func checkAdoptable(child *RegexNode) error {
	if child == nil {
		return newError(ErrWrongNodeType, nil, "nil node")
	}
	if child.parent != nil {
		return newError(ErrNodeAttached, child, "")
	}
	if child.isRoot {
		return newError(ErrNodeAttached, child, "node is the root of a pattern")
	}
	return nil
}

// checkSiblings validates nodes that are about to share a parent.
func checkSiblings(children []*RegexNode) error {
	seen := map[*RegexNode]bool{}
	names := map[string]bool{}
	for _, c := range children {
		if err := checkAdoptable(c); err != nil {
			return err
		}
		if seen[c] {
			return newError(ErrNodeAttached, c, "node passed twice")
		}
		seen[c] = true
		if err := checkNamesDisjoint(names, c); err != nil {
			return err
		}
	}
	return nil
}

// checkNamesDisjoint adds the group names defined under n to names, failing
// on the first one already present.
func checkNamesDisjoint(names map[string]bool, n *RegexNode) error {
	if names == nil {
		names = map[string]bool{}
	}
	var err error
	n.Walk(func(c *RegexNode) bool {
		if err != nil {
			return false
		}
		if c.T == NtGroup && c.Group == GroupNamed {
			if names[c.Name] {
				err = newError(ErrDuplicateGroupName, c, c.Name)
				return false
			}
			names[c.Name] = true
		}
		return true
	})
	return err
}
