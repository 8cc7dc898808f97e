package syntax

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Infinite is the upper bound of an unbounded quantifier.
const Infinite = math.MaxInt32

// RegexTree is the result of parsing a pattern: the root sequence and the
// whole-pattern flags.
type RegexTree struct {
	Root    *RegexNode
	Options Flags
}

// RegexNode is one component of a pattern.
//
// Implementation notes:
//
// RegexNodes are built into a tree, linked by the n.Children list. Each node
// also keeps a pointer to its parent, which lets callers hand any node of a
// tree back to a mutator and lets the serializer walk the tree iteratively.
// A node has at most one parent: constructors and mutators refuse a child
// that is already attached.
//
// The type field selects which of the remaining fields are meaningful:
//
//	NtLiteral      Str (never empty, stored unescaped)
//	NtSet          Set
//	NtGroup        Group, Name (GroupNamed), Flags, Children[0]
//	NtBackref      Index or Name
//	NtAssertion    Anchor
//	NtQuantified   M, N, Mode, Children[0]
//	NtConditional  Index or Name, Children[0] (yes), Children[1] (no, optional)
//	NtComment      Str
//
// Editing the fields directly bypasses validation; Validate re-checks a tree.
type RegexNode struct {
	T        NodeType
	Children []*RegexNode
	Str      []rune
	Set      *CharSet
	Group    GroupKind
	Name     string
	Index    int
	Flags    InlineFlags
	Anchor   AnchorKind
	M        int
	N        int
	Mode     QuantifierMode

	parent *RegexNode
	isRoot bool // owned by a pattern as its root sequence
}

type NodeType int32

const (
	NtUnknown NodeType = -1

	// The following are leaves
	NtLiteral   NodeType = 0 //          abc
	NtSet       NodeType = 1 // set      [a-z\d]  \w
	NtAny       NodeType = 2 //          .
	NtBackref   NodeType = 3 // n|name   \1 (?P=name)
	NtAssertion NodeType = 4 // anchor   \A \Z \b \B ^ $
	NtComment   NodeType = 5 //          (?#...)

	// Interior nodes own their children
	NtConcatenate NodeType = 6  //          ab
	NtAlternate   NodeType = 7  //          a|b
	NtGroup       NodeType = 8  // kind     () (?:) (?P<n>) (?>) (?=) (?!) (?<=) (?<!)
	NtQuantified  NodeType = 9  // m,n      * + ? {m,n}
	NtConditional NodeType = 10 // n|name   (?(1)yes|no)
)

type GroupKind int8

const (
	GroupCapturing          GroupKind = iota // (...)
	GroupNonCapturing                        // (?:...)
	GroupNamed                               // (?P<name>...)
	GroupAtomic                              // (?>...)
	GroupLookahead                           // (?=...)
	GroupNegativeLookahead                   // (?!...)
	GroupLookbehind                          // (?<=...)
	GroupNegativeLookbehind                  // (?<!...)
)

var groupKindStr = []string{
	"Capturing", "NonCapturing", "Named", "Atomic",
	"Lookahead", "NegativeLookahead", "Lookbehind", "NegativeLookbehind",
}

func (k GroupKind) String() string {
	if k < 0 || int(k) >= len(groupKindStr) {
		return "GroupKind(" + strconv.Itoa(int(k)) + ")"
	}
	return groupKindStr[k]
}

func (k GroupKind) valid() bool {
	return k >= 0 && int(k) < len(groupKindStr)
}

// IsLookaround is true for the four zero-width group kinds.
func (k GroupKind) IsLookaround() bool {
	return k >= GroupLookahead && k <= GroupNegativeLookbehind
}

func (k GroupKind) IsLookbehind() bool {
	return k == GroupLookbehind || k == GroupNegativeLookbehind
}

type AnchorKind int8

const (
	AnchorStart           AnchorKind = iota // \A
	AnchorEnd                               // \Z
	AnchorWordBoundary                      // \b
	AnchorNonWordBoundary                   // \B
	AnchorLineStart                         // ^
	AnchorLineEnd                           // $
)

var anchorStr = []string{"Start", "End", "Boundary", "Nonboundary", "Bol", "Eol"}

func (a AnchorKind) String() string {
	if a < 0 || int(a) >= len(anchorStr) {
		return "AnchorKind(" + strconv.Itoa(int(a)) + ")"
	}
	return anchorStr[a]
}

func (a AnchorKind) valid() bool {
	return a >= 0 && int(a) < len(anchorStr)
}

type QuantifierMode int8

const (
	Greedy     QuantifierMode = iota // a*
	Lazy                             // a*?
	Possessive                       // a*+
)

var modeStr = []string{"Greedy", "Lazy", "Possessive"}

func (m QuantifierMode) String() string {
	if m < 0 || int(m) >= len(modeStr) {
		return "QuantifierMode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeStr[m]
}

func (m QuantifierMode) valid() bool {
	return m >= 0 && int(m) < len(modeStr)
}

func newRegexNode(t NodeType) *RegexNode {
	return &RegexNode{T: t}
}

func newRegexNodeStr(t NodeType, str []rune) *RegexNode {
	return &RegexNode{
		T:   t,
		Str: str,
	}
}

func newRegexNodeMN(t NodeType, m, n int) *RegexNode {
	return &RegexNode{
		T: t,
		M: m,
		N: n,
	}
}

// Parent returns the node that owns n, or nil for a root.
func (n *RegexNode) Parent() *RegexNode {
	return n.parent
}

// SetRoot marks n as the root sequence of a pattern. A root is never
// adopted as the child of another node.
func (n *RegexNode) SetRoot() {
	n.isRoot = true
}

func (n *RegexNode) IsRoot() bool {
	return n.isRoot
}

// Top returns the root of the tree n belongs to.
func (n *RegexNode) Top() *RegexNode {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// IsContainer is true for node types that own children.
func (n *RegexNode) IsContainer() bool {
	return n.T >= NtConcatenate
}

// IsCapturing is true for capturing and named groups.
func (n *RegexNode) IsCapturing() bool {
	return n.T == NtGroup && (n.Group == GroupCapturing || n.Group == GroupNamed)
}

// IsZeroWidth is true when n can never consume input: assertions, comments,
// lookarounds, and containers made only of those.
func (n *RegexNode) IsZeroWidth() bool {
	switch n.T {
	case NtAssertion, NtComment:
		return true
	case NtGroup:
		if n.Group.IsLookaround() {
			return true
		}
		return len(n.Children) == 0 || n.Children[0].IsZeroWidth()
	case NtConcatenate, NtAlternate:
		for _, c := range n.Children {
			if !c.IsZeroWidth() {
				return false
			}
		}
		return true
	}
	return false
}

// IsQuantifiable reports whether n may be the child of a quantifier.
func (n *RegexNode) IsQuantifiable() bool {
	return !n.IsZeroWidth()
}

func (n *RegexNode) addChild(child *RegexNode) {
	n.Children = append(n.Children, child)
	child.parent = n
}

func (n *RegexNode) insertChildren(afterIndex int, nodes []*RegexNode) {
	newChildren := make([]*RegexNode, 0, len(n.Children)+len(nodes))
	n.Children = append(append(append(newChildren, n.Children[:afterIndex]...), nodes...), n.Children[afterIndex:]...)
	for _, c := range nodes {
		c.parent = n
	}
}

// removes children including the start but not the end index
func (n *RegexNode) removeChildren(startIndex, endIndex int) {
	n.Children = append(n.Children[:startIndex], n.Children[endIndex:]...)
}

func (n *RegexNode) childIndex(child *RegexNode) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// reduceConcatenation flattens nested sequences into n and merges adjacent
// literals, so that equal sequences have equal trees.
func (n *RegexNode) reduceConcatenation() {
	var i, j int
	wasLastString := false

	for i, j = 0, 0; i < len(n.Children); i, j = i+1, j+1 {
		at := n.Children[i]

		if j < i {
			n.Children[j] = at
		}

		switch at.T {
		case NtConcatenate:
			//insert at.Children after i in n.Children
			n.insertChildren(i+1, at.Children)
			at.Children = nil
			at.parent = nil
			j--

		case NtLiteral:
			if !wasLastString {
				wasLastString = true
				continue
			}

			j--
			prev := n.Children[j]
			prev.Str = append(prev.Str, at.Str...)
			at.parent = nil

		default:
			wasLastString = false
		}
	}

	if j < i {
		// remove indices j through i from the children
		n.removeChildren(j, i)
	}
}

// Copy returns a deep copy of the subtree rooted at n. The copy is detached.
func (n *RegexNode) Copy() *RegexNode {
	c := &RegexNode{
		T:      n.T,
		Group:  n.Group,
		Name:   n.Name,
		Index:  n.Index,
		Flags:  n.Flags,
		Anchor: n.Anchor,
		M:      n.M,
		N:      n.N,
		Mode:   n.Mode,
	}
	if n.Str != nil {
		c.Str = append([]rune(nil), n.Str...)
	}
	if n.Set != nil {
		c.Set = n.Set.Copy()
	}
	for _, child := range n.Children {
		c.addChild(child.Copy())
	}
	return c
}

// Equal reports whether two subtrees are structurally identical. Parent
// links are not compared.
func (n *RegexNode) Equal(o *RegexNode) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.T != o.T || len(n.Children) != len(o.Children) {
		return false
	}
	switch n.T {
	case NtLiteral, NtComment:
		if string(n.Str) != string(o.Str) {
			return false
		}
	case NtSet:
		if !n.Set.Equals(o.Set) {
			return false
		}
	case NtGroup:
		if n.Group != o.Group || n.Name != o.Name || n.Flags != o.Flags {
			return false
		}
	case NtBackref, NtConditional:
		if n.Index != o.Index || n.Name != o.Name {
			return false
		}
	case NtAssertion:
		if n.Anchor != o.Anchor {
			return false
		}
	case NtQuantified:
		if n.M != o.M || n.N != o.N || n.Mode != o.Mode {
			return false
		}
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Walk calls fn for n and its descendants in pre-order. Children of a node
// are skipped when fn returns false for it.
func (n *RegexNode) Walk(fn func(*RegexNode) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Path returns the child indexes leading from the root of n's tree to n.
func (n *RegexNode) Path() []int {
	var path []int
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append(path, cur.parent.childIndex(cur))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// At follows path from n and returns the node it names, or nil.
func (n *RegexNode) At(path []int) *RegexNode {
	cur := n
	for _, i := range path {
		if i < 0 || i >= len(cur.Children) {
			return nil
		}
		cur = cur.Children[i]
	}
	return cur
}

// GroupLookup resolves the group targeted by a backreference or
// conditional node. It returns nil when the target is unknown.
type GroupLookup func(ref *RegexNode) *RegexNode

func (lookup GroupLookup) resolve(ref *RegexNode) *RegexNode {
	if lookup == nil {
		return nil
	}
	return lookup(ref)
}

// ComputeMinLength returns the length of the shortest string n can match.
func (n *RegexNode) ComputeMinLength(lookup GroupLookup) int {
	return n.computeMinLength(lookup, 0)
}

// guard against a backreference that sits inside the group it names
const maxRefDepth = 100

func (n *RegexNode) computeMinLength(lookup GroupLookup, depth int) int {
	switch n.T {
	case NtSet, NtAny:
		// single char
		return 1
	case NtLiteral:
		// Every character in the string needs to match.
		return len(n.Str)
	case NtBackref:
		// A reference matches whatever its group matched.
		if g := lookup.resolve(n); g != nil && depth < maxRefDepth {
			return g.computeMinLength(lookup, depth+1)
		}
		return 0
	case NtQuantified:
		// A node graph repeated at least M times.
		return mulLength(n.M, n.Children[0].computeMinLength(lookup, depth))
	case NtAlternate:
		// The minimum required length for any of the alternation's branches.
		min := n.Children[0].computeMinLength(lookup, depth)
		for i := 1; i < len(n.Children) && min > 0; i++ {
			if newMin := n.Children[i].computeMinLength(lookup, depth); newMin < min {
				min = newMin
			}
		}
		return min
	case NtConditional:
		// Minimum of its yes and no branches. A missing no branch matches empty.
		b1 := n.Children[0].computeMinLength(lookup, depth)
		if len(n.Children) == 1 {
			return 0
		}
		if b2 := n.Children[1].computeMinLength(lookup, depth); b2 < b1 {
			return b2
		}
		return b1
	case NtConcatenate:
		// The sum of all of the concatenation's children.
		sum := 0
		for _, c := range n.Children {
			sum = addLength(sum, c.computeMinLength(lookup, depth))
		}
		return sum
	case NtGroup:
		if n.Group.IsLookaround() {
			return 0
		}
		// For groups, we just delegate to the sole child.
		return n.Children[0].computeMinLength(lookup, depth)
	}
	// Assertions and comments match nothing.
	return 0
}

// ComputeMaxLength returns the length of the longest string n can match,
// or -1 if there is no upper bound.
func (n *RegexNode) ComputeMaxLength(lookup GroupLookup) int {
	return n.computeMaxLength(lookup, 0)
}

func (n *RegexNode) computeMaxLength(lookup GroupLookup, depth int) int {
	switch n.T {
	case NtSet, NtAny:
		return 1
	case NtLiteral:
		return len(n.Str)
	case NtBackref:
		if g := lookup.resolve(n); g != nil && depth < maxRefDepth {
			return g.computeMaxLength(lookup, depth+1)
		}
		// an unresolved reference may match anything
		return -1
	case NtQuantified:
		child := n.Children[0].computeMaxLength(lookup, depth)
		if child == 0 || n.N == 0 {
			return 0
		}
		if child < 0 || n.N == Infinite {
			return -1
		}
		if max := mulLength(n.N, child); max != Infinite {
			return max
		}
		return -1
	case NtAlternate:
		max := 0
		for _, c := range n.Children {
			next := c.computeMaxLength(lookup, depth)
			if next < 0 {
				return -1
			}
			if next > max {
				max = next
			}
		}
		return max
	case NtConditional:
		max := n.Children[0].computeMaxLength(lookup, depth)
		if max < 0 || len(n.Children) == 1 {
			return max
		}
		next := n.Children[1].computeMaxLength(lookup, depth)
		if next < 0 {
			return -1
		}
		if next > max {
			return next
		}
		return max
	case NtConcatenate:
		sum := 0
		for _, c := range n.Children {
			next := c.computeMaxLength(lookup, depth)
			if next < 0 {
				return -1
			}
			if sum = addLength(sum, next); sum == Infinite {
				return -1
			}
		}
		return sum
	case NtGroup:
		if n.Group.IsLookaround() {
			return 0
		}
		return n.Children[0].computeMaxLength(lookup, depth)
	}
	return 0
}

// FixedLength returns the single length every match of n has, if there is
// one.
func (n *RegexNode) FixedLength(lookup GroupLookup) (int, bool) {
	max := n.ComputeMaxLength(lookup)
	if max < 0 || max != n.ComputeMinLength(lookup) {
		return 0, false
	}
	return max, true
}

// IsFinite is false when an unbounded quantifier occurs anywhere below n,
// including inside the groups targeted by its backreferences.
func (n *RegexNode) IsFinite(lookup GroupLookup) bool {
	return n.isFinite(lookup, 0)
}

func (n *RegexNode) isFinite(lookup GroupLookup, depth int) bool {
	switch n.T {
	case NtQuantified:
		if n.N == Infinite {
			return false
		}
	case NtBackref:
		if g := lookup.resolve(n); g != nil && depth < maxRefDepth {
			return g.isFinite(lookup, depth+1)
		}
		return true
	}
	for _, c := range n.Children {
		if !c.isFinite(lookup, depth) {
			return false
		}
	}
	return true
}

// saturating arithmetic; Infinite stands for overflow
func addLength(a, b int) int {
	if a >= Infinite-b {
		return Infinite
	}
	return a + b
}

func mulLength(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a >= Infinite/b {
		return Infinite
	}
	return a * b
}

// debug functions

var typeStr = []string{
	"Literal", "Set", "Any", "Backref", "Assertion", "Comment",
	"Concatenate", "Alternate", "Group", "Quantified", "Conditional",
}

func (n *RegexNode) Description() string {
	buf := &bytes.Buffer{}

	if n.T < 0 || int(n.T) >= len(typeStr) {
		buf.WriteString("Unknown")
	} else {
		buf.WriteString(typeStr[n.T])
	}

	switch n.T {
	case NtLiteral:
		fmt.Fprintf(buf, "(String = %s)", string(n.Str))
	case NtComment:
		fmt.Fprintf(buf, "(Comment = %s)", string(n.Str))
	case NtSet:
		buf.WriteString("(Set = " + n.Set.description() + ")")
	case NtAssertion:
		buf.WriteString("(" + n.Anchor.String() + ")")
	case NtGroup:
		buf.WriteString("(" + n.Group.String())
		if n.Group == GroupNamed {
			buf.WriteString(", name = " + n.Name)
		}
		if !n.Flags.IsEmpty() {
			buf.WriteString(", flags = " + n.Flags.String())
		}
		buf.WriteString(")")
	case NtBackref, NtConditional:
		if n.Name != "" {
			buf.WriteString("(name = " + n.Name + ")")
		} else {
			buf.WriteString("(index = " + strconv.Itoa(n.Index) + ")")
		}
	case NtQuantified:
		buf.WriteString("(Min = ")
		buf.WriteString(strconv.Itoa(n.M))
		buf.WriteString(", Max = ")
		if n.N == Infinite {
			buf.WriteString("inf")
		} else {
			buf.WriteString(strconv.Itoa(n.N))
		}
		if n.Mode != Greedy {
			buf.WriteString(", " + n.Mode.String())
		}
		buf.WriteString(")")
	}

	return buf.String()
}

var padSpace = []byte("                                ")

func (t *RegexTree) Dump() string {
	var flags string
	if s := t.Options.String(); s != "" {
		flags = "Flags(" + s + ")\n"
	}
	return flags + t.Root.Dump()
}

// Dump returns an indented description of n and its descendants.
func (n *RegexNode) Dump() string {
	var stack []int
	CurNode := n
	CurChild := 0

	buf := bytes.NewBufferString(CurNode.Description())
	buf.WriteRune('\n')

	for {
		if CurNode.Children != nil && CurChild < len(CurNode.Children) {
			stack = append(stack, CurChild+1)
			CurNode = CurNode.Children[CurChild]
			CurChild = 0

			Depth := len(stack)
			if Depth > 32 {
				Depth = 32
			}
			buf.Write(padSpace[:Depth])
			buf.WriteString(CurNode.Description())
			buf.WriteRune('\n')
		} else {
			if len(stack) == 0 {
				break
			}

			CurChild = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			CurNode = CurNode.parent
		}
	}
	return buf.String()
}

func typeName(t NodeType) string {
	if t < 0 || int(t) >= len(typeStr) {
		return "Unknown"
	}
	return typeStr[t]
}
