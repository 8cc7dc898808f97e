/*
Package reggie builds, inspects, edits and renders regular expressions as
typed trees. Patterns are written in the syntax of Python's re module.

A Regex owns a tree of nodes made with the builder functions (Literal,
Range, Group, Quantify, ...) or read from text with Parse. Every change to a
Regex is validated as a whole: group names stay unique, backreferences keep
pointing at groups that exist, and a change that would break either is
refused without touching the pattern. The With methods apply the same
changes to a copy.

reggie never matches text itself; String renders the pattern for a
downstream engine, and Compile hands a rendering to github.com/dlclark/regexp2.
*/
package reggie

import (
	"maps"
	"strconv"

	"github.com/reggie-regex/reggie/syntax"
)

// Regex is a pattern: a root sequence of nodes, the pattern-wide flags and
// the table of capturing groups derived from the tree.
// A Regex is not safe for concurrent mutation.
type Regex struct {
	root  *syntax.RegexNode // always an NtConcatenate
	flags Flags

	groups   []*syntax.RegexNode // group number-1 -> group, in opening order
	capnames map[string]int      // group name -> group number
}

// New returns a pattern holding nodes in sequence. It takes ownership of
// the nodes.
func New(flags Flags, nodes ...*Node) (*Regex, error) {
	root, _ := syntax.NewConcatenate()
	re := newRegex(root, flags)
	if err := re.reindex(); err != nil {
		return nil, err
	}
	if err := re.Append(nodes...); err != nil {
		return nil, err
	}
	return re, nil
}

// Parse reads a pattern. Only literal text, escapes, '.', shorthand classes,
// character sets and a leading flag group are understood; other constructs
// fail with syntax.ErrUnsupportedSyntax.
func Parse(expr string, flags Flags) (*Regex, error) {
	tree, err := syntax.Parse(expr, flags)
	if err != nil {
		return nil, err
	}

	re := newRegex(tree.Root, tree.Options)
	if err := re.reindex(); err != nil {
		return nil, err
	}
	return re, nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
// It simplifies safe initialization of global variables holding patterns.
func MustParse(expr string, flags Flags) *Regex {
	re, err := Parse(expr, flags)
	if err != nil {
		panic(`reggie: Parse(` + quote(expr) + `): ` + err.Error())
	}
	return re
}

// Escape returns s with every pattern metacharacter escaped.
func Escape(s string) string {
	return syntax.Escape(s)
}

// String renders the pattern in Python syntax.
func (re *Regex) String() string {
	s, _ := re.Render(syntax.Python)
	return s
}

// Render renders the pattern in the given dialect. It fails when the
// pattern uses a construct the dialect cannot spell.
func (re *Regex) Render(d syntax.Dialect) (string, error) {
	return syntax.Write(re.root, re.flags, d)
}

func newRegex(root *syntax.RegexNode, flags Flags) *Regex {
	root.SetRoot()
	return &Regex{root: root, flags: flags}
}

// Copy returns an independent deep copy of re.
func (re *Regex) Copy() *Regex {
	c := newRegex(re.root.Copy(), re.flags)
	if err := c.reindex(); err != nil {
		// re was edited directly and no longer validates; the copy keeps
		// its group table, moved over by position, and Validate reports
		// the same error on both
		c.groups = make([]*syntax.RegexNode, len(re.groups))
		for i, g := range re.groups {
			if g.Top() == re.root {
				c.groups[i] = c.root.At(g.Path())
			}
			if c.groups[i] == nil {
				c.groups[i] = g.Copy()
			}
		}
		c.capnames = maps.Clone(re.capnames)
	}
	return c
}

// Equal reports whether two patterns have the same flags and structurally
// identical trees.
func (re *Regex) Equal(o *Regex) bool {
	return re.flags == o.flags && re.root.Equal(o.root)
}

// Validate re-checks every invariant of the pattern. Mutators keep a Regex
// valid; Validate is for trees whose node fields were edited directly.
func (re *Regex) Validate() error {
	c := &Regex{root: re.root, flags: re.flags}
	return c.reindex()
}

// reindex validates the tree and rebuilds the group table. The table is
// only replaced when the tree is valid.
func (re *Regex) reindex() error {
	if err := re.flags.Validate(); err != nil {
		return err
	}
	if re.root.T != syntax.NtConcatenate {
		return syntax.NewError(syntax.ErrWrongNodeType, re.root, "pattern root must be a sequence")
	}
	if err := re.root.Validate(); err != nil {
		return err
	}

	ix := &indexer{capnames: map[string]int{}}
	if err := ix.walk(re.root); err != nil {
		return err
	}
	if err := checkLookbehinds(re.root, ix.lookup); err != nil {
		return err
	}

	re.groups, re.capnames = ix.groups, ix.capnames
	return nil
}

// indexer numbers capturing groups by the position of their opening
// parenthesis and checks each reference against the groups before it.
type indexer struct {
	groups   []*syntax.RegexNode
	capnames map[string]int
	closed   []bool
}

func (ix *indexer) walk(n *Node) error {
	switch n.T {
	case syntax.NtGroup:
		if !n.IsCapturing() {
			break
		}
		ix.groups = append(ix.groups, n)
		num := len(ix.groups)
		ix.closed = append(ix.closed, false)
		if n.Group == syntax.GroupNamed {
			ix.capnames[n.Name] = num
		}
		if err := ix.walkChildren(n); err != nil {
			return err
		}
		ix.closed[num-1] = true
		return nil

	case syntax.NtBackref:
		// a backreference cannot refer to a group that is still open
		if num := ix.number(n); num == 0 || !ix.closed[num-1] {
			return syntax.NewError(syntax.ErrDanglingBackreference, n, refString(n))
		}

	case syntax.NtConditional:
		if ix.number(n) == 0 {
			return syntax.NewError(syntax.ErrDanglingBackreference, n, refString(n))
		}
	}
	return ix.walkChildren(n)
}

func (ix *indexer) walkChildren(n *Node) error {
	for _, c := range n.Children {
		if err := ix.walk(c); err != nil {
			return err
		}
	}
	return nil
}

// number returns the group number ref targets among the groups seen so far,
// or 0.
func (ix *indexer) number(ref *Node) int {
	if ref.Name != "" {
		return ix.capnames[ref.Name]
	}
	if ref.Index >= 1 && ref.Index <= len(ix.groups) {
		return ref.Index
	}
	return 0
}

func (ix *indexer) lookup(ref *Node) *Node {
	if num := ix.number(ref); num > 0 {
		return ix.groups[num-1]
	}
	return nil
}

func checkLookbehinds(root *Node, lookup syntax.GroupLookup) error {
	var err error
	root.Walk(func(n *Node) bool {
		if err != nil {
			return false
		}
		if n.T == syntax.NtGroup && n.Group.IsLookbehind() {
			if _, ok := n.Children[0].FixedLength(lookup); !ok {
				err = syntax.NewError(syntax.ErrVariableLookbehind, n, "")
				return false
			}
		}
		return true
	})
	return err
}

func refString(ref *Node) string {
	if ref.Name != "" {
		return strconv.Quote(ref.Name)
	}
	return strconv.Itoa(ref.Index)
}

func quote(s string) string {
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
