package syntax

import "strconv"

// In-place edits of a single node. Each edit checks the invariants local to
// the node, and leaves it untouched when it fails. Invariants that depend on
// the whole pattern (reference targets, look-behind widths) are checked by
// the Regex that owns the tree.

func (n *RegexNode) expect(t NodeType) error {
	if n.T != t {
		return newError(ErrWrongNodeType, n, "want "+typeName(t)+", have "+typeName(n.T))
	}
	return nil
}

// AddSubrange adds first-last to a set node.
func (n *RegexNode) AddSubrange(first, last rune) error {
	if err := n.expect(NtSet); err != nil {
		return err
	}
	return n.Set.addRange(first, last)
}

// RemoveSubrange subtracts first-last from a set node. Removing every rune
// of a set is an error.
func (n *RegexNode) RemoveSubrange(first, last rune) error {
	if err := n.expect(NtSet); err != nil {
		return err
	}
	set := n.Set.Copy()
	if err := set.removeRange(first, last); err != nil {
		return err
	}
	if set.IsEmpty() {
		return newError(ErrEmptyRange, n, "removing "+CharDescription(first)+"-"+CharDescription(last))
	}
	n.Set = set
	return nil
}

func (n *RegexNode) AddCategory(cat Category) error {
	if err := n.expect(NtSet); err != nil {
		return err
	}
	if !cat.valid() {
		return newError(ErrWrongNodeType, n, cat.String())
	}
	n.Set.addCategory(cat)
	return nil
}

func (n *RegexNode) RemoveCategory(cat Category) error {
	if err := n.expect(NtSet); err != nil {
		return err
	}
	set := n.Set.Copy()
	set.removeCategory(cat)
	if set.IsEmpty() {
		return newError(ErrEmptyRange, n, "removing "+cat.String())
	}
	n.Set = set
	return nil
}

// Complement flips the negation of a set node.
func (n *RegexNode) Complement() error {
	if err := n.expect(NtSet); err != nil {
		return err
	}
	n.Set.negate = !n.Set.negate
	return nil
}

// SetQuantifier replaces the bounds and mode of a quantifier node.
func (n *RegexNode) SetQuantifier(min, max int, mode QuantifierMode) error {
	if err := n.expect(NtQuantified); err != nil {
		return err
	}
	if err := checkQuantifier(n.Children[0], min, max, mode); err != nil {
		return err
	}
	n.M, n.N, n.Mode = min, max, mode
	return nil
}

// AddFlag turns f on for the body of a group node.
func (n *RegexNode) AddFlag(f Flags) error {
	return n.setFlags(InlineFlags{On: n.Flags.On | f, Off: n.Flags.Off &^ f})
}

// RemoveFlag drops any mention of f from a group node, so the body
// inherits it from the enclosing scope.
func (n *RegexNode) RemoveFlag(f Flags) error {
	return n.setFlags(InlineFlags{On: n.Flags.On &^ f, Off: n.Flags.Off &^ f})
}

// DisableFlag turns f off for the body of a group node.
func (n *RegexNode) DisableFlag(f Flags) error {
	return n.setFlags(InlineFlags{On: n.Flags.On &^ f, Off: n.Flags.Off | f})
}

func (n *RegexNode) setFlags(flags InlineFlags) error {
	if err := n.expect(NtGroup); err != nil {
		return err
	}
	if err := flags.Validate(); err != nil {
		return err
	}
	n.Flags = flags
	return nil
}

// SetName renames a capturing group. The empty name turns a named group into
// a plain capturing one.
func (n *RegexNode) SetName(name string) error {
	if err := n.expect(NtGroup); err != nil {
		return err
	}
	if !n.IsCapturing() {
		return newError(ErrWrongNodeType, n, n.Group.String()+" group cannot be named")
	}
	if name == "" {
		n.Group, n.Name = GroupCapturing, ""
		return nil
	}
	if err := CheckGroupName(name); err != nil {
		return err
	}
	if name != n.Name {
		names := n.Top().namesExcept(n)
		if names[name] {
			return newError(ErrDuplicateGroupName, n, name)
		}
	}
	n.Group, n.Name = GroupNamed, name
	return nil
}

// namesExcept collects the group names defined in n's subtree, not counting
// the name of skip itself.
func (n *RegexNode) namesExcept(skip *RegexNode) map[string]bool {
	names := map[string]bool{}
	n.Walk(func(c *RegexNode) bool {
		if c != skip && c.T == NtGroup && c.Group == GroupNamed {
			names[c.Name] = true
		}
		return true
	})
	return names
}

// namesOutside collects the group names in n's tree except those defined
// under skip.
func (n *RegexNode) namesOutside(skip *RegexNode) map[string]bool {
	names := map[string]bool{}
	n.Top().Walk(func(c *RegexNode) bool {
		if c == skip {
			return false
		}
		if c.T == NtGroup && c.Group == GroupNamed {
			names[c.Name] = true
		}
		return true
	})
	return names
}

func (n *RegexNode) checkChildIndex(i, limit int) error {
	if i < 0 || i > limit {
		return newError(ErrInvalidChildIndex, n, strconv.Itoa(i))
	}
	return nil
}

// checkAdopt validates child as a new child of n, replacing old if non-nil.
func (n *RegexNode) checkAdopt(child, old *RegexNode) error {
	if err := checkAdoptable(child); err != nil {
		return err
	}
	if child == n.Top() {
		return newError(ErrNodeAttached, child, "node cannot contain itself")
	}
	return checkNamesDisjoint(n.namesOutside(old), child)
}

// InsertChild inserts child before index i of a sequence, alternation or
// conditional. In a sequence, a literal next to another literal is merged
// into it and a nested sequence is flattened.
func (n *RegexNode) InsertChild(i int, child *RegexNode) error {
	switch n.T {
	case NtConcatenate, NtAlternate:
		if err := n.checkChildIndex(i, len(n.Children)); err != nil {
			return err
		}
	case NtConditional:
		if len(n.Children) != 1 || i != 1 {
			return newError(ErrInvalidChildIndex, n, "conditional takes a single no branch at index 1")
		}
	case NtGroup, NtQuantified:
		return newError(ErrInvalidChildIndex, n, typeName(n.T)+" holds exactly one child")
	default:
		return newError(ErrNotContainer, n, "")
	}
	if err := n.checkAdopt(child, nil); err != nil {
		return err
	}
	n.insertChildren(i, []*RegexNode{child})
	if n.T == NtConcatenate {
		n.reduceConcatenation()
	}
	return nil
}

// RemoveChild detaches and returns child i.
func (n *RegexNode) RemoveChild(i int) (*RegexNode, error) {
	if !n.IsContainer() {
		return nil, newError(ErrNotContainer, n, "")
	}
	if err := n.checkChildIndex(i, len(n.Children)-1); err != nil {
		return nil, err
	}
	switch n.T {
	case NtAlternate:
		if len(n.Children) == 1 {
			return nil, newError(ErrEmptyAlternation, n, "")
		}
	case NtConditional:
		if i != 1 {
			return nil, newError(ErrInvalidChildIndex, n, "only the no branch of a conditional can be removed")
		}
	case NtGroup, NtQuantified:
		return nil, newError(ErrInvalidChildIndex, n, typeName(n.T)+" holds exactly one child")
	}
	old := n.Children[i]
	n.removeChildren(i, i+1)
	old.parent = nil
	if n.T == NtConcatenate {
		n.reduceConcatenation()
	}
	return old, nil
}

// ReplaceChild puts child in place of child i and returns the detached node.
func (n *RegexNode) ReplaceChild(i int, child *RegexNode) (*RegexNode, error) {
	if !n.IsContainer() {
		return nil, newError(ErrNotContainer, n, "")
	}
	if err := n.checkChildIndex(i, len(n.Children)-1); err != nil {
		return nil, err
	}
	old := n.Children[i]
	if err := n.checkAdopt(child, old); err != nil {
		return nil, err
	}
	if n.T == NtQuantified {
		if err := checkQuantifier(child, n.M, n.N, n.Mode); err != nil {
			return nil, err
		}
	}
	n.Children[i] = child
	child.parent = n
	old.parent = nil
	if n.T == NtConcatenate {
		n.reduceConcatenation()
	}
	return old, nil
}

// The With forms apply an edit to a copy of a detached node and return the
// copy; the receiver is not changed.

func (n *RegexNode) with(edit func(*RegexNode) error) (*RegexNode, error) {
	c := n.Copy()
	if err := edit(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (n *RegexNode) WithSubrange(first, last rune) (*RegexNode, error) {
	return n.with(func(c *RegexNode) error { return c.AddSubrange(first, last) })
}

func (n *RegexNode) WithoutSubrange(first, last rune) (*RegexNode, error) {
	return n.with(func(c *RegexNode) error { return c.RemoveSubrange(first, last) })
}

func (n *RegexNode) WithCategory(cat Category) (*RegexNode, error) {
	return n.with(func(c *RegexNode) error { return c.AddCategory(cat) })
}

func (n *RegexNode) Complemented() (*RegexNode, error) {
	return n.with(func(c *RegexNode) error { return c.Complement() })
}

func (n *RegexNode) WithQuantifier(min, max int, mode QuantifierMode) (*RegexNode, error) {
	return n.with(func(c *RegexNode) error { return c.SetQuantifier(min, max, mode) })
}

func (n *RegexNode) WithFlag(f Flags) (*RegexNode, error) {
	return n.with(func(c *RegexNode) error { return c.AddFlag(f) })
}

func (n *RegexNode) WithoutFlag(f Flags) (*RegexNode, error) {
	return n.with(func(c *RegexNode) error { return c.RemoveFlag(f) })
}
