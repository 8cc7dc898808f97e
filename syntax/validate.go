package syntax

import "strconv"

// Validate checks the invariants that hold within the subtree rooted at n:
// per-type field constraints, child arity, parent links and group name
// uniqueness. References are not resolved; a Regex does that against its
// group table.
func (n *RegexNode) Validate() error {
	names := map[string]bool{}
	return n.validate(names)
}

func (n *RegexNode) validate(names map[string]bool) error {
	if err := n.checkLocal(); err != nil {
		// n may be too broken to render, so only the node is recorded
		if e, ok := err.(*Error); ok && e.Node == nil {
			e.Node = n
		}
		return err
	}
	if n.T == NtGroup && n.Group == GroupNamed {
		if names[n.Name] {
			return newError(ErrDuplicateGroupName, n, n.Name)
		}
		names[n.Name] = true
	}
	for _, c := range n.Children {
		if c == nil {
			return newError(ErrWrongNodeType, n, "nil child")
		}
		if c.parent != n {
			return newError(ErrNodeAttached, c, "child is linked to another parent")
		}
		if err := c.validate(names); err != nil {
			return err
		}
	}
	return nil
}

// arity returns the allowed number of children for n's type.
func (n *RegexNode) arity() (min, max int) {
	switch n.T {
	case NtConcatenate:
		return 0, -1
	case NtAlternate:
		return 1, -1
	case NtGroup, NtQuantified:
		return 1, 1
	case NtConditional:
		return 1, 2
	}
	return 0, 0
}

func (n *RegexNode) checkLocal() error {
	min, max := n.arity()
	if len(n.Children) < min || max >= 0 && len(n.Children) > max {
		if n.T == NtAlternate {
			return newError(ErrEmptyAlternation, nil, "")
		}
		return newError(ErrInvalidChildIndex, nil, typeName(n.T)+" with "+strconv.Itoa(len(n.Children))+" children")
	}

	switch n.T {
	case NtLiteral:
		if len(n.Str) == 0 {
			return newError(ErrEmptyLiteral, nil, "")
		}
	case NtSet:
		if n.Set == nil || n.Set.IsEmpty() {
			return newError(ErrEmptyRange, nil, "")
		}
		for _, r := range n.Set.ranges {
			if err := checkSubrange(r.First, r.Last); err != nil {
				return err
			}
		}
	case NtAny:
	case NtComment:
		if _, err := NewComment(string(n.Str)); err != nil {
			return err
		}
	case NtAssertion:
		if !n.Anchor.valid() {
			return newError(ErrWrongNodeType, nil, n.Anchor.String())
		}
	case NtBackref, NtConditional:
		if n.Name != "" {
			return CheckGroupName(n.Name)
		}
		return checkGroupIndex(n.Index)
	case NtGroup:
		if !n.Group.valid() {
			return newError(ErrWrongNodeType, nil, n.Group.String())
		}
		if n.Group == GroupNamed {
			if err := CheckGroupName(n.Name); err != nil {
				return err
			}
		} else if n.Name != "" {
			return newError(ErrInvalidGroupName, n, "name on "+n.Group.String()+" group")
		}
		return n.Flags.Validate()
	case NtQuantified:
		return checkQuantifier(n.Children[0], n.M, n.N, n.Mode)
	case NtConcatenate, NtAlternate:
	default:
		return newError(ErrWrongNodeType, nil, "unknown node type")
	}
	return nil
}
