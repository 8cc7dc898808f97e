package reggie

import (
	"github.com/reggie-regex/reggie/syntax"
)

// Mutators change a Regex in place. A mutation is rehearsed on a copy of the
// pattern first and only applied when the copy is still valid, so a failed
// mutation leaves the Regex exactly as it was.
//
// A target node must belong to the receiver; a nil target means the root
// sequence. Nodes passed in to be added must be free and become owned by
// the receiver.

type edit func(re *Regex, target *Node, args []*Node) error

func (re *Regex) apply(target *Node, args []*Node, e edit) error {
	path, err := re.pathOf(target)
	if err != nil {
		return err
	}
	if err := re.checkFree(args); err != nil {
		return err
	}

	trial := re.Copy()
	copies := make([]*Node, len(args))
	for i, a := range args {
		copies[i] = a.Copy()
	}
	if err := trial.run(trial.root.At(path), copies, e); err != nil {
		return err
	}

	if target == nil {
		target = re.root
	}
	return re.run(target, args, e)
}

// run applies e and then renumbers the numeric references that were in the
// tree before it, so each still names the group it named before the edit.
func (re *Regex) run(target *Node, args []*Node, e edit) error {
	targets := re.refTargets()
	if err := e(re, target, args); err != nil {
		return err
	}
	if err := re.retarget(targets); err != nil {
		return err
	}
	return re.reindex()
}

// refTargets maps each numeric backreference and conditional in the tree to
// the group it currently resolves to.
func (re *Regex) refTargets() map[*Node]*Node {
	targets := map[*Node]*Node{}
	re.root.Walk(func(n *Node) bool {
		if (n.T == syntax.NtBackref || n.T == syntax.NtConditional) && n.Name == "" {
			if g := re.GroupByIndex(n.Index); g != nil {
				targets[n] = g
			}
		}
		return true
	})
	return targets
}

// retarget points each reference in targets back at its group under the
// current numbering. References that left the tree are ignored; one whose
// group left the tree is dangling.
func (re *Regex) retarget(targets map[*Node]*Node) error {
	if len(targets) == 0 {
		return nil
	}
	numbers := map[*Node]int{}
	re.root.Walk(func(n *Node) bool {
		if n.IsCapturing() {
			numbers[n] = len(numbers) + 1
		}
		return true
	})
	var err error
	re.root.Walk(func(ref *Node) bool {
		g, ok := targets[ref]
		if !ok || err != nil {
			return err == nil
		}
		num, ok := numbers[g]
		if !ok {
			err = syntax.NewError(syntax.ErrDanglingBackreference, ref, refString(ref))
			return false
		}
		ref.Index = num
		return true
	})
	return err
}

// pathOf locates n in re. A nil node is the root.
func (re *Regex) pathOf(n *Node) ([]int, error) {
	if n == nil {
		return nil, nil
	}
	if n.Top() != re.root {
		return nil, syntax.NewError(syntax.ErrForeignNode, n, "")
	}
	return n.Path(), nil
}

func (re *Regex) checkFree(args []*Node) error {
	seen := make(map[*Node]bool, len(args))
	for _, a := range args {
		if a == nil {
			return syntax.NewError(syntax.ErrWrongNodeType, nil, "nil node")
		}
		if a.Parent() != nil || a.IsRoot() {
			return syntax.NewError(syntax.ErrNodeAttached, a, "")
		}
		if seen[a] {
			return syntax.NewError(syntax.ErrNodeAttached, a, "node passed twice")
		}
		seen[a] = true
	}
	return nil
}

// AddFlag turns on whole-pattern flags.
func (re *Regex) AddFlag(f Flags) error {
	return re.apply(nil, nil, func(re *Regex, _ *Node, _ []*Node) error {
		re.flags |= f
		return nil
	})
}

// RemoveFlag turns off whole-pattern flags.
func (re *Regex) RemoveFlag(f Flags) error {
	return re.apply(nil, nil, func(re *Regex, _ *Node, _ []*Node) error {
		re.flags &^= f
		return nil
	})
}

// AddGroupFlag turns f on inside group: (?f:...).
func (re *Regex) AddGroupFlag(group *Node, f Flags) error {
	return re.apply(group, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.AddFlag(f)
	})
}

// RemoveGroupFlag drops f from group, which then inherits it.
func (re *Regex) RemoveGroupFlag(group *Node, f Flags) error {
	return re.apply(group, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.RemoveFlag(f)
	})
}

// DisableGroupFlag turns f off inside group: (?-f:...).
func (re *Regex) DisableGroupFlag(group *Node, f Flags) error {
	return re.apply(group, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.DisableFlag(f)
	})
}

// SetName renames a capturing group; the empty name makes it unnamed.
// Backreferences to the old name must be gone first, or SetName fails with
// syntax.ErrDanglingBackreference.
func (re *Regex) SetName(group *Node, name string) error {
	return re.apply(group, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.SetName(name)
	})
}

func (re *Regex) SetQuantifier(q *Node, min, max int, mode QuantifierMode) error {
	return re.apply(q, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.SetQuantifier(min, max, mode)
	})
}

// AddSubrange adds first-last to a set.
func (re *Regex) AddSubrange(set *Node, first, last rune) error {
	return re.apply(set, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.AddSubrange(first, last)
	})
}

// RemoveSubrange subtracts first-last from a set. A set cannot be emptied.
func (re *Regex) RemoveSubrange(set *Node, first, last rune) error {
	return re.apply(set, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.RemoveSubrange(first, last)
	})
}

// AddClass adds a shorthand class such as \d to a set.
func (re *Regex) AddClass(set *Node, cat Category) error {
	return re.apply(set, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.AddCategory(cat)
	})
}

func (re *Regex) RemoveClass(set *Node, cat Category) error {
	return re.apply(set, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.RemoveCategory(cat)
	})
}

// Complement flips the negation of a set.
func (re *Regex) Complement(set *Node) error {
	return re.apply(set, nil, func(_ *Regex, n *Node, _ []*Node) error {
		return n.Complement()
	})
}

// InsertChild inserts child before index i of parent. In a sequence a
// literal next to a literal is merged into it.
func (re *Regex) InsertChild(parent *Node, i int, child *Node) error {
	return re.apply(parent, []*Node{child}, func(_ *Regex, n *Node, args []*Node) error {
		return n.InsertChild(i, args[0])
	})
}

// RemoveChild detaches child i of parent and returns it.
func (re *Regex) RemoveChild(parent *Node, i int) (*Node, error) {
	var removed *Node
	err := re.apply(parent, nil, func(_ *Regex, n *Node, _ []*Node) error {
		old, err := n.RemoveChild(i)
		removed = old
		return err
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ReplaceChild puts child in place of child i of parent and returns the
// node it replaced.
func (re *Regex) ReplaceChild(parent *Node, i int, child *Node) (*Node, error) {
	var replaced *Node
	err := re.apply(parent, []*Node{child}, func(_ *Regex, n *Node, args []*Node) error {
		old, err := n.ReplaceChild(i, args[0])
		replaced = old
		return err
	})
	if err != nil {
		return nil, err
	}
	return replaced, nil
}

// Append adds nodes to the end of the pattern.
func (re *Regex) Append(nodes ...*Node) error {
	if len(nodes) == 0 {
		return nil
	}
	return re.apply(nil, nodes, func(_ *Regex, root *Node, args []*Node) error {
		for _, a := range args {
			if err := root.InsertChild(len(root.Children), a); err != nil {
				return err
			}
		}
		return nil
	})
}
