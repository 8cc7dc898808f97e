package reggie

// The With methods are the non-mutating forms of the mutators. Each copies
// the receiver, applies the mutation to the copy and returns it; the
// receiver is never changed. Target nodes are given as nodes of the
// receiver and are located in the copy by their position. Nodes passed in
// to be added become owned by the returned Regex.

func (re *Regex) with(target *Node, m func(c *Regex, target *Node) error) (*Regex, error) {
	path, err := re.pathOf(target)
	if err != nil {
		return nil, err
	}
	c := re.Copy()
	var t *Node
	if target != nil {
		t = c.root.At(path)
	}
	if err := m(c, t); err != nil {
		return nil, err
	}
	return c, nil
}

func (re *Regex) WithFlag(f Flags) (*Regex, error) {
	return re.with(nil, func(c *Regex, _ *Node) error { return c.AddFlag(f) })
}

func (re *Regex) WithoutFlag(f Flags) (*Regex, error) {
	return re.with(nil, func(c *Regex, _ *Node) error { return c.RemoveFlag(f) })
}

func (re *Regex) WithGroupFlag(group *Node, f Flags) (*Regex, error) {
	return re.with(group, func(c *Regex, n *Node) error { return c.AddGroupFlag(n, f) })
}

func (re *Regex) WithoutGroupFlag(group *Node, f Flags) (*Regex, error) {
	return re.with(group, func(c *Regex, n *Node) error { return c.RemoveGroupFlag(n, f) })
}

func (re *Regex) WithGroupFlagDisabled(group *Node, f Flags) (*Regex, error) {
	return re.with(group, func(c *Regex, n *Node) error { return c.DisableGroupFlag(n, f) })
}

func (re *Regex) WithName(group *Node, name string) (*Regex, error) {
	return re.with(group, func(c *Regex, n *Node) error { return c.SetName(n, name) })
}

func (re *Regex) WithQuantifier(q *Node, min, max int, mode QuantifierMode) (*Regex, error) {
	return re.with(q, func(c *Regex, n *Node) error { return c.SetQuantifier(n, min, max, mode) })
}

func (re *Regex) WithSubrange(set *Node, first, last rune) (*Regex, error) {
	return re.with(set, func(c *Regex, n *Node) error { return c.AddSubrange(n, first, last) })
}

func (re *Regex) WithoutSubrange(set *Node, first, last rune) (*Regex, error) {
	return re.with(set, func(c *Regex, n *Node) error { return c.RemoveSubrange(n, first, last) })
}

func (re *Regex) WithClass(set *Node, cat Category) (*Regex, error) {
	return re.with(set, func(c *Regex, n *Node) error { return c.AddClass(n, cat) })
}

func (re *Regex) WithoutClass(set *Node, cat Category) (*Regex, error) {
	return re.with(set, func(c *Regex, n *Node) error { return c.RemoveClass(n, cat) })
}

func (re *Regex) Complemented(set *Node) (*Regex, error) {
	return re.with(set, func(c *Regex, n *Node) error { return c.Complement(n) })
}

func (re *Regex) WithChild(parent *Node, i int, child *Node) (*Regex, error) {
	return re.with(parent, func(c *Regex, n *Node) error { return c.InsertChild(n, i, child) })
}

func (re *Regex) WithoutChild(parent *Node, i int) (*Regex, error) {
	return re.with(parent, func(c *Regex, n *Node) error {
		_, err := c.RemoveChild(n, i)
		return err
	})
}

func (re *Regex) WithReplacedChild(parent *Node, i int, child *Node) (*Regex, error) {
	return re.with(parent, func(c *Regex, n *Node) error {
		_, err := c.ReplaceChild(n, i, child)
		return err
	})
}

func (re *Regex) WithAppended(nodes ...*Node) (*Regex, error) {
	return re.with(nil, func(c *Regex, _ *Node) error { return c.Append(nodes...) })
}
