package syntax

// arbitrary cut-off to avoid creating super long prefixes from repeats
const maxPrefixRepeat = 4

// LiteralPrefix returns a literal string that any match of the tree rooted
// at n must begin with, given the pattern-wide flags opt. complete is true
// if the prefix is the entire match. Case-insensitive text ends the prefix.
func (n *RegexNode) LiteralPrefix(opt Flags) (prefix string, complete bool) {
	p := &prefixFinder{exact: true}
	more := p.find(n, opt&IgnoreCase != 0)
	return string(p.runes), more && p.exact
}

type prefixFinder struct {
	runes []rune
	// false once a zero-width assertion was passed over
	exact bool
}

// find appends the leading literal text of node and returns whether node
// was consumed entirely, so processing can continue with subsequent nodes.
func (p *prefixFinder) find(node *RegexNode, fold bool) bool {
	switch node.T {
	case NtConcatenate:
		for _, c := range node.Children {
			if !p.find(c, fold) {
				return false
			}
		}
		return true

	case NtLiteral:
		if fold {
			return false
		}
		p.runes = append(p.runes, node.Str...)
		return true

	case NtSet:
		if fold || !node.Set.IsSingleton() {
			return false
		}
		p.runes = append(p.runes, node.Set.SingletonChar())
		return true

	// Alternation: keep the part of the first branch's prefix that every
	// other branch shares.
	case NtAlternate:
		initial := len(p.runes)
		p.find(node.Children[0], fold)
		added := len(p.runes) - initial

		alt := &prefixFinder{}
		for i := 1; i < len(node.Children) && added != 0; i++ {
			alt.runes = alt.runes[:0]
			alt.find(node.Children[i], fold)
			added = min(added, commonPrefixLen(p.runes[initial:initial+added], alt.runes))
		}
		p.runes = p.runes[:initial+added]

		// nothing after an alternation is explored
		return false

	case NtQuantified:
		if node.M <= 0 {
			return false
		}
		limit := min(node.M, maxPrefixRepeat)
		for i := 0; i < limit; i++ {
			if !p.find(node.Children[0], fold) {
				return false
			}
		}
		return limit == node.N

	case NtGroup:
		if node.Group.IsLookaround() {
			p.exact = false
			return true
		}
		if node.Flags.On&IgnoreCase != 0 {
			fold = true
		} else if node.Flags.Off&IgnoreCase != 0 {
			fold = false
		}
		return p.find(node.Children[0], fold)

	case NtAssertion:
		p.exact = false
		return true

	case NtComment:
		return true
	}
	// Give up for anything else
	return false
}

// commonPrefixLen returns the length of the common prefix of two rune slices.
func commonPrefixLen(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
