package reggie

import (
	"strconv"

	"github.com/reggie-regex/reggie/syntax"
)

// Root returns the root sequence of the pattern. Edit it only through the
// methods of re.
func (re *Regex) Root() *Node {
	return re.root
}

// Nodes returns the top-level nodes of the pattern in order.
func (re *Regex) Nodes() []*Node {
	return append([]*Node(nil), re.root.Children...)
}

// Flags returns the whole-pattern flags.
func (re *Regex) Flags() Flags {
	return re.flags
}

// GroupCount returns the number of capturing groups.
func (re *Regex) GroupCount() int {
	return len(re.groups)
}

// GroupByIndex returns capturing group i, counting from 1 in the order
// of the opening parentheses, or nil.
func (re *Regex) GroupByIndex(i int) *Node {
	if i < 1 || i > len(re.groups) {
		return nil
	}
	return re.groups[i-1]
}

// GroupByName returns the group called name, or nil.
func (re *Regex) GroupByName(name string) *Node {
	if i, ok := re.capnames[name]; ok {
		return re.groups[i-1]
	}
	return nil
}

// Target returns the group a backreference or conditional of re refers to.
func (re *Regex) Target(ref *Node) *Node {
	if ref.T != syntax.NtBackref && ref.T != syntax.NtConditional {
		return nil
	}
	if ref.Name != "" {
		return re.GroupByName(ref.Name)
	}
	return re.GroupByIndex(ref.Index)
}

// GetGroupNames returns the names of the groups, starting with "0" for the
// whole match. Unnamed groups are named by their number.
func (re *Regex) GetGroupNames() []string {
	result := make([]string, len(re.groups)+1)
	result[0] = "0"
	for i, g := range re.groups {
		if g.Group == syntax.GroupNamed {
			result[i+1] = g.Name
		} else {
			result[i+1] = strconv.Itoa(i + 1)
		}
	}
	return result
}

// GetGroupNumbers returns the group numbers, starting with 0 for the whole
// match.
func (re *Regex) GetGroupNumbers() []int {
	result := make([]int, len(re.groups)+1)
	for i := range result {
		result[i] = i
	}
	return result
}

// GroupNameFromNumber retrieves a group name that corresponds to a group number.
// It will return "" for an unknown group number. Unnamed groups automatically
// receive a name that is the decimal string equivalent of its number.
func (re *Regex) GroupNameFromNumber(i int) string {
	if i < 0 || i > len(re.groups) {
		return ""
	}
	if i > 0 && re.groups[i-1].Group == syntax.GroupNamed {
		return re.groups[i-1].Name
	}
	return strconv.Itoa(i)
}

// GroupNumberFromName returns a group number that corresponds to a group name.
// Returns -1 if the name is not a recognized group name. Numbered groups
// automatically get a group name that is the decimal string equivalent of its number.
func (re *Regex) GroupNumberFromName(name string) int {
	if k, ok := re.capnames[name]; ok {
		return k
	}

	// convert to an int if it looks like a number
	if name == "" {
		return -1
	}
	result := 0
	for i := 0; i < len(name); i++ {
		ch := name[i]

		if ch > '9' || ch < '0' {
			return -1
		}

		result *= 10
		result += int(ch - '0')
		if result > len(re.groups) {
			return -1
		}
	}

	// a named group is only known by its name
	if result > 0 && re.groups[result-1].Group == syntax.GroupNamed {
		return -1
	}
	return result
}

func (re *Regex) lookup(ref *Node) *Node {
	return re.Target(ref)
}

// IsFinite reports whether every string the pattern matches has bounded
// length: no quantifier in it, or in a group it refers back to, is
// unbounded.
func (re *Regex) IsFinite() bool {
	return re.root.IsFinite(re.lookup)
}

// Length returns the length every match of the pattern has, or ok false if
// matches can differ in length.
func (re *Regex) Length() (n int, ok bool) {
	return re.root.FixedLength(re.lookup)
}

// MinLength returns the length of the shortest possible match.
func (re *Regex) MinLength() int {
	return re.root.ComputeMinLength(re.lookup)
}

// MaxLength returns the length of the longest possible match, or -1 when
// it is unbounded.
func (re *Regex) MaxLength() int {
	return re.root.ComputeMaxLength(re.lookup)
}

// Walk calls fn for every node of the pattern in pre-order. Children of a
// node are skipped when fn returns false for it.
func (re *Regex) Walk(fn func(*Node) bool) {
	re.root.Walk(fn)
}

// LiteralPrefix returns a literal string that must begin any match of the
// pattern. It returns the boolean true if the literal string comprises the
// entire pattern.
func (re *Regex) LiteralPrefix() (prefix string, complete bool) {
	return re.root.LiteralPrefix(re.flags)
}
