package syntax

import (
	"bytes"
	"fmt"
	"sort"
	"unicode"
)

// Category is one of the shorthand classes that may appear inside a set
// or stand alone (\d \D \s \S \w \W).
type Category uint8

const (
	CatDigit    Category = iota // \d
	CatNotDigit                 // \D
	CatSpace                    // \s
	CatNotSpace                 // \S
	CatWord                     // \w
	CatNotWord                  // \W
)

var categoryEscapes = []rune{'d', 'D', 's', 'S', 'w', 'W'}

// CategoryFromEscape maps the letter following a backslash to its category.
func CategoryFromEscape(ch rune) (Category, bool) {
	for i, c := range categoryEscapes {
		if c == ch {
			return Category(i), true
		}
	}
	return 0, false
}

func (c Category) String() string {
	if int(c) >= len(categoryEscapes) {
		return fmt.Sprintf("Category(%d)", c)
	}
	return `\` + string(categoryEscapes[c])
}

func (c Category) valid() bool {
	return int(c) < len(categoryEscapes)
}

// SingleRange is an inclusive span of runes.
type SingleRange struct {
	First rune
	Last  rune
}

// CharSet is a character class. Ranges are kept sorted with overlapping and
// adjacent spans merged, and categories are kept sorted and unique, so two
// sets that denote the same class compare equal.
type CharSet struct {
	ranges     []SingleRange
	categories []Category
	negate     bool
}

// NewCharSet returns the set holding ranges, negated if negate is true.
func NewCharSet(negate bool, ranges ...SingleRange) (*CharSet, error) {
	c := &CharSet{negate: negate}
	for _, r := range ranges {
		if err := c.addRange(r.First, r.Last); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewCategorySet returns a set holding the given shorthand classes.
func NewCategorySet(negate bool, cats ...Category) *CharSet {
	c := &CharSet{negate: negate}
	for _, cat := range cats {
		c.addCategory(cat)
	}
	return c
}

func checkSubrange(first, last rune) error {
	if first > last {
		return newError(ErrInvalidSubrange, nil, fmt.Sprintf("%s-%s", CharDescription(first), CharDescription(last)))
	}
	if first < 0 || last > unicode.MaxRune {
		return newError(ErrInvalidSubrange, nil, fmt.Sprintf("%s-%s outside the rune space", CharDescription(first), CharDescription(last)))
	}
	return nil
}

func (c *CharSet) addChar(ch rune) {
	c.ranges = append(c.ranges, SingleRange{ch, ch})
	c.canonicalize()
}

func (c *CharSet) addRange(first, last rune) error {
	if err := checkSubrange(first, last); err != nil {
		return err
	}
	c.ranges = append(c.ranges, SingleRange{first, last})
	c.canonicalize()
	return nil
}

// removeRange subtracts first-last from the explicit ranges. Categories are
// left alone: a shorthand class has no enumerable membership here.
func (c *CharSet) removeRange(first, last rune) error {
	if err := checkSubrange(first, last); err != nil {
		return err
	}
	out := make([]SingleRange, 0, len(c.ranges)+1)
	for _, r := range c.ranges {
		if r.Last < first || r.First > last {
			out = append(out, r)
			continue
		}
		if r.First < first {
			out = append(out, SingleRange{r.First, first - 1})
		}
		if r.Last > last {
			out = append(out, SingleRange{last + 1, r.Last})
		}
	}
	c.ranges = out
	return nil
}

func (c *CharSet) addCategory(cat Category) {
	i := sort.Search(len(c.categories), func(i int) bool { return c.categories[i] >= cat })
	if i < len(c.categories) && c.categories[i] == cat {
		return
	}
	c.categories = append(c.categories, 0)
	copy(c.categories[i+1:], c.categories[i:])
	c.categories[i] = cat
}

func (c *CharSet) removeCategory(cat Category) {
	for i, have := range c.categories {
		if have == cat {
			c.categories = append(c.categories[:i], c.categories[i+1:]...)
			return
		}
	}
}

// canonicalize sorts the ranges and merges the ones that overlap or touch.
func (c *CharSet) canonicalize() {
	if len(c.ranges) < 2 {
		return
	}
	sort.Slice(c.ranges, func(i, j int) bool { return c.ranges[i].First < c.ranges[j].First })

	j := 0
	for i := 1; i < len(c.ranges); i++ {
		last := c.ranges[j].Last
		cur := c.ranges[i]
		if cur.First <= last+1 {
			if cur.Last > last {
				c.ranges[j].Last = cur.Last
			}
			continue
		}
		j++
		c.ranges[j] = cur
	}
	c.ranges = c.ranges[:j+1]
}

// IsEmpty is true when the set names no runes and no categories. Such a set
// is never stored in a tree.
func (c *CharSet) IsEmpty() bool {
	return len(c.ranges) == 0 && len(c.categories) == 0
}

func (c *CharSet) IsNegated() bool {
	return c.negate
}

// Ranges returns a copy of the normalized ranges.
func (c *CharSet) Ranges() []SingleRange {
	return append([]SingleRange(nil), c.ranges...)
}

// Categories returns a copy of the shorthand classes in the set.
func (c *CharSet) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Shorthand reports whether the set is exactly one shorthand class, which
// the serializer writes without brackets.
func (c *CharSet) Shorthand() (Category, bool) {
	if c.negate || len(c.ranges) != 0 || len(c.categories) != 1 {
		return 0, false
	}
	return c.categories[0], true
}

// IsSingleton reports whether the set matches exactly one rune.
func (c *CharSet) IsSingleton() bool {
	return !c.negate && len(c.categories) == 0 && len(c.ranges) == 1 &&
		c.ranges[0].First == c.ranges[0].Last
}

func (c *CharSet) SingletonChar() rune {
	return c.ranges[0].First
}

// Copy returns a deep copy of c.
func (c *CharSet) Copy() *CharSet {
	return &CharSet{
		ranges:     c.Ranges(),
		categories: c.Categories(),
		negate:     c.negate,
	}
}

func (c *CharSet) Equals(o *CharSet) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.negate != o.negate || len(c.ranges) != len(o.ranges) || len(c.categories) != len(o.categories) {
		return false
	}
	for i := range c.ranges {
		if c.ranges[i] != o.ranges[i] {
			return false
		}
	}
	for i := range c.categories {
		if c.categories[i] != o.categories[i] {
			return false
		}
	}
	return true
}

// String renders the set as it would appear in a pattern.
func (c *CharSet) String() string {
	buf := &bytes.Buffer{}
	writeSet(buf, c, Python)
	return buf.String()
}

// description is the debug form used by RegexNode.Description.
func (c *CharSet) description() string {
	buf := &bytes.Buffer{}
	buf.WriteRune('[')
	if c.negate {
		buf.WriteRune('^')
	}
	for _, r := range c.ranges {
		buf.WriteString(CharDescription(r.First))
		if r.First != r.Last {
			if r.Last != r.First+1 {
				buf.WriteRune('-')
			}
			buf.WriteString(CharDescription(r.Last))
		}
	}
	for _, cat := range c.categories {
		buf.WriteString(cat.String())
	}
	buf.WriteRune(']')
	return buf.String()
}

// Produces a human-readable description for a single character.
func CharDescription(ch rune) string {
	if ch == '\\' {
		return "\\\\"
	}

	if ch >= ' ' && ch <= '~' {
		return string(ch)
	}

	return fmt.Sprintf("%U", ch)
}
