package reggie

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/reggie-regex/reggie/syntax"
)

func groupsPattern(t *testing.T) *Regex {
	return mustNew(t, 0,
		Must(Group(Capturing, Must(Literal("a")))),
		Must(NamedGroup("n", Must(Literal("b")))),
		Must(Group(NonCapturing, Must(Literal("c")))),
		Must(Group(Lookahead, Must(Literal("d")))),
	)
}

func TestGroupNames(t *testing.T) {
	re := groupsPattern(t)
	require.Equal(t, "(a)(?P<n>b)(?:c)(?=d)", re.String())
	require.Equal(t, 2, re.GroupCount())

	if diff := cmp.Diff([]string{"0", "1", "n"}, re.GetGroupNames()); diff != "" {
		t.Fatalf("group names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, re.GetGroupNumbers()); diff != "" {
		t.Fatalf("group numbers mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupNameFromNumber(t *testing.T) {
	re := groupsPattern(t)
	tests := []struct {
		num  int
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "n"},
		{3, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if want, got := tt.want, re.GroupNameFromNumber(tt.num); want != got {
			t.Errorf("GroupNameFromNumber(%v): wanted '%v', got '%v'", tt.num, want, got)
		}
	}
}

func TestGroupNumberFromName(t *testing.T) {
	re := groupsPattern(t)
	tests := []struct {
		name string
		want int
	}{
		{"0", 0},
		{"1", 1},
		{"n", 2},
		{"2", -1}, // group 2 is only known as n
		{"3", -1},
		{"x", -1},
		{"", -1},
		{"1a", -1},
	}
	for _, tt := range tests {
		if want, got := tt.want, re.GroupNumberFromName(tt.name); want != got {
			t.Errorf("GroupNumberFromName(%q): wanted %v, got %v", tt.name, want, got)
		}
	}
}

func TestGroupLookup(t *testing.T) {
	re := groupsPattern(t)
	n := re.GroupByName("n")
	require.NotNil(t, n)
	require.Same(t, n, re.GroupByIndex(2))
	require.Equal(t, "a", string(re.GroupByIndex(1).Children[0].Str))
	require.Nil(t, re.GroupByIndex(0))
	require.Nil(t, re.GroupByIndex(3))
	require.Nil(t, re.GroupByName("c"))

	ref, err := re.NamedBackreference("n")
	require.NoError(t, err)
	num := Must(re.Backreference(1))
	require.NoError(t, re.Append(ref, num))
	require.Same(t, n, re.Target(ref))
	require.Same(t, re.GroupByIndex(1), re.Target(num))
	require.Nil(t, re.Target(n))
}

func TestNestedGroupsNumberByOpening(t *testing.T) {
	inner := Must(Group(Capturing, Must(Literal("b"))))
	outer := Must(Group(Capturing, Must(Sequence(Must(Literal("a")), inner))))
	re := mustNew(t, 0, outer, Must(Group(Capturing, Any())))
	require.Same(t, outer, re.GroupByIndex(1))
	require.Same(t, inner, re.GroupByIndex(2))
	require.Equal(t, 3, re.GroupCount())
}

func TestLengths(t *testing.T) {
	tests := []struct {
		name   string
		nodes  func() []*Node
		min    int
		max    int
		finite bool
	}{
		{"literal and set", func() []*Node {
			return []*Node{Must(Literal("abc")), Must(Range(false, Span{First: 'a', Last: 'z'}))}
		}, 4, 4, true},
		{"plus", func() []*Node {
			return []*Node{Must(Literal("a")), Must(Plus(Must(Class(Digit))))}
		}, 2, -1, false},
		{"bounded repeat", func() []*Node {
			return []*Node{Must(Quantify(Must(Literal("ab")), 1, 3, Lazy))}
		}, 2, 6, true},
		{"alternation", func() []*Node {
			return []*Node{Must(Alternate(Must(Literal("a")), Must(Literal("bcd"))))}
		}, 1, 3, true},
		{"lookahead is zero width", func() []*Node {
			return []*Node{Must(Group(Lookahead, Must(Literal("xyz")))), Must(Literal("a"))}
		}, 1, 1, true},
		{"unbounded lookahead", func() []*Node {
			return []*Node{Must(Group(Lookahead, Must(Star(Must(Literal("x"))))))}
		}, 0, 0, false},
		{"anchors", func() []*Node {
			return []*Node{Must(Anchor(StartOfString)), Must(Anchor(WordBoundary))}
		}, 0, 0, true},
		{"backreference", func() []*Node {
			return []*Node{Must(Group(Capturing, Must(Literal("ab")))), Must(Backreference(1))}
		}, 4, 4, true},
		{"backreference to unbounded", func() []*Node {
			return []*Node{Must(Group(Capturing, Must(Plus(Must(Literal("a")))))), Must(Backreference(1))}
		}, 2, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := mustNew(t, 0, tt.nodes()...)
			require.Equal(t, tt.min, re.MinLength())
			require.Equal(t, tt.max, re.MaxLength())
			require.Equal(t, tt.finite, re.IsFinite())

			n, ok := re.Length()
			require.Equal(t, tt.min == tt.max, ok)
			if ok {
				require.Equal(t, tt.min, n)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	re := mustNew(t, 0,
		Must(Range(false, Span{First: 'a', Last: 'b'})),
		Must(Group(Capturing, Must(Sequence(Must(Class(Digit)), Any())))),
	)
	var sets int
	re.Walk(func(n *Node) bool {
		if n.T == syntax.NtSet {
			sets++
		}
		return true
	})
	require.Equal(t, 2, sets)

	var seen int
	re.Walk(func(n *Node) bool {
		seen++
		return n.T != syntax.NtGroup
	})
	// root, set and group
	require.Equal(t, 3, seen)
}

func TestLiteralPrefix(t *testing.T) {
	re := mustNew(t, 0, Must(Literal("hello")))
	prefix, complete := re.LiteralPrefix()
	require.Equal(t, "hello", prefix)
	require.True(t, complete)

	require.NoError(t, re.Append(Must(Class(Space)), Must(Literal("world"))))
	prefix, complete = re.LiteralPrefix()
	require.Equal(t, "hello", prefix)
	require.False(t, complete)

	require.NoError(t, re.AddFlag(IgnoreCase))
	prefix, _ = re.LiteralPrefix()
	require.Equal(t, "", prefix)

	prefix, complete = mustNew(t, 0).LiteralPrefix()
	require.Equal(t, "", prefix)
	require.True(t, complete)
}
