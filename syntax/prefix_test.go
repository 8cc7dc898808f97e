package syntax

import "testing"

func TestLiteralPrefix(t *testing.T) {
	tests := []struct {
		name     string
		node     func(t *testing.T) *RegexNode
		opt      Flags
		prefix   string
		complete bool
	}{
		{"literal", func(t *testing.T) *RegexNode { return concat(t, lit(t, "abc")) }, 0, "abc", true},
		{"literal then set", func(t *testing.T) *RegexNode {
			return concat(t, lit(t, "ab"), set(t, false, SingleRange{'c', 'c'}), set(t, false, SingleRange{'0', '9'}))
		}, 0, "abc", false},
		{"ignore case", func(t *testing.T) *RegexNode { return concat(t, lit(t, "abc")) }, IgnoreCase, "", false},
		{"alternation", func(t *testing.T) *RegexNode {
			return concat(t, alt(t, lit(t, "foobar"), lit(t, "food")), lit(t, "x"))
		}, 0, "foo", false},
		{"repeat", func(t *testing.T) *RegexNode {
			return concat(t, quant(t, lit(t, "ab"), 2, 2), lit(t, "c"))
		}, 0, "ababc", true},
		{"open repeat", func(t *testing.T) *RegexNode {
			return concat(t, quant(t, lit(t, "a"), 1, Infinite), lit(t, "b"))
		}, 0, "a", false},
		{"optional", func(t *testing.T) *RegexNode {
			return concat(t, quant(t, lit(t, "a"), 0, 1), lit(t, "b"))
		}, 0, "", false},
		{"group", func(t *testing.T) *RegexNode {
			return concat(t, group(t, GroupCapturing, lit(t, "ab")), NewAny())
		}, 0, "ab", false},
		{"anchor", func(t *testing.T) *RegexNode {
			return concat(t, anchor(t, AnchorStart), lit(t, "ab"))
		}, 0, "ab", false},
		{"scoped ignore case", func(t *testing.T) *RegexNode {
			g, err := NewFlagGroup(InlineFlags{On: IgnoreCase}, lit(t, "x"))
			if err != nil {
				t.Fatal(err)
			}
			return concat(t, lit(t, "ab"), g)
		}, 0, "ab", false},
		{"scoped case restored", func(t *testing.T) *RegexNode {
			g, err := NewFlagGroup(InlineFlags{Off: IgnoreCase}, lit(t, "x"))
			if err != nil {
				t.Fatal(err)
			}
			return concat(t, g, lit(t, "y"))
		}, IgnoreCase, "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, complete := tt.node(t).LiteralPrefix(tt.opt)
			if want, got := tt.prefix, prefix; want != got {
				t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
			}
			if want, got := tt.complete, complete; want != got {
				t.Fatalf("complete: wanted %v, got %v", want, got)
			}
		})
	}
}
