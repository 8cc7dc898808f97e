package syntax

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// nodeShape reduces a tree to comparable values for cmp.Diff.
type nodeShape struct {
	T        NodeType
	Str      string
	Set      string
	Children []nodeShape
}

func shapeOf(n *RegexNode) nodeShape {
	s := nodeShape{T: n.T, Str: string(n.Str)}
	if n.Set != nil {
		s.Set = n.Set.String()
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

func litShape(s string) nodeShape { return nodeShape{T: NtLiteral, Str: s} }
func setShape(s string) nodeShape { return nodeShape{T: NtSet, Set: s} }

func TestParse(t *testing.T) {
	tests := []struct {
		pattern string
		want    []nodeShape
	}{
		{"", nil},
		{"cat", []nodeShape{litShape("cat")}},
		{"[a-z]", []nodeShape{setShape("[a-z]")}},
		{"a[^0-9]b", []nodeShape{litShape("a"), setShape("[^0-9]"), litShape("b")}},
		{"[]a]", []nodeShape{setShape(`[\]a]`)}},
		{"[a-]", []nodeShape{setShape(`[\-a]`)}},
		{"[-a]", []nodeShape{setShape(`[\-a]`)}},
		{"[^]]", []nodeShape{setShape(`[^\]]`)}},
		{`[\d\s]`, []nodeShape{setShape(`[\d\s]`)}},
		{`[\x41-\x43]`, []nodeShape{setShape("[A-C]")}},
		{`[\b]`, []nodeShape{setShape(`[\x08]`)}},
		{`[\1]`, []nodeShape{setShape(`[\x01]`)}},
		{"[a-cb-e]", []nodeShape{setShape("[a-e]")}},
		{`\.\*\[`, []nodeShape{litShape(".*[")}},
		{`a\nb`, []nodeShape{litShape("a\nb")}},
		{`\101\0`, []nodeShape{litShape("A\x00")}},
		{`\08`, []nodeShape{litShape("\x008")}},
		{`é\U0001F600`, []nodeShape{litShape("é\U0001F600")}},
		{`a\db`, []nodeShape{litShape("a"), setShape(`\d`), litShape("b")}},
		{"a.b", []nodeShape{litShape("a"), {T: NtAny}, litShape("b")}},
		{"a{", []nodeShape{litShape("a{")}},
		{"a{x}", []nodeShape{litShape("a{x}")}},
		{"{}", []nodeShape{litShape("{}")}},
		{"a}b]", []nodeShape{litShape("a}b]")}},
		{"é", []nodeShape{litShape("é")}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree, err := Parse(tt.pattern, 0)
			require.NoError(t, err)
			want := nodeShape{T: NtConcatenate, Children: tt.want}
			if diff := cmp.Diff(want, shapeOf(tree.Root)); diff != "" {
				t.Fatalf("tree mismatch (-want +got):\n%s", diff)
			}
			require.NoError(t, tree.Root.Validate())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		want    ErrorCode
		pos     int
		detail  string
	}{
		{"[a-", ErrUnterminatedRange, 0, ""},
		{"ab[cd", ErrUnterminatedRange, 2, ""},
		{"[", ErrUnterminatedRange, 0, ""},
		{"[z-a]", ErrInvalidSubrange, 1, "z-a"},
		{`[\d-z]`, ErrInvalidSubrange, 1, `\d-z`},
		{`\`, ErrTrailingBackslash, 0, ""},
		{`ab\q`, ErrInvalidEscape, 2, `\q`},
		{`[\8]`, ErrInvalidEscape, 1, `\8`},
		{`\x4`, ErrInvalidEscape, 0, `incomplete escape \x4`},
		{`\U00110000`, ErrInvalidEscape, 0, `\U00110000`},
		{`\400`, ErrInvalidEscape, 0, `octal escape value \400 outside of range 0-0o377`},
		{`[\A]`, ErrInvalidEscape, 1, `\A`},
		{"ab|c", ErrUnsupportedSyntax, 2, "alternation"},
		{"(a)", ErrUnsupportedSyntax, 0, "group"},
		{"a)", ErrUnsupportedSyntax, 1, "group"},
		{"a*", ErrUnsupportedSyntax, 1, "quantifier"},
		{"a+", ErrUnsupportedSyntax, 1, "quantifier"},
		{"a?", ErrUnsupportedSyntax, 1, "quantifier"},
		{"a{2}", ErrUnsupportedSyntax, 1, "quantifier"},
		{"a{,3}", ErrUnsupportedSyntax, 1, "quantifier"},
		{"a{2,3}", ErrUnsupportedSyntax, 1, "quantifier"},
		{"^a", ErrUnsupportedSyntax, 0, "anchor"},
		{"a$", ErrUnsupportedSyntax, 1, "anchor"},
		{`a\b`, ErrUnsupportedSyntax, 1, `anchor \b`},
		{`\A`, ErrUnsupportedSyntax, 0, `anchor \A`},
		{`(a)\1`, ErrUnsupportedSyntax, 0, "group"},
		{`a\1`, ErrUnsupportedSyntax, 1, "backreference"},
		{`\N{DASH}`, ErrUnsupportedSyntax, 0, `named character escape \N`},
		{"(?z)a", ErrUnsupportedSyntax, 0, "group"},
		{"(?a)(?u)x", ErrIncompatibleFlags, 4, "(?u)"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern, 0)
			require.ErrorIs(t, err, tt.want)

			var e *Error
			require.True(t, errors.As(err, &e))
			require.Equal(t, tt.pos, e.Pos)
			require.Equal(t, tt.detail, e.Detail)
			require.Equal(t, tt.pattern, e.Expr)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("[a-", 0)
	require.EqualError(t, err, "error parsing regexp: unterminated character set at position 0 in `[a-`")

	_, err = Parse("x|y", 0)
	require.EqualError(t, err, "error parsing regexp: unsupported syntax alternation at position 1 in `x|y`")
}

func TestParseGlobalFlags(t *testing.T) {
	tree, err := Parse("(?im)(?s)abc", 0)
	require.NoError(t, err)
	require.Equal(t, IgnoreCase|Multiline|DotAll, tree.Options)
	if diff := cmp.Diff(nodeShape{T: NtConcatenate, Children: []nodeShape{litShape("abc")}}, shapeOf(tree.Root)); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}

	tree, err = Parse("(?x)a", Unicode)
	require.NoError(t, err)
	require.Equal(t, Unicode|Verbose, tree.Options)

	_, err = Parse("(?a)x", Locale)
	require.ErrorIs(t, err, ErrIncompatibleFlags)

	_, err = Parse("x", ASCII|Unicode)
	require.ErrorIs(t, err, ErrIncompatibleFlags)

	_, err = Parse("x", 0x8000)
	require.ErrorIs(t, err, ErrInvalidFlag)
}

func TestParseVerbose(t *testing.T) {
	tree, err := Parse("a b # trailing words\n  c[ d]\\ e", Verbose)
	require.NoError(t, err)
	want := nodeShape{T: NtConcatenate, Children: []nodeShape{
		litShape("abc"),
		setShape("[ d]"),
		litShape(" e"),
	}}
	if diff := cmp.Diff(want, shapeOf(tree.Root)); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}

	// the flag may also come from the pattern
	tree, err = Parse("(?x) a b", 0)
	require.NoError(t, err)
	require.Equal(t, "ab", string(tree.Root.Children[0].Str))
}

func TestParseRoundTrip(t *testing.T) {
	for _, pattern := range []string{
		"cat",
		`a\.b`,
		"[a-z]",
		"[^abc]",
		`[\]\-\^]`,
		`x[\d\w_]y`,
		`\S.\s`,
		`\t\x00é\U0001f600`,
		"(?i)hello",
		`(?mx)a\ b\#c`,
	} {
		tree, err := Parse(pattern, 0)
		require.NoError(t, err, pattern)

		out, err := Write(tree.Root, tree.Options, Python)
		require.NoError(t, err, pattern)

		again, err := Parse(out, 0)
		require.NoError(t, err, out)
		require.True(t, tree.Root.Equal(again.Root), "%s -> %s", pattern, out)
		require.Equal(t, tree.Options, again.Options)
	}
}
