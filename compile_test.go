package reggie

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reggie-regex/reggie/syntax"
)

func matchString(t *testing.T, re *Regex, s string) bool {
	t.Helper()
	e, err := re.Compile()
	require.NoError(t, err)
	m, err := e.MatchString(s)
	require.NoError(t, err)
	return m
}

func TestCompileMatches(t *testing.T) {
	quoted := mustNew(t, 0, Must(NamedGroup("q", Must(Range(false, Span{First: '"', Last: '"'}, Span{First: '\'', Last: '\''})))))
	require.NoError(t, quoted.Append(Must(Plus(Must(Class(Word)))), Must(quoted.NamedBackreference("q"))))

	tests := []struct {
		name  string
		re    *Regex
		input string
		want  bool
	}{
		{"literal", mustNew(t, 0, Must(Literal("1+1=2"))), "so 1+1=2", true},
		{"escaped plus", mustNew(t, 0, Must(Literal("1+1=2"))), "11=2", false},
		{"named backreference", quoted, `"hello"`, true},
		{"named backreference mismatch", quoted, `"hello'`, false},
		{"ignore case", mustNew(t, IgnoreCase, Must(Literal("cat"))), "CAT", true},
		{"scoped ignore case", mustNew(t, 0, Must(FlagGroup(InlineFlags{On: IgnoreCase}, Must(Literal("c")))), Must(Literal("at"))), "CAt", true},
		{"scoped ignore case ends", mustNew(t, 0, Must(FlagGroup(InlineFlags{On: IgnoreCase}, Must(Literal("c")))), Must(Literal("at"))), "CAT", false},
		{"end of string", mustNew(t, 0, Must(Literal("ab")), Must(Anchor(EndOfString))), "xab", true},
		{"end of string before newline", mustNew(t, 0, Must(Literal("ab")), Must(Anchor(EndOfString))), "ab\n", false},
		{"dot", mustNew(t, 0, Any()), "\n", false},
		{"dotall", mustNew(t, DotAll, Any()), "\n", true},
		{"lookbehind", mustNew(t, 0, Must(Group(Lookbehind, Must(Literal("a")))), Must(Literal("b"))), "ab", true},
		{"lookbehind fails", mustNew(t, 0, Must(Group(Lookbehind, Must(Literal("a")))), Must(Literal("b"))), "cb", false},
		{"bounded repeat", mustNew(t, 0, Must(Anchor(StartOfString)), Must(Quantify(Must(Class(Digit)), 0, 2, Greedy)), Must(Anchor(EndOfString))), "123", false},
		{"negated set", mustNew(t, 0, Must(Range(true, Span{First: 'a', Last: 'z'}))), "abc", false},
		{"astral", mustNew(t, 0, Must(Literal("\U0001F600!"))), "hi \U0001F600!", true},
		{"unicode flag dropped", mustNew(t, Unicode, Must(Literal("é"))), "café", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if want, got := tt.want, matchString(t, tt.re, tt.input); want != got {
				t.Fatalf("%v.MatchString(%q): wanted %v, got %v", tt.re, tt.input, want, got)
			}
		})
	}
}

func TestCompileRendersRegexpTwo(t *testing.T) {
	re := mustNew(t, 0, Must(NamedGroup("n", Must(Literal("a")))))
	require.NoError(t, re.Append(Must(re.NamedBackreference("n")), Must(Anchor(EndOfString))))

	s, err := re.Render(syntax.RegexpTwo)
	require.NoError(t, err)
	require.Equal(t, `(?<n>a)\k<n>\z`, s)
	require.Equal(t, `(?P<n>a)(?P=n)\Z`, re.String())
}

func TestCompileUnsupported(t *testing.T) {
	for _, re := range []*Regex{
		mustNew(t, 0, Must(Quantify(Must(Literal("a")), 1, Infinite, Possessive))),
		mustNew(t, ASCII, Must(Literal("a"))),
		mustNew(t, Locale, Must(Literal("a"))),
		mustNew(t, 0, Must(FlagGroup(InlineFlags{On: ASCII}, Must(Literal("a"))))),
	} {
		_, err := re.Compile()
		require.ErrorIs(t, err, syntax.ErrUnsupportedSyntax, re.String())
		require.Panics(t, func() { re.MustCompile() })
	}
}

func TestCompileIsCached(t *testing.T) {
	a := mustNew(t, 0, Must(Literal("cached")))
	b := mustNew(t, 0, Must(Literal("cached")))
	ea, err := a.Compile()
	require.NoError(t, err)
	eb, err := b.Compile()
	require.NoError(t, err)
	require.Same(t, ea, eb)

	c := mustNew(t, 0, Must(Literal("cache")))
	require.NotSame(t, ea, c.MustCompile())
}

func TestCompileCacheIsBounded(t *testing.T) {
	first := mustNew(t, 0, Must(Literal("evicted")))
	ef := first.MustCompile()
	for i := 0; i < maxEngines; i++ {
		mustNew(t, 0, Must(Literal(fmt.Sprintf("filler%d", i)))).MustCompile()
	}
	require.LessOrEqual(t, engines.Len(), maxEngines)

	// the oldest engine was dropped, so compiling again builds a new one
	require.NotSame(t, ef, first.MustCompile())
}
