package reggie

import (
	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru"

	"github.com/reggie-regex/reggie/syntax"
)

// maxEngines bounds the number of compiled engines kept for reuse; the
// least recently compiled one is dropped first.
const maxEngines = 256

// compiled engines, keyed by their RegexpTwo rendering
var engines = mustLRU(maxEngines)

func mustLRU(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// Compile renders the pattern for github.com/dlclark/regexp2 and compiles
// it. Patterns using constructs regexp2 cannot express (possessive
// quantifiers, the a and L flags) fail with syntax.ErrUnsupportedSyntax.
//
// The most recently used engines are cached and shared between callers
// compiling the same pattern, so the returned Regexp must not be modified.
func (re *Regex) Compile() (*regexp2.Regexp, error) {
	expr, err := re.Render(syntax.RegexpTwo)
	if err != nil {
		return nil, err
	}

	if e, ok := engines.Get(expr); ok {
		return e.(*regexp2.Regexp), nil
	}
	e, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	// a racing caller may have stored an equivalent engine; keep the first
	if prev, ok, _ := engines.PeekOrAdd(expr, e); ok {
		return prev.(*regexp2.Regexp), nil
	}
	return e, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func (re *Regex) MustCompile() *regexp2.Regexp {
	e, err := re.Compile()
	if err != nil {
		panic(`reggie: Compile(` + quote(re.String()) + `): ` + err.Error())
	}
	return e
}
