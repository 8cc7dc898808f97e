package syntax

import (
	"strconv"
	"strings"
)

// ErrorCode names the invariant or grammar rule that an operation violated.
// An ErrorCode is itself an error so callers can test for a category with
// errors.Is(err, syntax.ErrDuplicateGroupName).
type ErrorCode string

const (
	// tree invariants
	ErrDuplicateGroupName      ErrorCode = "redefinition of group name"
	ErrInvalidQuantifierTarget ErrorCode = "nothing to repeat"
	ErrDanglingBackreference   ErrorCode = "invalid group reference"
	ErrInvalidSubrange         ErrorCode = "bad character range"
	ErrInvalidGroupName        ErrorCode = "bad character in group name"
	ErrInvalidRepeat           ErrorCode = "invalid repeat bounds"
	ErrInvalidFlag             ErrorCode = "bad inline flags"
	ErrIncompatibleFlags       ErrorCode = "incompatible flags"
	ErrEmptyLiteral            ErrorCode = "empty literal"
	ErrEmptyRange              ErrorCode = "empty character set"
	ErrEmptyAlternation        ErrorCode = "alternation needs at least one branch"
	ErrVariableLookbehind      ErrorCode = "look-behind requires fixed-width pattern"
	ErrInvalidComment          ErrorCode = "comment may not contain ')'"
	ErrInvalidBackreference    ErrorCode = "bad group number"

	// ownership and addressing
	ErrNodeAttached      ErrorCode = "node already has a parent"
	ErrForeignNode       ErrorCode = "node does not belong to this pattern"
	ErrInvalidChildIndex ErrorCode = "child index out of range"
	ErrNotContainer      ErrorCode = "node cannot hold children"
	ErrWrongNodeType     ErrorCode = "operation not valid for this node type"

	// parsing
	ErrUnterminatedRange ErrorCode = "unterminated character set"
	ErrUnsupportedSyntax ErrorCode = "unsupported syntax"
	ErrInvalidEscape     ErrorCode = "bad escape"
	ErrTrailingBackslash ErrorCode = "bad escape (end of pattern)"
)

func (e ErrorCode) String() string {
	return string(e)
}

func (e ErrorCode) Error() string {
	return string(e)
}

// Error describes a failed operation: which rule was violated (Code), where
// (Pos into Expr for parse errors, Node for tree operations) and which
// attribute or construct triggered it (Detail).
type Error struct {
	Code   ErrorCode
	Expr   string     // pattern text, or the rendering of Node
	Pos    int        // rune offset into Expr for parse errors, -1 otherwise
	Node   *RegexNode // offending node, if any
	Detail string
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	if e.Pos >= 0 {
		b.WriteString("error parsing regexp: ")
	} else {
		b.WriteString("regexp: ")
	}
	b.WriteString(e.Code.String())
	if e.Detail != "" {
		b.WriteString(" ")
		b.WriteString(e.Detail)
	}
	if e.Pos >= 0 {
		b.WriteString(" at position ")
		b.WriteString(strconv.Itoa(e.Pos))
	}
	if e.Expr != "" {
		b.WriteString(" in `")
		b.WriteString(e.Expr)
		b.WriteString("`")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Code
}

func newError(code ErrorCode, n *RegexNode, detail string) *Error {
	e := &Error{Code: code, Pos: -1, Node: n, Detail: detail}
	if n != nil {
		e.Expr = n.String()
	}
	return e
}

func newParseError(code ErrorCode, expr string, pos int, detail string) *Error {
	return &Error{Code: code, Expr: expr, Pos: pos, Detail: detail}
}

// NewError returns an error for a violation found in node n, or in no
// particular node when n is nil.
func NewError(code ErrorCode, n *RegexNode, detail string) *Error {
	return newError(code, n, detail)
}
