package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTreeShape(t *testing.T) {
	scenarios := []struct {
		p    string
		want *RegexNode
	}{
		{``, NewRoot(nil)},
		{`a`, NewRoot(One('a'))},
		{`abc`, NewRoot(Concat(One('a'), Concat(One('b'), One('c'))))},
		{`a|b|c`, NewRoot(Alternate(One('a'), Alternate(One('b'), One('c'))))},
		{`a+?`, NewRoot(PlusLazy(One('a')))},
		{`a*?`, NewRoot(StarLazy(One('a')))},
		{`a??`, NewRoot(QuestionLazy(One('a')))},
		{`(a+?)(b*)`, NewRoot(Concat(PlusLazy(One('a')), Star(One('b'))))},
		{`a|b*?`, NewRoot(Alternate(One('a'), StarLazy(One('b'))))},
		{`a**`, NewRoot(Star(Star(One('a'))))},
		{`a+*?`, NewRoot(StarLazy(Plus(One('a'))))},
		{`(ab)?c`, NewRoot(Concat(Question(Concat(One('a'), One('b'))), One('c')))},
		{`.\.`, NewRoot(Concat(Dot(), One('.')))},
		{`\n\t\x{41}\x{1F600}`, NewRoot(Concat(One('\n'), Concat(One('\t'), Concat(One('A'), One(0x1F600)))))},
		{`\d`, NewRoot(Set(NewCharSet(false, '0', '9')))},
		{`[a-c]`, NewRoot(Set(NewCharSet(false, 'a', 'c')))},
		{`[^a]`, NewRoot(Set(NewCharSet(true, 'a', 'a')))},
		{`[a\-z]`, NewRoot(Set(NewCharSet(false, '-', '-', 'a', 'a', 'z', 'z')))},
		{`[a-]`, NewRoot(Set(NewCharSet(false, '-', '-', 'a', 'a')))},
		{`[]a]`, NewRoot(Set(NewCharSet(false, ']', ']', 'a', 'a')))},
		{`[\d_]`, NewRoot(Set(NewCharSet(false, '0', '9', '_', '_')))},
		{`é+`, NewRoot(Plus(One('é')))},
	}

	for _, s := range scenarios {
		t.Run(s.p, func(t *testing.T) {
			tree, err := Parse(s.p)
			require.NoError(t, err)
			require.Equal(t, s.p, tree.Pattern)
			requireTree(t, s.want, tree.Root)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	patterns := []string{
		`a`, `abc`, `a|b|c`, `(a|b)c`, `(a|b)|c`, `a+?b*`, `a|b*?`,
		`(a+)?`, `(ab)+?`, `[a-c]`, `[^a]`, `\.\*\[`, `a.b`, `x?(a|b*?)`,
		`\d\w+\s*?`,
	}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			tree := MustParse(p)
			again := MustParse(tree.Root.String())
			requireTree(t, tree.Root, again.Root)
		})
	}

	assert.Equal(t, "(a*)*", MustParse(`a**`).Root.String())
}

func TestParseErrors(t *testing.T) {
	scenarios := []struct {
		p     string
		cause error
	}{
		{`a|`, nil},
		{`|a`, nil},
		{`(a`, nil},
		{`a)`, nil},
		{`()`, nil},
		{`*a`, nil},
		{`[a`, nil},
		{`a\`, nil},
		{`[b-a]`, errBadRange},
		{`[a-\d]`, errClassEscape},
		{`[\d-z]`, errClassEscape},
		{`\x{110000}`, errBadHexRune},
		{`[\x{110000}]`, errBadHexRune},
	}

	for _, s := range scenarios {
		t.Run(s.p, func(t *testing.T) {
			tree, err := Parse(s.p)
			require.Error(t, err)
			require.Nil(t, tree)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			require.Equal(t, s.p, perr.Expr)
			if s.cause != nil {
				require.ErrorIs(t, err, s.cause)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	require.Panics(t, func() { MustParse(`(`) })
}
