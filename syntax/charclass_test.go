package syntax

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharSetStringRoundTrip(t *testing.T) {
	set := &CharSet{}
	set.addRange('a', 'z')
	set.addRange('A', 'Z')
	set.addChar(':')
	set.addDigit(false)

	require.Equal(t, "[0-:A-Za-z]", set.String())

	tree := MustParse(set.String())
	require.Equal(t, NtSet, tree.Root.Left.T)
	require.True(t, set.Equals(tree.Root.Left.Set))
}

func TestCanonicalize(t *testing.T) {
	set := &CharSet{}
	set.addRange('c', 'f')
	set.addRange('a', 'b')
	set.addRange('e', 'k')
	set.addChar('z')

	if want, got := "[a-kz]", set.String(); want != got {
		t.Fatalf("wanted: %s, got %s", want, got)
	}
}

func TestCharInNegatedShorthand(t *testing.T) {
	set := &CharSet{}
	set.addDigit(true)

	assert.False(t, set.CharIn('0'))
	assert.False(t, set.CharIn('9'))
	assert.True(t, set.CharIn('a'))
	assert.True(t, set.CharIn(0))
	assert.True(t, set.CharIn(unicode.MaxRune))
	assert.False(t, set.IsNegated())
}

func TestCharIn(t *testing.T) {
	scenarios := []struct {
		p   string
		in  string
		out string
	}{
		{`[a-c]`, "abc", "d`A"},
		{`[^a-c]`, "d`A\n", "abc"},
		{`\w`, "az09AZ_", " -\n"},
		{`\W`, " -\n", "az09AZ_"},
		{`\s`, " \t\n\r\f\v", "a_"},
		{`[\S]`, "a_", " \t"},
		{`[\x{1F600}-\x{1F64F}x]`, "😀x", "y"},
	}

	for _, s := range scenarios {
		t.Run(s.p, func(t *testing.T) {
			set := MustParse(s.p).Root.Left.Set
			for _, ch := range s.in {
				assert.True(t, set.CharIn(ch), "%q should be in %s", ch, set)
			}
			for _, ch := range s.out {
				assert.False(t, set.CharIn(ch), "%q should not be in %s", ch, set)
			}
		})
	}
}

func TestCharSetSingleton(t *testing.T) {
	set := NewCharSet(false, 'q', 'q')
	require.True(t, set.IsSingleton())
	require.Equal(t, 'q', set.SingletonChar())

	require.False(t, NewCharSet(true, 'q', 'q').IsSingleton())
	require.False(t, NewCharSet(false, 'a', 'b').IsSingleton())
	require.True(t, (&CharSet{}).IsEmpty())
}

func TestCharSetCopy(t *testing.T) {
	set := NewCharSet(false, 'a', 'c')
	c := set.Copy()
	c.addChar('x')

	require.Equal(t, "[a-c]", set.String())
	require.Equal(t, "[a-cx]", c.String())
}

func TestCharDescription(t *testing.T) {
	require.Equal(t, "a", CharDescription('a'))
	require.Equal(t, `\\`, CharDescription('\\'))
	require.Equal(t, "U+000A", CharDescription('\n'))
	require.Equal(t, `[\x{0}\n]`, NewCharSet(false, 0, 0, '\n', '\n').String())
}
