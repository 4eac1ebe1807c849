package lazyre

// Match is a single successful match of a Regexp against an input.
type Match struct {
	Index  int // rune offset of the match
	Length int // length in runes

	// Thread is the runner state that reported the match.
	Thread Thread

	text    []rune
	textpos int // where FindNextMatch resumes
}

// String returns the matched text.
func (m *Match) String() string {
	return string(m.Runes())
}

// Runes returns the matched text.
func (m *Match) Runes() []rune {
	return m.text[m.Index : m.Index+m.Length]
}
