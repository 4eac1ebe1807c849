package lazyre

import "errors"

var errCount = errors.New("count must be -1 or more")

// Split slices input around the matches of re and returns the text
// between them. count caps the number of pieces, the last piece holding
// the rest of the input unsplit: 0 returns nil, -1 means no cap. Since
// matches are never empty, every split point removes at least one rune.
//
// For example, the pattern "-" splits "a-b-c" into ["a", "b", "c"], or
// into ["a", "b-c"] with a count of 2.
func (re *Regexp) Split(input string, count int) ([]string, error) {
	if count < -1 {
		return nil, errCount
	}
	if count == 0 {
		return nil, nil
	}

	var (
		pieces []string
		text   []rune // decoded input, set by the first match
		from   int    // rune offset the next piece starts at
	)
	err := re.eachMatch(input, -1, func(m *Match) bool {
		if len(pieces) == count-1 {
			return false
		}
		text = m.text
		pieces = append(pieces, string(text[from:m.Index]))
		from = m.Index + m.Length
		return true
	})
	if err != nil {
		return nil, err
	}

	if text == nil {
		return []string{input}, nil
	}
	return append(pieces, string(text[from:])), nil
}
