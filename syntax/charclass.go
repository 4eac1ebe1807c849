package syntax

import (
	"bytes"
	"fmt"
	"slices"
	"unicode"

	"github.com/lazyre/lazyre/helpers"
)

// CharSet combines a sorted list of non-overlapping rune ranges with a
// negation flag.
type CharSet struct {
	ranges []singleRange
	negate bool
}

type singleRange struct {
	first rune
	last  rune
}

var (
	digitRanges = []singleRange{{'0', '9'}}
	wordRanges  = []singleRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
	spaceRanges = []singleRange{{'\t', '\r'}, {' ', ' '}}
)

// NewCharSet builds a set from inclusive first/last pairs.
func NewCharSet(negate bool, pairs ...rune) *CharSet {
	c := &CharSet{negate: negate}
	for i := 0; i+1 < len(pairs); i += 2 {
		c.addRange(pairs[i], pairs[i+1])
	}
	return c
}

// Copy makes a deep copy to prevent accidental mutation of a set
func (c CharSet) Copy() CharSet {
	return CharSet{
		ranges: slices.Clone(c.ranges),
		negate: c.negate,
	}
}

func (c *CharSet) addChar(ch rune) {
	c.addRange(ch, ch)
}

func (c *CharSet) addRange(chMin, chMax rune) {
	if chMin > chMax {
		chMin, chMax = chMax, chMin
	}
	c.ranges = append(c.ranges, singleRange{first: chMin, last: chMax})
	c.canonicalize()
}

func (c *CharSet) addRanges(ranges []singleRange) {
	c.ranges = append(c.ranges, ranges...)
	c.canonicalize()
}

// addNegatedRanges adds the complement of ranges, which must be sorted.
func (c *CharSet) addNegatedRanges(ranges []singleRange) {
	var first rune
	for _, r := range ranges {
		if r.first > first {
			c.ranges = append(c.ranges, singleRange{first, r.first - 1})
		}
		first = r.last + 1
	}
	if first <= unicode.MaxRune {
		c.ranges = append(c.ranges, singleRange{first, unicode.MaxRune})
	}
	c.canonicalize()
}

func (c *CharSet) addDigit(negate bool) {
	if negate {
		c.addNegatedRanges(digitRanges)
	} else {
		c.addRanges(digitRanges)
	}
}

func (c *CharSet) addWord(negate bool) {
	if negate {
		c.addNegatedRanges(wordRanges)
	} else {
		c.addRanges(wordRanges)
	}
}

func (c *CharSet) addSpace(negate bool) {
	if negate {
		c.addNegatedRanges(spaceRanges)
	} else {
		c.addRanges(spaceRanges)
	}
}

// canonicalize sorts the ranges and merges the ones that overlap or touch.
func (c *CharSet) canonicalize() {
	if len(c.ranges) < 2 {
		return
	}
	slices.SortFunc(c.ranges, func(a, b singleRange) int {
		return int(a.first) - int(b.first)
	})

	j := 0
	for i := 1; i < len(c.ranges); i++ {
		cur := c.ranges[i]
		if cur.first <= c.ranges[j].last+1 {
			if cur.last > c.ranges[j].last {
				c.ranges[j].last = cur.last
			}
			continue
		}
		j++
		c.ranges[j] = cur
	}
	c.ranges = c.ranges[:j+1]
}

// CharIn reports whether ch is a member of the set.
func (c *CharSet) CharIn(ch rune) bool {
	i, found := slices.BinarySearchFunc(c.ranges, ch, func(r singleRange, ch rune) int {
		return int(r.first) - int(ch)
	})
	in := found
	if !found && i > 0 {
		in = helpers.IsBetween(ch, c.ranges[i-1].first, c.ranges[i-1].last)
	}
	return in != c.negate
}

func (c *CharSet) IsNegated() bool {
	return c.negate
}

func (c *CharSet) IsEmpty() bool {
	return len(c.ranges) == 0 && !c.negate
}

// IsSingleton reports whether the set matches exactly one rune.
func (c *CharSet) IsSingleton() bool {
	return !c.negate && len(c.ranges) == 1 && c.ranges[0].first == c.ranges[0].last
}

func (c *CharSet) SingletonChar() rune {
	return c.ranges[0].first
}

func (c *CharSet) Equals(s *CharSet) bool {
	return c.negate == s.negate && slices.Equal(c.ranges, s.ranges)
}

// String renders the set in bracket syntax that Parse reads back.
func (c *CharSet) String() string {
	buf := &bytes.Buffer{}
	buf.WriteRune('[')
	if c.negate {
		buf.WriteRune('^')
	}
	for _, r := range c.ranges {
		buf.WriteString(setCharDescription(r.first))
		if r.last != r.first {
			if r.last > r.first+1 {
				buf.WriteRune('-')
			}
			buf.WriteString(setCharDescription(r.last))
		}
	}
	buf.WriteRune(']')
	return buf.String()
}

func setCharDescription(ch rune) string {
	switch ch {
	case '\\', ']', '[', '^', '-':
		return `\` + string(ch)
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if ch < ' ' || ch > unicode.MaxASCII && !unicode.IsPrint(ch) {
		return fmt.Sprintf(`\x{%X}`, ch)
	}
	return string(ch)
}

// Produces a human-readable description for a single character.
func CharDescription(ch rune) string {
	if ch == '\\' {
		return "\\\\"
	}

	if ch >= ' ' && ch <= '~' {
		return string(ch)
	}

	return fmt.Sprintf("%U", ch)
}
