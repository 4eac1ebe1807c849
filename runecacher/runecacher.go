package runecacher

import (
	"unicode/utf8"
)

const cachePrimeSize = 16

// RuneCacher decodes a subject string into runes on demand and keeps the
// decoded prefix around so that a backtracking runner can revisit offsets
// cheaply. Offsets are rune offsets.
type RuneCacher struct {
	runes  []rune
	inpStr string

	// byte offset of the first undecoded rune in inpStr
	inpUncachedPos int

	// number of runes in the whole input
	runesLen int
}

func NewFromRunes(runes []rune) *RuneCacher {
	return &RuneCacher{
		runes:    runes,
		runesLen: len(runes),
	}
}

func NewFromString(str string) *RuneCacher {
	r := &RuneCacher{
		runes:    make([]rune, 0, min(len(str), cachePrimeSize)),
		inpStr:   str,
		runesLen: utf8.RuneCountInString(str),
	}
	// prime cache with some runes
	r.cachedNext(cachePrimeSize)
	return r
}

// Len is the number of runes in the input.
func (r *RuneCacher) Len() int {
	return r.runesLen
}

func (r *RuneCacher) String() string {
	if r.inpStr != "" {
		return r.inpStr
	}

	return string(r.runes)
}

// TryRuneAt returns the rune at textPos, or false when textPos is outside the input.
func (r *RuneCacher) TryRuneAt(textPos int) (rune, bool) {
	if textPos < 0 || textPos >= r.runesLen {
		return 0, false
	}
	return r.RuneAt(textPos), true
}

// RuneAt returns the rune at textPos. textPos must be inside the input.
func (r *RuneCacher) RuneAt(textPos int) rune {
	if textPos < len(r.runes) {
		return r.runes[textPos]
	}
	// not in our cache - populate cache
	r.cachedNext(textPos - len(r.runes) + 1)

	return r.runes[textPos]
}

// RunesFrom returns all remaining runes from the input starting at a specific rune index
func (r *RuneCacher) RunesFrom(textPos int) []rune {
	r.fill()
	return r.runes[textPos:]
}

// Runes returns the whole decoded input.
func (r *RuneCacher) Runes() []rune {
	r.fill()
	return r.runes
}

func (r *RuneCacher) fill() {
	if r.hasUncached() {
		r.cachedNext(r.runesLen - len(r.runes))
	}
}

func (r *RuneCacher) hasUncached() bool {
	return len(r.runes) < r.runesLen
}

func (r *RuneCacher) cachedNext(count int) {
	// stop once everything is cached or count runes were decoded
	for r.hasUncached() && count > 0 {
		newRune, newLen := utf8.DecodeRuneInString(r.inpStr[r.inpUncachedPos:])
		r.runes = append(r.runes, newRune)
		r.inpUncachedPos += newLen
		count--
	}
}
