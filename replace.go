package lazyre

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// a rule below zero stands for part of the match rather than a literal
const replaceWholeMatch = -1

type replacer struct {
	strings []string
	rules   []int
}

// parseReplacement splits a replacement pattern into literal runs and
// references. $0 is the whole match and $$ is a literal $; any other $ is
// kept as written.
func parseReplacement(rep string) *replacer {
	r := &replacer{}
	lit := &strings.Builder{}

	flush := func() {
		if lit.Len() > 0 {
			r.rules = append(r.rules, len(r.strings))
			r.strings = append(r.strings, lit.String())
			lit.Reset()
		}
	}

	for i := 0; i < len(rep); i++ {
		if rep[i] != '$' || i+1 == len(rep) {
			lit.WriteByte(rep[i])
			continue
		}
		switch rep[i+1] {
		case '$':
			lit.WriteByte('$')
			i++
		case '0':
			flush()
			r.rules = append(r.rules, replaceWholeMatch)
			i++
		default:
			lit.WriteByte('$')
		}
	}
	flush()
	return r
}

// Replace replaces every match in input after rune offset startAt with
// replacement, at most count times. -1 means the beginning of the input
// for startAt and no limit for count.
func (re *Regexp) Replace(input, replacement string, startAt, count int) (string, error) {
	return replace(re, parseReplacement(replacement), input, startAt, count)
}

// replace writes input with every match from rune offset startat on
// swapped for the expansion of data, stopping after count matches unless
// count is -1. Input without matches comes back unchanged.
func replace(regex *Regexp, data *replacer, input string, startat, count int) (string, error) {
	if count < -1 {
		return "", errCount
	}
	if startat < -1 || startat > utf8.RuneCountInString(input) {
		return "", errStartAt
	}
	if count == 0 {
		return input, nil
	}

	buf := &bytes.Buffer{}
	var text []rune
	prevat := 0
	err := regex.eachMatch(input, startat, func(m *Match) bool {
		text = m.text
		buf.WriteString(string(text[prevat:m.Index]))
		data.replacementImpl(buf, m)
		prevat = m.Index + m.Length
		count--
		return count != 0
	})
	if err != nil {
		return "", err
	}

	if text == nil {
		return input, nil
	}
	buf.WriteString(string(text[prevat:]))
	return buf.String(), nil
}

// Given a Match, emits into the buffer the evaluated
// substitution pattern.
func (r *replacer) replacementImpl(buf *bytes.Buffer, m *Match) {
	for _, rule := range r.rules {
		if rule >= 0 {
			buf.WriteString(r.strings[rule])
		} else {
			buf.WriteString(string(m.Runes()))
		}
	}
}
