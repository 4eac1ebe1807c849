package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Error is returned for patterns that cannot be parsed.
type Error struct {
	Expr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("error parsing regexp: %v in `%v`", e.Err, e.Expr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	errEmptyClass  = errors.New("empty character class")
	errBadRange    = errors.New("character range is out of order")
	errBadHexRune  = errors.New("invalid \\x{...} escape")
	errClassEscape = errors.New("cannot create range with shorthand escape sequence")
)

// Tokens are single pattern characters, except that a bracketed class,
// an escape and a lazy quantifier are one token each.
var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Class", Pattern: `\[\^?\]?(?:\\x\{[0-9A-Fa-f]+\}|\\.|[^\]\\])*\]`},
	{Name: "Escaped", Pattern: `\\x\{[0-9A-Fa-f]+\}|\\.`},
	{Name: "Lazy", Pattern: `[*+?]\?`},
	{Name: "Quant", Pattern: `[*+?]`},
	{Name: "Meta", Pattern: `[().|]`},
	{Name: "Char", Pattern: `[^\\\[]`},
})

type alternation struct {
	Branches []*concatenation `parser:"@@ ( '|' @@ )*"`
}

type concatenation struct {
	Items []*repetition `parser:"@@+"`
}

type repetition struct {
	Atom *atom    `parser:"@@"`
	Ops  []string `parser:"@( Lazy | Quant )*"`
}

type atom struct {
	Group   *alternation `parser:"  '(' @@ ')'"`
	Dot     bool         `parser:"| @'.'"`
	Class   *string      `parser:"| @Class"`
	Escaped *string      `parser:"| @Escaped"`
	Char    *string      `parser:"| @Char"`
}

var patternParser = participle.MustBuild[alternation](
	participle.Lexer(patternLexer),
	participle.UseLookahead(2),
)

// Parse turns a pattern into a tree. Concatenations and alternations nest
// to the right, so the last item of a sequence is always reached by
// following Right links. The empty pattern yields a root with no body.
func Parse(pattern string) (*RegexTree, error) {
	tree := &RegexTree{Root: NewRoot(nil), Pattern: pattern}
	if pattern == "" {
		return tree, nil
	}

	ast, err := patternParser.ParseString("", pattern)
	if err != nil {
		return nil, &Error{Expr: pattern, Err: err}
	}

	body, err := ast.node()
	if err != nil {
		return nil, &Error{Expr: pattern, Err: err}
	}
	tree.Root.Left = body
	return tree, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
func MustParse(pattern string) *RegexTree {
	tree, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return tree
}

func (a *alternation) node() (*RegexNode, error) {
	var n *RegexNode
	for i := len(a.Branches) - 1; i >= 0; i-- {
		b, err := a.Branches[i].node()
		if err != nil {
			return nil, err
		}
		if n == nil {
			n = b
		} else {
			n = Alternate(b, n)
		}
	}
	return n, nil
}

func (c *concatenation) node() (*RegexNode, error) {
	var n *RegexNode
	for i := len(c.Items) - 1; i >= 0; i-- {
		item, err := c.Items[i].node()
		if err != nil {
			return nil, err
		}
		if n == nil {
			n = item
		} else {
			n = Concat(item, n)
		}
	}
	return n, nil
}

var quantifiers = map[string]func(*RegexNode) *RegexNode{
	"+":  Plus,
	"*":  Star,
	"?":  Question,
	"+?": PlusLazy,
	"*?": StarLazy,
	"??": QuestionLazy,
}

func (r *repetition) node() (*RegexNode, error) {
	n, err := r.Atom.node()
	if err != nil {
		return nil, err
	}
	for _, op := range r.Ops {
		n = quantifiers[op](n)
	}
	return n, nil
}

func (a *atom) node() (*RegexNode, error) {
	switch {
	case a.Group != nil:
		return a.Group.node()
	case a.Dot:
		return Dot(), nil
	case a.Class != nil:
		set, err := parseClass(*a.Class)
		if err != nil {
			return nil, err
		}
		return Set(set), nil
	case a.Escaped != nil:
		return parseEscape(*a.Escaped)
	default:
		ch, _ := utf8.DecodeRuneInString(*a.Char)
		return One(ch), nil
	}
}

// parseEscape handles a \-escape outside a class.
func parseEscape(esc string) (*RegexNode, error) {
	set := &CharSet{}
	if addShorthand(set, esc) {
		return Set(set), nil
	}
	ch, err := escapedRune(esc)
	if err != nil {
		return nil, err
	}
	return One(ch), nil
}

// addShorthand adds \d \w \s or their negations to set.
func addShorthand(set *CharSet, esc string) bool {
	switch esc {
	case `\d`:
		set.addDigit(false)
	case `\D`:
		set.addDigit(true)
	case `\w`:
		set.addWord(false)
	case `\W`:
		set.addWord(true)
	case `\s`:
		set.addSpace(false)
	case `\S`:
		set.addSpace(true)
	default:
		return false
	}
	return true
}

func escapedRune(esc string) (rune, error) {
	body := esc[1:]
	switch body {
	case "n":
		return '\n', nil
	case "t":
		return '\t', nil
	case "r":
		return '\r', nil
	}
	if len(body) > 3 && body[0] == 'x' && body[1] == '{' {
		v, err := strconv.ParseUint(body[2:len(body)-1], 16, 32)
		if err != nil || v > unicode.MaxRune {
			return 0, errBadHexRune
		}
		return rune(v), nil
	}
	ch, _ := utf8.DecodeRuneInString(body)
	return ch, nil
}

// parseClass reads a whole [...] token.
func parseClass(class string) (*CharSet, error) {
	set := &CharSet{}
	body := class[1 : len(class)-1]
	if len(body) > 0 && body[0] == '^' {
		set.negate = true
		body = body[1:]
	}
	if body == "" {
		return nil, errEmptyClass
	}

	items := splitClassItems(body)
	for i := 0; i < len(items); i++ {
		item := items[i]
		if addShorthand(set, item) {
			if i+2 < len(items) && items[i+1] == "-" {
				return nil, fmt.Errorf("%w %s", errClassEscape, item)
			}
			continue
		}
		first, err := classRune(item)
		if err != nil {
			return nil, err
		}

		// a '-' that is neither first nor last makes a range
		if i+2 < len(items) && items[i+1] == "-" {
			if addShorthand(&CharSet{}, items[i+2]) {
				return nil, fmt.Errorf("%w %s", errClassEscape, items[i+2])
			}
			last, err := classRune(items[i+2])
			if err != nil {
				return nil, err
			}
			if last < first {
				return nil, errBadRange
			}
			set.addRange(first, last)
			i += 2
			continue
		}
		set.addChar(first)
	}
	return set, nil
}

// splitClassItems splits a class body into single characters and escapes.
func splitClassItems(body string) []string {
	var items []string
	for i := 0; i < len(body); {
		if body[i] == '\\' && i+1 < len(body) {
			end := i + 2
			if body[i+1] == 'x' && end < len(body) && body[end] == '{' {
				for end < len(body) && body[end] != '}' {
					end++
				}
				end++
			} else {
				_, w := utf8.DecodeRuneInString(body[i+1:])
				end = i + 1 + w
			}
			items = append(items, body[i:end])
			i = end
			continue
		}
		_, w := utf8.DecodeRuneInString(body[i:])
		items = append(items, body[i:i+w])
		i += w
	}
	return items
}

func classRune(item string) (rune, error) {
	if item[0] == '\\' && len(item) > 1 {
		return escapedRune(item)
	}
	ch, _ := utf8.DecodeRuneInString(item)
	return ch, nil
}
