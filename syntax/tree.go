package syntax

import (
	"bytes"
	"fmt"
	"strings"
)

// RegexTree is the parsed form of a pattern.
type RegexTree struct {
	Root    *RegexNode
	Pattern string
	// Debug makes Write print the generated code to stdout
	Debug bool
}

// Implementation notes:
//
// The node tree is a temporary data structure only used between parsing
// and writing code. Nodes are strictly binary: concatenation and
// alternation hold exactly two children, quantifiers hold their operand
// in Left, leaves hold nothing. There are no parent pointers; passes
// that need to rewrite an ancestor carry the ancestors along in a
// branch (see optimizations.go).
//
// Every tree has exactly one NtRoot node at the top. A nil Root.Left
// means the pattern can only match the empty string.
type RegexNode struct {
	T     NodeType
	Left  *RegexNode
	Right *RegexNode
	Ch    rune
	Set   *CharSet
}

type NodeType int32

const (
	NtRoot NodeType = iota //          whole pattern

	// Interior nodes

	NtConcatenate  //          ab
	NtAlternate    //          a|b
	NtPlus         //          a+
	NtStar         //          a*
	NtQuestion     //          a?
	NtPlusLazy     //          a+?
	NtStarLazy     //          a*?
	NtQuestionLazy //          a??

	// Leaves

	NtDot //          .
	NtSet //          [a-z] \d \w \s
	NtOne //          a
)

func newRegexNode(t NodeType) *RegexNode {
	return &RegexNode{T: t}
}

func newRegexNodeCh(ch rune) *RegexNode {
	return &RegexNode{T: NtOne, Ch: ch}
}

func newRegexNodeSet(set *CharSet) *RegexNode {
	return &RegexNode{T: NtSet, Set: set}
}

func newRegexNodeBinary(t NodeType, left, right *RegexNode) *RegexNode {
	return &RegexNode{T: t, Left: left, Right: right}
}

func newRegexNodeUnary(t NodeType, operand *RegexNode) *RegexNode {
	return &RegexNode{T: t, Left: operand}
}

// NewRoot wraps body in a root node. A nil body is the empty pattern.
func NewRoot(body *RegexNode) *RegexNode { return newRegexNodeUnary(NtRoot, body) }

func Concat(left, right *RegexNode) *RegexNode {
	return newRegexNodeBinary(NtConcatenate, left, right)
}

func Alternate(left, right *RegexNode) *RegexNode {
	return newRegexNodeBinary(NtAlternate, left, right)
}

func Plus(n *RegexNode) *RegexNode         { return newRegexNodeUnary(NtPlus, n) }
func Star(n *RegexNode) *RegexNode         { return newRegexNodeUnary(NtStar, n) }
func Question(n *RegexNode) *RegexNode     { return newRegexNodeUnary(NtQuestion, n) }
func PlusLazy(n *RegexNode) *RegexNode     { return newRegexNodeUnary(NtPlusLazy, n) }
func StarLazy(n *RegexNode) *RegexNode     { return newRegexNodeUnary(NtStarLazy, n) }
func QuestionLazy(n *RegexNode) *RegexNode { return newRegexNodeUnary(NtQuestionLazy, n) }
func One(ch rune) *RegexNode               { return newRegexNodeCh(ch) }
func Dot() *RegexNode                      { return newRegexNode(NtDot) }
func Set(set *CharSet) *RegexNode          { return newRegexNodeSet(set) }

func (n *RegexNode) IsQuantifier() bool {
	return n.T >= NtPlus && n.T <= NtQuestionLazy
}

func (n *RegexNode) IsLazy() bool {
	return n.T >= NtPlusLazy && n.T <= NtQuestionLazy
}

// replaceChild repoints whichever link of n refers to old at repl.
func (n *RegexNode) replaceChild(old, repl *RegexNode) {
	if n.Left == old {
		n.Left = repl
	} else {
		n.Right = repl
	}
}

// linksTo reports whether one of n's links refers to child.
func (n *RegexNode) linksTo(child *RegexNode) bool {
	return n.Left == child || n.Right == child
}

// CountNodes returns the number of nodes in the subtree rooted at n.
func (n *RegexNode) CountNodes() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.CountNodes() + n.Right.CountNodes()
}

// Copy returns a deep copy of the subtree rooted at n.
func (n *RegexNode) Copy() *RegexNode {
	if n == nil {
		return nil
	}
	c := *n
	c.Left = n.Left.Copy()
	c.Right = n.Right.Copy()
	if n.Set != nil {
		s := n.Set.Copy()
		c.Set = &s
	}
	return &c
}

// String renders the subtree back into pattern syntax, adding only the
// parentheses needed to keep the tree shape.
func (n *RegexNode) String() string {
	buf := &strings.Builder{}
	n.writePattern(buf)
	return buf.String()
}

const (
	precAlternate = iota
	precConcatenate
	precRepeat
)

func (n *RegexNode) precedence() int {
	switch n.T {
	case NtAlternate:
		return precAlternate
	case NtConcatenate:
		return precConcatenate
	default:
		return precRepeat
	}
}

func (n *RegexNode) writeOperand(buf *strings.Builder, child *RegexNode, prec int) {
	if child.precedence() < prec {
		buf.WriteByte('(')
		child.writePattern(buf)
		buf.WriteByte(')')
		return
	}
	child.writePattern(buf)
}

func (n *RegexNode) writePattern(buf *strings.Builder) {
	if n == nil {
		return
	}
	switch n.T {
	case NtRoot:
		n.Left.writePattern(buf)
	case NtAlternate:
		n.writeOperand(buf, n.Left, precConcatenate)
		buf.WriteByte('|')
		n.writeOperand(buf, n.Right, precAlternate)
	case NtConcatenate:
		n.writeOperand(buf, n.Left, precRepeat)
		n.writeOperand(buf, n.Right, precConcatenate)
	case NtPlus, NtStar, NtQuestion, NtPlusLazy, NtStarLazy, NtQuestionLazy:
		// quantified quantifiers need grouping so a+? is not read back as lazy
		if n.Left.IsQuantifier() {
			buf.WriteByte('(')
			n.Left.writePattern(buf)
			buf.WriteByte(')')
		} else {
			n.writeOperand(buf, n.Left, precRepeat)
		}
		buf.WriteString(quantifierStr[n.T])
	case NtDot:
		buf.WriteByte('.')
	case NtSet:
		buf.WriteString(n.Set.String())
	case NtOne:
		buf.WriteString(escapeRune(n.Ch))
	default:
		fmt.Fprintf(buf, "<%d>", n.T)
	}
}

var quantifierStr = map[NodeType]string{
	NtPlus:         "+",
	NtStar:         "*",
	NtQuestion:     "?",
	NtPlusLazy:     "+?",
	NtStarLazy:     "*?",
	NtQuestionLazy: "??",
}

const metachars = `\.+*?()|[]^$`

func escapeRune(ch rune) string {
	switch ch {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if strings.ContainsRune(metachars, ch) {
		return `\` + string(ch)
	}
	return string(ch)
}

// debug functions

var typeStr = []string{
	"Root",
	"Concatenate", "Alternate",
	"Plus", "Star", "Question",
	"PlusLazy", "StarLazy", "QuestionLazy",
	"Dot", "Set", "One",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(typeStr) {
		return typeStr[t]
	}
	return fmt.Sprintf("Unknown(%d)", int32(t))
}

func (n *RegexNode) Description() string {
	buf := &bytes.Buffer{}

	buf.WriteString(n.T.String())

	switch n.T {
	case NtOne:
		buf.WriteString("(Ch = " + CharDescription(n.Ch) + ")")
	case NtSet:
		buf.WriteString("(Set = " + n.Set.String() + ")")
	case NtRoot:
		if n.Left == nil {
			buf.WriteString("(empty)")
		}
	}

	return buf.String()
}

var padSpace = []byte("                                ")

func (t *RegexTree) Dump() string {
	return t.Root.Dump()
}

// Dump renders n and its subtree one node per line, children indented
// under their parent, left before right.
func (n *RegexNode) Dump() string {
	buf := &bytes.Buffer{}
	n.dump(buf, 0)
	return buf.String()
}

func (n *RegexNode) dump(buf *bytes.Buffer, depth int) {
	if n == nil {
		return
	}
	pad := depth
	if pad > len(padSpace) {
		pad = len(padSpace)
	}
	buf.Write(padSpace[:pad])
	buf.WriteString(n.Description())
	buf.WriteRune('\n')

	n.Left.dump(buf, depth+1)
	n.Right.dump(buf, depth+1)
}

// PostOrder renders the subtree children first, one node per line.
func (n *RegexNode) PostOrder() string {
	buf := &bytes.Buffer{}
	var walk func(*RegexNode)
	walk = func(n *RegexNode) {
		if n == nil {
			return
		}
		walk(n.Left)
		walk(n.Right)
		buf.WriteString(n.Description())
		buf.WriteRune('\n')
	}
	walk(n)
	return buf.String()
}
