package syntax

import (
	"slices"
	"strings"
)

// branch is the chain of ancestors of the node a pass is looking at,
// outermost first. The tree has no parent pointers; a rewrite that must
// repoint an ancestor's link finds that ancestor here.
type branch []*RegexNode

func (b *branch) push(n *RegexNode) {
	*b = append(*b, n)
}

func (b *branch) pop() *RegexNode {
	n := (*b)[len(*b)-1]
	*b = (*b)[:len(*b)-1]
	return n
}

func (b branch) top() *RegexNode {
	return b[len(b)-1]
}

func (b branch) clone() branch {
	return slices.Clone(b)
}

// reaches reports whether every node in b still links to the next one
// and the last one links to n.
func (b branch) reaches(n *RegexNode) bool {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] == n {
			continue
		}
		if !b[i].linksTo(n) {
			return false
		}
		n = b[i]
	}
	return true
}

// String renders the branch outermost first without changing it.
func (b branch) String() string {
	buf := &strings.Builder{}
	for _, n := range b {
		buf.WriteString(n.Description())
		buf.WriteRune('\n')
	}
	return buf.String()
}

// ReduceTrailingLazy removes lazy quantifiers in trailing position, where
// nothing after them can observe how many repetitions they took:
//
//	S+?  in trailing position always stops after one S   -> S
//	S*?  and S?? always stop after zero repetitions      -> removed
//
// Removing a node from an alternation leaves X|ε for a right arm, which
// becomes X? (or X at the top of the pattern), and an empty left arm
// that hides the right one, so the whole alternation goes.
//
// Trailing position is found by walking from the root into quantified
// operands, the right side of concatenations and both arms of
// alternations. Each rewrite continues the walk from the node that took
// the removed node's place, so one call cleans a whole spine; callers
// still call it until it returns false.
func ReduceTrailingLazy(root *RegexNode) bool {
	reduced, _ := reduceTrailingLazyPath(root)
	return reduced
}

// reduceTrailingLazyPath is ReduceTrailingLazy that also returns the first
// node it rewrote, with its ancestors as they were before the rewrite.
func reduceTrailingLazyPath(root *RegexNode) (bool, branch) {
	if root.T != NtRoot {
		panic(invariantViolation("ReduceTrailingLazy", root))
	}
	r := &reducer{}
	var path branch
	reduced := r.reduce(root, &path)
	return reduced, r.first
}

type reducer struct {
	first branch
}

// rewriting records the path to n if nothing has been rewritten yet.
func (r *reducer) rewriting(n *RegexNode, path branch) {
	if r.first == nil {
		r.first = append(path.clone(), n)
	}
}

func (r *reducer) reduce(n *RegexNode, path *branch) bool {
	switch n.T {
	case NtRoot:
		if n.Left == nil {
			return false
		}
		path.push(n)
		return r.reduce(n.Left, path)

	case NtPlus, NtStar, NtQuestion:
		path.push(n)
		return r.reduce(n.Left, path)

	case NtConcatenate:
		path.push(n)
		return r.reduce(n.Right, path)

	case NtAlternate:
		path.push(n)
		orig := path.clone()

		reduced := r.reduce(n.Left, path)

		// An excised left arm takes the whole alternation with it, and
		// the walk has already resumed above it.
		if !orig.reaches(n) {
			return reduced
		}
		return r.reduce(n.Right, &orig) || reduced

	case NtPlusLazy:
		r.rewriting(n, *path)
		path.top().replaceChild(n, n.Left)
		r.reduce(n.Left, path)
		return true

	case NtStarLazy, NtQuestionLazy:
		r.rewriting(n, *path)
		excise(n, path)
		r.reduce(path.pop(), path)
		return true

	case NtDot, NtSet, NtOne:
		// branch finished
		return false

	default:
		panic(invariantViolation("ReduceTrailingLazy", n))
	}
}

// excise removes the subtree n, whose first derivation is always empty,
// from trailing position. path holds n's ancestors; on return its top is
// the node whose link was rewritten, which is where a walk should resume.
// An alternation never simply hands its place to the other arm: x?(a|b*?)
// would then become x?a, which no longer matches "xb" where it did.
func excise(n *RegexNode, path *branch) {
	p := path.top()

	switch p.T {
	case NtRoot:
		// the whole pattern has been removed
		p.Left = nil

	case NtConcatenate:
		// the left operand takes the parent's place
		path.pop()
		path.top().replaceChild(p, p.Left)

	case NtAlternate:
		path.pop()
		if p.Left == n {
			// the empty left arm always wins, the right arm is never tried
			excise(p, path)
			return
		}
		// X|ε is X?, and only X where failing is as good as matching empty
		repl := p.Left
		if !path.unguarded(p) {
			repl = Question(repl)
		}
		path.top().replaceChild(p, repl)

	case NtPlus, NtStar, NtQuestion, NtPlusLazy, NtStarLazy, NtQuestionLazy:
		// a quantifier of nothing is nothing too
		path.pop()
		excise(p, path)

	default:
		panic(invariantViolation("excise", p))
	}
}

// unguarded reports whether a failure at n ends the attempt exactly where
// an empty match of n would: no ancestor holds a pending choice that a
// failure could fall back to. Greedy quantifiers qualify because their
// pending choice is to stop at the offset where n started, and
// alternations qualify when n is in their right arm.
func (b branch) unguarded(n *RegexNode) bool {
	for i := len(b) - 1; i >= 0; i-- {
		switch b[i].T {
		case NtRoot, NtPlus, NtStar, NtQuestion:
		case NtAlternate:
			if b[i].Right != n {
				return false
			}
		default:
			return false
		}
		n = b[i]
	}
	return true
}

// FoldLazyPlusBeforeNullable looks down the rightmost spine for S+?T
// where T can match empty. Once S has matched, T can always finish the
// match, so the lazy loop never takes a second S and S+? becomes S.
// At most one fold is done per call.
func FoldLazyPlusBeforeNullable(root *RegexNode) bool {
	for n := root; n != nil; {
		switch n.T {
		case NtRoot, NtPlus, NtStar, NtQuestion, NtAlternate,
			NtPlusLazy, NtStarLazy, NtQuestionLazy:
			// these are not the nodes we're looking for

		case NtConcatenate:
			if n.Left.T == NtPlusLazy && IsNullable(n.Right) {
				n.Left = n.Left.Left
				return true
			}

		case NtDot, NtSet, NtOne:
			// branch finished

		default:
			panic(invariantViolation("FoldLazyPlusBeforeNullable", n))
		}

		if n.Right != nil {
			n = n.Right
		} else {
			n = n.Left
		}
	}

	return false
}
