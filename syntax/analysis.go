package syntax

// IsNullable reports whether the language of n contains the empty string.
func IsNullable(n *RegexNode) bool {
	switch n.T {
	case NtRoot:
		// a root without a body is the empty pattern
		return n.Left == nil || IsNullable(n.Left)

	case NtPlus, NtPlusLazy:
		return IsNullable(n.Left)

	case NtStar, NtQuestion, NtStarLazy, NtQuestionLazy:
		return true

	case NtAlternate:
		return IsNullable(n.Left) || IsNullable(n.Right)

	case NtConcatenate:
		return IsNullable(n.Left) && IsNullable(n.Right)

	case NtDot, NtSet, NtOne:
		return false

	default:
		panic(invariantViolation("IsNullable", n))
	}
}

// PrefersEmpty reports whether the first derivation tried for n under
// leftmost-first order is the empty string. Greedy quantifiers try the
// most repetitions first, so they defer to their operand; lazy * and ?
// try zero repetitions first.
func PrefersEmpty(n *RegexNode) bool {
	switch n.T {
	case NtRoot:
		return n.Left == nil || PrefersEmpty(n.Left)

	case NtPlus, NtPlusLazy, NtStar, NtQuestion:
		return PrefersEmpty(n.Left)

	case NtStarLazy, NtQuestionLazy:
		return true

	case NtAlternate:
		return PrefersEmpty(n.Left) || PrefersEmpty(n.Right)

	case NtConcatenate:
		return PrefersEmpty(n.Left) && PrefersEmpty(n.Right)

	case NtDot, NtSet, NtOne:
		return false

	default:
		panic(invariantViolation("PrefersEmpty", n))
	}
}

// ComputeMinLength computes a lower bound on the length of any string n
// can match. If the result is 0, there is no minimum we can enforce.
func ComputeMinLength(n *RegexNode) int {
	switch n.T {
	case NtRoot:
		if n.Left == nil {
			return 0
		}
		return ComputeMinLength(n.Left)

	case NtDot, NtSet, NtOne:
		// single char
		return 1

	case NtPlus, NtPlusLazy:
		// at least one repetition
		return ComputeMinLength(n.Left)

	case NtStar, NtQuestion, NtStarLazy, NtQuestionLazy:
		return 0

	case NtAlternate:
		// the shorter branch
		return min(ComputeMinLength(n.Left), ComputeMinLength(n.Right))

	case NtConcatenate:
		return ComputeMinLength(n.Left) + ComputeMinLength(n.Right)

	default:
		panic(invariantViolation("ComputeMinLength", n))
	}
}
