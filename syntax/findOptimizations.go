package syntax

// FindOptimizations holds what the runner can use to skip start offsets
// that cannot begin a match.
type FindOptimizations struct {
	// no match is shorter than this
	MinRequiredLength int
	// every match starts with this string
	LeadingPrefix string
}

func newFindOptimizations(tree *RegexTree) *FindOptimizations {
	prefix, _ := findPrefix(tree.Root)
	return &FindOptimizations{
		MinRequiredLength: ComputeMinLength(tree.Root),
		LeadingPrefix:     string(prefix),
	}
}

// findPrefix returns the literal runes every match of n starts with and
// whether they are all of n.
func findPrefix(n *RegexNode) ([]rune, bool) {
	if n == nil {
		return nil, true
	}

	switch n.T {
	case NtRoot:
		return findPrefix(n.Left)

	case NtOne:
		return []rune{n.Ch}, true

	case NtSet:
		if n.Set.IsSingleton() {
			return []rune{n.Set.SingletonChar()}, true
		}
		return nil, false

	case NtConcatenate:
		prefix, complete := findPrefix(n.Left)
		if !complete {
			return prefix, false
		}
		rest, complete := findPrefix(n.Right)
		return append(prefix, rest...), complete

	case NtPlus, NtPlusLazy:
		// the first repetition is required
		prefix, _ := findPrefix(n.Left)
		return prefix, false

	default:
		return nil, false
	}
}
