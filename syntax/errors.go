package syntax

import "fmt"

// InvariantViolation is the panic value raised when a pass meets a node
// kind outside the closed NodeType set. It always means the tree was
// corrupted upstream; it is never caused by pattern text.
type InvariantViolation struct {
	Op string
	T  NodeType
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("syntax: invariant violation in %s: unexpected node type %d", e.Op, int32(e.T))
}

func invariantViolation(op string, n *RegexNode) *InvariantViolation {
	return &InvariantViolation{Op: op, T: n.T}
}
