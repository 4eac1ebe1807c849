package syntax

import (
	"fmt"

	"go.uber.org/zap"
)

// Stats counts the rewrites an Optimizer made.
type Stats struct {
	Folds      int // S+?T folds
	Reductions int // ReduceTrailingLazy calls that changed the tree
	Passes     int // rounds of both passes
}

// Optimizer applies the peephole passes to a tree until neither of them
// changes it any more.
type Optimizer struct {
	Logger *zap.Logger

	// MaxPasses bounds the number of rounds. Zero means one more than the
	// number of nodes in the tree, which every terminating run fits in.
	MaxPasses int
}

func NewOptimizer(logger *zap.Logger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{Logger: logger}
}

// Optimize rewrites tree in place. A corrupted tree is reported as an
// *InvariantViolation error; the tree may be partially rewritten then.
func (o *Optimizer) Optimize(tree *RegexTree) (stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			iv, ok := r.(*InvariantViolation)
			if !ok {
				panic(r)
			}
			o.logger().Error("Corrupted regex tree",
				zap.String("pattern", tree.Pattern), zap.Error(iv))
			err = iv
		}
	}()

	limit := o.MaxPasses
	if limit <= 0 {
		limit = tree.Root.CountNodes() + 1
	}

	for {
		if stats.Passes >= limit {
			return stats, fmt.Errorf("syntax: optimizer did not settle after %d passes", stats.Passes)
		}
		stats.Passes++

		changed := false
		for FoldLazyPlusBeforeNullable(tree.Root) {
			stats.Folds++
			changed = true
			o.logger().Debug("Folded lazy plus before nullable tail",
				zap.String("pattern", tree.Pattern), zap.Stringer("tree", tree.Root))
		}
		for {
			reduced, path := reduceTrailingLazyPath(tree.Root)
			if !reduced {
				break
			}
			stats.Reductions++
			changed = true
			o.logger().Debug("Reduced trailing lazy quantifier",
				zap.String("pattern", tree.Pattern),
				zap.Stringer("path", path),
				zap.Stringer("tree", tree.Root))
		}

		if !changed {
			break
		}
	}

	o.logger().Debug("Optimized regex tree",
		zap.String("pattern", tree.Pattern),
		zap.Stringer("result", tree.Root),
		zap.Int("folds", stats.Folds),
		zap.Int("reductions", stats.Reductions),
		zap.Int("passes", stats.Passes))

	return stats, nil
}

func (o *Optimizer) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
