package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazyre/lazyre/syntax"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <pattern>...",
	Short: "Show what the optimizer does to each pattern",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return runOptimize(ctx, logger, cmd.OutOrStdout(), config, args)
	},
}

// runOptimize prints the before and after trees of every pattern. A pattern
// that fails is reported and the rest still run; the first error is
// returned.
func runOptimize(ctx context.Context, logger *zap.Logger, w io.Writer, config Config, patterns []string) error {
	var firstErr error
	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := optimizePattern(logger, w, config, pattern); err != nil {
			logger.Error("Failed to optimize pattern", zap.String("pattern", pattern), zap.Error(err))
			printError(w, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func optimizePattern(logger *zap.Logger, w io.Writer, config Config, pattern string) error {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return err
	}
	before := tree.Dump()

	o := syntax.NewOptimizer(logger)
	o.MaxPasses = config.MaxPasses
	stats, err := o.Optimize(tree)
	if err != nil {
		return fmt.Errorf("optimizing `%s`: %w", pattern, err)
	}

	printOptimized(w, pattern, before, tree, stats)
	return nil
}
