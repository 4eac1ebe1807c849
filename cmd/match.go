package cmd

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazyre/lazyre"
)

var matchCmd = &cobra.Command{
	Use:   "match <pattern> [files...]",
	Short: "Print every match of a pattern, line by line",
	Long: `Runs the pattern over each line of the given files, or standard input
when no file is named, and prints every reported match with its thread:
(pc, label, start, end).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		re, err := compile(args[0], config)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if len(args) == 1 {
			return matchLines(ctx, w, re, "<stdin>", cmd.InOrStdin())
		}
		for _, path := range args[1:] {
			if err := matchFile(ctx, w, re, path); err != nil {
				logger.Error("Failed to match file", zap.String("path", path), zap.Error(err))
				return err
			}
		}
		return nil
	},
}

func compile(pattern string, config Config) (*lazyre.Regexp, error) {
	re, err := lazyre.CompileWithLogger(pattern, config.options(), logger)
	if err != nil {
		return nil, err
	}
	re.Label = config.Label
	if config.MatchTimeout > 0 {
		re.MatchTimeout = config.MatchTimeout
	}
	return re, nil
}

func matchFile(ctx context.Context, w io.Writer, re *lazyre.Regexp, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return matchLines(ctx, w, re, path, f)
}

// matchLines prints the matches of re in every line of r.
func matchLines(ctx context.Context, w io.Writer, re *lazyre.Regexp, source string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := re.FindStringMatch(scanner.Text())
		for ; m != nil; m, err = re.FindNextMatch(m) {
			printMatch(w, source, line, m)
		}
		if err != nil {
			return err
		}
	}
	return scanner.Err()
}
