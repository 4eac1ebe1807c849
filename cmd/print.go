package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/lazyre/lazyre"
	"github.com/lazyre/lazyre/syntax"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	headerStyle  = color.New(color.FgCyan, color.Bold)
	patternStyle = color.New(color.FgYellow, color.Bold)
	matchStyle   = color.New(color.FgGreen, color.Bold)
	statsStyle   = color.New(color.FgBlue)
)

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Sprint("error: ")+err.Error())
}

// printOptimized writes the tree dumps around one optimizer run.
func printOptimized(w io.Writer, pattern, before string, tree *syntax.RegexTree, stats syntax.Stats) {
	fmt.Fprintln(w, headerStyle.Sprint("pattern: ")+patternStyle.Sprint(pattern))
	fmt.Fprintln(w, headerStyle.Sprint("before:"))
	fmt.Fprint(w, before)
	fmt.Fprintln(w, headerStyle.Sprint("after:"))
	fmt.Fprint(w, tree.Dump())
	fmt.Fprintln(w, statsStyle.Sprintf("folds: %d reductions: %d passes: %d",
		stats.Folds, stats.Reductions, stats.Passes))
	fmt.Fprintln(w, headerStyle.Sprint("result: ")+patternStyle.Sprint(tree.Root.String()))
}

func printMatch(w io.Writer, source string, line int, m *lazyre.Match) {
	fmt.Fprintf(w, "%s:%d: %s %s\n", source, line, matchStyle.Sprint(m.String()), m.Thread)
}
