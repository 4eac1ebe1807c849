package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".lazyre_history"
	prompt      = "lazyre> "
	banner      = "lazyre REPL. Enter a pattern to see it optimized, Ctrl+D to exit. Type :help for commands."
	helpText    = `  <pattern>        show the tree before and after optimizing
  :match <text>    run the last pattern over text
  :help            show this text
  :quit            leave
`
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Optimize and try patterns interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		runREPL(cmd.OutOrStdout())
		return nil
	},
}

// replState is what a session remembers between lines.
type replState struct {
	pattern string
}

func runREPL(w io.Writer) {
	fmt.Fprintln(w, banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	state := &replState{}
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(w)
			break
		}
		if err != nil {
			// Ctrl+C drops the current line
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if state.eval(w, line) {
			break
		}
	}

	// Persist history (best-effort)
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// eval handles one line of input and reports whether the session is over.
func (s *replState) eval(w io.Writer, line string) (exit bool) {
	if !strings.HasPrefix(line, ":") {
		if err := optimizePattern(logger, w, config, line); err != nil {
			printError(w, err)
			return false
		}
		s.pattern = line
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	switch command {
	case ":help":
		fmt.Fprint(w, helpText)

	case ":quit", ":exit":
		return true

	case ":match":
		if s.pattern == "" {
			fmt.Fprintln(w, "no pattern yet")
			return false
		}
		re, err := compile(s.pattern, config)
		if err != nil {
			printError(w, err)
			return false
		}
		threads, err := re.Threads(arg)
		if err != nil {
			printError(w, err)
			return false
		}
		fmt.Fprintln(w, threads)

	default:
		fmt.Fprintln(w, "unknown command. Type :help for help.")
	}
	return false
}
