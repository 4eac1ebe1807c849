/*
Package lazyre is a small backtracking regexp engine with Perl-style
leftmost-first semantics and lazy quantifiers. Patterns are parsed into a
binary tree, simplified by a peephole optimizer that drops lazy quantifiers
whose preference can never be observed, and lowered into instructions for a
backtracking runner.

A start offset's first successful derivation is its match. Matches of zero
length are never reported, and scanning resumes after each match.
*/
package lazyre

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lazyre/lazyre/runecacher"
	"github.com/lazyre/lazyre/syntax"
)

// Default timeout used when running regexp matches -- "forever"
var DefaultMatchTimeout = time.Duration(math.MaxInt64)

// Regexp is the representation of a compiled regular expression.
// A Regexp is safe for concurrent use by multiple goroutines.
type Regexp struct {
	//timeout when trying to find matches
	MatchTimeout time.Duration

	// Label is copied into every Thread the Regexp reports.
	Label uint32

	// read-only after Compile
	pattern string       // as passed to Compile
	options RegexOptions // options
	stats   syntax.Stats // what the optimizer did

	code *syntax.Code // compiled program

	// cache of machines for running regexp
	mu     sync.Mutex
	runner []*runner
}

// Compile parses a regular expression and returns, if successful,
// a Regexp object that can be used to match against text.
func Compile(expr string, opt RegexOptions) (*Regexp, error) {
	return CompileWithLogger(expr, opt, nil)
}

// CompileWithLogger is like Compile but reports every optimizer rewrite
// to logger at debug level.
func CompileWithLogger(expr string, opt RegexOptions, logger *zap.Logger) (*Regexp, error) {
	// parse it
	tree, err := syntax.Parse(expr)
	if err != nil {
		return nil, err
	}
	tree.Debug = opt&Debug != 0

	if tree.Debug {
		os.Stdout.WriteString(tree.Dump())
		os.Stdout.WriteString("\n")
	}

	var stats syntax.Stats
	if opt&NoOptimize == 0 {
		stats, err = syntax.NewOptimizer(logger).Optimize(tree)
		if err != nil {
			return nil, fmt.Errorf("optimizing `%s`: %w", expr, err)
		}
		if tree.Debug {
			os.Stdout.WriteString(tree.Dump())
			os.Stdout.WriteString("\n")
		}
	}

	// translate it to code
	code, err := syntax.Write(tree)
	if err != nil {
		return nil, err
	}

	// return it
	return &Regexp{
		pattern:      expr,
		options:      opt,
		stats:        stats,
		code:         code,
		MatchTimeout: DefaultMatchTimeout,
	}, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
// It simplifies safe initialization of global variables holding compiled regular
// expressions.
func MustCompile(str string, opt RegexOptions) *Regexp {
	regexp, error := Compile(str, opt)
	if error != nil {
		panic(`lazyre: Compile(` + quote(str) + `): ` + error.Error())
	}
	return regexp
}

// String returns the source text used to compile the regular expression.
func (re *Regexp) String() string {
	return re.pattern
}

// OptimizerStats reports the rewrites Compile made to the pattern.
func (re *Regexp) OptimizerStats() syntax.Stats {
	return re.stats
}

func quote(s string) string {
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}

type RegexOptions int32

const (
	Debug      RegexOptions = 0x0080 // "d"
	NoOptimize              = 0x0200 // skip the peephole optimizer
)

func (re *Regexp) Debug() bool {
	return re.options&Debug != 0
}

// FindStringMatch returns the first match in s, or nil.
func (re *Regexp) FindStringMatch(s string) (*Match, error) {
	return re.run(false, -1, runecacher.NewFromString(s))
}

// FindRunesMatch returns the first match in r, or nil.
func (re *Regexp) FindRunesMatch(r []rune) (*Match, error) {
	return re.run(false, -1, runecacher.NewFromRunes(r))
}

// FindStringMatchStartingAt is like FindStringMatch but starts scanning
// at rune offset startAt.
func (re *Regexp) FindStringMatchStartingAt(s string, startAt int) (*Match, error) {
	return re.run(false, startAt, runecacher.NewFromString(s))
}

// FindNextMatch returns the next match in the same input after m, or nil.
func (re *Regexp) FindNextMatch(m *Match) (*Match, error) {
	if m == nil {
		return nil, nil
	}
	return re.run(false, m.textpos, runecacher.NewFromRunes(m.text))
}

// MatchString reports whether s contains a match.
func (re *Regexp) MatchString(s string) (bool, error) {
	m, err := re.run(true, -1, runecacher.NewFromString(s))
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// Threads returns the thread that reported each match in s, in order.
func (re *Regexp) Threads(s string) (ThreadList, error) {
	var threads ThreadList
	err := re.eachMatch(s, -1, func(m *Match) bool {
		threads = append(threads, m.Thread)
		return true
	})
	if err != nil {
		return nil, err
	}
	return threads, nil
}

// eachMatch hands every match in s from rune offset startAt on to yield,
// in order, until yield returns false. Matches never overlap and are
// never empty.
func (re *Regexp) eachMatch(s string, startAt int, yield func(*Match) bool) error {
	m, err := re.FindStringMatchStartingAt(s, startAt)
	for m != nil {
		if !yield(m) {
			return nil
		}
		m, err = re.FindNextMatch(m)
	}
	return err
}
