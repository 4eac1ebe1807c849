package lazyre

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lazyre/lazyre/syntax"
)

func TestRegexp_Basic(t *testing.T) {
	r, err := Compile("test(ing)?", 0)
	//t.Logf("code dump: %v", r.code.Dump())

	if err != nil {
		t.Errorf("unexpected compile err: %v", err)
	}
	m, err := r.FindStringMatch("this is a testing stuff")
	if err != nil {
		t.Errorf("unexpected match err: %v", err)
	}
	if m == nil {
		t.Fatal("Nil match, expected success")
	}
	if want, got := "testing", m.String(); want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
	if want, got := 10, m.Index; want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
	if want, got := 7, m.Length; want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
}

func TestRegexp_String(t *testing.T) {
	if want, got := `a+?b`, MustCompile(`a+?b`, 0).String(); want != got {
		t.Fatalf("Wanted '%v'\nGot '%v'", want, got)
	}
}

func TestMustCompile_Panics(t *testing.T) {
	require.PanicsWithValue(t, "lazyre: Compile(`(a`): error parsing regexp: "+parseErr(t, "(a")+" in `(a`", func() {
		MustCompile("(a", 0)
	})
}

func parseErr(t *testing.T, p string) string {
	_, err := syntax.Parse(p)
	var perr *syntax.Error
	require.True(t, errors.As(err, &perr))
	return perr.Err.Error()
}

func TestMatchString(t *testing.T) {
	re := MustCompile(`ab+?`, 0)

	ok, err := re.MatchString("xxabbb")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = re.MatchString("xxa")
	require.NoError(t, err)
	require.False(t, ok)

	// only the empty string is ever matched, and empty matches are not reported
	ok, err = MustCompile(`a*?`, 0).MatchString("aaa")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestThreads(t *testing.T) {
	re := MustCompile(`ab*`, 0)
	re.Label = 7

	threads, err := re.Threads("abbxab")
	require.NoError(t, err)

	match := len(re.code.Insts) - 1
	want := ThreadList{
		{PC: match, Label: 7, Start: 0, End: 3},
		{PC: match, Label: 7, Start: 4, End: 6},
	}
	require.Equal(t, want, threads)
	require.True(t, threads[0] == Thread{PC: match, Label: 7, Start: 0, End: 3})
	require.False(t, threads[0] == threads[1])
	require.Equal(t, "[(5, 7, 0, 3), (5, 7, 4, 6)]", threads.String())

	threads, err = re.Threads("xyz")
	require.NoError(t, err)
	require.Empty(t, threads)
}

func TestFindStringMatchStartingAt(t *testing.T) {
	re := MustCompile(`é.`, 0)

	m, err := re.FindStringMatchStartingAt("éaxéb", 1)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, 3, m.Index)
	require.Equal(t, "éb", m.String())

	_, err = re.FindStringMatchStartingAt("éa", 3)
	require.Error(t, err)
}

func TestFindRunesMatch(t *testing.T) {
	m, err := MustCompile(`b+`, 0).FindRunesMatch([]rune("abba"))
	require.NoError(t, err)
	require.Equal(t, "bb", m.String())

	next, err := MustCompile(`b+`, 0).FindNextMatch(m)
	require.NoError(t, err)
	require.Nil(t, next)
}

func TestOptimizerStats(t *testing.T) {
	require.Equal(t, syntax.Stats{Folds: 1, Reductions: 1, Passes: 2}, MustCompile(`a+?b*?`, 0).OptimizerStats())
	require.Equal(t, syntax.Stats{}, MustCompile(`a+?b*?`, NoOptimize).OptimizerStats())
}

func TestLoopExitsOnEmptyIteration(t *testing.T) {
	// the inner star can always match empty; the outer loop must still end
	for _, p := range []string{`(a*)*b`, `(a*)+b`, `(a*?)*?b`, `(a?)*b`} {
		t.Run(p, func(t *testing.T) {
			m, err := MustCompile(p, NoOptimize).FindStringMatch("aab")
			require.NoError(t, err)
			require.NotNil(t, m)
			require.Equal(t, "aab", m.String())
		})
	}
}

func TestLazyVersusGreedy(t *testing.T) {
	scenarios := []struct {
		p, in, want string
	}{
		{`<.+>`, "<a><b>", "<a><b>"},
		{`<.+?>`, "<a><b>", "<a>"},
		{`a.*b`, "axbxb", "axbxb"},
		{`a.*?b`, "axbxb", "axb"},
		{`a??b`, "ab", "ab"},
		{`xa??`, "xa", "x"},
		{`xa?`, "xa", "xa"},
	}

	for _, s := range scenarios {
		t.Run(s.p, func(t *testing.T) {
			for _, opt := range []RegexOptions{0, NoOptimize} {
				m, err := MustCompile(s.p, opt).FindStringMatch(s.in)
				require.NoError(t, err)
				require.NotNil(t, m)
				require.Equal(t, s.want, m.String())
			}
		})
	}
}

func TestMatchTimeout(t *testing.T) {
	re := MustCompile(`(a+)+b`, 0)
	re.MatchTimeout = 5 * clockPeriod

	_, err := re.FindStringMatch(strings.Repeat("a", 40))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMatchTimeout))
}

func TestConcurrentUse(t *testing.T) {
	re := MustCompile(`[a-z]+?\d`, 0)
	done := make(chan []string)
	for i := 0; i < 8; i++ {
		go func() {
			parts, _ := re.Split("ab1cd2ef", -1)
			done <- parts
		}()
	}
	for i := 0; i < 8; i++ {
		select {
		case parts := <-done:
			require.Equal(t, []string{"", "", "ef"}, parts)
		case <-time.After(10 * time.Second):
			t.Fatal("timed out")
		}
	}
}

// spans lists every reported match of re in s.
func spans(t *testing.T, re *Regexp, s string) [][2]int {
	t.Helper()
	var res [][2]int
	m, err := re.FindStringMatch(s)
	for ; m != nil; m, err = re.FindNextMatch(m) {
		res = append(res, [2]int{m.Index, m.Index + m.Length})
	}
	require.NoError(t, err)
	return res
}

// subjects returns every string over {a,b} up to length n.
func subjects(n int) []string {
	all := []string{""}
	level := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, s := range level {
			next = append(next, s+"a", s+"b")
		}
		all = append(all, next...)
		level = next
	}
	return all
}

var unaryCtors = []func(*syntax.RegexNode) *syntax.RegexNode{
	syntax.Plus, syntax.Star, syntax.Question,
	syntax.PlusLazy, syntax.StarLazy, syntax.QuestionLazy,
}

// allPatterns renders every tree over the literals a and b up to depth.
func allPatterns(depth int) []string {
	trees := []*syntax.RegexNode{syntax.One('a'), syntax.One('b')}
	for d := 0; d < depth; d++ {
		prev := trees
		next := append([]*syntax.RegexNode(nil), prev...)
		for _, n := range prev {
			for _, ctor := range unaryCtors {
				next = append(next, ctor(n))
			}
		}
		for _, l := range prev {
			for _, r := range prev {
				next = append(next, syntax.Concat(l, r), syntax.Alternate(l, r))
			}
		}
		trees = next
	}

	patterns := make([]string, len(trees))
	for i, n := range trees {
		patterns[i] = n.String()
	}
	return patterns
}

func randomPattern(r *rand.Rand, depth int) string {
	var gen func(depth int) *syntax.RegexNode
	gen = func(depth int) *syntax.RegexNode {
		if depth == 0 || r.IntN(5) == 0 {
			return syntax.One(rune('a' + r.IntN(2)))
		}
		switch k := r.IntN(len(unaryCtors) + 2); k {
		case len(unaryCtors):
			return syntax.Concat(gen(depth-1), gen(depth-1))
		case len(unaryCtors) + 1:
			return syntax.Alternate(gen(depth-1), gen(depth-1))
		default:
			return unaryCtors[k](gen(depth - 1))
		}
	}
	return gen(depth).String()
}

func requireEquivalent(t *testing.T, p string, inputs []string) {
	t.Helper()
	optimized := MustCompile(p, 0)
	plain := MustCompile(p, NoOptimize)
	for _, s := range inputs {
		if want, got := spans(t, plain, s), spans(t, optimized, s); !equalSpans(want, got) {
			t.Fatalf("pattern %s on %q: unoptimized %v, optimized %v", p, s, want, got)
		}
	}
}

func equalSpans(a, b [][2]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOptimizerPreservesMatches(t *testing.T) {
	inputs := subjects(4)
	for _, p := range allPatterns(2) {
		requireEquivalent(t, p, inputs)
	}
}

func TestOptimizerPreservesMatches_Deep(t *testing.T) {
	if testing.Short() {
		t.Skip("slow")
	}
	inputs := subjects(4)
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 3000; i++ {
		requireEquivalent(t, randomPattern(r, 4), inputs)
	}
}

func TestOptimizerPreservesMatches_Guarded(t *testing.T) {
	// alternations whose empty arm is not at the top of the pattern
	patterns := []string{
		`b?(a|b*?)`, `a(a|b*?)+`, `(a|b*?)a?`, `(a|b*?)(a|b*?)`, `(a|b*?)|b`,
		`a*(b|a??)`, `(ab|a*?)+`, `((a|b*?)+)+`, `(b*?|a)+`, `a(b*?|a)`,
		`(a+?|b*?)*`, `b(a+?)+?`, `(ab*?)*b`, `a+?(b|a*)`,
	}
	inputs := subjects(5)
	for _, p := range patterns {
		requireEquivalent(t, p, inputs)
	}
}
