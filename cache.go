package lazyre

import (
	"sync"
)

type cacheKey struct {
	pattern string
	opt     RegexOptions
}

var engines = struct {
	sync.Mutex
	m map[cacheKey]*Regexp
}{m: map[cacheKey]*Regexp{}}

// CompileCached is like Compile but returns the same *Regexp for repeated
// calls with the same pattern and options. The returned Regexp is shared:
// callers must not change its MatchTimeout or Label.
func CompileCached(pattern string, opt RegexOptions) (*Regexp, error) {
	if re := getEngineRegexp(pattern, opt); re != nil {
		return re, nil
	}

	re, err := Compile(pattern, opt)
	if err != nil {
		return nil, err
	}
	registerEngine(pattern, opt, re)
	return re, nil
}

func registerEngine(pattern string, opt RegexOptions, re *Regexp) {
	engines.Lock()
	defer engines.Unlock()
	engines.m[cacheKey{pattern, opt}] = re
}

func getEngineRegexp(pattern string, opt RegexOptions) *Regexp {
	engines.Lock()
	defer engines.Unlock()
	val, ok := engines.m[cacheKey{pattern, opt}]
	if !ok {
		return nil
	}
	return val
}
