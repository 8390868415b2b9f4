// Package wildcard compiles shell-style name patterns into matchers.
//
// Patterns use the usual glob syntax: '*', '?', character classes and
// backslash escapes. Compilation is strict, an unclosed character
// class is an error rather than a literal.
package wildcard

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"mvdan.cc/sh/v3/pattern"
)

// DefaultCacheSize bounds the compiled pattern cache of a Compiler.
const DefaultCacheSize = 256

// Matcher matches candidate strings against one compiled pattern.
// Patterns always match the entire candidate, never a substring.
type Matcher struct {
	pat        string
	ignoreCase bool

	// Patterns without metacharacters skip the regexp engine.
	literal bool
	re      *regexp.Regexp
}

// Compile builds a Matcher for pat. It returns an error for malformed
// patterns such as an unclosed character class.
func Compile(pat string, ignoreCase bool) (*Matcher, error) {
	m := &Matcher{pat: pat, ignoreCase: ignoreCase}
	if !HasMeta(pat) {
		m.literal = true
		return m, nil
	}

	mode := pattern.EntireString
	if ignoreCase {
		mode |= pattern.NoGlobCase
	}
	expr, err := pattern.Regexp(pat, mode)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	m.re = re
	return m, nil
}

// Match reports whether candidate matches the whole pattern.
func (m *Matcher) Match(candidate string) bool {
	if m.literal {
		if m.ignoreCase {
			return strings.EqualFold(m.pat, candidate)
		}
		return m.pat == candidate
	}
	return m.re.MatchString(candidate)
}

// Pattern returns the source pattern the Matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.pat
}

// HasMeta reports whether pat contains unescaped wildcard
// metacharacters. Text without them can be treated as a literal name.
func HasMeta(pat string) bool {
	return pattern.HasMeta(pat, 0)
}

type cacheKey struct {
	pat        string
	ignoreCase bool
}

// Compiler compiles patterns through a bounded LRU cache. Resolution
// recompiles the same handful of patterns for every table it walks,
// so hits dominate.
//
// A Compiler is not safe for concurrent use, matching the rest of the
// resolution machinery.
type Compiler struct {
	cache *lru.Cache[cacheKey, *Matcher]
}

// NewCompiler returns a Compiler whose cache holds up to size compiled
// patterns. Sizes below one fall back to DefaultCacheSize.
func NewCompiler(size int) *Compiler {
	if size < 1 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[cacheKey, *Matcher](size)
	return &Compiler{cache: cache}
}

// Compile returns the cached Matcher for pat, compiling on a miss.
// Only successful compilations are cached.
func (c *Compiler) Compile(pat string, ignoreCase bool) (*Matcher, error) {
	key := cacheKey{pat: pat, ignoreCase: ignoreCase}
	if m, ok := c.cache.Get(key); ok {
		return m, nil
	}
	m, err := Compile(pat, ignoreCase)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, m)
	return m, nil
}
