package resolve

import (
	"strings"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/session"
	"github.com/nutshell-sh/nutshell/core/wildcard"
)

// patternStage reports whether a table stage enumerates by pattern
// instead of exact lookup. flag is the stage's own pattern option.
func (s *Searcher) patternStage(flag Options) bool {
	o := s.req.Options
	if o.Has(FuzzyMatch) {
		return true
	}
	if !o.Has(flag) {
		return false
	}
	return o.Has(NameIsPattern) || wildcard.HasMeta(s.req.Name)
}

// shortMatcher compiles the short name as a case-insensitive pattern.
// A bad pattern makes the table stage match nothing.
func (s *Searcher) shortMatcher() (*wildcard.Matcher, bool) {
	m, err := s.r.wc.Compile(s.qname.Name, true)
	if err != nil {
		s.r.log.Debug("unusable table search pattern",
			"pattern", s.qname.Name, "err", err)
		return nil, false
	}
	return m, true
}

// matchSet accumulates stage candidates in order, one per name and
// defining module.
type matchSet struct {
	out  []command.Info
	seen map[string]bool
}

func newMatchSet() *matchSet {
	return &matchSet{seen: make(map[string]bool)}
}

func (ms *matchSet) add(m command.Info, module string) {
	key := strings.ToLower(m.Name()) + "\x00" + strings.ToLower(module)
	if ms.seen[key] {
		return
	}
	ms.seen[key] = true
	ms.out = append(ms.out, m)
}

func (ms *matchSet) has(name, module string) bool {
	return ms.seen[strings.ToLower(name)+"\x00"+strings.ToLower(module)]
}

func (s *Searcher) aliasMatches() []command.Info {
	if !s.qok {
		return nil
	}
	if s.patternStage(ResolveAliasPatterns) {
		return s.aliasPatternMatches()
	}
	return s.aliasExactMatches()
}

// aliasExactMatches looks the name up in the scope chain first, then
// falls back to module exports.
func (s *Searcher) aliasExactMatches() []command.Info {
	var out []command.Info
	if s.req.Options.Has(SearchAllScopes) {
		for scope := s.r.sess.CurrentScope(); scope != nil; scope = scope.Parent() {
			if a, ok := scope.Aliases.Get(s.req.Name); ok {
				out = append(out, a)
			}
		}
	} else if a, ok := s.r.sess.LookupAlias(s.req.Name); ok {
		out = append(out, a)
	}
	if len(out) > 0 {
		return out
	}
	if s.qname.Qualified() {
		if mod, ok := s.exactModule(); ok {
			if a, ok := mod.Aliases.Get(s.qname.Name); ok {
				out = append(out, a)
			}
		}
		return out
	}
	for _, mod := range s.r.sess.Modules.All() {
		if a, ok := mod.Aliases.Get(s.qname.Name); ok {
			out = append(out, a)
			break
		}
	}
	return out
}

func (s *Searcher) aliasPatternMatches() []command.Info {
	matcher, ok := s.shortMatcher()
	if !ok {
		return nil
	}
	ms := newMatchSet()
	if !s.qname.Qualified() {
		for _, a := range s.r.sess.Aliases(s.req.Options.Has(SearchAllScopes)) {
			if matcher.Match(a.Name()) {
				ms.add(a, a.Module)
			}
		}
	}
	for _, mod := range s.qualifierModules() {
		for _, a := range mod.Aliases.All() {
			if matcher.Match(a.Name()) {
				ms.add(a, mod.Name)
			}
		}
	}
	if s.req.Options.Has(FuzzyMatch) {
		for _, a := range s.r.sess.Aliases(s.req.Options.Has(SearchAllScopes)) {
			if !ms.has(a.Name(), a.Module) && wildcard.IsFuzzyMatch(a.Name(), s.qname.Name) {
				ms.add(a, a.Module)
			}
		}
	}
	return ms.out
}

func (s *Searcher) functionMatches() []command.Info {
	if !s.qok {
		return nil
	}
	var out []command.Info
	if s.patternStage(ResolveFunctionPatterns) {
		out = s.functionPatternMatches()
	} else {
		out = s.functionExactMatches()
	}
	return s.filterKinds(out)
}

func (s *Searcher) functionExactMatches() []command.Info {
	var out []command.Info
	if s.req.Options.Has(SearchAllScopes) {
		for scope := s.r.sess.CurrentScope(); scope != nil; scope = scope.Parent() {
			if f, ok := scope.Functions.Get(s.req.Name); ok {
				out = append(out, f)
			}
		}
	} else if f, ok := s.r.sess.LookupFunction(s.req.Name); ok {
		out = append(out, f)
	}
	if len(out) > 0 {
		return out
	}
	if s.qname.Qualified() {
		if mod, ok := s.exactModule(); ok {
			if f, ok := mod.Functions.Get(s.qname.Name); ok {
				out = append(out, f)
			}
		}
		return out
	}
	for _, mod := range s.r.sess.Modules.All() {
		if f, ok := mod.Functions.Get(s.qname.Name); ok {
			out = append(out, f)
			break
		}
	}
	if len(out) > 0 {
		return out
	}
	return s.abbreviatedFunctions()
}

func (s *Searcher) functionPatternMatches() []command.Info {
	matcher, ok := s.shortMatcher()
	if !ok {
		return nil
	}
	ms := newMatchSet()
	all := s.req.Options.Has(SearchAllScopes)
	if !s.qname.Qualified() {
		for _, f := range s.r.sess.Functions(all) {
			if matcher.Match(f.Name()) {
				ms.add(f, functionModule(f))
			}
		}
	}
	for _, mod := range s.qualifierModules() {
		for _, f := range mod.Functions.All() {
			if matcher.Match(f.Name()) {
				ms.add(f, mod.Name)
			}
		}
	}
	if s.req.Options.Has(FuzzyMatch) {
		for _, f := range s.r.sess.Functions(all) {
			if !ms.has(f.Name(), functionModule(f)) && wildcard.IsFuzzyMatch(f.Name(), s.qname.Name) {
				ms.add(f, functionModule(f))
			}
		}
	}
	for _, f := range s.abbreviatedFunctions() {
		ms.add(f, functionModule(f))
	}
	return ms.out
}

// abbreviatedFunctions finds functions whose hyphenated-name initials
// spell the searched name.
func (s *Searcher) abbreviatedFunctions() []command.Info {
	if !s.req.Options.Has(UseAbbreviationExpansion) || wildcard.HasMeta(s.qname.Name) {
		return nil
	}
	var out []command.Info
	for _, f := range s.r.sess.Functions(s.req.Options.Has(SearchAllScopes)) {
		if wildcard.MatchesAbbreviation(f.Name(), s.qname.Name) {
			out = append(out, f)
		}
	}
	return out
}

func (s *Searcher) builtinMatches() []command.Info {
	if !s.qok {
		return nil
	}
	if s.patternStage(NameIsPattern) {
		return s.builtinPatternMatches()
	}
	b, ok := s.r.sess.Builtins.Get(s.qname.Name)
	if !ok || !s.builtinNamespaceOK(b) {
		return nil
	}
	return []command.Info{b}
}

func (s *Searcher) builtinPatternMatches() []command.Info {
	matcher, ok := s.shortMatcher()
	if !ok {
		return nil
	}
	ms := newMatchSet()
	all := s.r.sess.Builtins.All()
	for _, b := range all {
		if s.builtinNamespaceOK(b) && matcher.Match(b.Name()) {
			ms.add(b, b.Namespace)
		}
	}
	if s.req.Options.Has(FuzzyMatch) {
		for _, b := range all {
			if s.builtinNamespaceOK(b) && !ms.has(b.Name(), b.Namespace) &&
				wildcard.IsFuzzyMatch(b.Name(), s.qname.Name) {
				ms.add(b, b.Namespace)
			}
		}
	}
	return ms.out
}

func (s *Searcher) builtinNamespaceOK(b *session.Builtin) bool {
	return !s.qname.Qualified() || strings.EqualFold(b.Namespace, s.qname.Namespace)
}

// exactModule returns the module a qualified name refers to.
func (s *Searcher) exactModule() (*session.Module, bool) {
	if !s.qname.Qualified() {
		return nil, false
	}
	return s.r.sess.Modules.Get(s.qname.Namespace)
}

// qualifierModules returns the modules a pattern search consults: the
// qualifier's module when one was given, every module otherwise.
func (s *Searcher) qualifierModules() []*session.Module {
	if s.qname.Qualified() {
		if mod, ok := s.r.sess.Modules.Get(s.qname.Namespace); ok {
			return []*session.Module{mod}
		}
		return nil
	}
	return s.r.sess.Modules.All()
}

// filterKinds drops matches whose category the request excluded.
func (s *Searcher) filterKinds(in []command.Info) []command.Info {
	out := in[:0]
	for _, m := range in {
		if s.req.Kinds.Has(m.Kind()) {
			out = append(out, m)
		}
	}
	return out
}

func functionModule(f *session.Function) string {
	if fd, ok := functionData(f); ok {
		return fd.Module
	}
	return ""
}
