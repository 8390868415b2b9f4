// Package session holds the interpreter state that command resolution
// and binding consult: the scope chain with its alias and function
// tables, the builtin table, imported modules, environment variables
// and the drive registry.
//
// Nothing in this package locks except Environ. The interpreter runs
// one resolution at a time; concurrent resolutions need separate
// sessions.
package session

import (
	"errors"
	"sort"
	"strings"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/provider"
)

// SearchConfig carries the path-search settings of a session.
type SearchConfig struct {
	// LookupDirs are the directories command path search walks, in
	// order.
	LookupDirs []string
	// ScriptExt recognizes script files, with the leading dot.
	ScriptExt string
	// ModuleExt and DataExt are the other script-like extensions path
	// search probes for.
	ModuleExt string
	DataExt   string
	// ExecExts are additional executable extensions tried during
	// search, in order.
	ExecExts []string
	// PathAllowList guards path-like lookups that originate outside
	// the interpreter. Entries are path prefixes, "*" allows
	// everything. An empty list denies everything.
	PathAllowList []string
}

// Session is the interpreter state a resolver and binder pair works
// against.
type Session struct {
	Env       *Environ
	Builtins  *Table[*Builtin]
	Modules   *Modules
	Providers *provider.Registry
	Search    SearchConfig

	scope        *Scope
	globalScope  *Scope
	mode         command.TrustMode
	inBreakpoint bool
	cwd          provider.ResolvedPath
}

// New returns an empty fully-trusted session with a single global
// scope.
func New() *Session {
	global := newScope(nil)
	return &Session{
		Env:         NewEnviron(),
		Builtins:    NewTable[*Builtin](),
		Modules:     NewModules(),
		Providers:   provider.NewRegistry(),
		scope:       global,
		globalScope: global,
		mode:        command.TrustFull,
	}
}

// GlobalScope returns the outermost scope.
func (s *Session) GlobalScope() *Scope {
	return s.globalScope
}

// CurrentScope returns the innermost scope.
func (s *Session) CurrentScope() *Scope {
	return s.scope
}

// PushScope enters a new innermost scope and returns it.
func (s *Session) PushScope() *Scope {
	s.scope = newScope(s.scope)
	return s.scope
}

// PopScope leaves the innermost scope. The global scope cannot be
// popped.
func (s *Session) PopScope() error {
	if s.scope.parent == nil {
		return errors.New("cannot pop the global scope")
	}
	s.scope = s.scope.parent
	return nil
}

// CurrentMode returns the session's trust mode.
func (s *Session) CurrentMode() command.TrustMode {
	return s.mode
}

// SetMode sets the session's trust mode.
func (s *Session) SetMode(mode command.TrustMode) {
	s.mode = mode
}

// InBreakpoint reports whether a debugger breakpoint is active.
func (s *Session) InBreakpoint() bool {
	return s.inBreakpoint
}

// SetBreakpoint marks a debugger breakpoint active or cleared.
func (s *Session) SetBreakpoint(active bool) {
	s.inBreakpoint = active
}

// Cwd returns the current location.
func (s *Session) Cwd() provider.ResolvedPath {
	return s.cwd
}

// SetCwd changes the current location. Callers validate that the
// target exists and is a container.
func (s *Session) SetCwd(cwd provider.ResolvedPath) {
	s.cwd = cwd
}

// LookupAlias finds the nearest alias with the given name.
func (s *Session) LookupAlias(name string) (*command.AliasInfo, bool) {
	for scope := s.scope; scope != nil; scope = scope.parent {
		if a, ok := scope.Aliases.Get(name); ok {
			return a, true
		}
	}
	return nil, false
}

// LookupFunction finds the nearest function with the given name.
func (s *Session) LookupFunction(name string) (*Function, bool) {
	for scope := s.scope; scope != nil; scope = scope.parent {
		if f, ok := scope.Functions.Get(name); ok {
			return f, true
		}
	}
	return nil, false
}

// Aliases enumerates aliases sorted by name. With allScopes false,
// entries shadowed by inner scopes are skipped; with it true every
// definition is returned, innermost first for a given name.
func (s *Session) Aliases(allScopes bool) []*command.AliasInfo {
	var out []*command.AliasInfo
	seen := map[string]bool{}
	for scope := s.scope; scope != nil; scope = scope.parent {
		for _, a := range scope.Aliases.All() {
			if !allScopes && seen[lower(a.Name())] {
				continue
			}
			seen[lower(a.Name())] = true
			out = append(out, a)
		}
	}
	sortInfos(out)
	return out
}

// Functions enumerates functions the same way Aliases enumerates
// aliases.
func (s *Session) Functions(allScopes bool) []*Function {
	var out []*Function
	seen := map[string]bool{}
	for scope := s.scope; scope != nil; scope = scope.parent {
		for _, f := range scope.Functions.All() {
			if !allScopes && seen[lower(f.Name())] {
				continue
			}
			seen[lower(f.Name())] = true
			out = append(out, f)
		}
	}
	sortInfos(out)
	return out
}

// LookupVar finds the nearest variable with the given name.
func (s *Session) LookupVar(name string) (any, bool) {
	for scope := s.scope; scope != nil; scope = scope.parent {
		if v, ok := scope.Vars.GetVar(name); ok {
			return v, true
		}
	}
	return nil, false
}

// GetVar implements provider.VarReader over the whole scope chain.
func (s *Session) GetVar(name string) (any, bool) {
	return s.LookupVar(name)
}

// VarNames implements provider.VarReader over the whole scope chain.
func (s *Session) VarNames() []string {
	seen := map[string]bool{}
	var names []string
	for scope := s.scope; scope != nil; scope = scope.parent {
		for _, n := range scope.Vars.VarNames() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

var _ provider.VarReader = (*Session)(nil)

func lower(s string) string {
	return strings.ToLower(s)
}

func sortInfos[V command.Info](infos []V) {
	sort.SliceStable(infos, func(i, j int) bool {
		return lower(infos[i].Name()) < lower(infos[j].Name())
	})
}
