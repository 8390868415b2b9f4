package resolve

import (
	"errors"
	"fmt"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/diag"
	"github.com/nutshell-sh/nutshell/core/names"
	"github.com/nutshell-sh/nutshell/core/provider"
	"github.com/nutshell-sh/nutshell/core/session"
)

// State names the stage a search is in. Stages only advance forward.
type State int

const (
	// StateStart is the state before the first Next call.
	StateStart State = iota
	StateAliases
	StateFunctions
	StateBuiltins
	// StateBuiltinPath resolves drive-qualified and wildcard provider
	// paths.
	StateBuiltinPath
	// StateQualifiedPath resolves rooted literal paths.
	StateQualifiedPath
	// StatePathSearch scans the lookup directories and finally tries
	// a location-relative lookup.
	StatePathSearch
	StateExhausted
)

var stateNames = map[State]string{
	StateStart:         "start",
	StateAliases:       "aliases",
	StateFunctions:     "functions",
	StateBuiltins:      "builtins",
	StateBuiltinPath:   "builtin-path",
	StateQualifiedPath: "qualified-path",
	StatePathSearch:    "path-search",
	StateExhausted:     "exhausted",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// PatternError reports a search pattern the path scan could not
// compile. Table stages treat a bad pattern as "no match", the path
// scan propagates it because a broken pattern there is a caller
// defect, not user input.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("malformed command search pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Searcher enumerates the commands matching one Request, cheapest
// stage first. Use it like sql.Rows:
//
//	s := resolver.Search(req)
//	defer s.Close()
//	for s.Next() {
//		use(s.Command())
//	}
//	if err := s.Err(); err != nil { ... }
//
// A Searcher must not be shared between goroutines.
type Searcher struct {
	r   *Resolver
	req Request

	qname names.QualifiedName
	qok   bool

	state       State
	queue       []command.Info
	qpos        int
	scan        *pathScan
	skipGeneric bool

	current command.Info
	err     error
	closed  bool
}

// Next advances to the next matching command. It returns false when
// the search is exhausted, closed or stopped by a hard error.
func (s *Searcher) Next() bool {
	if s.closed {
		return false
	}
	for {
		if s.err != nil {
			s.current = nil
			return false
		}
		if m, ok := s.pull(); ok {
			if !s.permitted(m) {
				continue
			}
			s.current = m
			return true
		}
		if s.state == StateExhausted {
			s.current = nil
			return false
		}
		s.advance()
	}
}

// Command returns the match Next advanced to.
func (s *Searcher) Command() command.Info {
	return s.current
}

// Err returns the hard error that stopped the search, if any.
// Exhaustion is not an error.
func (s *Searcher) Err() error {
	return s.err
}

// State returns the stage the search is currently in.
func (s *Searcher) State() State {
	return s.state
}

// Reset returns the search to its initial state. The next Next call
// re-snapshots tables and re-checks path permissions against the
// session as it is then.
func (s *Searcher) Reset() {
	s.state = StateStart
	s.queue = nil
	s.qpos = 0
	s.scan = nil
	s.skipGeneric = false
	s.current = nil
	s.err = nil
	s.closed = false
}

// Close releases the search. Further Next calls return false until
// Reset.
func (s *Searcher) Close() error {
	s.closed = true
	s.queue = nil
	s.scan = nil
	s.current = nil
	return nil
}

// Collect drains the remaining matches into a slice.
func (s *Searcher) Collect() ([]command.Info, error) {
	var out []command.Info
	for s.Next() {
		out = append(out, s.Command())
	}
	return out, s.Err()
}

// pull asks the current stage for its next match.
func (s *Searcher) pull() (command.Info, bool) {
	if s.state == StatePathSearch && s.scan != nil {
		return s.scan.next()
	}
	if s.qpos < len(s.queue) {
		m := s.queue[s.qpos]
		s.qpos++
		return m, true
	}
	return nil, false
}

// advance moves to the next stage and snapshots its candidates.
func (s *Searcher) advance() {
	s.queue = nil
	s.qpos = 0
	switch s.state {
	case StateStart:
		s.state = StateAliases
		if s.req.Name == "" {
			s.state = StateExhausted
			return
		}
		if s.req.Kinds.Has(command.Alias) {
			s.queue = s.aliasMatches()
		}
	case StateAliases:
		s.state = StateFunctions
		if s.req.Kinds.Has(command.FunctionLike) {
			s.queue = s.functionMatches()
		}
	case StateFunctions:
		s.state = StateBuiltins
		if s.req.Kinds.Has(command.Builtin) {
			s.queue = s.builtinMatches()
		}
	case StateBuiltins:
		s.enterPathStages()
	case StateBuiltinPath:
		if s.skipGeneric {
			s.state = StateExhausted
			return
		}
		s.state = StateQualifiedPath
		s.queue = s.rootedMatches()
	case StateQualifiedPath:
		if rooted(s.req.Name) {
			s.state = StateExhausted
			return
		}
		s.state = StatePathSearch
		s.scan = s.newPathScan()
	default:
		s.state = StateExhausted
	}
}

// permitted applies the trust checks every produced match goes
// through. A suppressed command is indistinguishable from a missing
// one outside the audit trail.
func (s *Searcher) permitted(m command.Info) bool {
	cur := s.r.sess.CurrentMode()
	if fn, ok := functionData(m); ok &&
		fn.Mode == command.TrustFull && cur < command.TrustFull &&
		s.r.sess.InBreakpoint() && !fn.Global {
		s.audit(diag.SecuritySuppression, m.Name(), "trusted function hidden at breakpoint")
		return false
	}
	if m.DefiningMode() > cur {
		s.audit(diag.SecuritySuppression, m.Name(), "defined in a more trusted mode")
		return false
	}
	return true
}

// functionData digs the function descriptor out of a match, unwrapping
// the session's runnable envelope.
func functionData(m command.Info) (*command.FunctionInfo, bool) {
	switch v := m.(type) {
	case *session.Function:
		return functionData(v.Info)
	case *command.FunctionInfo:
		return v, true
	case *command.FilterInfo:
		return &v.FunctionInfo, true
	case *command.ConfigurationInfo:
		return &v.FunctionInfo, true
	}
	return nil, false
}

func (s *Searcher) audit(kind diag.EventKind, name, detail string) {
	s.r.log.Debug("resolution event",
		"kind", kind, "name", name, "stage", s.state.String(), "detail", detail)
	s.r.rec.Record(diag.Event{
		Kind:   kind,
		Name:   name,
		Stage:  s.state.String(),
		Detail: detail,
	})
}

// swallowProvider downgrades a provider failure to an audit event.
// Plain misses stay quiet, they are the normal case while probing.
func (s *Searcher) swallowProvider(name string, err error) {
	if err == nil || errors.Is(err, provider.ErrNotFound) {
		return
	}
	s.audit(diag.ProviderError, name, err.Error())
}
