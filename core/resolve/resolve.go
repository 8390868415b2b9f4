// Package resolve finds the command behind a name.
//
// A search walks a fixed sequence of stages: aliases, functions,
// builtins, then the filesystem in three forms (drive-qualified
// provider paths, rooted paths, the lookup-directory scan with a
// relative fallback). Earlier stages are cheaper and shadow later
// ones, and the walk is pull-based: a caller that stops at the first
// match never pays for filesystem probing.
//
// Each table stage snapshots its table when the stage is entered, so a
// command registered mid-search appears only in stages not yet
// reached. Searchers are not safe for concurrent use; callers
// serialize, or create one Searcher per goroutine from the shared
// Resolver.
package resolve

import (
	"github.com/charmbracelet/log"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/diag"
	"github.com/nutshell-sh/nutshell/core/names"
	"github.com/nutshell-sh/nutshell/core/session"
	"github.com/nutshell-sh/nutshell/core/wildcard"
)

// Options is a flag set controlling how a single search interprets its
// name.
type Options uint16

const (
	// ResolveAliasPatterns lets the alias stage treat the name as a
	// wildcard pattern.
	ResolveAliasPatterns Options = 1 << iota
	// ResolveFunctionPatterns lets the function stage treat the name
	// as a wildcard pattern.
	ResolveFunctionPatterns
	// NameIsPattern marks the name as a pattern for the builtin table
	// and the path scan.
	NameIsPattern
	// SearchAllScopes surfaces definitions shadowed by inner scopes
	// instead of stopping at the nearest one.
	SearchAllScopes
	// FuzzyMatch appends close-but-not-exact table matches after the
	// exact and pattern matches.
	FuzzyMatch
	// UseAbbreviationExpansion lets a function be found by the
	// initials of its hyphenated name, "gci" for "Get-ChildItem".
	UseAbbreviationExpansion
	// ResolveLiteralBeforeWildcard probes a pattern as a literal file
	// name before scanning directory listings against it.
	ResolveLiteralBeforeWildcard
)

// Has reports whether every flag in other is set.
func (o Options) Has(other Options) bool {
	return o&other == other
}

// Origin tells the resolver who asked, so path lookups from outside
// the interpreter can be held against the configured allow list.
type Origin int

const (
	// OriginInternal marks searches issued by the interpreter itself.
	OriginInternal Origin = iota
	// OriginRunspace marks searches relayed from a remote or embedded
	// caller.
	OriginRunspace
)

func (o Origin) String() string {
	if o == OriginRunspace {
		return "runspace"
	}
	return "internal"
}

// Request describes one search. The zero Kinds value accepts every
// command category.
type Request struct {
	// Name is the name or pattern to resolve, optionally qualified by
	// a module namespace.
	Name    string
	Kinds   command.Kind
	Options Options
	Origin  Origin
}

// Resolver searches a session for commands. It carries the pattern
// cache and the diagnostics sinks shared by all searches.
type Resolver struct {
	sess *session.Session
	wc   *wildcard.Compiler
	log  *log.Logger
	rec  diag.Recorder
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger routes resolution diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) { r.log = logger }
}

// WithRecorder routes audit events, security suppressions and
// swallowed provider errors among them, to rec.
func WithRecorder(rec diag.Recorder) Option {
	return func(r *Resolver) { r.rec = rec }
}

// New returns a Resolver over sess. Diagnostics are discarded unless
// configured.
func New(sess *session.Session, opts ...Option) *Resolver {
	r := &Resolver{
		sess: sess,
		wc:   wildcard.NewCompiler(wildcard.DefaultCacheSize),
		log:  diag.Discard(),
		rec:  diag.NopRecorder(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Search starts a new search for req. No table or filesystem work
// happens until the first Next call.
func (r *Resolver) Search(req Request) *Searcher {
	if req.Kinds == 0 {
		req.Kinds = command.AllKinds
	}
	s := &Searcher{r: r, req: req}
	s.qname, s.qok = names.Parse(req.Name)
	return s
}
