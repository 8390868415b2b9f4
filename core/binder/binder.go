package binder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/diag"
)

// Binder runs the phased parameter binding for one command: named
// arguments first, then positional binding with escalating tolerance,
// then the catch-all for remaining arguments, then defaults.
//
// A Binder is cheap and single-use state lives per call, so one can be
// reused across invocations of the same command.
type Binder struct {
	meta     *command.Metadata
	values   ValueBinder
	defaults DefaultEvaluator
	log      *log.Logger
	rec      diag.Recorder
}

// Option configures a Binder.
type Option func(*Binder)

// WithValueBinder replaces the standard type checker.
func WithValueBinder(v ValueBinder) Option {
	return func(b *Binder) { b.values = v }
}

// WithDefaults replaces the default value evaluator.
func WithDefaults(d DefaultEvaluator) Option {
	return func(b *Binder) { b.defaults = d }
}

// WithLogger directs binding trace output.
func WithLogger(l *log.Logger) Option {
	return func(b *Binder) { b.log = l }
}

// WithRecorder directs audit events, like swallowed default values.
func WithRecorder(r diag.Recorder) Option {
	return func(b *Binder) { b.rec = r }
}

// New returns a Binder for a command's parameter metadata.
func New(meta *command.Metadata, opts ...Option) *Binder {
	b := &Binder{
		meta:     meta,
		values:   TypeChecker{},
		defaults: LiteralDefaults{},
		log:      diag.Discard(),
		rec:      diag.NopRecorder(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Report is the outcome of a successful bind.
type Report struct {
	// Values maps declared parameter names to their bound values.
	Values map[string]any
	// Leftovers are the arguments nothing claimed.
	Leftovers []Arg
	// Sets is the parameter set mask the invocation resolved to.
	Sets command.SetFlags
	// AppliedDefaults names the parameters bound from their defaults,
	// in declaration order. They do not count as user-specified.
	AppliedDefaults []string
	// MissingMandatory names mandatory parameters of the resolved set
	// that remained unbound. The binder reports rather than fails so
	// interactive hosts can prompt for them.
	MissingMandatory []string
}

// Has reports whether name was bound, by argument or default.
func (r *Report) Has(name string) bool {
	_, ok := r.Values[name]
	return ok
}

// Specified reports whether name was bound from an argument rather
// than a default.
func (r *Report) Specified(name string) bool {
	if !r.Has(name) {
		return false
	}
	for _, d := range r.AppliedDefaults {
		if strings.EqualFold(d, name) {
			return false
		}
	}
	return true
}

// GetString returns the bound string value of name, or "".
func (r *Report) GetString(name string) string {
	v, _ := r.Values[name].(string)
	return v
}

// GetBool returns the bound bool value of name, or false.
func (r *Report) GetBool(name string) bool {
	v, _ := r.Values[name].(bool)
	return v
}

// GetInt returns the bound int value of name, or 0.
func (r *Report) GetInt(name string) int {
	v, _ := r.Values[name].(int)
	return v
}

// GetFloat returns the bound float value of name, or 0.
func (r *Report) GetFloat(name string) float64 {
	v, _ := r.Values[name].(float64)
	return v
}

// GetStrings returns the bound string slice value of name, or nil.
func (r *Report) GetStrings(name string) []string {
	v, _ := r.Values[name].([]string)
	return v
}

// bindingState tracks one bind as it narrows the valid parameter sets.
type bindingState struct {
	values map[string]any
	bound  map[string]bool
	sets   command.SetFlags
}

func (st *bindingState) isBound(p *command.Parameter) bool {
	return st.bound[strings.ToLower(p.Name)]
}

// Bind classifies raw tokens against the metadata and binds them.
func (b *Binder) Bind(raw []RawArg) (*Report, error) {
	args, err := Reparse(b.meta, raw)
	if err != nil {
		return nil, err
	}
	return b.BindArgs(args)
}

// BindArgs binds already-classified arguments.
func (b *Binder) BindArgs(args []Arg) (*Report, error) {
	st := &bindingState{
		values: make(map[string]any),
		bound:  make(map[string]bool),
		sets:   command.AllSets,
	}

	positional, leftovers, err := b.bindNamed(st, args)
	if err != nil {
		return nil, err
	}

	unclaimed, err := b.bindPositional(st, positional)
	if err != nil {
		return nil, err
	}
	leftovers = append(leftovers, unclaimed...)

	leftovers, err = b.bindRemaining(st, leftovers)
	if err != nil {
		return nil, err
	}

	applied, err := b.bindDefaults(st)
	if err != nil {
		return nil, err
	}

	sets, err := b.resolveSet(st)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Values:          st.values,
		Leftovers:       leftovers,
		Sets:            sets,
		AppliedDefaults: applied,
	}
	for _, p := range b.meta.Parameters() {
		if !st.isBound(p) && p.MandatoryIn(sets) {
			report.MissingMandatory = append(report.MissingMandatory, p.Name)
		}
	}
	return report, nil
}

// bindNamed runs the named phase. It returns the positional arguments
// and the named arguments that resolved to no declared parameter.
func (b *Binder) bindNamed(st *bindingState, args []Arg) (positional, leftovers []Arg, err error) {
	for _, a := range args {
		if !a.NameSpecified {
			positional = append(positional, a)
			continue
		}

		p, err := b.meta.Resolve(a.Name)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			leftovers = append(leftovers, a)
			continue
		}

		if st.isBound(p) {
			if a.FromSplat {
				b.log.Debug("splatted argument lost to explicit argument", "parameter", p.Name)
				continue
			}
			return nil, nil, &BindError{Code: CodeAlreadyBound, Parameter: p.Name, Extent: a.Extent}
		}

		value := a.Value
		if !a.ValueSpecified {
			if p.Type != command.TypeSwitch {
				return nil, nil, &BindError{Code: CodeMissingArgument, Parameter: p.Name, Extent: a.Extent}
			}
			value = true
		}

		v, err := b.values.BindValue(p, value, true)
		if err != nil {
			if IsSwallowable(err) {
				b.recordSwallowed(p.Name, err)
				continue
			}
			return nil, nil, err
		}
		if err := b.commit(st, p, v); err != nil {
			return nil, nil, err
		}
	}
	return positional, leftovers, nil
}

// bindPositional walks the positional table in ascending position
// order, one argument per live position. Each argument gets four
// attempts of rising tolerance: default set without coercion, any
// valid set without coercion, then the same two with coercion.
// Arguments that fail all four come back unclaimed.
func (b *Binder) bindPositional(st *bindingState, positional []Arg) ([]Arg, error) {
	if len(positional) == 0 {
		return nil, nil
	}

	table, err := EvaluatePositional(b.unbound(st), st.sets)
	if err != nil {
		return nil, err
	}

	var unclaimed []Arg
	next := 0
	for _, pos := range table.Positions() {
		if next >= len(positional) {
			break
		}
		cands := table.live(pos)
		if len(cands) == 0 {
			continue
		}

		arg := positional[next]
		next++
		if !b.bindAtPosition(st, table, cands, arg) {
			unclaimed = append(unclaimed, arg)
		}
	}
	unclaimed = append(unclaimed, positional[next:]...)
	return unclaimed, nil
}

func (b *Binder) bindAtPosition(st *bindingState, table *PositionalTable, cands []*positionalCandidate, arg Arg) bool {
	attempts := []struct {
		inDefault bool
		coerce    bool
	}{
		{true, false},
		{false, false},
		{true, true},
		{false, true},
	}

	for _, at := range attempts {
		sets := st.sets
		if at.inDefault {
			sets &= b.meta.DefaultSet
			if sets == 0 {
				continue
			}
		}

		for _, c := range cands {
			if st.isBound(c.param) || !c.appliesTo(sets) {
				continue
			}
			v, err := b.values.BindValue(c.param, arg.Value, at.coerce)
			if err != nil {
				b.log.Debug("positional attempt failed",
					"parameter", c.param.Name, "coerce", at.coerce, "err", err)
				continue
			}
			if err := b.commit(st, c.param, v); err != nil {
				continue
			}
			table.Narrow(st.sets)
			return true
		}
	}
	return false
}

// bindRemaining hands every argument still unclaimed to the first
// catch-all parameter valid in the remaining sets, if there is one.
func (b *Binder) bindRemaining(st *bindingState, leftovers []Arg) ([]Arg, error) {
	if len(leftovers) == 0 {
		return nil, nil
	}

	var catch *command.Parameter
	for _, p := range b.unbound(st) {
		if p.TakesRemainingIn(st.sets) {
			catch = p
			break
		}
	}
	if catch == nil {
		return leftovers, nil
	}

	var collected []string
	for _, a := range leftovers {
		if a.NameSpecified {
			collected = append(collected, "-"+a.Name)
			if !a.ValueSpecified {
				continue
			}
		}
		collected = append(collected, fmt.Sprint(a.Value))
	}

	v, err := b.values.BindValue(catch, collected, true)
	if err != nil {
		return nil, err
	}
	if err := b.commit(st, catch, v); err != nil {
		return nil, err
	}
	return nil, nil
}

// bindDefaults binds default values to whatever stayed unbound.
// Defaults do not narrow the set mask and they are only coerced when
// the expression is non-empty: an empty expression binds nil, which
// every type accepts.
func (b *Binder) bindDefaults(st *bindingState) ([]string, error) {
	var applied []string
	for _, p := range b.meta.Parameters() {
		if st.isBound(p) || !p.HasDefault {
			continue
		}

		var value any
		if p.Default != "" {
			v, err := b.defaults.Evaluate(p)
			if err != nil {
				return nil, &DefaultError{Parameter: p.Name, Committed: applied, Err: err}
			}
			value = v
		}

		v, err := b.values.BindValue(p, value, p.Default != "")
		if err != nil {
			if IsSwallowable(err) {
				b.recordSwallowed(p.Name, err)
				continue
			}
			return nil, &DefaultError{Parameter: p.Name, Committed: applied, Err: err}
		}

		st.values[p.Name] = v
		st.bound[strings.ToLower(p.Name)] = true
		applied = append(applied, p.Name)
	}
	return applied, nil
}

// resolveSet settles which parameter set the invocation runs in. When
// several remain, the default set breaks the tie; without one the
// invocation is ambiguous. Commands that declare no sets at all
// resolve trivially.
func (b *Binder) resolveSet(st *bindingState) (command.SetFlags, error) {
	declared := b.meta.DefaultSet
	for _, p := range b.meta.Parameters() {
		for _, e := range p.Sets {
			if !e.InAllSets {
				declared |= e.Sets
			}
		}
	}
	if declared == 0 {
		return st.sets, nil
	}

	live := st.sets & declared
	if live.Count() == 1 {
		return live, nil
	}
	if b.meta.DefaultSet != 0 && live.Intersects(b.meta.DefaultSet) {
		return st.sets & b.meta.DefaultSet, nil
	}
	return 0, &BindError{Code: CodeAmbiguousSet}
}

func (b *Binder) commit(st *bindingState, p *command.Parameter, v any) error {
	st.values[p.Name] = v
	st.bound[strings.ToLower(p.Name)] = true

	narrowed := st.sets & p.Flags()
	if narrowed == 0 {
		return &BindError{Code: CodeAmbiguousSet, Parameter: p.Name}
	}
	st.sets = narrowed
	b.log.Debug("bound parameter", "parameter", p.Name, "sets", uint32(st.sets))
	return nil
}

func (b *Binder) unbound(st *bindingState) []*command.Parameter {
	var out []*command.Parameter
	for _, p := range b.meta.Parameters() {
		if !st.isBound(p) {
			out = append(out, p)
		}
	}
	return out
}

func (b *Binder) recordSwallowed(param string, err error) {
	b.log.Debug("validation failure swallowed", "parameter", param, "err", err)
	b.rec.Record(diag.Event{
		Kind:   diag.DefaultSkipped,
		Name:   param,
		Detail: err.Error(),
	})
}
