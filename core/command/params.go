package command

import (
	"fmt"
	"math/bits"
	"strings"
)

// PositionUnset marks a set entry whose parameter can only be bound by
// name.
const PositionUnset = -1

// SetFlags is a bit mask of parameter sets. Each declared set of a
// command owns one bit.
type SetFlags uint32

// AllSets has every set bit raised.
const AllSets = ^SetFlags(0)

// Intersects reports whether the two masks share any set.
func (f SetFlags) Intersects(other SetFlags) bool {
	return f&other != 0
}

// Count returns the number of raised set bits.
func (f SetFlags) Count() int {
	return bits.OnesCount32(uint32(f))
}

// ValueType is the declared value type of a parameter. The binder's
// type checker uses it to accept, reject or coerce argument values.
type ValueType int

const (
	// TypeAny accepts any value without conversion.
	TypeAny ValueType = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	// TypeSwitch is a boolean that is presence-activated: naming the
	// parameter with no value binds true.
	TypeSwitch
	TypeStringSlice
)

func (t ValueType) String() string {
	switch t {
	case TypeAny:
		return "any"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeSwitch:
		return "switch"
	case TypeStringSlice:
		return "string list"
	default:
		return fmt.Sprintf("valuetype(%d)", int(t))
	}
}

// SetEntry describes how one parameter participates in some parameter
// sets: the sets it belongs to, its positional index there and whether
// it is mandatory.
type SetEntry struct {
	Sets SetFlags
	// InAllSets marks the entry live in every set, current and future,
	// independent of the Sets mask.
	InAllSets bool
	Position  int
	Mandatory bool
	// FromRemaining marks the parameter as the catch-all for leftover
	// positional arguments.
	FromRemaining bool
}

// AppliesTo reports whether the entry is live when valid is the mask
// of parameter sets still in play.
func (e SetEntry) AppliesTo(valid SetFlags) bool {
	return e.InAllSets || e.Sets.Intersects(valid)
}

// Parameter is one declared parameter of a command.
type Parameter struct {
	Name string
	Type ValueType
	// Sets has at least one entry.
	Sets []SetEntry
	// Default is the default value expression, only meaningful when
	// HasDefault is raised. An empty expression binds the type's zero
	// value without coercion.
	Default    string
	HasDefault bool
	// Validate, if set, checks the converted value before it binds.
	Validate func(value any) error
	Help     string
}

// NewParameter returns a parameter that is named-only and live in all
// sets. The fluent With/At helpers refine it.
func NewParameter(name string, typ ValueType) *Parameter {
	return &Parameter{
		Name: name,
		Type: typ,
		Sets: []SetEntry{{Sets: AllSets, InAllSets: true, Position: PositionUnset}},
	}
}

func (p *Parameter) lastEntry() *SetEntry {
	return &p.Sets[len(p.Sets)-1]
}

// At gives the last declared set entry a positional index.
func (p *Parameter) At(pos int) *Parameter {
	p.lastEntry().Position = pos
	return p
}

// Required marks the last declared set entry mandatory.
func (p *Parameter) Required() *Parameter {
	p.lastEntry().Mandatory = true
	return p
}

// Remaining marks the last declared set entry as the catch-all for
// leftover positional arguments.
func (p *Parameter) Remaining() *Parameter {
	p.lastEntry().FromRemaining = true
	return p
}

// InSets narrows the last declared set entry to the given sets.
func (p *Parameter) InSets(sets SetFlags) *Parameter {
	e := p.lastEntry()
	e.InAllSets = false
	e.Sets = sets
	return p
}

// AlsoInSets opens an additional set entry, which later At/Required
// calls refine.
func (p *Parameter) AlsoInSets(sets SetFlags) *Parameter {
	p.Sets = append(p.Sets, SetEntry{Sets: sets, Position: PositionUnset})
	return p
}

// WithDefault attaches a default value expression.
func (p *Parameter) WithDefault(expr string) *Parameter {
	p.Default = expr
	p.HasDefault = true
	return p
}

// WithValidator attaches a post-conversion value check.
func (p *Parameter) WithValidator(fn func(value any) error) *Parameter {
	p.Validate = fn
	return p
}

// WithHelp attaches help text.
func (p *Parameter) WithHelp(text string) *Parameter {
	p.Help = text
	return p
}

// Flags returns the union of sets the parameter participates in.
func (p *Parameter) Flags() SetFlags {
	var f SetFlags
	for _, e := range p.Sets {
		if e.InAllSets {
			return AllSets
		}
		f |= e.Sets
	}
	return f
}

// MandatoryIn reports whether the parameter is mandatory in any of the
// given sets.
func (p *Parameter) MandatoryIn(valid SetFlags) bool {
	for _, e := range p.Sets {
		if e.AppliesTo(valid) && e.Mandatory {
			return true
		}
	}
	return false
}

// TakesRemainingIn reports whether the parameter catches leftover
// positional arguments in any of the given sets.
func (p *Parameter) TakesRemainingIn(valid SetFlags) bool {
	for _, e := range p.Sets {
		if e.AppliesTo(valid) && e.FromRemaining {
			return true
		}
	}
	return false
}

// AmbiguousNameError reports a parameter name prefix that matches more
// than one declared parameter.
type AmbiguousNameError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("parameter name %q is ambiguous: matches %s",
		e.Name, strings.Join(e.Candidates, ", "))
}

// Metadata is the full parameter declaration of one command.
type Metadata struct {
	// DefaultSet is the mask of the declared default parameter set,
	// zero when the command has none.
	DefaultSet SetFlags

	params   []*Parameter
	byName   map[string]*Parameter
	setNames []string
}

// NewMetadata collects declared parameters. It panics on a duplicate
// or empty parameter name, which is a defect in the declaring command.
func NewMetadata(params ...*Parameter) *Metadata {
	m := &Metadata{byName: make(map[string]*Parameter, len(params))}
	for _, p := range params {
		if p.Name == "" {
			panic("command: parameter with empty name")
		}
		key := strings.ToLower(p.Name)
		if _, dup := m.byName[key]; dup {
			panic(fmt.Sprintf("command: duplicate parameter %q", p.Name))
		}
		m.byName[key] = p
		m.params = append(m.params, p)
	}
	return m
}

// WithDefaultSet declares the default parameter set mask.
func (m *Metadata) WithDefaultSet(sets SetFlags) *Metadata {
	m.DefaultSet = sets
	return m
}

// WithSetNames names the parameter sets, bit i taking names[i]. The
// names only feed diagnostics.
func (m *Metadata) WithSetNames(names ...string) *Metadata {
	m.setNames = names
	return m
}

// Parameters returns the declared parameters in declaration order.
func (m *Metadata) Parameters() []*Parameter {
	out := make([]*Parameter, len(m.params))
	copy(out, m.params)
	return out
}

// Resolve finds the declared parameter for a name given on the command
// line. Matching is case-insensitive and accepts any unambiguous
// prefix of a full name. Unknown names return nil without error so the
// caller can pass them through.
func (m *Metadata) Resolve(name string) (*Parameter, error) {
	key := strings.ToLower(name)
	if p, ok := m.byName[key]; ok {
		return p, nil
	}

	var found *Parameter
	var matches []string
	for _, p := range m.params {
		if strings.HasPrefix(strings.ToLower(p.Name), key) {
			found = p
			matches = append(matches, p.Name)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return found, nil
	default:
		return nil, &AmbiguousNameError{Name: name, Candidates: matches}
	}
}

// DescribeSets renders a set mask for diagnostics using the declared
// set names where they exist.
func (m *Metadata) DescribeSets(flags SetFlags) string {
	if flags == AllSets {
		return "all"
	}
	var parts []string
	for i := 0; i < 32; i++ {
		bit := SetFlags(1) << i
		if !flags.Intersects(bit) {
			continue
		}
		if i < len(m.setNames) {
			parts = append(parts, m.setNames[i])
		} else {
			parts = append(parts, fmt.Sprintf("set%d", i))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
