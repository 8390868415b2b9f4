package session

import "sort"

// VarTable holds the variables of one scope. Names are case-sensitive.
type VarTable struct {
	vars map[string]any
}

// NewVarTable returns an empty variable table.
func NewVarTable() *VarTable {
	return &VarTable{vars: make(map[string]any)}
}

// GetVar returns the value of name and whether it is set.
func (t *VarTable) GetVar(name string) (any, bool) {
	v, ok := t.vars[name]
	return v, ok
}

// SetVar sets name to value.
func (t *VarTable) SetVar(name string, value any) {
	t.vars[name] = value
}

// UnsetVar removes name, reporting whether it existed.
func (t *VarTable) UnsetVar(name string) bool {
	if _, ok := t.vars[name]; !ok {
		return false
	}
	delete(t.vars, name)
	return true
}

// VarNames returns all variable names, sorted.
func (t *VarTable) VarNames() []string {
	names := make([]string, 0, len(t.vars))
	for n := range t.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
