package session

import "github.com/nutshell-sh/nutshell/core/command"

// Scope is one level of the session's scope chain. Lookups walk from
// the innermost scope outward, enumeration can optionally surface
// entries shadowed by inner scopes.
type Scope struct {
	parent *Scope
	global bool

	Aliases   *Table[*command.AliasInfo]
	Functions *Table[*Function]
	Vars      *VarTable
}

func newScope(parent *Scope) *Scope {
	return &Scope{
		parent:    parent,
		global:    parent == nil,
		Aliases:   NewTable[*command.AliasInfo](),
		Functions: NewTable[*Function](),
		Vars:      NewVarTable(),
	}
}

// Parent returns the enclosing scope, nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Global reports whether this is the global scope.
func (s *Scope) Global() bool {
	return s.global
}
