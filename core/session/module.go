package session

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nutshell-sh/nutshell/core/command"
)

// Module is an imported command module. Qualified lookups like
// "files\Get-ChildItem" consult its export tables.
type Module struct {
	Name      string
	Aliases   *Table[*command.AliasInfo]
	Functions *Table[*Function]
}

// NewModule returns an empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:      name,
		Aliases:   NewTable[*command.AliasInfo](),
		Functions: NewTable[*Function](),
	}
}

// Modules is the registry of imported modules, keyed case-insensitively
// by module name.
type Modules struct {
	modules map[string]*Module
}

// NewModules returns an empty registry.
func NewModules() *Modules {
	return &Modules{modules: make(map[string]*Module)}
}

// Add registers a module.
func (m *Modules) Add(mod *Module) error {
	key := strings.ToLower(mod.Name)
	if _, ok := m.modules[key]; ok {
		return fmt.Errorf("module %q is already imported", mod.Name)
	}
	m.modules[key] = mod
	return nil
}

// Get looks up an imported module by name.
func (m *Modules) Get(name string) (*Module, bool) {
	mod, ok := m.modules[strings.ToLower(name)]
	return mod, ok
}

// All returns the imported modules sorted by name.
func (m *Modules) All() []*Module {
	out := make([]*Module, 0, len(m.modules))
	for _, mod := range m.modules {
		out = append(out, mod)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
