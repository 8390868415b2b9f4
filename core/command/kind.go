// Package command defines the command model shared by the resolver and
// the parameter binder: command kinds, resolved command descriptors and
// declared parameter metadata.
package command

import "strings"

// Kind is a bit set of command categories. Resolution requests carry
// the set of kinds the caller will accept, resolved commands carry
// exactly one bit.
type Kind uint16

const (
	Alias Kind = 1 << iota
	Function
	Filter
	Configuration
	Builtin
	ExternalScript
	Application

	// AllKinds accepts every command category.
	AllKinds = Alias | Function | Filter | Configuration | Builtin | ExternalScript | Application

	// FunctionLike groups the categories stored in function tables.
	FunctionLike = Function | Filter | Configuration

	// PathBased groups the categories resolved from the filesystem.
	PathBased = ExternalScript | Application
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{Alias, "alias"},
	{Function, "function"},
	{Filter, "filter"},
	{Configuration, "configuration"},
	{Builtin, "builtin"},
	{ExternalScript, "external script"},
	{Application, "application"},
}

// Has reports whether any of the categories in other are present in k.
func (k Kind) Has(other Kind) bool {
	return k&other != 0
}

func (k Kind) String() string {
	var parts []string
	for _, kn := range kindNames {
		if k.Has(kn.kind) {
			parts = append(parts, kn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
