package command

import "path"

// Info describes one resolved command. The concrete type reports which
// category the command belongs to and everything an invoker needs to
// run it.
type Info interface {
	// Name is the command's own name, not necessarily the name it was
	// looked up under.
	Name() string
	Kind() Kind
	// DefiningMode is the trust level the command was defined under.
	DefiningMode() TrustMode
}

// AliasInfo is a name that expands to replacement command text. The
// first word of the definition names the target command.
type AliasInfo struct {
	AliasName   string
	Definition  string
	Description string
	// Module is the defining module, empty for session-local aliases.
	Module string
	Mode   TrustMode
}

// Name implements Info.Name.
func (a *AliasInfo) Name() string { return a.AliasName }

// Kind implements Info.Kind.
func (a *AliasInfo) Kind() Kind { return Alias }

// DefiningMode implements Info.DefiningMode.
func (a *AliasInfo) DefiningMode() TrustMode { return a.Mode }

// FunctionInfo is a command defined in the session itself, with full
// parameter metadata.
type FunctionInfo struct {
	FuncName string
	Params   *Metadata
	// Module is the defining module, empty for session-local
	// functions.
	Module string
	Mode   TrustMode
	// Global records whether the function lives in the global scope.
	// Non-global trusted functions are hidden while a breakpoint is
	// active in a less trusted mode.
	Global bool
}

// Name implements Info.Name.
func (f *FunctionInfo) Name() string { return f.FuncName }

// Kind implements Info.Kind.
func (f *FunctionInfo) Kind() Kind { return Function }

// DefiningMode implements Info.DefiningMode.
func (f *FunctionInfo) DefiningMode() TrustMode { return f.Mode }

// FilterInfo is a function variant applied per pipeline element.
type FilterInfo struct {
	FunctionInfo
}

// Kind implements Info.Kind.
func (f *FilterInfo) Kind() Kind { return Filter }

// ConfigurationInfo is a function variant declaring a configuration
// document.
type ConfigurationInfo struct {
	FunctionInfo
}

// Kind implements Info.Kind.
func (c *ConfigurationInfo) Kind() Kind { return Configuration }

// BuiltinInfo is a command compiled into the interpreter.
type BuiltinInfo struct {
	BuiltinName string
	// Namespace is the module-like namespace the builtin is grouped
	// under, used by qualified lookups.
	Namespace string
	Params    *Metadata
	Mode      TrustMode
	// Summary is a one line description shown by help output.
	Summary string
}

// Name implements Info.Name.
func (b *BuiltinInfo) Name() string { return b.BuiltinName }

// Kind implements Info.Kind.
func (b *BuiltinInfo) Kind() Kind { return Builtin }

// DefiningMode implements Info.DefiningMode.
func (b *BuiltinInfo) DefiningMode() TrustMode { return b.Mode }

// ExternalScriptInfo is a script file found on disk. Its name is the
// resolved path, mirroring how script commands print.
type ExternalScriptInfo struct {
	Path string
	Mode TrustMode
}

// Name implements Info.Name.
func (e *ExternalScriptInfo) Name() string { return e.Path }

// Kind implements Info.Kind.
func (e *ExternalScriptInfo) Kind() Kind { return ExternalScript }

// DefiningMode implements Info.DefiningMode.
func (e *ExternalScriptInfo) DefiningMode() TrustMode { return e.Mode }

// ApplicationInfo is a non-script executable found on disk. Its name
// is the bare file name, the full location is in Path.
type ApplicationInfo struct {
	Path      string
	Extension string
	Mode      TrustMode
}

// Name implements Info.Name.
func (a *ApplicationInfo) Name() string { return path.Base(a.Path) }

// Kind implements Info.Kind.
func (a *ApplicationInfo) Kind() Kind { return Application }

// DefiningMode implements Info.DefiningMode.
func (a *ApplicationInfo) DefiningMode() TrustMode { return a.Mode }

var (
	_ Info = (*AliasInfo)(nil)
	_ Info = (*FunctionInfo)(nil)
	_ Info = (*FilterInfo)(nil)
	_ Info = (*ConfigurationInfo)(nil)
	_ Info = (*BuiltinInfo)(nil)
	_ Info = (*ExternalScriptInfo)(nil)
	_ Info = (*ApplicationInfo)(nil)
)
