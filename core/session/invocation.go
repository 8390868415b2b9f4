package session

import (
	"io"

	"github.com/nutshell-sh/nutshell/core/binder"
	"github.com/nutshell-sh/nutshell/core/command"
)

// StdIO is the stream triple a hosted command runs against.
type StdIO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Invocation is everything a hosted command sees while it runs.
type Invocation struct {
	// Name is the name the command was invoked under, which may be an
	// alias rather than the command's own name.
	Name    string
	Session *Session
	// Args is the completed parameter binding.
	Args *binder.Report
	IO   StdIO
	// Exit asks the surrounding interpreter to stop with a status.
	// It is nil outside interactive sessions.
	Exit func(code int)
}

// Action is the entry point of a hosted command implementation. The
// returned value is the command's exit status.
type Action func(inv *Invocation) int

// Builtin pairs builtin command metadata with its implementation.
type Builtin struct {
	*command.BuiltinInfo
	Run Action
}

// Function pairs function metadata with its implementation. Info is
// one of *command.FunctionInfo, *command.FilterInfo or
// *command.ConfigurationInfo.
type Function struct {
	Info command.Info
	Run  Action
}

// Name implements command.Info.Name.
func (f *Function) Name() string { return f.Info.Name() }

// Kind implements command.Info.Kind.
func (f *Function) Kind() command.Kind { return f.Info.Kind() }

// DefiningMode implements command.Info.DefiningMode.
func (f *Function) DefiningMode() command.TrustMode { return f.Info.DefiningMode() }

var (
	_ command.Info = (*Builtin)(nil)
	_ command.Info = (*Function)(nil)
)
