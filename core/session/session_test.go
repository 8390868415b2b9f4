package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutshell-sh/nutshell/core/command"
)

func alias(name, def string) *command.AliasInfo {
	return &command.AliasInfo{AliasName: name, Definition: def}
}

func fn(name string) *Function {
	return &Function{Info: &command.FunctionInfo{FuncName: name}}
}

func TestTable(t *testing.T) {
	tbl := NewTable[*command.AliasInfo]()
	tbl.Set(alias("ls", "Get-ChildItem"))
	tbl.Set(alias("GCI", "Get-ChildItem"))

	got, ok := tbl.Get("LS")
	require.True(t, ok)
	assert.Equal(t, "ls", got.Name())

	all := tbl.All()
	require.Len(t, all, 2)
	assert.Equal(t, "GCI", all[0].Name())
	assert.Equal(t, "ls", all[1].Name())

	// The snapshot is detached from later edits.
	tbl.Set(alias("cat", "Get-Content"))
	assert.Len(t, all, 2)
	assert.Equal(t, 3, tbl.Len())

	assert.True(t, tbl.Remove("gci"))
	assert.False(t, tbl.Remove("gci"))
}

func TestScopeLookup(t *testing.T) {
	s := New()
	s.GlobalScope().Aliases.Set(alias("ll", "Get-ChildItem"))
	s.GlobalScope().Functions.Set(fn("Outer"))

	inner := s.PushScope()
	inner.Aliases.Set(alias("ll", "Get-Location"))
	inner.Functions.Set(fn("Inner"))

	// Nearest definition wins.
	a, ok := s.LookupAlias("ll")
	require.True(t, ok)
	assert.Equal(t, "Get-Location", a.Definition)

	_, ok = s.LookupFunction("Outer")
	assert.True(t, ok)
	_, ok = s.LookupFunction("Inner")
	assert.True(t, ok)

	require.NoError(t, s.PopScope())
	a, ok = s.LookupAlias("ll")
	require.True(t, ok)
	assert.Equal(t, "Get-ChildItem", a.Definition)
	_, ok = s.LookupFunction("Inner")
	assert.False(t, ok)

	assert.Error(t, s.PopScope(), "global scope must not pop")
}

func TestAliasEnumerationScopes(t *testing.T) {
	s := New()
	s.GlobalScope().Aliases.Set(alias("ll", "outer"))
	s.GlobalScope().Aliases.Set(alias("gl", "Get-Location"))
	s.PushScope().Aliases.Set(alias("ll", "inner"))

	nearest := s.Aliases(false)
	require.Len(t, nearest, 2)
	assert.Equal(t, "Get-Location", nearest[0].Definition)
	assert.Equal(t, "inner", nearest[1].Definition)

	all := s.Aliases(true)
	require.Len(t, all, 3)
}

func TestVars(t *testing.T) {
	s := New()
	s.GlobalScope().Vars.SetVar("answer", 42)
	s.PushScope().Vars.SetVar("local", "x")

	v, ok := s.LookupVar("answer")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	assert.Equal(t, []string{"answer", "local"}, s.VarNames())

	require.NoError(t, s.PopScope())
	_, ok = s.LookupVar("local")
	assert.False(t, ok)
}

func TestEnviron(t *testing.T) {
	e := EnvironFromList([]string{"HOME=/home/alice", "PATH=/bin:/usr/bin"})
	assert.Equal(t, "/home/alice", e.Getenv("HOME"))

	e.Setenv("LANG", "C")
	v, ok := e.LookupEnv("LANG")
	require.True(t, ok)
	assert.Equal(t, "C", v)

	e.Unsetenv("PATH")
	_, ok = e.LookupEnv("PATH")
	assert.False(t, ok)

	assert.Equal(t, []string{"HOME=/home/alice", "LANG=C"}, e.Environ())
	assert.Equal(t, "home is /home/alice", e.Expand("home is $HOME"))
}

func TestModules(t *testing.T) {
	mods := NewModules()
	files := NewModule("files")
	files.Aliases.Set(alias("gci", "Get-ChildItem"))
	require.NoError(t, mods.Add(files))
	assert.Error(t, mods.Add(NewModule("Files")), "case-insensitive duplicate")

	got, ok := mods.Get("FILES")
	require.True(t, ok)
	assert.Equal(t, "files", got.Name)

	assert.Len(t, mods.All(), 1)
}

func TestTrustAndBreakpoint(t *testing.T) {
	s := New()
	assert.Equal(t, command.TrustFull, s.CurrentMode())
	s.SetMode(command.TrustRestricted)
	assert.Equal(t, command.TrustRestricted, s.CurrentMode())

	assert.False(t, s.InBreakpoint())
	s.SetBreakpoint(true)
	assert.True(t, s.InBreakpoint())
}
