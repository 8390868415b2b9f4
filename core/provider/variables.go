package provider

import (
	"fmt"
	"path"
	"strings"

	"github.com/nutshell-sh/nutshell/core/wildcard"
)

// VarReader is the variable store backing a Variables drive.
type VarReader interface {
	GetVar(name string) (any, bool)
	// VarNames returns all variable names, sorted.
	VarNames() []string
}

// Variables exposes session variables as a drive, so "var:name" paths
// work in the location builtins. It is deliberately not
// filesystem-backed: command resolution must refuse to load commands
// from it.
type Variables struct {
	vars VarReader
}

// NewVariables returns a Variables drive provider over vars.
func NewVariables(vars VarReader) *Variables {
	return &Variables{vars: vars}
}

// Scheme implements Provider.Scheme.
func (v *Variables) Scheme() string {
	return "variables"
}

// IsFilesystem implements Provider.IsFilesystem.
func (v *Variables) IsFilesystem() bool {
	return false
}

// Item implements Provider.Item.
func (v *Variables) Item(p string) (Item, error) {
	if p == "/" {
		return Item{Name: "/", Path: "/", Container: true}, nil
	}
	name, ok := varName(p)
	if !ok {
		return Item{}, ErrNotFound
	}
	if _, ok := v.vars.GetVar(name); !ok {
		return Item{}, ErrNotFound
	}
	return Item{Name: name, Path: p}, nil
}

// List implements Provider.List.
func (v *Variables) List(p string) ([]Item, error) {
	if p != "/" {
		return nil, ErrNotFound
	}
	names := v.vars.VarNames()
	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Item{Name: name, Path: "/" + name})
	}
	return items, nil
}

// Glob implements Provider.Glob.
func (v *Variables) Glob(pattern string) ([]string, error) {
	pat, ok := varName(pattern)
	if !ok {
		return nil, nil
	}
	m, err := wildcard.Compile(pat, false)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	var out []string
	for _, name := range v.vars.VarNames() {
		if m.Match(name) {
			out = append(out, "/"+name)
		}
	}
	return out, nil
}

// varName extracts the single path segment variables live under.
func varName(p string) (string, bool) {
	name := strings.TrimPrefix(p, "/")
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return path.Clean(name), true
}

var _ Provider = (*Variables)(nil)
