// Package provider exposes the interpreter's drive namespaces. A drive
// pairs a name like "fs" or "var" with a Provider that resolves paths
// inside it. Command resolution, the location builtins and completion
// all address items through the same registry.
package provider

import (
	"errors"
	"fmt"
	"io"
)

// Path resolution failures callers may want to tell apart. The command
// resolver swallows all of them, everything else treats them normally.
var (
	// ErrNotFound reports a path whose item does not exist.
	ErrNotFound = errors.New("item does not exist")
	// ErrDriveNotFound reports an unknown drive qualifier.
	ErrDriveNotFound = errors.New("drive does not exist")
	// ErrProviderNotFound reports an unknown provider scheme.
	ErrProviderNotFound = errors.New("provider does not exist")
	// ErrAmbiguous reports a path that resolved to more than one item
	// where a single one was required.
	ErrAmbiguous = errors.New("path resolves to more than one item")
	// ErrHomeNotSet reports a "~" path used before a home location was
	// configured.
	ErrHomeNotSet = errors.New("home location is not set")
	// ErrNotFilesystem reports a drive whose provider cannot back
	// file-based operations.
	ErrNotFilesystem = errors.New("provider is not filesystem-backed")
)

// Item is one addressable entry inside a provider.
type Item struct {
	// Name is the base name of the item.
	Name string
	// Path is the provider-absolute path.
	Path string
	// Container is true for directories and other item holders.
	Container bool
	Size      int64
}

// Provider resolves paths inside one namespace. Paths handed to a
// Provider are always absolute and slash-separated.
type Provider interface {
	// Scheme is the provider family name, e.g. "filesystem".
	Scheme() string
	// IsFilesystem reports whether items are real files that commands
	// can be read or executed from.
	IsFilesystem() bool
	// Item describes the item at path, or ErrNotFound.
	Item(path string) (Item, error)
	// List returns the children of a container item, sorted by name.
	List(path string) ([]Item, error)
	// Glob returns the sorted provider-absolute paths matching a
	// wildcard pattern.
	Glob(pattern string) ([]string, error)
}

// FileOpener is the optional interface of providers whose items can be
// opened for reading, like script files and command content.
type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

// OpenFile opens the item at path on a drive whose provider supports
// content access.
func OpenFile(d *Drive, path string) (io.ReadCloser, error) {
	opener, ok := d.Provider.(FileOpener)
	if !ok {
		return nil, fmt.Errorf("drive %q: %w", d.Name, ErrNotFilesystem)
	}
	return opener.Open(path)
}
