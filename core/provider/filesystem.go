package provider

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"
)

// Filesystem adapts an afero filesystem into a Provider. The backing
// filesystem decides whether the drive is the real OS disk, a memory
// tree for tests, or anything else afero can express.
type Filesystem struct {
	fs afero.Fs
}

// NewFilesystem returns a Filesystem drive provider over fs.
func NewFilesystem(fs afero.Fs) *Filesystem {
	return &Filesystem{fs: fs}
}

// Fs exposes the backing filesystem for content operations.
func (f *Filesystem) Fs() afero.Fs {
	return f.fs
}

// Scheme implements Provider.Scheme.
func (f *Filesystem) Scheme() string {
	return "filesystem"
}

// IsFilesystem implements Provider.IsFilesystem.
func (f *Filesystem) IsFilesystem() bool {
	return true
}

// Item implements Provider.Item.
func (f *Filesystem) Item(p string) (Item, error) {
	fi, err := f.fs.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return Item{
		Name:      path.Base(p),
		Path:      p,
		Container: fi.IsDir(),
		Size:      fi.Size(),
	}, nil
}

// List implements Provider.List.
func (f *Filesystem) List(p string) ([]Item, error) {
	entries, err := afero.ReadDir(f.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	items := make([]Item, 0, len(entries))
	for _, fi := range entries {
		items = append(items, Item{
			Name:      fi.Name(),
			Path:      path.Join(p, fi.Name()),
			Container: fi.IsDir(),
			Size:      fi.Size(),
		})
	}
	return items, nil
}

// Glob implements Provider.Glob.
func (f *Filesystem) Glob(pattern string) ([]string, error) {
	matches, err := afero.Glob(f.fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	return matches, nil
}

// Open implements FileOpener.Open.
func (f *Filesystem) Open(p string) (io.ReadCloser, error) {
	fd, err := f.fs.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fd, nil
}

var (
	_ Provider   = (*Filesystem)(nil)
	_ FileOpener = (*Filesystem)(nil)
)
