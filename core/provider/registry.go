package provider

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/nutshell-sh/nutshell/core/wildcard"
)

// ResolvedPath is a provider-qualified location.
type ResolvedPath struct {
	// Drive is the drive name the path resolved through.
	Drive string
	// Path is the provider-absolute, cleaned, slash-separated path.
	Path string

	display string
}

// String renders the path the way users address it: plain for the
// default drive, drive-qualified otherwise.
func (p ResolvedPath) String() string {
	if p.display != "" {
		return p.display
	}
	if p.Drive == "" {
		return p.Path
	}
	return p.Drive + ":" + p.Path
}

// Drive binds a name to a Provider.
type Drive struct {
	Name     string
	Provider Provider
}

// Registry holds the mounted drives of a session.
//
// Like the rest of the resolution machinery it does no internal
// locking, callers serialize access.
type Registry struct {
	drives       map[string]*Drive
	defaultDrive string
	home         string
}

// NewRegistry returns an empty Registry. The first mounted drive
// becomes the default until SetDefault changes it.
func NewRegistry() *Registry {
	return &Registry{drives: make(map[string]*Drive)}
}

// Mount adds a drive. Drive names are case-insensitive, start with a
// letter and contain only letters and digits.
func (r *Registry) Mount(name string, p Provider) error {
	key := strings.ToLower(name)
	if !validDriveName(key) {
		return fmt.Errorf("invalid drive name %q", name)
	}
	if _, ok := r.drives[key]; ok {
		return fmt.Errorf("drive %q is already mounted", name)
	}
	r.drives[key] = &Drive{Name: key, Provider: p}
	if r.defaultDrive == "" {
		r.defaultDrive = key
	}
	return nil
}

// SetDefault selects the drive unqualified paths resolve through.
func (r *Registry) SetDefault(name string) error {
	key := strings.ToLower(name)
	if _, ok := r.drives[key]; !ok {
		return fmt.Errorf("drive %q: %w", name, ErrDriveNotFound)
	}
	r.defaultDrive = key
	return nil
}

// DefaultDrive returns the name of the default drive, empty when
// nothing is mounted.
func (r *Registry) DefaultDrive() string {
	return r.defaultDrive
}

// SetHome sets the location "~" expands to. The path may carry a drive
// qualifier, otherwise it is taken on the default drive.
func (r *Registry) SetHome(p string) {
	r.home = p
}

// Home resolves the configured home location.
func (r *Registry) Home() (ResolvedPath, error) {
	if r.home == "" {
		return ResolvedPath{}, ErrHomeNotSet
	}
	drive, rest, ok := SplitQualifier(r.home)
	if !ok {
		drive, rest = r.defaultDrive, r.home
	}
	return r.makePath(drive, rest)
}

// Drive looks up a mounted drive by name.
func (r *Registry) Drive(name string) (*Drive, bool) {
	d, ok := r.drives[strings.ToLower(name)]
	return d, ok
}

// Drives returns all mounted drives sorted by name.
func (r *Registry) Drives() []*Drive {
	out := make([]*Drive, 0, len(r.drives))
	for _, d := range r.drives {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByScheme finds the first drive whose provider has the given scheme,
// in drive name order.
func (r *Registry) ByScheme(scheme string) (Provider, error) {
	for _, d := range r.Drives() {
		if d.Provider.Scheme() == scheme {
			return d.Provider, nil
		}
	}
	return nil, fmt.Errorf("scheme %q: %w", scheme, ErrProviderNotFound)
}

// SplitQualifier splits a leading drive qualifier off raw. A qualifier
// is a letter followed by letters or digits, ending in a colon.
func SplitQualifier(raw string) (drive, rest string, ok bool) {
	idx := strings.IndexByte(raw, ':')
	if idx < 1 || !validDriveName(strings.ToLower(raw[:idx])) {
		return "", raw, false
	}
	return strings.ToLower(raw[:idx]), raw[idx+1:], true
}

// Expand resolves raw against the current location into a drive and a
// cleaned provider-absolute path. It handles "~" expansion, drive
// qualifiers and relative paths. The result's existence is not
// checked.
func (r *Registry) Expand(cwd ResolvedPath, raw string) (ResolvedPath, error) {
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, err := r.Home()
		if err != nil {
			return ResolvedPath{}, err
		}
		if raw == "~" {
			return home, nil
		}
		return r.makePath(home.Drive, path.Join(home.Path, raw[2:]))
	}

	if drive, rest, ok := SplitQualifier(raw); ok {
		return r.makePath(drive, rest)
	}

	drive := cwd.Drive
	if drive == "" {
		drive = r.defaultDrive
	}
	if strings.HasPrefix(raw, "/") {
		return r.makePath(drive, raw)
	}
	return r.makePath(drive, path.Join(cwd.Path, raw))
}

// ResolveLiteral expands raw and requires the item to exist. Wildcard
// characters are treated as literal text.
func (r *Registry) ResolveLiteral(cwd ResolvedPath, raw string) (ResolvedPath, Item, error) {
	rp, err := r.Expand(cwd, raw)
	if err != nil {
		return ResolvedPath{}, Item{}, err
	}
	d, _ := r.Drive(rp.Drive)
	item, err := d.Provider.Item(rp.Path)
	if err != nil {
		return ResolvedPath{}, Item{}, fmt.Errorf("%s: %w", rp, err)
	}
	return rp, item, nil
}

// ResolveGlobbed expands raw and returns every existing item it names.
// Patterns go through the drive's glob, literal paths report zero or
// one result.
func (r *Registry) ResolveGlobbed(cwd ResolvedPath, raw string) ([]ResolvedPath, error) {
	rp, err := r.Expand(cwd, raw)
	if err != nil {
		return nil, err
	}
	d, _ := r.Drive(rp.Drive)

	if !wildcard.HasMeta(rp.Path) {
		if _, err := d.Provider.Item(rp.Path); err != nil {
			return nil, fmt.Errorf("%s: %w", rp, err)
		}
		return []ResolvedPath{rp}, nil
	}

	matches, err := d.Provider.Glob(rp.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rp, err)
	}
	out := make([]ResolvedPath, 0, len(matches))
	for _, m := range matches {
		p, err := r.makePath(rp.Drive, m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Registry) makePath(drive, rest string) (ResolvedPath, error) {
	d, ok := r.drives[drive]
	if !ok {
		return ResolvedPath{}, fmt.Errorf("drive %q: %w", drive, ErrDriveNotFound)
	}
	cleaned := path.Clean("/" + rest)
	rp := ResolvedPath{Drive: d.Name, Path: cleaned}
	if d.Name == r.defaultDrive {
		rp.display = cleaned
	}
	return rp, nil
}

func validDriveName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
