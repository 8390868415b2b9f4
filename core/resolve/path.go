package resolve

import (
	"fmt"
	"path"
	"strings"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/diag"
	"github.com/nutshell-sh/nutshell/core/provider"
	"github.com/nutshell-sh/nutshell/core/wildcard"
)

// pathLike reports whether a name addresses the filesystem rather
// than a table entry.
func pathLike(name string) bool {
	if strings.Contains(name, "/") {
		return true
	}
	_, _, ok := provider.SplitQualifier(name)
	return ok
}

// providerPathLike reports whether the provider layer should resolve
// the name directly: drive-qualified, home-relative, or a wildcard
// with a directory part.
func providerPathLike(name string) bool {
	if _, _, ok := provider.SplitQualifier(name); ok {
		return true
	}
	if name == "~" || strings.HasPrefix(name, "~/") {
		return true
	}
	return wildcard.HasMeta(name) && strings.Contains(name, "/")
}

func rooted(name string) bool {
	return strings.HasPrefix(name, "/")
}

// relativePrefixed names skip the lookup-directory scan and resolve
// against the current location instead.
func relativePrefixed(name string) bool {
	return strings.HasPrefix(name, ".") || name == "~" || strings.HasPrefix(name, "~/")
}

func (s *Searcher) allowListed(name string) bool {
	for _, prefix := range s.r.sess.Search.PathAllowList {
		if prefix == "*" || strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// enterPathStages runs the gate between table and filesystem stages.
// A denied path lookup ends the whole search without touching the
// filesystem.
func (s *Searcher) enterPathStages() {
	s.state = StateBuiltinPath
	if !s.req.Kinds.Has(command.PathBased) {
		s.state = StateExhausted
		return
	}
	name := s.req.Name
	if s.req.Origin == OriginRunspace && pathLike(name) && !s.allowListed(name) {
		s.audit(diag.PathLookupDenied, name, "path outside the allow list")
		s.state = StateExhausted
		return
	}
	s.queue = s.providerPathMatches()
	if len(s.queue) > 0 {
		s.skipGeneric = true
	}
}

// providerPathMatches resolves drive-qualified and wildcard paths in
// one provider round trip. Any result here makes the generic stages
// redundant for this search.
func (s *Searcher) providerPathMatches() []command.Info {
	name := s.req.Name
	if !providerPathLike(name) {
		return nil
	}
	sess := s.r.sess
	paths, err := sess.Providers.ResolveGlobbed(sess.Cwd(), name)
	if err != nil {
		s.swallowProvider(name, err)
		return nil
	}
	var out []command.Info
	for _, rp := range paths {
		if m, ok := s.classifyExisting(rp); ok {
			out = append(out, m)
		}
	}
	return out
}

// rootedMatches resolves a rooted literal name against the current
// drive.
func (s *Searcher) rootedMatches() []command.Info {
	name := s.req.Name
	if !rooted(name) {
		return nil
	}
	sess := s.r.sess
	rp, err := sess.Providers.Expand(sess.Cwd(), name)
	if err != nil {
		s.swallowProvider(name, err)
		return nil
	}
	if m, ok := s.classifyExisting(rp); ok {
		return []command.Info{m}
	}
	return nil
}

// relativeMatches is the path scan's tail for "./", "~" and dotted
// names. More than one match is rejected rather than guessed at.
func (s *Searcher) relativeMatches() []command.Info {
	name := s.req.Name
	if !relativePrefixed(name) {
		return nil
	}
	sess := s.r.sess
	paths, err := sess.Providers.ResolveGlobbed(sess.Cwd(), name)
	if err != nil {
		s.swallowProvider(name, err)
		return nil
	}
	if len(paths) > 1 {
		s.audit(diag.AmbiguousPath, name, fmt.Sprintf("%d matches", len(paths)))
		return nil
	}
	var out []command.Info
	for _, rp := range paths {
		if m, ok := s.classifyExisting(rp); ok {
			out = append(out, m)
		}
	}
	return out
}

// classifyExisting checks the path sits on a filesystem drive and
// names a file, then classifies it.
func (s *Searcher) classifyExisting(rp provider.ResolvedPath) (command.Info, bool) {
	d, ok := s.r.sess.Providers.Drive(rp.Drive)
	if !ok || !d.Provider.IsFilesystem() {
		return nil, false
	}
	item, err := d.Provider.Item(rp.Path)
	if err != nil {
		s.swallowProvider(rp.String(), err)
		return nil, false
	}
	if item.Container {
		return nil, false
	}
	return s.classify(rp)
}

// classify turns a resolved file into a command by extension: the
// script family resolves to scripts, everything else to applications.
func (s *Searcher) classify(rp provider.ResolvedPath) (command.Info, bool) {
	cfg := s.r.sess.Search
	ext := path.Ext(rp.Path)
	if extIn(ext, cfg.ScriptExt, cfg.ModuleExt, cfg.DataExt) {
		if s.req.Kinds.Has(command.ExternalScript) {
			return &command.ExternalScriptInfo{Path: rp.String(), Mode: s.r.sess.CurrentMode()}, true
		}
		return nil, false
	}
	if s.req.Kinds.Has(command.Application) {
		return &command.ApplicationInfo{Path: rp.String(), Extension: ext, Mode: s.r.sess.CurrentMode()}, true
	}
	return nil, false
}

func extIn(ext string, exts ...string) bool {
	for _, e := range exts {
		if e != "" && strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// probeFile resolves raw and reports whether it names an existing
// file on a filesystem drive.
func (s *Searcher) probeFile(raw string) (provider.ResolvedPath, bool) {
	sess := s.r.sess
	rp, err := sess.Providers.Expand(sess.Cwd(), raw)
	if err != nil {
		s.swallowProvider(raw, err)
		return provider.ResolvedPath{}, false
	}
	d, ok := sess.Providers.Drive(rp.Drive)
	if !ok || !d.Provider.IsFilesystem() {
		return provider.ResolvedPath{}, false
	}
	item, err := d.Provider.Item(rp.Path)
	if err != nil {
		s.swallowProvider(raw, err)
		return provider.ResolvedPath{}, false
	}
	if item.Container {
		return provider.ResolvedPath{}, false
	}
	return rp, true
}

func (s *Searcher) listDir(dir string) []provider.Item {
	sess := s.r.sess
	rp, err := sess.Providers.Expand(sess.Cwd(), dir)
	if err != nil {
		s.swallowProvider(dir, err)
		return nil
	}
	d, ok := sess.Providers.Drive(rp.Drive)
	if !ok || !d.Provider.IsFilesystem() {
		return nil
	}
	items, err := d.Provider.List(rp.Path)
	if err != nil {
		s.swallowProvider(dir, err)
		return nil
	}
	return items
}

// candidateNames generates the file names probed for a command name.
// A name carrying its own extension is probed as is; otherwise the
// script family comes first, then the executable extensions, then the
// bare name.
func (s *Searcher) candidateNames(name string) []string {
	if path.Ext(name) != "" {
		return []string{name}
	}
	cfg := s.r.sess.Search
	var out []string
	seen := map[string]bool{}
	add := func(n string) {
		k := strings.ToLower(n)
		if !seen[k] {
			seen[k] = true
			out = append(out, n)
		}
	}
	if s.req.Kinds.Has(command.ExternalScript) {
		for _, e := range []string{cfg.ScriptExt, cfg.ModuleExt, cfg.DataExt} {
			if e != "" {
				add(name + e)
			}
		}
	}
	for _, e := range cfg.ExecExts {
		if e != "" {
			add(name + e)
		}
	}
	add(name)
	return out
}

// pathScan walks lookup directories lazily: one directory at a time,
// one probe per pull, so an abandoned search never pays for the rest.
type pathScan struct {
	s        *Searcher
	pattern  bool
	litFirst bool
	dirs     []string
	cands    []string
	matchers []*wildcard.Matcher

	di      int
	ci      int
	litDone bool
	listed  bool
	listing []provider.Item
	li      int
	yielded map[string]bool

	relDone  bool
	relQueue []command.Info
	rq       int
}

func (s *Searcher) newPathScan() *pathScan {
	name := s.req.Name
	p := &pathScan{
		s:        s,
		litFirst: s.req.Options.Has(ResolveLiteralBeforeWildcard),
		cands:    s.candidateNames(name),
		yielded:  map[string]bool{},
	}
	if !relativePrefixed(name) {
		p.dirs = s.r.sess.Search.LookupDirs
	}
	if s.req.Options.Has(NameIsPattern) && wildcard.HasMeta(name) {
		p.pattern = true
		for _, c := range p.cands {
			m, err := s.r.wc.Compile(c, true)
			if err != nil {
				s.err = &PatternError{Pattern: c, Err: err}
				return p
			}
			p.matchers = append(p.matchers, m)
		}
	}
	return p
}

func (p *pathScan) next() (command.Info, bool) {
	for p.di < len(p.dirs) {
		if m, ok := p.dirNext(p.dirs[p.di]); ok {
			return m, true
		}
		p.di++
		p.ci = 0
		p.litDone = false
		p.listed = false
		p.listing = nil
		p.li = 0
		p.yielded = map[string]bool{}
	}
	if !p.relDone {
		p.relDone = true
		p.relQueue = p.s.relativeMatches()
	}
	if p.rq < len(p.relQueue) {
		m := p.relQueue[p.rq]
		p.rq++
		return m, true
	}
	return nil, false
}

func (p *pathScan) dirNext(dir string) (command.Info, bool) {
	if !p.pattern {
		return p.literalNext(dir)
	}
	if p.litFirst {
		if m, ok := p.literalNext(dir); ok {
			return m, true
		}
	}
	if m, ok := p.scanNext(dir); ok {
		return m, true
	}
	if !p.litFirst {
		if m, ok := p.literalNext(dir); ok {
			return m, true
		}
	}
	return nil, false
}

// literalNext probes the candidate names as literal files and yields
// the first one that exists. One file per directory: an earlier
// extension shadows later ones.
func (p *pathScan) literalNext(dir string) (command.Info, bool) {
	if p.litDone {
		return nil, false
	}
	for p.ci < len(p.cands) {
		cand := p.cands[p.ci]
		p.ci++
		rp, ok := p.s.probeFile(path.Join(dir, cand))
		if !ok {
			continue
		}
		p.litDone = true
		name := path.Base(rp.Path)
		if p.yielded[name] {
			return nil, false
		}
		p.yielded[name] = true
		return p.s.classify(rp)
	}
	p.litDone = true
	return nil, false
}

// scanNext matches the directory listing against the pattern
// candidates, yielding every file that matches any of them.
func (p *pathScan) scanNext(dir string) (command.Info, bool) {
	if !p.listed {
		p.listed = true
		p.listing = p.s.listDir(dir)
		p.li = 0
	}
	for p.li < len(p.listing) {
		it := p.listing[p.li]
		p.li++
		if it.Container || p.yielded[it.Name] || !p.matchAny(it.Name) {
			continue
		}
		rp, err := p.s.r.sess.Providers.Expand(p.s.r.sess.Cwd(), path.Join(dir, it.Name))
		if err != nil {
			p.s.swallowProvider(it.Name, err)
			continue
		}
		p.yielded[it.Name] = true
		if m, ok := p.s.classify(rp); ok {
			return m, true
		}
	}
	return nil, false
}

func (p *pathScan) matchAny(name string) bool {
	for _, m := range p.matchers {
		if m.Match(name) {
			return true
		}
	}
	return false
}
