package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/anmitsu/go-shlex"

	"github.com/nutshell-sh/nutshell/core/binder"
	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/provider"
	"github.com/nutshell-sh/nutshell/core/resolve"
	"github.com/nutshell-sh/nutshell/core/session"
)

// RunLine parses and executes one line of input, returning the status
// of the last call.
func (s *Shell) RunLine(line string) int {
	return s.runSource("", strings.NewReader(line))
}

// RunScript executes statements from src until it is exhausted. The
// given arguments are exposed to the script through the "args"
// variable, and name labels syntax errors.
func (s *Shell) RunScript(name string, src io.Reader, args []string) int {
	scope := s.Session.PushScope()
	scope.Vars.SetVar("args", args)
	defer s.Session.PopScope()

	return s.runSource(name, src)
}

func (s *Shell) runSource(name string, src io.Reader) int {
	stmts, err := s.parseSource(name, src)
	if err != nil {
		s.printError("syntax error", err)
		return 2
	}

	status := 0
	for _, stmt := range stmts {
		c, err := s.evalCall(stmt)
		if err != nil {
			s.printError("syntax error", err)
			status = 2
			s.lastRet = status
			continue
		}
		status = s.exec(c)
		s.lastRet = status
		if s.quit {
			break
		}
	}
	return status
}

func (s *Shell) exec(c call) int {
	if c.name == "" {
		// A bare assignment line persists into the session.
		for _, a := range c.assigns {
			s.Session.Env.Setenv(a.key, a.value)
		}
		return 0
	}

	if len(c.assigns) > 0 {
		restore := s.applyAssigns(c.assigns)
		defer restore()
	}

	name := c.name
	raw := c.args
	visited := map[string]bool{}
	for {
		key := strings.ToLower(name)
		if visited[key] {
			s.printError(c.name, fmt.Errorf("alias loop through %q", name))
			return 1
		}
		visited[key] = true

		info, found, err := s.lookup(name)
		if err != nil {
			s.printError(name, err)
			return 1
		}
		if !found {
			s.commandNotFound(name)
			return 127
		}

		alias, ok := info.(*command.AliasInfo)
		if !ok {
			return s.invoke(c.name, info, raw)
		}

		words, err := shlex.Split(alias.Definition, true)
		if err != nil || len(words) == 0 {
			s.printError(name, fmt.Errorf("alias has no usable definition"))
			return 1
		}
		name = words[0]
		raw = append(binder.RawList(words[1:]...), raw...)
	}
}

// lookup finds the first resolution match for name.
func (s *Shell) lookup(name string) (command.Info, bool, error) {
	search := s.res.Search(resolve.Request{
		Name:    name,
		Options: s.SearchOptions(),
		Origin:  resolve.OriginInternal,
	})
	defer search.Close()

	if search.Next() {
		return search.Command(), true, nil
	}
	return nil, false, search.Err()
}

func (s *Shell) commandNotFound(name string) {
	errColor.Fprintf(s.stderr, "nutshell: %s: command not found\n", name)

	if !s.cfg.Search.FuzzyMatching {
		return
	}
	suggestions := s.suggest(name)
	if len(suggestions) > 0 {
		fmt.Fprintf(s.stderr, "did you mean: %s?\n", strings.Join(suggestions, ", "))
	}
}

// suggest runs a fuzzy search for names close to the one that failed.
func (s *Shell) suggest(name string) []string {
	search := s.res.Search(resolve.Request{
		Name:    name,
		Kinds:   command.Alias | command.FunctionLike | command.Builtin,
		Options: resolve.FuzzyMatch,
		Origin:  resolve.OriginInternal,
	})
	defer search.Close()

	var out []string
	seen := map[string]bool{}
	for search.Next() && len(out) < 3 {
		n := search.Command().Name()
		if !seen[strings.ToLower(n)] {
			seen[strings.ToLower(n)] = true
			out = append(out, n)
		}
	}
	return out
}

func (s *Shell) invoke(invokedAs string, info command.Info, raw []binder.RawArg) int {
	switch cmd := info.(type) {
	case *session.Builtin:
		return s.runHosted(invokedAs, cmd.Params, cmd.Run, raw)

	case *session.Function:
		return s.runHosted(invokedAs, functionMetadata(cmd.Info), cmd.Run, raw)

	case *command.ExternalScriptInfo:
		return s.runScript(cmd.Path, raw)

	case *command.ApplicationInfo:
		args := make([]string, 0, len(raw))
		for _, r := range raw {
			args = append(args, r.Text)
		}
		return s.apps.RunApp(cmd, args, s.stdio())

	default:
		s.printError(info.Name(), fmt.Errorf("commands of kind %s cannot run here", info.Kind()))
		return 126
	}
}

// runHosted binds the arguments and runs a hosted command action.
func (s *Shell) runHosted(invokedAs string, meta *command.Metadata, action session.Action, raw []binder.RawArg) int {
	if meta == nil {
		meta = command.NewMetadata()
	}
	b := binder.New(meta,
		binder.WithDefaults(&shellDefaults{shell: s}),
		binder.WithLogger(s.log),
		binder.WithRecorder(s.rec),
	)
	report, err := b.Bind(raw)
	if err != nil {
		s.printError(invokedAs, err)
		return 1
	}
	if len(report.MissingMandatory) > 0 {
		s.printError(invokedAs, fmt.Errorf("missing mandatory parameters: %s",
			strings.Join(report.MissingMandatory, ", ")))
		return 1
	}

	inv := &session.Invocation{
		Name:    invokedAs,
		Session: s.Session,
		Args:    report,
		IO:      s.stdio(),
		Exit:    s.Exit,
	}
	return action(inv)
}

// runScript executes a script file line by line in a fresh scope. The
// call's arguments are exposed through the "args" variable.
func (s *Shell) runScript(path string, raw []binder.RawArg) int {
	rp, err := s.Session.Providers.Expand(s.Session.Cwd(), path)
	if err != nil {
		s.printError(path, err)
		return 1
	}
	drive, ok := s.Session.Providers.Drive(rp.Drive)
	if !ok {
		s.printError(path, provider.ErrDriveNotFound)
		return 1
	}
	fd, err := provider.OpenFile(drive, rp.Path)
	if err != nil {
		s.printError(path, err)
		return 1
	}
	defer fd.Close()

	args := make([]string, 0, len(raw))
	for _, r := range raw {
		args = append(args, r.Text)
	}

	scope := s.Session.PushScope()
	scope.Vars.SetVar("args", args)
	defer s.Session.PopScope()

	return s.runSource(path, fd)
}

func (s *Shell) stdio() session.StdIO {
	return session.StdIO{In: s.stdin, Out: s.stdout, Err: s.stderr}
}

// applyAssigns sets per-call environment overrides and returns the
// restore function.
func (s *Shell) applyAssigns(assigns []assign) func() {
	type saved struct {
		key   string
		value string
		had   bool
	}
	var prev []saved
	for _, a := range assigns {
		v, had := s.Session.Env.LookupEnv(a.key)
		prev = append(prev, saved{key: a.key, value: v, had: had})
		s.Session.Env.Setenv(a.key, a.value)
	}
	return func() {
		for i := len(prev) - 1; i >= 0; i-- {
			p := prev[i]
			if p.had {
				s.Session.Env.Setenv(p.key, p.value)
			} else {
				s.Session.Env.Unsetenv(p.key)
			}
		}
	}
}

func functionMetadata(info command.Info) *command.Metadata {
	switch fn := info.(type) {
	case *command.FunctionInfo:
		return fn.Params
	case *command.FilterInfo:
		return fn.Params
	case *command.ConfigurationInfo:
		return fn.Params
	}
	return nil
}
