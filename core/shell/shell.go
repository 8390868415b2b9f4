// Package shell is the interpreter front end: it reads lines, parses
// them into calls, resolves the named command, binds its parameters
// and runs it. The heavy lifting lives in resolve and binder, shell
// glues them to a session and a terminal.
package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/nutshell-sh/nutshell/core/command"
	"github.com/nutshell-sh/nutshell/core/config"
	"github.com/nutshell-sh/nutshell/core/diag"
	"github.com/nutshell-sh/nutshell/core/provider"
	"github.com/nutshell-sh/nutshell/core/resolve"
	"github.com/nutshell-sh/nutshell/core/session"
)

const (
	EnvHome   = "HOME"
	EnvPrompt = "PROMPT"

	DefaultPrompt = `nsh> `
)

// AppRunner executes applications the interpreter cannot host itself.
// The default runner refuses with an explanation, hosts that want real
// process execution plug their own in.
type AppRunner interface {
	RunApp(app *command.ApplicationInfo, args []string, stdio session.StdIO) int
}

// Shell drives a session interactively or over script input.
type Shell struct {
	Session  *session.Session
	Readline *readline.Instance

	cfg  *config.Configuration
	res  *resolve.Resolver
	apps AppRunner
	log  *log.Logger
	rec  diag.Recorder

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	seed     []*session.Builtin
	lastRet  int
	quit     bool
	exitCode int
}

// Option configures a Shell.
type Option func(*Shell)

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(s *Shell) {
		s.stdin = in
		s.stdout = out
		s.stderr = errOut
	}
}

// WithSession runs the shell over an existing session instead of
// building one from the configuration.
func WithSession(sess *session.Session) Option {
	return func(s *Shell) { s.Session = sess }
}

// WithBuiltins seeds hosted commands into the session.
func WithBuiltins(builtins ...*session.Builtin) Option {
	return func(s *Shell) {
		s.seed = append(s.seed, builtins...)
	}
}

// WithAppRunner replaces the application runner.
func WithAppRunner(r AppRunner) Option {
	return func(s *Shell) { s.apps = r }
}

// WithLogger directs diagnostic output.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) { s.log = l }
}

// WithRecorder directs audit events.
func WithRecorder(r diag.Recorder) Option {
	return func(s *Shell) { s.rec = r }
}

// New builds a shell from the configuration. Without WithSession the
// session is built over the real filesystem.
func New(cfg *config.Configuration, opts ...Option) (*Shell, error) {
	s := &Shell{
		cfg:    cfg,
		apps:   notRunnable{},
		log:    diag.Discard(),
		rec:    diag.NopRecorder(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Session == nil {
		sess, err := NewSession(cfg, afero.NewOsFs())
		if err != nil {
			return nil, err
		}
		s.Session = sess
	}
	for _, b := range s.seed {
		s.Session.Builtins.Set(b)
	}
	s.res = resolve.New(s.Session, resolve.WithLogger(s.log), resolve.WithRecorder(s.rec))
	return s, nil
}

// NewSession builds a session from the configuration with the given
// filesystem behind the fs drive.
func NewSession(cfg *config.Configuration, fsys afero.Fs) (*session.Session, error) {
	sess := session.New()

	if cfg.TrustMode == "restricted" {
		sess.SetMode(command.TrustRestricted)
	}

	sess.Search = session.SearchConfig{
		LookupDirs:    cfg.Search.LookupDirs,
		ScriptExt:     cfg.Search.ScriptExt,
		ModuleExt:     cfg.Search.ModuleExt,
		DataExt:       cfg.Search.DataExt,
		ExecExts:      cfg.Search.ExecExts,
		PathAllowList: cfg.Search.PathAllowList,
	}

	if err := sess.Providers.Mount("fs", provider.NewFilesystem(fsys)); err != nil {
		return nil, err
	}
	if err := sess.Providers.Mount("var", provider.NewVariables(sess)); err != nil {
		return nil, err
	}

	for k, v := range cfg.Env {
		sess.Env.Setenv(k, v)
	}
	if home := sess.Env.Getenv(EnvHome); home != "" {
		sess.Providers.SetHome(home)
	}

	cwd, err := sess.Providers.Expand(provider.ResolvedPath{}, startDir(sess))
	if err != nil {
		return nil, err
	}
	sess.SetCwd(cwd)

	// Seeded aliases are defined at the lowest trust level so they
	// survive restricted sessions.
	for _, a := range cfg.Aliases {
		sess.GlobalScope().Aliases.Set(&command.AliasInfo{
			AliasName:   a.Name,
			Definition:  a.Command,
			Description: a.Description,
			Mode:        command.TrustRestricted,
		})
	}

	return sess, nil
}

func startDir(sess *session.Session) string {
	if home := sess.Env.Getenv(EnvHome); home != "" {
		return home
	}
	return "/"
}

// Exit asks the shell to stop after the current command.
func (s *Shell) Exit(code int) {
	s.quit = true
	s.exitCode = code
}

// LastStatus returns the status of the last executed command.
func (s *Shell) LastStatus() int {
	return s.lastRet
}

// SearchOptions returns the resolution options the configuration asks
// for on ordinary lookups.
func (s *Shell) SearchOptions() resolve.Options {
	var opts resolve.Options
	if s.cfg.Search.AbbreviationExpansion {
		opts |= resolve.UseAbbreviationExpansion
	}
	if s.cfg.Search.LiteralBeforeWildcard {
		opts |= resolve.ResolveLiteralBeforeWildcard
	}
	return opts
}

// RunInteractive reads and executes lines until the input closes or a
// command asks to exit.
func (s *Shell) RunInteractive() (int, error) {
	rl, err := s.newReadline()
	if err != nil {
		return 1, err
	}
	s.Readline = rl
	defer rl.Close()

	if s.cfg.Motd != "" {
		fmt.Fprintln(s.stdout, s.cfg.Motd)
	}

	for !s.quit {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return s.exitCode, nil

		case err == readline.ErrInterrupt:
			// Interrupt clears the line.
			continue

		case err != nil:
			return 1, err

		case strings.TrimSpace(line) == "":
			continue

		default:
			s.lastRet = s.RunLine(line)
		}
	}
	return s.exitCode, nil
}

func (s *Shell) newReadline() (*readline.Instance, error) {
	rlCfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(s.stdin),
		Stdout: s.stdout,
		Stderr: s.stderr,
	}
	if dir := s.cfg.Dir(); dir != "" {
		rlCfg.HistoryFile = s.cfg.HistoryPath()
	}
	if err := rlCfg.Init(); err != nil {
		return nil, err
	}
	return readline.NewEx(rlCfg)
}

func (s *Shell) prompt() string {
	prompt := s.Session.Env.Getenv(EnvPrompt)
	if prompt == "" {
		prompt = s.cfg.Prompt
	}
	if prompt == "" {
		prompt = DefaultPrompt
	}
	prompt = strings.ReplaceAll(prompt, `\w`, s.Session.Cwd().String())
	return prompt
}

var errColor = color.New(color.FgRed)

func (s *Shell) printError(context string, err error) {
	if context == "" {
		errColor.Fprintf(s.stderr, "nutshell: %v\n", err)
		return
	}
	errColor.Fprintf(s.stderr, "nutshell: %s: %v\n", context, err)
}

// notRunnable is the default application runner.
type notRunnable struct{}

// RunApp implements AppRunner.RunApp.
func (notRunnable) RunApp(app *command.ApplicationInfo, args []string, stdio session.StdIO) int {
	fmt.Fprintf(stdio.Err, "nutshell: %s: application execution is not enabled\n", app.Name())
	return 126
}

var _ AppRunner = notRunnable{}
