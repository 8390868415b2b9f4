// Package shelltest runs interpreter input against a deterministic
// session for tests.
package shelltest

import (
	"bytes"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/nutshell-sh/nutshell/builtins"
	"github.com/nutshell-sh/nutshell/core/config"
	"github.com/nutshell-sh/nutshell/core/session"
	"github.com/nutshell-sh/nutshell/core/shell"
)

// NewConfig returns the default configuration pinned for tests: home
// under /home and a short lookup path.
func NewConfig() *config.Configuration {
	cfg := config.Default()
	cfg.Env["HOME"] = "/home"
	cfg.Search.LookupDirs = []string{"/bin"}
	return cfg
}

// Cmd is similar to exec.Cmd.
type Cmd struct {
	// Line is the interpreter input to run.
	Line string

	// Config for the run. If nil NewConfig is used.
	Config *config.Configuration

	// Session to run against. If nil a deterministic session over Fs is
	// built with every registered builtin seeded.
	Session *session.Session

	// Fs backs the session's fs drive. If nil a memory filesystem with
	// the lookup directories and /home is created.
	Fs afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	ExitStatus int

	// Setup runs against the session before the line executes.
	Setup func(sess *session.Session) error
}

// Command returns a Cmd running the given interpreter input.
func Command(line string) *Cmd {
	return &Cmd{Line: line}
}

// CombinedOutput runs the command and returns its combined stdout and
// stderr.
func (c *Cmd) CombinedOutput() ([]byte, error) {
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Stderr = buf

	err := c.Run()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Run executes the line and records the exit status.
func (c *Cmd) Run() error {
	color.NoColor = true

	cfg := c.Config
	if cfg == nil {
		cfg = NewConfig()
	}
	if c.Fs == nil {
		c.Fs = afero.NewMemMapFs()
		for _, dir := range cfg.Search.LookupDirs {
			if err := c.Fs.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		if err := c.Fs.MkdirAll("/home", 0755); err != nil {
			return err
		}
	}
	if c.Session == nil {
		sess, err := shell.NewSession(cfg, c.Fs)
		if err != nil {
			return err
		}
		c.Session = sess
	}
	if c.Stdin == nil {
		c.Stdin = strings.NewReader("")
	}
	if c.Stdout == nil {
		c.Stdout = io.Discard
	}
	if c.Stderr == nil {
		c.Stderr = io.Discard
	}

	sh, err := shell.New(cfg,
		shell.WithSession(c.Session),
		shell.WithIO(c.Stdin, c.Stdout, c.Stderr),
		shell.WithBuiltins(builtins.All()...),
	)
	if err != nil {
		return err
	}

	if c.Setup != nil {
		if err := c.Setup(c.Session); err != nil {
			return err
		}
	}

	c.ExitStatus = sh.RunLine(c.Line)
	return nil
}
