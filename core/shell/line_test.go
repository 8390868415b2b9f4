package shell

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutshell-sh/nutshell/core/config"
)

func newTestShell(t *testing.T) *Shell {
	t.Helper()

	cfg := config.Default()
	cfg.Env["HOME"] = "/home"
	sess, err := NewSession(cfg, afero.NewMemMapFs())
	require.NoError(t, err)

	sh, err := New(cfg,
		WithSession(sess),
		WithIO(strings.NewReader(""), io.Discard, io.Discard))
	require.NoError(t, err)
	return sh
}

func parseOne(t *testing.T, sh *Shell, line string) call {
	t.Helper()

	stmts, err := sh.parseSource("", strings.NewReader(line))
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	c, err := sh.evalCall(stmts[0])
	require.NoError(t, err)
	return c
}

func argTexts(c call) []string {
	out := make([]string, 0, len(c.args))
	for _, a := range c.args {
		out = append(out, a.Text)
	}
	return out
}

func TestParseSource_words(t *testing.T) {
	sh := newTestShell(t)

	c := parseOne(t, sh, `cmd one "two three" 'four'`)
	assert.Equal(t, "cmd", c.name)
	assert.Equal(t, 0, c.extent.Offset)
	assert.Equal(t, []string{"one", "two three", "four"}, argTexts(c))
}

func TestParseSource_assignPrefix(t *testing.T) {
	sh := newTestShell(t)

	c := parseOne(t, sh, "FOO=bar cmd x")
	assert.Equal(t, "cmd", c.name)
	assert.Equal(t, []assign{{key: "FOO", value: "bar"}}, c.assigns)
	assert.Equal(t, []string{"x"}, argTexts(c))
}

func TestParseSource_bareAssign(t *testing.T) {
	sh := newTestShell(t)

	c := parseOne(t, sh, "FOO=bar")
	assert.Empty(t, c.name)
	assert.Equal(t, []assign{{key: "FOO", value: "bar"}}, c.assigns)
}

func TestParseSource_statements(t *testing.T) {
	sh := newTestShell(t)

	stmts, err := sh.parseSource("", strings.NewReader("first; second two"))
	require.NoError(t, err)
	assert.Len(t, stmts, 2)
}

func TestParseSource_unsupported(t *testing.T) {
	sh := newTestShell(t)

	cases := map[string]string{
		"pipe":        "a | b",
		"redirect":    "a > out.txt",
		"background":  "a &",
		"negation":    "! a",
		"conditional": "if a; then b; fi",
		"subshell":    "(a)",
	}
	for tn, line := range cases {
		t.Run(tn, func(t *testing.T) {
			_, err := sh.parseSource("", strings.NewReader(line))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unsupported syntax")
		})
	}
}

func TestParseSource_parseError(t *testing.T) {
	sh := newTestShell(t)

	_, err := sh.parseSource("", strings.NewReader(`a "unclosed`))
	assert.Error(t, err)
}

func TestEvalCall_variables(t *testing.T) {
	sh := newTestShell(t)

	t.Run("environment", func(t *testing.T) {
		c := parseOne(t, sh, "cmd $HOME")
		assert.Equal(t, []string{"/home"}, argTexts(c))
	})

	t.Run("session shadows environment", func(t *testing.T) {
		sh.Session.CurrentScope().Vars.SetVar("HOME", "/other")
		defer sh.Session.CurrentScope().Vars.UnsetVar("HOME")

		c := parseOne(t, sh, "cmd $HOME")
		assert.Equal(t, []string{"/other"}, argTexts(c))
	})

	t.Run("last status", func(t *testing.T) {
		sh.lastRet = 7
		c := parseOne(t, sh, "cmd $?")
		assert.Equal(t, []string{"7"}, argTexts(c))
	})

	t.Run("inside double quotes", func(t *testing.T) {
		c := parseOne(t, sh, `cmd "home is $HOME"`)
		assert.Equal(t, []string{"home is /home"}, argTexts(c))
	})

	t.Run("not inside single quotes", func(t *testing.T) {
		c := parseOne(t, sh, `cmd '$HOME'`)
		assert.Equal(t, []string{"$HOME"}, argTexts(c))
	})
}

func TestEvalCall_splat(t *testing.T) {
	sh := newTestShell(t)

	t.Run("table", func(t *testing.T) {
		sh.Session.CurrentScope().Vars.SetVar("opts", map[string]any{"Name": "x"})
		defer sh.Session.CurrentScope().Vars.UnsetVar("opts")

		c := parseOne(t, sh, "cmd @opts")
		require.Len(t, c.args, 1)
		assert.Equal(t, "@opts", c.args[0].Text)
		assert.Equal(t, map[string]any{"Name": "x"}, c.args[0].Splat)
	})

	t.Run("list", func(t *testing.T) {
		sh.Session.CurrentScope().Vars.SetVar("parts", []string{"a", "b"})
		defer sh.Session.CurrentScope().Vars.UnsetVar("parts")

		c := parseOne(t, sh, "cmd @parts tail")
		assert.Equal(t, []string{"a", "b", "tail"}, argTexts(c))
		for _, a := range c.args {
			assert.Nil(t, a.Splat)
		}
	})

	t.Run("undefined stays literal", func(t *testing.T) {
		c := parseOne(t, sh, "cmd @nope")
		assert.Equal(t, []string{"@nope"}, argTexts(c))
	})

	t.Run("non-splattable value stays literal", func(t *testing.T) {
		sh.Session.CurrentScope().Vars.SetVar("n", 42)
		defer sh.Session.CurrentScope().Vars.UnsetVar("n")

		c := parseOne(t, sh, "cmd @n")
		assert.Equal(t, []string{"@n"}, argTexts(c))
	})
}
