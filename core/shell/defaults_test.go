package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutshell-sh/nutshell/core/command"
)

func TestShellDefaults(t *testing.T) {
	d := &shellDefaults{shell: newTestShell(t)}

	t.Run("expands variables", func(t *testing.T) {
		p := command.NewParameter("Path", command.TypeString).WithDefault("$HOME/notes")
		v, err := d.Evaluate(p)
		require.NoError(t, err)
		assert.Equal(t, "/home/notes", v)
	})

	t.Run("plain text passes through", func(t *testing.T) {
		p := command.NewParameter("Name", command.TypeString).WithDefault("*")
		v, err := d.Evaluate(p)
		require.NoError(t, err)
		assert.Equal(t, "*", v)
	})

	t.Run("list defaults split into words", func(t *testing.T) {
		p := command.NewParameter("Names", command.TypeStringSlice).WithDefault(`a "b c"`)
		v, err := d.Evaluate(p)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b c"}, v)
	})

	t.Run("unbalanced list reports the parameter", func(t *testing.T) {
		p := command.NewParameter("Names", command.TypeStringSlice).WithDefault(`"a`)
		_, err := d.Evaluate(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default for -Names")
	})
}
