package builtins_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/nutshell-sh/nutshell/core/shell/shelltest"
)

const notesFile = "first\nsecond\nthird\n"

func TestGetContent(t *testing.T) {
	notes := map[string]string{"/home/notes.txt": notesFile}

	cases := goldenTestSuite{
		"file":        {Line: "Get-Content /home/notes.txt", Files: notes},
		"total-count": {Line: "Get-Content -TotalCount 2 /home/notes.txt", Files: notes},
		"tail":        {Line: "Get-Content -Tail 1 /home/notes.txt", Files: notes},
		"missing":     {Line: "Get-Content /home/nope.txt"},
		"conflict":    {Line: "Get-Content -TotalCount 1 -Tail 1 /home/notes.txt", Files: notes},
	}

	cases.Run(t)
}

func TestGetContent_statuses(t *testing.T) {
	cmd := shelltest.Command("Get-Content /foo.txt")

	// Missing file first, then create it and try again.
	{
		assert.Nil(t, cmd.Run())
		assert.NotEqual(t, 0, cmd.ExitStatus, "exit code")
	}
	{
		helloWorld := []byte("Hello, world!")
		assert.Nil(t, afero.WriteFile(cmd.Fs, "/foo.txt", helloWorld, 0600))

		out, err := cmd.CombinedOutput()

		assert.Equal(t, 0, cmd.ExitStatus, "exit code")
		assert.Nil(t, err)
		assert.Equal(t, "Hello, world!\n", string(out))
	}
}

func TestGetContent_container(t *testing.T) {
	cmd := shelltest.Command("Get-Content /home")
	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 1, cmd.ExitStatus, "exit code")
	assert.Equal(t, "Get-Content: /home: is a container\n", string(out))
}

func TestGetContent_missingPath(t *testing.T) {
	cmd := shelltest.Command("Get-Content")
	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 1, cmd.ExitStatus, "exit code")
	assert.Contains(t, string(out), "missing mandatory parameters: Path")
}

func TestGetContent_rejectsZeroCount(t *testing.T) {
	cmd := shelltest.Command("Get-Content -TotalCount 0 /foo.txt")
	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 1, cmd.ExitStatus, "exit code")
	assert.Contains(t, string(out), "-TotalCount must be at least 1")
}
