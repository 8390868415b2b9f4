package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutshell-sh/nutshell/core/shell/shelltest"
)

func homeFiles() map[string]string {
	return map[string]string{
		"/home/a.txt":    "aaa",
		"/home/b.txt":    "bb",
		"/home/.hidden":  "h",
		"/home/sub/c.md": "c",
	}
}

func TestGetChildItem_names(t *testing.T) {
	cmd := shelltest.Command("Get-ChildItem -Name /home")
	cmd.Fs = seedFs(t, homeFiles())

	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Equal(t, "a.txt\nb.txt\nsub\n", string(out))
}

func TestGetChildItem_force(t *testing.T) {
	cmd := shelltest.Command("Get-ChildItem -Name -Force /home")
	cmd.Fs = seedFs(t, homeFiles())

	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Equal(t, ".hidden\na.txt\nb.txt\nsub\n", string(out))
}

func TestGetChildItem_defaultsToCwd(t *testing.T) {
	cmd := shelltest.Command("Get-ChildItem -Name")
	cmd.Fs = seedFs(t, homeFiles())

	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Equal(t, "a.txt\nb.txt\nsub\n", string(out))
}

func TestGetChildItem_pattern(t *testing.T) {
	cmd := shelltest.Command("Get-ChildItem -Name /home/*.txt")
	cmd.Fs = seedFs(t, homeFiles())

	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Equal(t, "a.txt\nb.txt\n", string(out))
}

func TestGetChildItem_listing(t *testing.T) {
	cmd := shelltest.Command("Get-ChildItem /home")
	cmd.Fs = seedFs(t, homeFiles())

	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Contains(t, string(out), "Mode")
	assert.Contains(t, string(out), "-a---")
	assert.Contains(t, string(out), "d----")
	assert.Contains(t, string(out), "a.txt")
}

func TestGetChildItem_singleFile(t *testing.T) {
	cmd := shelltest.Command("Get-ChildItem -Name /home/a.txt")
	cmd.Fs = seedFs(t, homeFiles())

	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Equal(t, "a.txt\n", string(out))
}

func TestGetChildItem_missing(t *testing.T) {
	cmd := shelltest.Command("Get-ChildItem /nowhere")
	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 1, cmd.ExitStatus, "exit code")
	assert.Equal(t, "Get-ChildItem: /nowhere: item does not exist\n", string(out))
}

func TestGetChildItem_varDrive(t *testing.T) {
	cmd := shelltest.Command("Set-Variable answer 42; Get-ChildItem -Name var:")
	out, err := cmd.CombinedOutput()

	assert.Nil(t, err)
	assert.Equal(t, 0, cmd.ExitStatus, "exit code")
	assert.Equal(t, "answer\n", string(out))
}
