package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(io.Discard)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, tempDir, cfg.Dir())

	t.Run("OpenAuditLog", func(t *testing.T) {
		fd, err := cfg.OpenAuditLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("ReadAuditLog", func(t *testing.T) {
		fd, err := cfg.ReadAuditLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("HistoryPath", func(t *testing.T) {
		assert.Equal(t, filepath.Join(tempDir, HistoryName), cfg.HistoryPath())
	})
}

func TestInitializeKeepsExisting(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, ConfigurationName)
	require.NoError(t, os.WriteFile(target, []byte("prompt: mine\ntrust_mode: restricted\n"), 0644))

	cfg, err := Initialize(tempDir, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, "mine", cfg.Prompt)
	assert.Equal(t, "restricted", cfg.TrustMode)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadFromFilePath(t *testing.T) {
	tempDir := t.TempDir()
	_, err := Initialize(tempDir, log.New(io.Discard))
	require.NoError(t, err)

	cfg, err := Load(filepath.Join(tempDir, ConfigurationName))
	require.NoError(t, err)
	assert.Equal(t, tempDir, cfg.Dir())
}
