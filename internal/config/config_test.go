package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALT-F4-LLC/bugport/internal/lookup"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bugport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, `
attachments_dir: files
default_user: migration-bot
user_mapping: maps/users.json
attachment_mapping: /abs/attachments.json
notes: notes.json
timezone: UTC
catalog: out/catalog.db
`)
	dir := filepath.Dir(path)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "files"), s.AttachmentsDir)
	assert.Equal(t, "migration-bot", s.DefaultUser)
	assert.Equal(t, filepath.Join(dir, "maps", "users.json"), s.UserMapping)
	assert.Equal(t, "/abs/attachments.json", s.AttachmentMapping)
	assert.Equal(t, filepath.Join(dir, "notes.json"), s.Notes)
	assert.Equal(t, filepath.Join(dir, "out", "catalog.db"), s.Catalog)

	loc, err := s.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "attachment_dir: files\n",
		"bad yaml":     "notes: [unclosed\n",
		"bad timezone": "timezone: Mars/Olympus\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, content)
			_, err := Load(path)
			require.Error(t, err)

			var fe *lookup.FileError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, path, fe.Path)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	var fe *lookup.FileError
	require.True(t, errors.As(err, &fe))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResolvePrecedence(t *testing.T) {
	flagPath := writeConfig(t, "default_user: from-flag\n")
	envPath := writeConfig(t, "default_user: from-env\n")

	t.Setenv(EnvVar, envPath)

	cfg, err := Resolve(flagPath)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.DefaultUser)
	assert.False(t, cfg.EnvVarSet)

	cfg, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DefaultUser)
	assert.True(t, cfg.EnvVarSet)
	assert.Equal(t, envPath, cfg.Path)
}

func TestResolveWithoutConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Path)
	assert.Equal(t, Settings{}, cfg.Settings)
}

func TestParseLocation(t *testing.T) {
	for _, name := range []string{"", "Local"} {
		loc, err := ParseLocation(name)
		require.NoError(t, err)
		assert.Equal(t, time.Local, loc)
	}

	loc, err := ParseLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}
