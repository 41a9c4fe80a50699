package lookup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadUserMapping(t *testing.T) {
	path := writeFile(t, "users.json", `[{"Alice": "alice_bb"}, {"bob": "bobby"}, {"ALICE": "alice2"}]`)

	users, err := LoadUserMapping(path)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	got, ok := users.Lookup("alice")
	assert.True(t, ok)
	assert.Equal(t, "alice2", got, "later entries win")

	got, ok = users.Lookup("BOB")
	assert.True(t, ok)
	assert.Equal(t, "bobby", got)

	_, ok = users.Lookup("carol")
	assert.False(t, ok)
}

func TestLoadUserMappingEmptyPath(t *testing.T) {
	users, err := LoadUserMapping("")
	require.NoError(t, err)
	assert.Nil(t, users)

	_, ok := users.Lookup("alice")
	assert.False(t, ok, "lookups on a nil table miss")
}

func TestLoadUserMappingErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{{{`},
		{"not an array", `{"alice": "bob"}`},
		{"two keys", `[{"alice": "a", "bob": "b"}]`},
		{"no keys", `[{}]`},
		{"empty identity", `[{" ": "a"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "users.json", tt.content)
			_, err := LoadUserMapping(path)
			require.Error(t, err)

			var fe *FileError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, path, fe.Path)
		})
	}
}

func TestLoadUserMappingMissingFile(t *testing.T) {
	_, err := LoadUserMapping(filepath.Join(t.TempDir(), "nope.json"))

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewUserTable(t *testing.T) {
	users := NewUserTable(map[string]string{" Alice ": "alice_bb"})
	got, ok := users.Lookup("ALICE")
	assert.True(t, ok)
	assert.Equal(t, "alice_bb", got)
}

func TestLoadAttachmentMapping(t *testing.T) {
	path := writeFile(t, "attachments.json", `[
		{"bug_id": 5, "diskfile": "a1b2", "filename": "screenshot.png"},
		{"bug_id": "7", "filename": "log.txt"},
		{"bug_id": 5, "diskfile": "c3d4", "filename": "trace.txt"}
	]`)

	table, err := LoadAttachmentMapping(path)
	require.NoError(t, err)
	require.Len(t, table, 2)

	require.Len(t, table[5], 2)
	assert.Equal(t, "a1b2", table[5][0].SourceName())
	assert.Equal(t, "screenshot.png", table[5][0].DisplayName())
	assert.Equal(t, "trace.txt", table[5][1].DisplayName())

	require.Len(t, table[7], 1)
	assert.Equal(t, "log.txt", table[7][0].SourceName())
	assert.Equal(t, "log.txt", table[7][0].DisplayName())
}

func TestLoadAttachmentMappingErrors(t *testing.T) {
	for name, content := range map[string]string{
		"bad bug id": `[{"bug_id": "x", "filename": "a"}]`,
		"no names":   `[{"bug_id": 1}]`,
		"bool id":    `[{"bug_id": true, "filename": "a"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAttachmentMapping(writeFile(t, "a.json", content))
			var fe *FileError
			require.True(t, errors.As(err, &fe), "got %v", err)
		})
	}
}

func TestLoadNotes(t *testing.T) {
	path := writeFile(t, "notes.json", `[
		{"bug_id": 5, "username": "alice", "note": "first", "date_submitted": 1420167845, "last_modified": "1420167900", "bugnote_text_id": 11},
		{"id": "3", "bug_id": "99", "username": "bob", "note": "orphan", "date_submitted": "1420167845", "last_modified": null, "bugnote_text_id": 12}
	]`)

	notes, err := LoadNotes(path)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	assert.Equal(t, Scalar("5"), notes[0].BugID)
	assert.Equal(t, "first", notes[0].Text)
	assert.Equal(t, Scalar("1420167845"), notes[0].DateSubmitted)
	assert.Equal(t, Scalar("1420167900"), notes[0].LastModified)

	id, err := notes[0].CommentID()
	require.NoError(t, err)
	assert.Equal(t, 11, id, "falls back to bugnote_text_id")

	id, err = notes[1].CommentID()
	require.NoError(t, err)
	assert.Equal(t, 3, id)
	assert.Equal(t, Scalar(""), notes[1].LastModified)
}

func TestLoadNotesEmptyArray(t *testing.T) {
	notes, err := LoadNotes(writeFile(t, "notes.json", `[]`))
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)

	notes, err = LoadNotes("")
	require.NoError(t, err)
	assert.Nil(t, notes)
}
