package lookup

import (
	"fmt"
	"strings"
)

// UserTable maps source identities, folded to lower case, to target
// identities. It is never modified after loading.
type UserTable map[string]string

// foldIdentity normalizes an identity for table keys and lookups.
func foldIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// NewUserTable builds a table from source -> target pairs.
func NewUserTable(pairs map[string]string) UserTable {
	t := make(UserTable, len(pairs))
	for source, target := range pairs {
		t[foldIdentity(source)] = target
	}
	return t
}

// Lookup returns the target identity for a source identity, matching
// case-insensitively.
func (t UserTable) Lookup(identity string) (string, bool) {
	target, ok := t[foldIdentity(identity)]
	return target, ok
}

// LoadUserMapping reads a JSON array of single-key objects, each mapping a
// source identity to a target identity:
//
//	[{"alice": "alice_bb"}, {"Bob": "bobby"}]
//
// When two entries fold to the same source identity the later one wins.
func LoadUserMapping(path string) (UserTable, error) {
	if path == "" {
		return nil, nil
	}

	var entries []map[string]string
	if err := readJSON(path, &entries); err != nil {
		return nil, err
	}

	t := make(UserTable, len(entries))
	for i, entry := range entries {
		if len(entry) != 1 {
			return nil, &FileError{
				Path: path,
				Err:  fmt.Errorf("entry %d: expected exactly one source identity, got %d", i+1, len(entry)),
			}
		}
		for source, target := range entry {
			if foldIdentity(source) == "" {
				return nil, &FileError{Path: path, Err: fmt.Errorf("entry %d: empty source identity", i+1)}
			}
			t[foldIdentity(source)] = target
		}
	}

	return t, nil
}
