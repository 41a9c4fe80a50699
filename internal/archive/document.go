package archive

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// DocumentName is the name of the JSON document at the archive root.
const DocumentName = "db-1.0.json"

// Encode renders db as the archive's JSON document: four-space indented
// with object keys sorted at every level, so equal databases always encode
// to equal bytes.
func Encode(db *model.Database) ([]byte, error) {
	db.FillEmpty()

	raw, err := json.Marshal(db)
	if err != nil {
		return nil, fmt.Errorf("encoding database: %w", err)
	}

	// Round-trip through generic values: encoding/json sorts map keys.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("normalizing database: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(generic); err != nil {
		return nil, fmt.Errorf("encoding database: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an archive JSON document.
func Decode(data []byte) (*model.Database, error) {
	var db model.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", DocumentName, err)
	}
	db.FillEmpty()
	return &db, nil
}
