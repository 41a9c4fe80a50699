package mantis

import "strings"

// Field is an optional text value read from an export record. Valid is false
// when the element was absent, which is different from present but empty.
type Field struct {
	Text  string
	Valid bool
}

// Or returns the field text, or def when the field is absent.
func (f Field) Or(def string) string {
	if !f.Valid {
		return def
	}
	return f.Text
}

// Record is the set of named child elements of one exported element. Names
// are folded to lower case; the first occurrence of a repeated name wins.
type Record struct {
	fields map[string]string
}

// NewRecord builds a record from name/text pairs.
func NewRecord(pairs map[string]string) *Record {
	r := &Record{fields: make(map[string]string, len(pairs))}
	for k, v := range pairs {
		r.set(k, v)
	}
	return r
}

func (r *Record) set(name, text string) {
	key := strings.ToLower(name)
	if _, ok := r.fields[key]; ok {
		return
	}
	r.fields[key] = text
}

// Lookup returns the named field. It is safe to call on a nil record.
func (r *Record) Lookup(name string) Field {
	if r == nil {
		return Field{}
	}
	text, ok := r.fields[strings.ToLower(name)]
	return Field{Text: text, Valid: ok}
}

// Text returns the named field's text, or "" when the record or field is
// absent.
func (r *Record) Text(name string) string {
	return r.Lookup(name).Or("")
}
