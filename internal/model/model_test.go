package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"5", 5, false},
		{" 42 ", 42, false},
		{"0000005", 5, false},
		{"", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestValidatePriority(t *testing.T) {
	valid := []Priority{PriorityTrivial, PriorityMinor, PriorityMajor, PriorityCritical, PriorityBlocker}
	for _, p := range valid {
		if err := ValidatePriority(p); err != nil {
			t.Errorf("ValidatePriority(%q) unexpected error: %v", p, err)
		}
	}
	if err := ValidatePriority("urgent"); err == nil {
		t.Error("ValidatePriority('urgent') expected error, got nil")
	}
}

func TestValidateStatus(t *testing.T) {
	for _, s := range validStatuses {
		if err := ValidateStatus(s); err != nil {
			t.Errorf("ValidateStatus(%q) unexpected error: %v", s, err)
		}
	}
	if err := ValidateStatus("acknowledged"); err == nil {
		t.Error("ValidateStatus('acknowledged') expected error, got nil")
	}
}

func TestValidateKind(t *testing.T) {
	for _, k := range validKinds {
		if err := ValidateKind(k); err != nil {
			t.Errorf("ValidateKind(%q) unexpected error: %v", k, err)
		}
	}
	if err := ValidateKind("epic"); err == nil {
		t.Error("ValidateKind('epic') expected error, got nil")
	}
}

func TestIssueMarshalJSON(t *testing.T) {
	issue := Issue{
		ID:        5,
		Reporter:  "alice_bb",
		Priority:  PriorityCritical,
		Status:    StatusResolved,
		Kind:      KindBug,
		Component: "core",
		CreatedOn: "2015-01-02T03:04:05",
		UpdatedOn: "2015-01-03T03:04:05",
		Title:     "Crash on save",
		Content:   "boom",
	}

	data, err := json.Marshal(issue)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}

	if raw["id"] != float64(5) {
		t.Errorf("id = %v, want 5", raw["id"])
	}
	if raw["assignee"] != nil {
		t.Errorf("assignee = %v, want null", raw["assignee"])
	}
	if raw["priority"] != "critical" {
		t.Errorf("priority = %v, want critical", raw["priority"])
	}
	if raw["component"] != "core" {
		t.Errorf("component = %v, want core", raw["component"])
	}
}

func TestIssueJSONRoundTrip(t *testing.T) {
	original := Issue{
		ID:       7,
		Reporter: "migration-bot",
		Assignee: "bob",
		Priority: PriorityMinor,
		Status:   StatusOnHold,
		Kind:     KindEnhancement,
		Title:    "Tweak margins",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Issue
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}

func TestIssueUnmarshalJSONRejectsInvalidEnums(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"priority", `{"id":1,"priority":"urgent","status":"new","kind":"bug"}`, "invalid priority"},
		{"status", `{"id":1,"priority":"minor","status":"feedback","kind":"bug"}`, "invalid status"},
		{"kind", `{"id":1,"priority":"minor","status":"new","kind":"epic"}`, "invalid issue kind"},
		{"id", `{"id":0,"priority":"minor","status":"new","kind":"bug"}`, "invalid issue ID"},
	}

	for _, tt := range tests {
		var issue Issue
		err := json.Unmarshal([]byte(tt.json), &issue)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error = %q, want it to contain %q", tt.name, err, tt.want)
		}
	}
}

func TestNewDatabaseHasEmptyCollections(t *testing.T) {
	db := NewDatabase()

	data, err := json.Marshal(db)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	for _, key := range []string{"issues", "comments", "attachments", "versions", "milestones", "components", "logs"} {
		arr, ok := raw[key].([]any)
		if !ok {
			t.Errorf("%s = %v, want empty array", key, raw[key])
			continue
		}
		if len(arr) != 0 {
			t.Errorf("len(%s) = %d, want 0", key, len(arr))
		}
	}

	meta, _ := raw["meta"].(map[string]any)
	if meta["default_kind"] != "bug" {
		t.Errorf("meta.default_kind = %v, want bug", meta["default_kind"])
	}
}

func TestDatabaseIssueLookup(t *testing.T) {
	db := NewDatabase()
	db.Issues = append(db.Issues, &Issue{ID: 3}, &Issue{ID: 9})

	if got := db.Issue(9); got == nil || got.ID != 9 {
		t.Errorf("Issue(9) = %v, want issue 9", got)
	}
	if got := db.Issue(4); got != nil {
		t.Errorf("Issue(4) = %v, want nil", got)
	}
}

func TestFormatTime(t *testing.T) {
	base := time.Date(2015, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{base, "2015-01-02T03:04:05"},
		{base.Add(500 * time.Millisecond), "2015-01-02T03:04:05.500000"},
		{base.Add(7 * time.Microsecond), "2015-01-02T03:04:05.000007"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.t); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}

	parsed, err := time.Parse(TimestampLayout, "2015-01-02T03:04:05.500000")
	if err != nil {
		t.Fatalf("parsing fractional timestamp: %v", err)
	}
	if parsed.Nanosecond() != 500000000 {
		t.Errorf("parsed nanoseconds = %d, want 500000000", parsed.Nanosecond())
	}
}
