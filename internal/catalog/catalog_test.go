package catalog

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

func mustOpen(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Initialize(db); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	return db
}

func sampleDatabase() *model.Database {
	data := model.NewDatabase()
	data.Issues = []*model.Issue{
		{ID: 1, Reporter: "alice", Assignee: "bob", Priority: model.PriorityMajor, Status: model.StatusOpen, Kind: model.KindBug, Component: "ui", Title: "First", Content: "one"},
		{ID: 2, Reporter: "bob", Priority: model.PriorityTrivial, Status: model.StatusNew, Kind: model.KindTask, Version: "1.0", Title: "Second", Content: "two"},
		{ID: 3, Reporter: "alice", Priority: model.PriorityBlocker, Status: model.StatusResolved, Kind: model.KindBug, Milestone: "2.0", Title: "Third", Content: "three"},
	}
	data.Comments = []*model.Comment{
		{ID: 9, IssueID: 1, User: "bob", Content: "later id, stored first"},
		{ID: 4, IssueID: 1, User: "alice", Content: "earlier id"},
		{ID: 5, IssueID: 3, User: "alice", Content: "done"},
	}
	data.Attachments = []model.Attachment{
		{Filename: "b.png", IssueID: 1, Path: "attachments/b.png", User: "alice"},
		{Filename: "a.log", IssueID: 1, Path: "attachments/a.log", User: "alice"},
	}
	data.Components = []model.Named{{Name: "ui"}}
	data.Versions = []model.Named{{Name: "1.0"}}
	data.Milestones = []model.Named{{Name: "2.0"}}
	return data
}

func mustStore(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := Store(db, sampleDatabase()); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
}

func TestOpenSetsForeignKeys(t *testing.T) {
	db := mustOpen(t)

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("querying foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	db := mustOpen(t)

	if err := Initialize(db); err != nil {
		t.Fatalf("second Initialize() failed: %v", err)
	}

	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if v != currentSchemaVersion {
		t.Errorf("SchemaVersion() = %d, want %d", v, currentSchemaVersion)
	}
}

func TestStoreAndGetIssue(t *testing.T) {
	db := mustOpen(t)
	mustStore(t, db)

	got, err := GetIssue(db, 1)
	if err != nil {
		t.Fatalf("GetIssue(1) failed: %v", err)
	}
	want := sampleDatabase().Issues[0]
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetIssue(1) = %+v, want %+v", got, want)
	}

	unassigned, err := GetIssue(db, 2)
	if err != nil {
		t.Fatalf("GetIssue(2) failed: %v", err)
	}
	if unassigned.Assignee != "" {
		t.Errorf("Assignee = %q, want empty", unassigned.Assignee)
	}
}

func TestGetIssueNotFound(t *testing.T) {
	db := mustOpen(t)
	mustStore(t, db)

	_, err := GetIssue(db, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetIssue(42) error = %v, want ErrNotFound", err)
	}
}

func TestStoreReplacesContents(t *testing.T) {
	db := mustOpen(t)
	mustStore(t, db)

	smaller := model.NewDatabase()
	smaller.Issues = []*model.Issue{
		{ID: 7, Reporter: "carol", Priority: model.PriorityMinor, Status: model.StatusNew, Kind: model.KindBug, Title: "Only", Content: ""},
	}
	if err := Store(db, smaller); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	n, err := CountIssues(db)
	if err != nil {
		t.Fatalf("CountIssues() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountIssues() = %d, want 1", n)
	}

	comments, err := ListComments(db, 1)
	if err != nil {
		t.Fatalf("ListComments() failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("ListComments(1) returned %d comments, want 0", len(comments))
	}

	names, err := Collection(db, CollectionComponents)
	if err != nil {
		t.Fatalf("Collection() failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("components = %v, want none", names)
	}
}

func TestListIssuesFilters(t *testing.T) {
	db := mustOpen(t)
	mustStore(t, db)

	tests := []struct {
		name string
		opts ListOptions
		want []int
	}{
		{"all", ListOptions{}, []int{1, 2, 3}},
		{"status", ListOptions{Statuses: []string{"open", "new"}}, []int{1, 2}},
		{"priority", ListOptions{Priorities: []string{"blocker"}}, []int{3}},
		{"kind", ListOptions{Kinds: []string{"bug"}}, []int{1, 3}},
		{"reporter", ListOptions{Reporter: "bob"}, []int{2}},
		{"combined", ListOptions{Kinds: []string{"bug"}, Statuses: []string{"resolved"}}, []int{3}},
		{"no match", ListOptions{Statuses: []string{"closed"}}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := ListIssues(db, tt.opts)
			if err != nil {
				t.Fatalf("ListIssues() failed: %v", err)
			}
			got := make([]int, 0, len(issues))
			for _, i := range issues {
				got = append(got, i.ID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListIssues() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListCommentsKeepsStoredOrder(t *testing.T) {
	db := mustOpen(t)
	mustStore(t, db)

	comments, err := ListComments(db, 1)
	if err != nil {
		t.Fatalf("ListComments() failed: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("ListComments(1) returned %d comments, want 2", len(comments))
	}
	if comments[0].ID != 9 || comments[1].ID != 4 {
		t.Errorf("comment ids = [%d %d], want [9 4]", comments[0].ID, comments[1].ID)
	}
}

func TestListAttachmentsSortedByPath(t *testing.T) {
	db := mustOpen(t)
	mustStore(t, db)

	atts, err := ListAttachments(db, 1)
	if err != nil {
		t.Fatalf("ListAttachments() failed: %v", err)
	}
	if len(atts) != 2 {
		t.Fatalf("ListAttachments(1) returned %d, want 2", len(atts))
	}
	if atts[0].Filename != "a.log" {
		t.Errorf("first attachment = %q, want a.log", atts[0].Filename)
	}
}

func TestCollectionsAndCounts(t *testing.T) {
	db := mustOpen(t)
	mustStore(t, db)

	for kind, want := range map[string][]string{
		CollectionComponents: {"ui"},
		CollectionVersions:   {"1.0"},
		CollectionMilestones: {"2.0"},
	} {
		got, err := Collection(db, kind)
		if err != nil {
			t.Fatalf("Collection(%s) failed: %v", kind, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Collection(%s) = %v, want %v", kind, got, want)
		}
	}

	counts, err := CountByStatus(db)
	if err != nil {
		t.Fatalf("CountByStatus() failed: %v", err)
	}
	want := map[string]int{"open": 1, "new": 1, "resolved": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("CountByStatus() = %v, want %v", counts, want)
	}
}

func TestMakePlaceholders(t *testing.T) {
	for n, want := range map[int]string{0: "", 1: "?", 3: "?, ?, ?"} {
		if got := makePlaceholders(n); got != want {
			t.Errorf("makePlaceholders(%d) = %q, want %q", n, got, want)
		}
	}
}
