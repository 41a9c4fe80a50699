package render

import (
	"strings"
	"testing"

	"github.com/ALT-F4-LLC/bugport/internal/convert"
	"github.com/ALT-F4-LLC/bugport/internal/model"
)

func makeIssue(id int, title string, status model.Status, priority model.Priority) *model.Issue {
	return &model.Issue{
		ID:        id,
		Reporter:  "alice",
		Title:     title,
		Status:    status,
		Priority:  priority,
		Kind:      model.KindBug,
		CreatedOn: "2015-01-02T03:04:05",
		UpdatedOn: "2015-01-03T03:04:05",
	}
}

func TestColorsDisabledByNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorsEnabled() {
		t.Error("ColorsEnabled() = true with NO_COLOR set")
	}
}

func TestRenderMarkdownPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	got, err := RenderMarkdown("**bold**")
	if err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	if got != "**bold**" {
		t.Errorf("RenderMarkdown() = %q, want content unchanged", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"ünïcödé title", 8, "ünïcö..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestWhen(t *testing.T) {
	if got := when(""); got != "-" {
		t.Errorf("when(\"\") = %q, want -", got)
	}
	if got := when("garbage"); got != "garbage" {
		t.Errorf("when(garbage) = %q, want it unchanged", got)
	}
	if got := when("2015-01-02T03:04:05"); !strings.HasPrefix(got, "2015-01-02T03:04:05 (") || !strings.HasSuffix(got, "ago)") {
		t.Errorf("when() = %q, want timestamp with relative hint", got)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	got := RenderTable(nil)
	if !strings.HasPrefix(got, "No issues found.") {
		t.Errorf("RenderTable(nil) = %q", got)
	}
}

func TestRenderPlainTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	issue := makeIssue(5, "Crash on save", model.StatusResolved, model.PriorityCritical)
	issue.Assignee = "bob"
	issue.Component = "ui"

	got := RenderTable([]*model.Issue{issue})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header, rule and one row:\n%s", len(lines), got)
	}
	for _, want := range []string{"#5", "resolved", "critical", "bug", "Crash on save", "alice", "bob", "ui"} {
		if !strings.Contains(lines[2], want) {
			t.Errorf("row missing %q: %s", want, lines[2])
		}
	}
}

func TestRenderColorTableExecutes(t *testing.T) {
	got := renderColorTable([]*model.Issue{makeIssue(1, "Task", model.StatusNew, model.PriorityMinor)})
	if !strings.Contains(got, "Task") {
		t.Errorf("color table missing title:\n%s", got)
	}
}

func TestRenderCollectionsPlainSkipsEmpty(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := RenderCollections(Collections{Components: []string{"core", "ui"}, Milestones: []string{"2.0"}})
	want := "Components (2)\n  core\n  ui\nMilestones (1)\n  2.0\n"
	if got != want {
		t.Errorf("RenderCollections() = %q, want %q", got, want)
	}
}

func TestRenderPlainBoardGroupsByStatus(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	issues := []*model.Issue{
		makeIssue(1, "A", model.StatusResolved, model.PriorityMajor),
		makeIssue(2, "B", model.StatusNew, model.PriorityMinor),
		makeIssue(3, "C", model.StatusNew, model.PriorityBlocker),
	}

	got := RenderBoard(issues, BoardOptions{CommentCounts: map[int]int{2: 1, 3: 4}})

	newIdx := strings.Index(got, "NEW (2) ===")
	resolvedIdx := strings.Index(got, "RESOLVED (1) ===")
	if newIdx == -1 || resolvedIdx == -1 {
		t.Fatalf("missing columns:\n%s", got)
	}
	if newIdx > resolvedIdx {
		t.Errorf("columns out of workflow order:\n%s", got)
	}
	if strings.Contains(got, "OPEN") {
		t.Errorf("empty status rendered a column:\n%s", got)
	}
	if !strings.Contains(got, "1 comment\n") || !strings.Contains(got, "4 comments") {
		t.Errorf("comment counts missing:\n%s", got)
	}
}

func TestRenderPlainBoardOverflow(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var issues []*model.Issue
	for i := 1; i <= maxCardsPerColumn+2; i++ {
		issues = append(issues, makeIssue(i, "Task", model.StatusOpen, model.PriorityMinor))
	}

	got := RenderBoard(issues, BoardOptions{})
	if !strings.Contains(got, "+2 more") {
		t.Errorf("expected overflow marker, got:\n%s", got)
	}
}

func TestRenderColorBoardExecutes(t *testing.T) {
	got := renderColorBoard([]*model.Issue{
		makeIssue(1, "A", model.StatusOpen, model.PriorityMajor),
		makeIssue(2, "B", model.StatusOnHold, model.PriorityTrivial),
	}, BoardOptions{})
	if got == "" {
		t.Error("expected non-empty output from color board render")
	}
}

func TestRenderPlainDetail(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	issue := makeIssue(5, "Crash on save", model.StatusOpen, model.PriorityCritical)
	issue.Milestone = "1.1"
	issue.Content = "It breaks."
	comments := []*model.Comment{{ID: 1, IssueID: 5, User: "bob", Content: "line one\nline two", CreatedOn: "2015-01-04T00:00:00"}}
	attachments := []model.Attachment{{Filename: "shot.png", IssueID: 5, Path: "attachments/shot.png", User: "alice"}}

	got := RenderDetail(issue, comments, attachments)

	for _, want := range []string{
		"#5  Crash on save",
		"Reporter: alice",
		"Milestone: 1.1",
		"Attachments\n  shot.png attachments/shot.png",
		"Description\nIt breaks.",
		"Comments (1)",
		"    line two",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("detail missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Assignee:") {
		t.Errorf("empty assignee rendered:\n%s", got)
	}
}

func TestRenderSummaryPlain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	report := &convert.Report{
		Issues:          1200,
		Comments:        3,
		Attachments:     2,
		BytesStaged:     2048,
		UnresolvedUsers: []string{"carol", "dave"},
	}

	got := RenderSummary(report, "out.zip", 4096)
	for _, want := range []string{
		"Issues:         1,200",
		"Attachments:    2 (2.0 kB)",
		"Unmapped users: 2 (carol, dave)",
		"Archive:        out.zip (4.1 kB)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Dropped") {
		t.Errorf("zero dropped notes rendered:\n%s", got)
	}

	dry := RenderSummary(report, "out.zip", -1)
	if strings.Contains(dry, "Archive") {
		t.Errorf("dry run summary mentions archive:\n%s", dry)
	}
}
