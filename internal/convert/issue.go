package convert

import (
	"fmt"
	"strings"

	"github.com/ALT-F4-LLC/bugport/internal/mantis"
	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// migrationNote is prepended to content whose author could not be mapped.
const migrationNote = "**Automatic migration. Original reporter: \"%s\"**\n\n"

// convertIssue builds the target issue for src. Any mapping failure is
// returned as a *RecordError.
func (r *run) convertIssue(src *mantis.Issue) (*model.Issue, error) {
	fail := func(err error) error {
		return &RecordError{Position: src.Position, ID: src.ID, Err: err}
	}

	id, err := model.ParseID(src.ID)
	if err != nil {
		return nil, fail(err)
	}

	priority, err := Priority(src.Severity)
	if err != nil {
		return nil, fail(err)
	}
	status, err := Status(src.Status)
	if err != nil {
		return nil, fail(err)
	}

	created, err := FormatTimestamp("date_submitted", src.DateSubmitted, r.opts.Location)
	if err != nil {
		return nil, fail(err)
	}
	updated, err := FormatTimestamp("last_updated", src.LastUpdated, r.opts.Location)
	if err != nil {
		return nil, fail(err)
	}

	reporter := r.resolver.Resolve(src.Reporter)

	var assignee string
	if src.Handler != "" {
		assignee = r.resolver.Resolve(src.Handler)
	}

	content := issueContent(src)
	if r.resolver.IsFallback(reporter) {
		content = fmt.Sprintf(migrationNote, src.Reporter) + content
	}

	return &model.Issue{
		ID:               id,
		Reporter:         reporter,
		Assignee:         assignee,
		Priority:         priority,
		Status:           status,
		Kind:             KindOf(src.Severity),
		Component:        src.Category,
		Version:          src.Version,
		Milestone:        src.TargetVersion,
		CreatedOn:        created,
		UpdatedOn:        updated,
		ContentUpdatedOn: updated,
		Title:            strings.TrimSpace(src.Summary),
		Content:          content,
	}, nil
}

// issueContent joins the description with the export's secondary text
// fields in a fixed order. Optional sections appear when their element was
// present in the export, even if empty.
func issueContent(src *mantis.Issue) string {
	var b strings.Builder
	b.WriteString(src.Description)
	fmt.Fprintf(&b, "\n\n**Reproducibility:** %s", src.Reproducibility)

	if src.StepsToReproduce.Valid {
		fmt.Fprintf(&b, "\n\n**Steps to reproduce:** %s", src.StepsToReproduce.Text)
	}
	if src.AdditionalInformation.Valid {
		fmt.Fprintf(&b, "\n\n**Additional information:** %s", src.AdditionalInformation.Text)
	}
	if src.OS.Valid {
		fmt.Fprintf(&b, "\n\n**OS:** %s, **OS build:** %s, **Platform:** %s", src.OS.Text, src.OSBuild, src.Platform)
	}

	return b.String()
}
