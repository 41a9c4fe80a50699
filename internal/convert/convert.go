// Package convert maps Mantis issue records and bug notes onto the Bitbucket
// issue import format.
//
// A conversion is a single synchronous pass: issues are converted in export
// order, their attachments are staged as they go, then notes are attached
// to the issues that made it through. The first mapping failure aborts the
// run; soft conditions are collected in a Report.
package convert

import (
	"errors"
	"fmt"
	"time"

	"github.com/ALT-F4-LLC/bugport/internal/lookup"
	"github.com/ALT-F4-LLC/bugport/internal/mantis"
	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// Options configures a conversion run.
type Options struct {
	// DefaultUser is the target identity for unmapped users.
	DefaultUser string
	// Location is used to render timestamps. nil means local time.
	Location *time.Location

	Users lookup.UserTable

	// Attachments are staged only when the table, AttachmentsDir and
	// StagingDir are all set.
	Attachments    lookup.AttachmentTable
	AttachmentsDir string
	StagingDir     string

	// Notes are converted to comments only when non-nil.
	Notes []lookup.Note

	// Progress, when set, receives one line per converted issue.
	Progress func(format string, args ...any)
}

type run struct {
	opts     Options
	resolver *Resolver
	agg      *Aggregator
	copier   *Copier
	known    map[int]*model.Issue
	db       *model.Database
	report   *Report

	// commentIDs holds every id issued to a comment. Notes without an id
	// are numbered upward from lastCommentID, which starts at the highest
	// explicit note id.
	commentIDs    map[int]struct{}
	lastCommentID int
}

// Run converts issues and, when configured, their notes and attachments.
func Run(issues []*mantis.Issue, opts Options) (*model.Database, *Report, error) {
	r := &run{
		opts:     opts,
		resolver: NewResolver(opts.Users, opts.DefaultUser),
		agg:      NewAggregator(),
		known:    make(map[int]*model.Issue, len(issues)),
		db:       model.NewDatabase(),
		report:   &Report{},

		commentIDs:    make(map[int]struct{}, len(opts.Notes)),
		lastCommentID: maxNoteID(opts.Notes),
	}
	if opts.Attachments != nil && opts.AttachmentsDir != "" && opts.StagingDir != "" {
		r.copier = &Copier{SourceDir: opts.AttachmentsDir, DestDir: opts.StagingDir}
	}

	for _, src := range issues {
		if err := r.addIssue(src); err != nil {
			return nil, nil, err
		}
	}

	for i, note := range opts.Notes {
		comment, err := r.convertNote(i+1, note)
		if err != nil {
			return nil, nil, err
		}
		if comment == nil {
			r.report.DroppedNotes++
			continue
		}
		r.db.Comments = append(r.db.Comments, comment)
	}

	r.agg.Fill(r.db)

	r.report.Issues = len(r.db.Issues)
	r.report.Comments = len(r.db.Comments)
	r.report.Attachments = len(r.db.Attachments)
	r.report.UnresolvedUsers = r.resolver.Unresolved()
	if r.report.MissingAttachments == nil {
		r.report.MissingAttachments = []MissingAttachment{}
	}

	return r.db, r.report, nil
}

func (r *run) addIssue(src *mantis.Issue) error {
	issue, err := r.convertIssue(src)
	if err != nil {
		return err
	}
	if _, dup := r.known[issue.ID]; dup {
		return &RecordError{Position: src.Position, ID: src.ID, Err: fmt.Errorf("duplicate issue id %d", issue.ID)}
	}

	r.progress("Converted issue %d: %s", issue.ID, issue.Title)

	r.known[issue.ID] = issue
	r.agg.Add(issue)
	r.db.Issues = append(r.db.Issues, issue)

	if r.copier == nil {
		return nil
	}
	for _, ref := range r.opts.Attachments[issue.ID] {
		if err := r.addAttachment(issue, ref); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) addAttachment(issue *model.Issue, ref lookup.AttachmentRef) error {
	att, n, err := r.copier.Copy(issue.ID, ref)
	switch {
	case errors.Is(err, ErrMissingAttachment), errors.Is(err, ErrUnsafeAttachmentName):
		r.report.MissingAttachments = append(r.report.MissingAttachments, MissingAttachment{
			IssueID: issue.ID,
			File:    ref.SourceName(),
			Reason:  err.Error(),
		})
		return nil
	case err != nil:
		return fmt.Errorf("issue %d: %w", issue.ID, err)
	}

	att.User = issue.Reporter
	r.db.Attachments = append(r.db.Attachments, att)
	r.report.BytesStaged += n
	r.progress("Staged attachment %s for issue %d", att.Filename, issue.ID)
	return nil
}

func (r *run) progress(format string, args ...any) {
	if r.opts.Progress != nil {
		r.opts.Progress(format, args...)
	}
}
