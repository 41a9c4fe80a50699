package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority represents the urgency of an issue in the target tracker.
type Priority string

const (
	PriorityTrivial  Priority = "trivial"
	PriorityMinor    Priority = "minor"
	PriorityMajor    Priority = "major"
	PriorityCritical Priority = "critical"
	PriorityBlocker  Priority = "blocker"
)

var validPriorities = []Priority{
	PriorityTrivial,
	PriorityMinor,
	PriorityMajor,
	PriorityCritical,
	PriorityBlocker,
}

// ValidatePriority returns an error if p is not a recognized priority.
func ValidatePriority(p Priority) error {
	for _, v := range validPriorities {
		if p == v {
			return nil
		}
	}
	return fmt.Errorf("invalid priority %q: must be one of %v", p, validPriorities)
}

// Color returns a color name string suitable for terminal rendering.
func (p Priority) Color() string {
	switch p {
	case PriorityBlocker, PriorityCritical:
		return "red"
	case PriorityMajor:
		return "yellow"
	case PriorityMinor:
		return "blue"
	case PriorityTrivial:
		return "gray"
	default:
		return "white"
	}
}

// Icon returns a short marker for the priority level.
func (p Priority) Icon() string {
	switch p {
	case PriorityBlocker:
		return "!!!!"
	case PriorityCritical:
		return "!!!"
	case PriorityMajor:
		return "!!"
	case PriorityMinor:
		return "!"
	default:
		return "-"
	}
}

// Status represents the workflow state of an issue in the target tracker.
type Status string

const (
	StatusNew       Status = "new"
	StatusOpen      Status = "open"
	StatusResolved  Status = "resolved"
	StatusOnHold    Status = "on hold"
	StatusInvalid   Status = "invalid"
	StatusDuplicate Status = "duplicate"
	StatusWontfix   Status = "wontfix"
	StatusClosed    Status = "closed"
)

var validStatuses = []Status{
	StatusNew,
	StatusOpen,
	StatusResolved,
	StatusOnHold,
	StatusInvalid,
	StatusDuplicate,
	StatusWontfix,
	StatusClosed,
}

// ValidateStatus returns an error if s is not a recognized status.
func ValidateStatus(s Status) error {
	for _, v := range validStatuses {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("invalid status %q: must be one of %v", s, validStatuses)
}

// Color returns a color name string suitable for terminal rendering.
func (s Status) Color() string {
	switch s {
	case StatusNew:
		return "blue"
	case StatusOpen:
		return "yellow"
	case StatusOnHold:
		return "magenta"
	case StatusResolved, StatusClosed:
		return "green"
	default:
		return "gray"
	}
}

// Icon returns a single-rune marker for the status.
func (s Status) Icon() string {
	switch s {
	case StatusNew:
		return "○"
	case StatusOpen:
		return "◐"
	case StatusOnHold:
		return "◌"
	case StatusResolved, StatusClosed:
		return "✔"
	default:
		return "✗"
	}
}

// Kind represents the category of an issue.
type Kind string

const (
	KindBug         Kind = "bug"
	KindEnhancement Kind = "enhancement"
	KindProposal    Kind = "proposal"
	KindTask        Kind = "task"
)

var validKinds = []Kind{
	KindBug,
	KindEnhancement,
	KindProposal,
	KindTask,
}

// ValidateKind returns an error if k is not a recognized issue kind.
func ValidateKind(k Kind) error {
	for _, v := range validKinds {
		if k == v {
			return nil
		}
	}
	return fmt.Errorf("invalid issue kind %q: must be one of %v", k, validKinds)
}

// Color returns a color name string suitable for terminal rendering.
func (k Kind) Color() string {
	switch k {
	case KindBug:
		return "red"
	case KindEnhancement:
		return "green"
	case KindProposal:
		return "magenta"
	case KindTask:
		return "blue"
	default:
		return "white"
	}
}

// Icon returns a single-rune marker for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindBug:
		return "●"
	case KindEnhancement:
		return "▲"
	case KindProposal:
		return "◆"
	case KindTask:
		return "■"
	default:
		return "?"
	}
}

// Statuses returns every status in workflow order.
func Statuses() []Status {
	return append([]Status(nil), validStatuses...)
}

// TimestampLayout is the ISO-8601 form every date field is written in. It
// carries no zone designator. Parsing with it accepts an optional
// fractional second.
const TimestampLayout = "2006-01-02T15:04:05"

const timestampMicroLayout = TimestampLayout + ".000000"

// FormatTime renders t in TimestampLayout. A time with a sub-second part
// gets exactly six fractional digits, e.g. "2015-01-02T03:04:05.500000".
func FormatTime(t time.Time) string {
	if t.Nanosecond() != 0 {
		return t.Format(timestampMicroLayout)
	}
	return t.Format(TimestampLayout)
}

// FormatID formats an issue ID for display, e.g. "#5".
func FormatID(id int) string {
	return "#" + strconv.Itoa(id)
}

// ParseID accepts a decimal issue identifier, tolerating surrounding
// whitespace and leading zeros ("0000005" and "5" are the same issue).
func ParseID(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("empty issue ID")
	}

	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid issue ID %q: %w", input, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid issue ID %q: must be positive", input)
	}

	return id, nil
}

// Issue is an issue record in the target import format.
type Issue struct {
	ID               int
	Reporter         string
	Assignee         string
	Priority         Priority
	Status           Status
	Kind             Kind
	Component        string
	Version          string
	Milestone        string
	CreatedOn        string
	UpdatedOn        string
	ContentUpdatedOn string
	Title            string
	Content          string
}

// issueJSON is the JSON wire format for Issue.
type issueJSON struct {
	Assignee         *string `json:"assignee"`
	Component        string  `json:"component"`
	Content          string  `json:"content"`
	ContentUpdatedOn string  `json:"content_updated_on"`
	CreatedOn        string  `json:"created_on"`
	ID               int     `json:"id"`
	Kind             string  `json:"kind"`
	Milestone        string  `json:"milestone"`
	Priority         string  `json:"priority"`
	Reporter         string  `json:"reporter"`
	Status           string  `json:"status"`
	Title            string  `json:"title"`
	UpdatedOn        string  `json:"updated_on"`
	Version          string  `json:"version"`
}

// MarshalJSON implements custom JSON serialization for Issue. An empty
// assignee is written as null, which the importer treats as unassigned.
func (i Issue) MarshalJSON() ([]byte, error) {
	j := issueJSON{
		Component:        i.Component,
		Content:          i.Content,
		ContentUpdatedOn: i.ContentUpdatedOn,
		CreatedOn:        i.CreatedOn,
		ID:               i.ID,
		Kind:             string(i.Kind),
		Milestone:        i.Milestone,
		Priority:         string(i.Priority),
		Reporter:         i.Reporter,
		Status:           string(i.Status),
		Title:            i.Title,
		UpdatedOn:        i.UpdatedOn,
		Version:          i.Version,
	}

	if i.Assignee != "" {
		assignee := i.Assignee
		j.Assignee = &assignee
	}

	return json.Marshal(j)
}

// UnmarshalJSON implements custom JSON deserialization for Issue.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var j issueJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	if j.ID <= 0 {
		return fmt.Errorf("invalid issue ID %d: must be positive", j.ID)
	}
	i.ID = j.ID

	i.Priority = Priority(j.Priority)
	if err := ValidatePriority(i.Priority); err != nil {
		return err
	}

	i.Status = Status(j.Status)
	if err := ValidateStatus(i.Status); err != nil {
		return err
	}

	i.Kind = Kind(j.Kind)
	if err := ValidateKind(i.Kind); err != nil {
		return err
	}

	if j.Assignee != nil {
		i.Assignee = *j.Assignee
	} else {
		i.Assignee = ""
	}

	i.Reporter = j.Reporter
	i.Component = j.Component
	i.Version = j.Version
	i.Milestone = j.Milestone
	i.CreatedOn = j.CreatedOn
	i.UpdatedOn = j.UpdatedOn
	i.ContentUpdatedOn = j.ContentUpdatedOn
	i.Title = j.Title
	i.Content = j.Content

	return nil
}
