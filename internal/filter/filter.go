// Package filter evaluates user-supplied boolean expressions against
// converted issues, e.g. `kind == "bug" && comments > 2`.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// Env is the set of names an expression can reference.
type Env struct {
	ID          int    `expr:"id"`
	Title       string `expr:"title"`
	Content     string `expr:"content"`
	Reporter    string `expr:"reporter"`
	Assignee    string `expr:"assignee"`
	Status      string `expr:"status"`
	Priority    string `expr:"priority"`
	Kind        string `expr:"kind"`
	Component   string `expr:"component"`
	Version     string `expr:"version"`
	Milestone   string `expr:"milestone"`
	CreatedOn   string `expr:"created_on"`
	UpdatedOn   string `expr:"updated_on"`
	Comments    int    `expr:"comments"`
	Attachments int    `expr:"attachments"`
}

// Counts holds per-issue related record counts.
type Counts struct {
	Comments    map[int]int
	Attachments map[int]int
}

// EnvFor builds the expression environment for one issue.
func EnvFor(issue *model.Issue, counts Counts) Env {
	return Env{
		ID:          issue.ID,
		Title:       issue.Title,
		Content:     issue.Content,
		Reporter:    issue.Reporter,
		Assignee:    issue.Assignee,
		Status:      string(issue.Status),
		Priority:    string(issue.Priority),
		Kind:        string(issue.Kind),
		Component:   issue.Component,
		Version:     issue.Version,
		Milestone:   issue.Milestone,
		CreatedOn:   issue.CreatedOn,
		UpdatedOn:   issue.UpdatedOn,
		Comments:    counts.Comments[issue.ID],
		Attachments: counts.Attachments[issue.ID],
	}
}

// Expr is a compiled boolean filter expression.
type Expr struct {
	source  string
	program *vm.Program
}

// Compile type-checks source against Env. The expression must yield a bool.
func Compile(source string) (*Expr, error) {
	program, err := expr.Compile(source, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", source, err)
	}
	return &Expr{source: source, program: program}, nil
}

// String returns the expression source.
func (e *Expr) String() string {
	return e.source
}

// Match evaluates the expression for env.
func (e *Expr) Match(env Env) (bool, error) {
	out, err := vm.Run(e.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluating filter %q: %w", e.source, err)
	}
	return out.(bool), nil
}

// Apply returns the issues the expression matches, in their original order.
// A nil expression matches everything.
func Apply(e *Expr, issues []*model.Issue, counts Counts) ([]*model.Issue, error) {
	if e == nil {
		return issues, nil
	}

	matched := make([]*model.Issue, 0, len(issues))
	for _, issue := range issues {
		ok, err := e.Match(EnvFor(issue, counts))
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, issue)
		}
	}
	return matched, nil
}
