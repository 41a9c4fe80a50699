package convert

import (
	"sort"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

// Aggregator collects the distinct versions, milestones and components seen
// on converted issues.
type Aggregator struct {
	versions   map[string]struct{}
	milestones map[string]struct{}
	components map[string]struct{}
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		versions:   make(map[string]struct{}),
		milestones: make(map[string]struct{}),
		components: make(map[string]struct{}),
	}
}

// Add registers the non-empty collection values of issue.
func (a *Aggregator) Add(issue *model.Issue) {
	addName(a.versions, issue.Version)
	addName(a.milestones, issue.Milestone)
	addName(a.components, issue.Component)
}

// Fill writes the collected names into db, sorted by name.
func (a *Aggregator) Fill(db *model.Database) {
	db.Versions = names(a.versions)
	db.Milestones = names(a.milestones)
	db.Components = names(a.components)
}

func addName(set map[string]struct{}, name string) {
	if name == "" {
		return
	}
	set[name] = struct{}{}
}

func names(set map[string]struct{}) []model.Named {
	out := make([]model.Named, 0, len(set))
	for name := range set {
		out = append(out, model.Named{Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
