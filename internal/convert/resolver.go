package convert

import (
	"sort"
	"strings"

	"github.com/ALT-F4-LLC/bugport/internal/lookup"
)

// Resolver maps source identities to target identities for one run. Misses
// resolve to the fallback identity and are remembered so the run can report
// them.
type Resolver struct {
	users      lookup.UserTable
	fallback   string
	unresolved map[string]struct{}
}

// NewResolver returns a resolver over users. users may be nil, in which case
// every identity resolves to fallback.
func NewResolver(users lookup.UserTable, fallback string) *Resolver {
	return &Resolver{
		users:      users,
		fallback:   fallback,
		unresolved: make(map[string]struct{}),
	}
}

// EmptyIdentity stands in for a blank source identity in the unresolved
// list.
const EmptyIdentity = "(empty)"

// Resolve returns the target identity for identity.
func (r *Resolver) Resolve(identity string) string {
	if target, ok := r.users.Lookup(identity); ok {
		return target
	}
	if strings.TrimSpace(identity) == "" {
		r.unresolved[EmptyIdentity] = struct{}{}
	} else {
		r.unresolved[identity] = struct{}{}
	}
	return r.fallback
}

// IsFallback reports whether target is the fallback identity, i.e. the
// source identity it came from was not resolved.
func (r *Resolver) IsFallback(target string) bool {
	return target == r.fallback
}

// Unresolved returns the source identities that fell back, sorted, in their
// original spelling.
func (r *Resolver) Unresolved() []string {
	out := make([]string, 0, len(r.unresolved))
	for identity := range r.unresolved {
		out = append(out, identity)
	}
	sort.Strings(out)
	return out
}
