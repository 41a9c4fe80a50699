package convert

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ALT-F4-LLC/bugport/internal/model"
)

var severityPriorities = map[string]model.Priority{
	"feature": model.PriorityTrivial,
	"trivial": model.PriorityTrivial,
	"text":    model.PriorityTrivial,
	"tweak":   model.PriorityMinor,
	"minor":   model.PriorityMinor,
	"major":   model.PriorityMajor,
	"crash":   model.PriorityCritical,
	"block":   model.PriorityBlocker,
}

var severityOrder = []string{"feature", "trivial", "text", "tweak", "minor", "major", "crash", "block"}

var statuses = map[string]model.Status{
	"new":          model.StatusNew,
	"feedback":     model.StatusOnHold,
	"acknowledged": model.StatusOpen,
	"confirmed":    model.StatusOpen,
	"assigned":     model.StatusOpen,
	"resolved":     model.StatusResolved,
	"closed":       model.StatusResolved,
}

var statusOrder = []string{"new", "feedback", "acknowledged", "confirmed", "assigned", "resolved", "closed"}

func token(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Priority maps a source severity to a target priority.
func Priority(severity string) (model.Priority, error) {
	p, ok := severityPriorities[token(severity)]
	if !ok {
		return "", &UnknownEnumValueError{Field: "severity", Value: severity, Allowed: severityOrder}
	}
	return p, nil
}

// KindOf classifies an issue by its source severity. Unlike Priority it is
// total: anything that is not a feature request, text fix or tweak is a bug.
func KindOf(severity string) model.Kind {
	switch token(severity) {
	case "feature", "text":
		return model.KindTask
	case "tweak":
		return model.KindEnhancement
	default:
		return model.KindBug
	}
}

// Status maps a source workflow status to a target status.
func Status(status string) (model.Status, error) {
	s, ok := statuses[token(status)]
	if !ok {
		return "", &UnknownEnumValueError{Field: "status", Value: status, Allowed: statusOrder}
	}
	return s, nil
}

// Timestamps must land in a four-digit year: 0001-01-01T00:00:00Z up to
// 9999-12-31T23:59:59Z, before any zone shift.
const (
	minTimestamp = -62135596800
	maxTimestamp = 253402300799
)

// FormatTimestamp renders seconds since the epoch as a local ISO-8601 time
// in loc, with microsecond precision. An empty value yields an empty string.
func FormatTimestamp(field, value string, loc *time.Location) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	secs, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(secs) || secs < minTimestamp || secs > maxTimestamp {
		return "", &TimestampError{Field: field, Value: value}
	}

	whole := int64(secs)
	micros := int64(math.Round((secs - float64(whole)) * 1e6))
	t := time.Unix(whole, micros*int64(time.Microsecond))
	if loc != nil {
		t = t.In(loc)
	}
	return model.FormatTime(t), nil
}
