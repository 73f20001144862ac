// Package alerts holds the alert records shown by the dashboard and the pure
// logic that summarises them: per-severity counts, the critical flag and the
// relative-time labels rendered next to each alert.
package alerts

import (
	"errors"
	"time"
)

// Severity is the urgency rank of an alert.
type Severity string

// Alert severity constants, most urgent first.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Severities lists every valid rank in descending urgency.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

// Sentinel errors.
var (
	ErrInvalidSeverity = errors.New("severity must be 'high', 'medium', or 'low'")
	ErrDuplicateID     = errors.New("duplicate alert id")
)

// IsValid reports whether s is one of the three known ranks.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// Rank returns 0 for high, 1 for medium and 2 for low. Unknown values sort
// after every valid rank.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return len(Severities)
	}
}

func (s Severity) String() string {
	return string(s)
}

// Alert is a single system alert. Values are treated as immutable once handed
// to the aggregator or the store.
type Alert struct {
	ID        string
	Title     string
	Message   string
	Severity  Severity
	Category  string // environmental, operational, ...
	Timestamp time.Time
}

// IsCritical reports whether the alert has the highest severity.
func (a Alert) IsCritical() bool {
	return a.Severity == SeverityHigh
}

// View is the derived summary of an alert collection. It is recomputed from
// scratch whenever the collection changes and never stored.
type View struct {
	Counts      map[Severity]int
	Total       int
	HasCritical bool
}

// Count returns the number of alerts at the given severity.
func (v View) Count(s Severity) int {
	return v.Counts[s]
}
