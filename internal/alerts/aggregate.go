package alerts

import (
	"fmt"
	"sort"
)

// Aggregate counts alerts per severity and derives the total and the
// critical flag. The input is never modified and duplicates are counted as
// given.
//
// An alert with a severity outside high/medium/low fails the whole call with
// an error wrapping ErrInvalidSeverity, so a badge is never rendered from a
// partial count.
func Aggregate(alerts []Alert) (View, error) {
	counts := make(map[Severity]int, len(Severities))
	for _, s := range Severities {
		counts[s] = 0
	}

	for _, a := range alerts {
		if !a.Severity.IsValid() {
			return View{}, fmt.Errorf("alert %q has severity %q: %w", a.ID, string(a.Severity), ErrInvalidSeverity)
		}
		counts[a.Severity]++
	}

	return View{
		Counts:      counts,
		Total:       len(alerts),
		HasCritical: counts[SeverityHigh] > 0,
	}, nil
}

// SortForDisplay returns a copy of alerts ordered high severity first, then
// newest first. Ties fall back to ID so repeated renders stay stable.
func SortForDisplay(alerts []Alert) []Alert {
	out := make([]Alert, len(alerts))
	copy(out, alerts)

	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := out[i].Severity.Rank(), out[j].Severity.Rank(); ri != rj {
			return ri < rj
		}
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
