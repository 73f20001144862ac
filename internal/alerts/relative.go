package alerts

import (
	"fmt"
	"time"
)

// dateLayout is the short month/day/year form used once an alert is a day old.
const dateLayout = "1/2/2006"

// RelativeLabel describes how long ago ts happened relative to now, using the
// local zone for the calendar-date fallback.
func RelativeLabel(ts, now time.Time) string {
	return RelativeLabelIn(ts, now, time.Local)
}

// RelativeLabelIn is RelativeLabel with an explicit zone for the date fallback.
//
//	elapsed < 1m   "Just now" (also any ts after now)
//	elapsed < 60m  "N minute(s) ago"
//	elapsed < 24h  "N hour(s) ago"
//	otherwise      "M/D/YYYY"
//
// Counts are floored, so exactly 60 minutes reads "1 hour ago".
func RelativeLabelIn(ts, now time.Time, loc *time.Location) string {
	elapsed := now.Sub(ts)
	if elapsed < time.Minute {
		return "Just now"
	}

	minutes := int64(elapsed / time.Minute)
	if minutes < 60 {
		return plural(minutes, "minute") + " ago"
	}

	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour") + " ago"
	}

	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format(dateLayout)
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
