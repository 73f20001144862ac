package timeline

import (
	"errors"
	"fmt"
	"time"
)

// Zone is a selectable display time zone.
type Zone struct {
	Label string
	Name  string // IANA name, "Local" for the process zone
}

var ErrUnknownZone = errors.New("unknown time zone")

// Zones lists the zones offered by the zone selector.
var Zones = []Zone{
	{Label: "UTC", Name: "UTC"},
	{Label: "Local", Name: "Local"},
	{Label: "CCZ (Clipperton Clarion Zone, UTC-8)", Name: "Etc/GMT+8"},
	{Label: "US Eastern", Name: "America/New_York"},
	{Label: "US Pacific", Name: "America/Los_Angeles"},
}

// FindZone looks a zone up by label or IANA name.
func FindZone(s string) (Zone, error) {
	for _, z := range Zones {
		if z.Label == s || z.Name == s {
			return z, nil
		}
	}
	return Zone{}, fmt.Errorf("%w: %q", ErrUnknownZone, s)
}

// NextZone returns the zone after z, wrapping around.
func NextZone(z Zone) Zone {
	for i, cand := range Zones {
		if cand.Name == z.Name {
			return Zones[(i+1)%len(Zones)]
		}
	}
	return Zones[0]
}

// Location resolves z. The CCZ zone has a fixed offset, so it still works on
// hosts without tz data; other zones fall back to UTC in that case.
func (z Zone) Location() *time.Location {
	switch z.Name {
	case "UTC", "":
		return time.UTC
	case "Local":
		return time.Local
	}
	loc, err := time.LoadLocation(z.Name)
	if err == nil {
		return loc
	}
	if z.Name == "Etc/GMT+8" {
		return time.FixedZone("UTC-8", -8*60*60)
	}
	return time.UTC
}

// FormatClock renders t as a 24-hour clock in loc.
func FormatClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04:05")
}
