// Package timeline models the dashboard's time controls: the selected time
// frame, historical playback and the display time zone.
package timeline

import (
	"errors"
	"fmt"
	"time"
)

// Frame is the window of data the dashboard shows.
type Frame string

const (
	FrameLive  Frame = "live"
	FrameHour  Frame = "1h"
	Frame6h    Frame = "6h"
	Frame24h   Frame = "24h"
	FrameWeek  Frame = "7d"
	FrameMonth Frame = "30d"
)

// Frames lists the selectable frames in dropdown order.
var Frames = []Frame{FrameLive, FrameHour, Frame6h, Frame24h, FrameWeek, FrameMonth}

var ErrUnknownFrame = errors.New("unknown time frame")

var frameLabels = map[Frame]string{
	FrameLive:  "Live Data",
	FrameHour:  "Past Hour",
	Frame6h:    "Past 6 Hours",
	Frame24h:   "Past 24 Hours",
	FrameWeek:  "Past Week",
	FrameMonth: "Past Month",
}

var frameDurations = map[Frame]time.Duration{
	FrameHour:  time.Hour,
	Frame6h:    6 * time.Hour,
	Frame24h:   24 * time.Hour,
	FrameWeek:  7 * 24 * time.Hour,
	FrameMonth: 30 * 24 * time.Hour,
}

// ParseFrame converts a config or flag value into a Frame.
func ParseFrame(s string) (Frame, error) {
	f := Frame(s)
	if _, ok := frameLabels[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFrame, s)
	}
	return f, nil
}

// IsLive reports whether f streams current data rather than history.
func (f Frame) IsLive() bool {
	return f == FrameLive
}

// Label returns the dropdown text for f.
func (f Frame) Label() string {
	if l, ok := frameLabels[f]; ok {
		return l
	}
	return string(f)
}

// Duration is the look-back window. Live has none.
func (f Frame) Duration() time.Duration {
	return frameDurations[f]
}

// Next returns the following frame, wrapping back to live.
func (f Frame) Next() Frame {
	for i, fr := range Frames {
		if fr == f {
			return Frames[(i+1)%len(Frames)]
		}
	}
	return FrameLive
}
