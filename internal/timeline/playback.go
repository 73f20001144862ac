package timeline

import (
	"errors"
	"fmt"
	"time"
)

// Speeds are the playback multipliers offered by the speed buttons.
var Speeds = []float64{0.5, 1, 2, 5}

var ErrInvalidSpeed = errors.New("playback speed must be one of 0.5, 1, 2, 5")

// ValidateSpeed returns an error if speed is not one of Speeds.
func ValidateSpeed(speed float64) error {
	if speedIndex(speed) < 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidSpeed, speed)
	}
	return nil
}

func speedIndex(speed float64) int {
	for i, s := range Speeds {
		if s == speed {
			return i
		}
	}
	return -1
}

// Playback replays historical data. Controls are inert while the frame is
// live.
type Playback struct {
	Playing bool
	Speed   float64
	Current time.Time
}

// NewPlayback returns a paused playback at start. An invalid speed falls back
// to 1x.
func NewPlayback(start time.Time, speed float64) Playback {
	if speedIndex(speed) < 0 {
		speed = 1
	}
	return Playback{Speed: speed, Current: start}
}

// Toggle flips play/pause. It does nothing and returns false for a live frame.
func (p *Playback) Toggle(f Frame) bool {
	if f.IsLive() {
		return false
	}
	p.Playing = !p.Playing
	return true
}

// SetSpeed changes the multiplier. It returns false for a live frame or a
// speed outside Speeds.
func (p *Playback) SetSpeed(f Frame, speed float64) bool {
	if f.IsLive() || speedIndex(speed) < 0 {
		return false
	}
	p.Speed = speed
	return true
}

// NextSpeed steps to the next faster speed, stopping at the fastest.
func (p *Playback) NextSpeed(f Frame) bool {
	i := speedIndex(p.Speed)
	if i < 0 || i+1 >= len(Speeds) {
		return false
	}
	return p.SetSpeed(f, Speeds[i+1])
}

// PrevSpeed steps to the next slower speed, stopping at the slowest.
func (p *Playback) PrevSpeed(f Frame) bool {
	i := speedIndex(p.Speed)
	if i <= 0 {
		return false
	}
	return p.SetSpeed(f, Speeds[i-1])
}

// Advance moves Current forward by elapsed scaled by Speed. Only a playing,
// non-live playback moves.
func (p *Playback) Advance(f Frame, elapsed time.Duration) {
	if !p.Playing || f.IsLive() || elapsed <= 0 {
		return
	}
	p.Current = p.Current.Add(time.Duration(float64(elapsed) * p.Speed))
}

// Stop pauses playback, used when switching back to live.
func (p *Playback) Stop() {
	p.Playing = false
}
